package irq

import "testing"

func TestLatchStickyUntilCleared(t *testing.T) {
	var l Latch
	if l.Raised() {
		t.Fatal("fresh Latch reports Raised")
	}
	l.Set()
	if !l.Raised() || !l.Raised() {
		t.Fatal("Latch should stay raised across repeated calls")
	}
	l.Clear()
	if l.Raised() {
		t.Fatal("Latch still raised after Clear")
	}
}

func TestLevelConsumedOnRead(t *testing.T) {
	var l Level
	l.Set()
	if !l.Raised() {
		t.Fatal("Level not raised after Set")
	}
	if l.Raised() {
		t.Fatal("Level still raised after being consumed once; host must re-Set every cycle")
	}
}
