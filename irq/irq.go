// Package irq defines the interrupt sources the cpu package consults at
// every instruction boundary: RST, NMI and IRQ. A host wires one of the
// Sender implementations below (or its own type satisfying Sender) into
// cpu.ChipDef and drives it as its own clock advances.
//
// Even though real silicon distinguishes level (RST, IRQ) from edge (NMI)
// triggering, the interface here doesn't: it's up to each Sender
// implementation to account for that in how it's driven. See Latch and
// Level below for the two shapes this repo needs.
package irq

// Sender defines the interface for an interrupt source.
type Sender interface {
	// Raised indicates whether the interrupt is currently held high.
	Raised() bool
}

// Latch models a sticky interrupt line: once Set, Raised reports true on
// every subsequent call until Clear is called. RST and NMI are both
// serviced this way — the core clears the latch itself once it has
// finished the 7 cycle sequence for that source.
type Latch struct {
	raised bool
}

// Set asserts the line. Idempotent: asserting an already-set latch has no
// additional effect (this matters for NMI, which is edge-triggered on real
// hardware — repeated Set calls before the edge is serviced must not queue
// more than one service).
func (l *Latch) Set() {
	l.raised = true
}

// Clear deasserts the line. Called by the core after servicing.
func (l *Latch) Clear() {
	l.raised = false
}

// Raised implements Sender.
func (l *Latch) Raised() bool {
	return l.raised
}

// Level models a level-triggered line that must be re-asserted every cycle
// it should remain active: Raised both reports and consumes the current
// assertion, so a host that calls Set once and stops will see the line
// drop on the very next Tick. This matches the spec's note that "IRQ is
// re-asserted each cycle by the host and cleared by the core each cycle."
type Level struct {
	raised bool
}

// Set asserts the line for exactly the next Raised() call.
func (l *Level) Set() {
	l.raised = true
}

// Raised implements Sender, consuming the current assertion.
func (l *Level) Raised() bool {
	v := l.raised
	l.raised = false
	return v
}
