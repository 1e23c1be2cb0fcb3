// Package cpu implements a cycle-accurate interpreter for the documented
// NMOS 6502 instruction set. The core advances one bus cycle per call to
// Tick: it performs exactly one read or write against the memory.Bank it
// was given, then waits for TickDone before the next call. Undocumented
// opcodes are refused — the core halts and reports the offending byte —
// rather than emulated.
package cpu

import (
	"fmt"
	"math/rand"

	"github.com/jmchacon/sixfiveohtwo/decode"
	"github.com/jmchacon/sixfiveohtwo/irq"
	"github.com/jmchacon/sixfiveohtwo/memory"
	"github.com/jmchacon/sixfiveohtwo/status"
)

// Variant selects between the stock NMOS 6502 and the Ricoh variant used in
// the NES, which is identical except its decimal mode is unimplemented.
type Variant int

const (
	NMOS Variant = iota
	NMOSRicoh
)

// Vector addresses, little-endian 16 bit pointers into the bus.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// InvalidState reports the sequencer reaching a step it has no defined
// behavior for — a bug in the core, not a runtime condition a host can
// recover from by itself.
type InvalidState struct {
	Reason string
}

func (e InvalidState) Error() string {
	return fmt.Sprintf("invalid core state: %s", e.Reason)
}

// HaltError reports that the core fetched an opcode it refuses to
// execute. The core stops advancing; only a fresh PowerOn recovers it.
type HaltError struct {
	Opcode uint8
}

func (e HaltError) Error() string {
	return fmt.Sprintf("halted on undocumented or invalid opcode 0x%.2X", e.Opcode)
}

// intSource identifies why the shared 7 cycle interrupt sequence is
// running: a BRK instruction fetched normally, or one of the three
// latched interrupt lines winning priority at an instruction boundary.
type intSource int

const (
	srcNone intSource = iota
	srcBRK
	srcRST
	srcNMI
	srcIRQ
)

func vectorFor(src intSource) uint16 {
	switch src {
	case srcNMI:
		return NMIVector
	case srcRST:
		return ResetVector
	default:
		return IRQVector
	}
}

// ChipDef configures a new Core.
type ChipDef struct {
	// Variant selects NMOS or NMOSRicoh (no decimal mode).
	Variant Variant
	// Bus is the memory the core reads and writes each cycle. Required.
	Bus memory.Bank
	// Reset, if non-nil, is the host-driven RST line. If nil, Init creates
	// an internally owned latch and asserts it immediately, so a freshly
	// constructed Core always runs a reset sequence the first time the
	// host drives Tick/TickDone.
	Reset irq.Sender
	// NMI is the host-driven NMI line. Optional.
	NMI irq.Sender
	// IRQ is the host-driven IRQ line. Optional.
	IRQ irq.Sender
}

// Core is one 6502-family CPU: registers, status flags, and the transient
// micro-sequencer state that walks a decoded instruction cycle by cycle.
type Core struct {
	A, X, Y uint8
	S       uint8
	PC      uint16
	Flags   status.Flags

	variant Variant
	bus     memory.Bank
	rst     irq.Sender
	nmi     irq.Sender
	irqIn   irq.Sender

	tickDone bool

	op       uint8        // the opcode byte fetched this instruction
	inst     decode.Entry // decoded form of op (or a synthesized BRK form for interrupts)
	temp     uint8        // scratch: low address byte, fetched operand, or page-cross flag
	addr     uint16       // effective address computed so far this instruction
	step     int          // 1..8, the micro-step within the current instruction
	opDone   bool
	addrDone bool

	pending          intSource // latched interrupt source awaiting service
	servicing        intSource // source actually being serviced this instruction (srcNone if a plain opcode)
	skipInterrupt    bool      // set by a taken branch: run one more instruction before checking interrupts
	prevSkipInterrupt bool

	halted     bool
	haltOpcode uint8
}

// Init constructs a Core in its documented power-on state and returns it.
// If def.Reset is nil, the returned Core has already latched its own
// internal reset request; the first several Tick calls the host makes
// will run the 7 cycle reset sequence before any instruction executes.
func Init(def *ChipDef) (*Core, error) {
	if def.Bus == nil {
		return nil, InvalidState{"ChipDef.Bus is required"}
	}
	c := &Core{
		variant:  def.Variant,
		bus:      def.Bus,
		nmi:      def.NMI,
		irqIn:    def.IRQ,
		tickDone: true,
	}
	if def.Reset != nil {
		c.rst = def.Reset
	} else {
		l := &irq.Latch{}
		l.Set()
		c.rst = l
	}
	c.PowerOn()
	return c, nil
}

// PowerOn randomizes A, X, Y and S the way real silicon comes up in an
// indeterminate state, sets I and clears the other flags, and resets the
// micro-sequencer to an idle instruction boundary. D is randomized only for
// NMOS and left clear for Ricoh parts, which have decimal mode disabled. PowerOn does not
// itself drive the bus: the host must still call Tick/TickDone enough
// times to run the latched reset to completion before relying on PC.
func (p *Core) PowerOn() {
	p.A = uint8(rand.Intn(256))
	p.X = uint8(rand.Intn(256))
	p.Y = uint8(rand.Intn(256))
	p.S = uint8(rand.Intn(256))
	p.Flags = status.Flags{I: true}
	if p.variant == NMOS {
		p.Flags.D = rand.Float32() > 0.5
	}
	p.step = 0
	p.opDone = false
	p.addrDone = false
	p.halted = false
	p.haltOpcode = 0
	p.servicing = srcNone
	p.pending = srcNone
}

// Halted reports whether the core has stopped, either on an invalid opcode
// or on an error from the sequencer.
func (p *Core) Halted() bool {
	return p.halted
}

// InstructionDone reports whether the instruction (or interrupt sequence)
// running this cycle has completed.
func (p *Core) InstructionDone() bool {
	return p.opDone
}

// Tick advances the core by one bus cycle, performing exactly one read or
// write against the configured memory.Bank. Once the core has halted it
// returns an error every call and stops touching the bus.
func (p *Core) Tick() error {
	if !p.tickDone {
		p.opDone = true
		return InvalidState{"Tick called without a matching TickDone from the previous cycle"}
	}
	p.tickDone = false

	if p.halted {
		p.opDone = true
		return HaltError{p.haltOpcode}
	}

	p.step++

	var rstR, nmiR, irqR bool
	if p.rst != nil {
		rstR = p.rst.Raised()
	}
	if p.nmi != nil {
		nmiR = p.nmi.Raised()
	}
	if p.irqIn != nil && !p.Flags.I {
		irqR = p.irqIn.Raised()
	}
	if rstR || nmiR || irqR {
		switch p.pending {
		case srcNone:
			switch {
			case rstR:
				p.pending = srcRST
			case nmiR:
				p.pending = srcNMI
			default:
				p.pending = srcIRQ
			}
		case srcIRQ:
			switch {
			case rstR:
				p.pending = srcRST
			case nmiR:
				p.pending = srcNMI
			}
		case srcNMI:
			if rstR {
				p.pending = srcRST
			}
		}
	}

	switch {
	case p.step == 1:
		p.op = p.bus.Read(p.PC)
		p.opDone = false
		p.addrDone = false
		running := p.pending != srcNone && !p.skipInterrupt
		if !running {
			p.PC++
		}
		if running {
			p.servicing = p.pending
			p.inst = decode.Entry{Op: decode.BRK, Mode: decode.ModeStack}
		} else {
			p.servicing = srcNone
			p.inst = decode.Decode(p.op)
		}
		return nil
	case p.step == 2:
		p.temp = p.bus.Read(p.PC)
		p.prevSkipInterrupt = false
		if p.skipInterrupt {
			p.skipInterrupt = false
			p.prevSkipInterrupt = true
		}
	case p.step > 8:
		p.opDone = true
		return InvalidState{fmt.Sprintf("step %d exceeds the maximum instruction length (8)", p.step)}
	}

	var err error
	if p.servicing != srcNone {
		p.opDone, err = p.runInterrupt(p.servicing)
	} else {
		p.opDone, err = p.processOpcode()
	}

	if err != nil {
		p.haltOpcode = p.op
		p.halted = true
		p.opDone = true
		return err
	}
	if p.opDone {
		served := p.servicing
		if served == p.pending {
			p.pending = srcNone
		}
		if served == srcRST {
			if c, ok := p.rst.(interface{ Clear() }); ok {
				c.Clear()
			}
		}
		if served == srcNMI {
			if c, ok := p.nmi.(interface{ Clear() }); ok {
				c.Clear()
			}
		}
		p.servicing = srcNone
		p.step = 0
	}
	return nil
}

// TickDone must be called once after every Tick call (and after the host
// has satisfied the resulting read or write), before the next Tick.
func (p *Core) TickDone() {
	p.tickDone = true
}
