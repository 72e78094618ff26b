package gen

import (
	"fmt"

	"github.com/oisee/gbopgen/pkg/inst"
)

// Effect is what a handler body does with its operands.
type Effect uint8

const (
	EffectWriteBack  Effect = iota // op = f(op)
	EffectDiscard                  // f(op) for its flag side effect only
	EffectAccumulate               // f(A, op); the primitive owns A and flags
	EffectCopy                     // reg = reg
	EffectStore                    // (HL) = reg
	EffectLoad                     // reg = (HL)
	EffectHalt                     // (HL),(HL) cell of the load block
)

var effectNames = [...]string{"write-back", "discard", "accumulate", "copy", "store", "load", "halt"}

func (e Effect) String() string {
	if int(e) < len(effectNames) {
		return effectNames[e]
	}
	return fmt.Sprintf("Effect(%d)", uint8(e))
}

// Stub describes one generated handler.
type Stub struct {
	Space    inst.Space
	Slot     uint8
	Name     string // canonical handler name, see inst.HandlerName
	Mnemonic string // canonical assembly spelling the name was derived from
	Family   inst.Family
	Dst      inst.Operand // written operand (A for accumulator families)
	Src      inst.Operand // read operand
	Effect   Effect
}

// Opcode returns the stub's opcode as spelled in handler comments.
func (s Stub) Opcode() string { return s.Space.Opcode(s.Slot) }

// Row and Col return the stub's position inside its block.
func (s Stub) Row() int {
	b, _ := inst.BlockOf(s.Space, s.Slot)
	row, _ := inst.Cell(b.Base, s.Slot)
	return row
}

func (s Stub) Col() int {
	b, _ := inst.BlockOf(s.Space, s.Slot)
	_, col := inst.Cell(b.Base, s.Slot)
	return col
}

// WritesBack reports whether the handler stores into an operand.
func (s Stub) WritesBack() bool {
	switch s.Effect {
	case EffectWriteBack, EffectCopy, EffectStore, EffectLoad:
		return true
	}
	return false
}

func (s Stub) String() string {
	return fmt.Sprintf("%s %s (%s)", s.Opcode(), s.Name, s.Mnemonic)
}
