package gen

import "github.com/oisee/gbopgen/pkg/inst"

// ShiftBit enumerates the CB-prefixed space: every rotate/shift/bit family
// (outer, in inst.CBFamilies order) against every operand (inner, in
// inst.Axis order). Slot n is family n/8 applied to operand n%8.
func ShiftBit() []Stub {
	b := inst.CBBlock
	stubs := make([]Stub, 0, b.Size())
	for row, f := range b.Families {
		for col, op := range inst.Axis {
			eff := EffectWriteBack
			if !f.Kind.WritesBack() {
				eff = EffectDiscard
			}
			m := inst.UnaryMnemonic(f, op)
			stubs = append(stubs, Stub{
				Space:    b.Space,
				Slot:     inst.Slot(b.Base, row, col),
				Name:     inst.HandlerName(m),
				Mnemonic: m,
				Family:   f,
				Dst:      op,
				Src:      op,
				Effect:   eff,
			})
		}
	}
	return stubs
}

// ALU enumerates the accumulator block 0x80..0xBF: operation outer,
// operand inner.
func ALU() []Stub {
	b := inst.ALUBlock
	stubs := make([]Stub, 0, b.Size())
	for row, f := range b.Families {
		for col, op := range inst.Axis {
			m := inst.AccumulatorMnemonic(f, op)
			stubs = append(stubs, Stub{
				Space:    b.Space,
				Slot:     inst.Slot(b.Base, row, col),
				Name:     inst.HandlerName(m),
				Mnemonic: m,
				Family:   f,
				Dst:      inst.A,
				Src:      op,
				Effect:   EffectAccumulate,
			})
		}
	}
	return stubs
}

// Load enumerates the register move block 0x40..0x7F: destination outer,
// source inner. The (HL),(HL) cell is the halt instruction.
func Load() []Stub {
	b := inst.LoadBlock
	stubs := make([]Stub, 0, b.Size())
	for row, dst := range inst.Axis {
		for col, src := range inst.Axis {
			var eff Effect
			switch {
			case dst.IsMemoryIndirect() && src.IsMemoryIndirect():
				eff = EffectHalt
			case dst.IsMemoryIndirect():
				eff = EffectStore
			case src.IsMemoryIndirect():
				eff = EffectLoad
			default:
				eff = EffectCopy
			}
			m := inst.MoveMnemonic(dst, src)
			stubs = append(stubs, Stub{
				Space:    b.Space,
				Slot:     inst.Slot(b.Base, row, col),
				Name:     inst.HandlerName(m),
				Mnemonic: m,
				Family:   inst.LoadFamily,
				Dst:      dst,
				Src:      src,
				Effect:   eff,
			})
		}
	}
	return stubs
}

// All returns every generated stub: the CB space first, then the
// unprefixed load and ALU blocks in slot order.
func All() []Stub {
	var stubs []Stub
	stubs = append(stubs, ShiftBit()...)
	stubs = append(stubs, Load()...)
	stubs = append(stubs, ALU()...)
	return stubs
}

// Index maps handler names to stubs, per opcode space.
type Index map[inst.Space]map[string][]Stub

// NewIndex builds an Index over stubs. Duplicate names are kept so that
// callers can detect them.
func NewIndex(stubs []Stub) Index {
	idx := make(Index, 2)
	for _, s := range stubs {
		m := idx[s.Space]
		if m == nil {
			m = make(map[string][]Stub)
			idx[s.Space] = m
		}
		m[s.Name] = append(m[s.Name], s)
	}
	return idx
}

// Lookup returns the stubs of space named name.
func (idx Index) Lookup(space inst.Space, name string) []Stub {
	return idx[space][name]
}

// AtSlot returns the stub generated for slot of space, if any.
func AtSlot(stubs []Stub, space inst.Space, slot uint8) (Stub, bool) {
	for _, s := range stubs {
		if s.Space == space && s.Slot == slot {
			return s, true
		}
	}
	return Stub{}, false
}
