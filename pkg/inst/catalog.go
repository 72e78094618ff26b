package inst

import (
	"fmt"
	"strings"
)

// Axis is the operand enumeration order shared by every family generator.
// The order matches the low three bits of the hardware encoding.
var Axis = [OperandCount]Operand{B, C, D, E, H, L, HLI, A}

// ShiftFamilies are the eight CB-prefixed rotate/shift operations, in
// encoding order.
var ShiftFamilies = families("rlc", "rrc", "rl", "rr", "sla", "sra", "swap", "srl")

// CBFamilies is the full row order of the CB-prefixed space: rotate/shift,
// then bit_0..7, res_0..7 and set_0..7 (RES occupies 0x80..0xBF).
var CBFamilies = append(append(append(
	append([]Family(nil), ShiftFamilies...),
	bitFamilies("bit")...),
	bitFamilies("res")...),
	bitFamilies("set")...)

// ALUFamilies are the accumulator operations of the 0x80..0xBF block.
var ALUFamilies = families("add", "adc", "sub", "sbc", "and", "xor", "or", "cp")

// LoadFamily is the register move family of the 0x40..0x7F block.
var LoadFamily = MustParseFamily("ld")

func families(names ...string) []Family {
	fs := make([]Family, len(names))
	for i, n := range names {
		fs[i] = MustParseFamily(n)
	}
	return fs
}

func bitFamilies(base string) []Family {
	fs := make([]Family, 8)
	for bit := range fs {
		fs[bit] = MustParseFamily(fmt.Sprintf("%s_%d", base, bit))
	}
	return fs
}

// Space identifies one of the two 256-entry opcode tables.
type Space uint8

const (
	Unprefixed Space = iota
	CBPrefixed
)

// Prefix returns the lead-in byte selecting the space (0 for none).
func (s Space) Prefix() uint8 {
	if s == CBPrefixed {
		return 0xCB
	}
	return 0
}

func (s Space) String() string {
	if s == CBPrefixed {
		return "cbprefixed"
	}
	return "unprefixed"
}

// Opcode formats a slot of the space the way handler comments spell it
// ("0x76", "0xcb3e").
func (s Space) Opcode(slot uint8) string {
	if s == CBPrefixed {
		return fmt.Sprintf("0xcb%02x", slot)
	}
	return fmt.Sprintf("0x%02x", slot)
}

// Slot returns the opcode slot of the (row, col) cell of a block starting
// at base. Rows are families (or load destinations), columns are operand
// indices in Axis order.
func Slot(base uint8, row, col int) uint8 {
	return base + uint8(row*int(OperandCount)+col)
}

// Cell is the inverse of Slot.
func Cell(base, slot uint8) (row, col int) {
	off := int(slot - base)
	return off / int(OperandCount), off % int(OperandCount)
}

// Block is a contiguous, generator-owned region of an opcode space.
type Block struct {
	Name     string
	Space    Space
	Base     uint8
	Families []Family // one per row; nil for the load block
	Rows     int
}

// Size returns the number of slots covered by the block.
func (b Block) Size() int { return b.Rows * int(OperandCount) }

// Contains reports whether slot of space falls inside the block.
func (b Block) Contains(space Space, slot uint8) bool {
	return space == b.Space && int(slot) >= int(b.Base) && int(slot) < int(b.Base)+b.Size()
}

// Generated blocks in generation order.
var (
	CBBlock   = Block{Name: "rotate/shift/bit", Space: CBPrefixed, Base: 0x00, Families: CBFamilies, Rows: len(CBFamilies)}
	LoadBlock = Block{Name: "load", Space: Unprefixed, Base: 0x40, Rows: int(OperandCount)}
	ALUBlock  = Block{Name: "alu", Space: Unprefixed, Base: 0x80, Families: ALUFamilies, Rows: len(ALUFamilies)}

	Blocks = []Block{CBBlock, LoadBlock, ALUBlock}
)

// BlockOf returns the generated block covering slot, if any.
func BlockOf(space Space, slot uint8) (Block, bool) {
	for _, b := range Blocks {
		if b.Contains(space, slot) {
			return b, true
		}
	}
	return Block{}, false
}

// UnaryMnemonic spells a CB-space instruction: "RLC B", "BIT 3,(HL)".
func UnaryMnemonic(f Family, op Operand) string {
	if f.Kind.BitIndexed() {
		return f.Mnemonic() + "," + op.Mnemonic()
	}
	return f.Mnemonic() + " " + op.Mnemonic()
}

// AccumulatorMnemonic spells an ALU instruction: "ADD A,(HL)".
func AccumulatorMnemonic(f Family, op Operand) string {
	return f.Mnemonic() + " A," + op.Mnemonic()
}

// MoveMnemonic spells a register move. The (HL),(HL) cell is HALT.
func MoveMnemonic(dst, src Operand) string {
	if dst.IsMemoryIndirect() && src.IsMemoryIndirect() {
		return "HALT"
	}
	return LoadFamily.Mnemonic() + " " + dst.Mnemonic() + "," + src.Mnemonic()
}

// ParseSpace accepts "unprefixed" (or "primary") and "cbprefixed" (or "cb").
func ParseSpace(s string) (Space, error) {
	switch strings.ToLower(s) {
	case "unprefixed", "primary", "base":
		return Unprefixed, nil
	case "cbprefixed", "cb", "prefixed":
		return CBPrefixed, nil
	}
	return 0, fmt.Errorf("unknown opcode space %q", s)
}

func (s Space) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Space) UnmarshalText(b []byte) error {
	v, err := ParseSpace(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
