package inst

import (
	"fmt"
	"strconv"
	"strings"
)

// Operand is one of the eight addressable 8-bit locations of the LR35902.
// The numeric value is the operand's index in the encoding (and in Axis).
type Operand uint8

const (
	B Operand = iota
	C
	D
	E
	H
	L
	HLI // (HL): memory byte addressed by HL
	A

	OperandCount
)

var operandNames = [OperandCount]string{"b", "c", "d", "e", "h", "l", "hlp", "a"}

// Name returns the handler-name fragment ("b", "hlp", ...).
func (o Operand) Name() string { return operandNames[o] }

// Mnemonic returns the assembly spelling ("B", "(HL)", ...).
func (o Operand) Mnemonic() string {
	if o == HLI {
		return "(HL)"
	}
	return strings.ToUpper(operandNames[o])
}

// Register returns the lower-case register field backing the operand.
// For (HL) this is the 16-bit pair holding the address.
func (o Operand) Register() string {
	if o == HLI {
		return "hl"
	}
	return operandNames[o]
}

// IsMemoryIndirect reports whether the operand lives in memory rather
// than in a register field.
func (o Operand) IsMemoryIndirect() bool { return o == HLI }

func (o Operand) String() string { return o.Mnemonic() }

// Kind classifies how a family uses its operands.
type Kind uint8

const (
	KindUnary       Kind = iota // rotate/shift: r = f(r)
	KindBitTest                 // bit n, r: flags only
	KindBitSet                  // set n, r: r = f(n, r)
	KindBitReset                // res n, r: r = f(n, r)
	KindAccumulator             // A = f(A, r), implicit destination
	KindMove                    // ld dst, src
)

func (k Kind) String() string {
	switch k {
	case KindUnary:
		return "unary"
	case KindBitTest:
		return "bit-test"
	case KindBitSet:
		return "bit-set"
	case KindBitReset:
		return "bit-reset"
	case KindAccumulator:
		return "accumulator"
	case KindMove:
		return "move"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// BitIndexed reports whether families of this kind carry a bit index.
func (k Kind) BitIndexed() bool {
	return k == KindBitTest || k == KindBitSet || k == KindBitReset
}

// WritesBack reports whether the family stores its result into the operand.
func (k Kind) WritesBack() bool {
	return k == KindUnary || k == KindBitSet || k == KindBitReset
}

// Family is a named operation such as "rlc", "bit_3", "add" or "ld".
type Family struct {
	Name string
	Kind Kind
	Bit  uint8 // only meaningful when Kind.BitIndexed()
}

// Base returns the family name without its bit suffix ("bit_3" -> "bit").
func (f Family) Base() string {
	if f.Kind.BitIndexed() {
		return f.Name[:strings.LastIndexByte(f.Name, '_')]
	}
	return f.Name
}

// Mnemonic returns the assembly spelling of the family, including the
// bit index for bit-indexed families ("BIT 3", "ADD", "RLC").
func (f Family) Mnemonic() string {
	if f.Kind.BitIndexed() {
		return strings.ToUpper(f.Base()) + " " + strconv.Itoa(int(f.Bit))
	}
	return strings.ToUpper(f.Name)
}

func (f Family) String() string { return f.Name }

// ParseFamily classifies a family name. Bit-indexed families embed their
// bit index as a "_N" suffix, which is extracted here.
func ParseFamily(name string) (Family, error) {
	base, suffix, ok := strings.Cut(name, "_")
	if ok {
		bit, err := strconv.Atoi(suffix)
		if err != nil || bit < 0 || bit > 7 {
			return Family{}, fmt.Errorf("family %q: bad bit index %q", name, suffix)
		}
		f := Family{Name: name, Bit: uint8(bit)}
		switch base {
		case "bit":
			f.Kind = KindBitTest
		case "set":
			f.Kind = KindBitSet
		case "res":
			f.Kind = KindBitReset
		default:
			return Family{}, fmt.Errorf("family %q: %q does not take a bit index", name, base)
		}
		return f, nil
	}

	switch name {
	case "rlc", "rrc", "rl", "rr", "sla", "sra", "swap", "srl":
		return Family{Name: name, Kind: KindUnary}, nil
	case "add", "adc", "sub", "sbc", "and", "xor", "or", "cp":
		return Family{Name: name, Kind: KindAccumulator}, nil
	case "ld":
		return Family{Name: name, Kind: KindMove}, nil
	}
	return Family{}, fmt.Errorf("unknown family %q", name)
}

// MustParseFamily is like ParseFamily but panics on error. Used to build
// the static catalogs.
func MustParseFamily(name string) Family {
	f, err := ParseFamily(name)
	if err != nil {
		panic(err)
	}
	return f
}
