package inst

import "strings"

// Imm classifies an immediate placeholder token in a mnemonic.
type Imm uint8

const (
	ImmNone Imm = iota
	Imm8
	ImmSigned8
	Imm16
)

// Bytes returns the operand byte count carried by the class.
func (c Imm) Bytes() int {
	switch c {
	case Imm8, ImmSigned8:
		return 1
	case Imm16:
		return 2
	}
	return 0
}

// ClassifyToken returns the immediate class of a single mnemonic word.
// Several spellings are accepted so that descriptor sets from different
// sources normalize identically.
func ClassifyToken(word string) Imm {
	switch strings.ToLower(word) {
	case "u8", "n", "n8", "d8", "a8":
		return Imm8
	case "i8", "e8", "r8", "s8":
		return ImmSigned8
	case "u16", "nn", "n16", "d16", "a16":
		return Imm16
	}
	return ImmNone
}

// mapTokens calls fn for every alphanumeric word of mnemonic and replaces
// the word with fn's result.
func mapTokens(mnemonic string, fn func(word string, class Imm) string) string {
	var b strings.Builder
	b.Grow(len(mnemonic) + 8)
	start := -1
	flush := func(end int) {
		if start >= 0 {
			w := mnemonic[start:end]
			b.WriteString(fn(w, ClassifyToken(w)))
			start = -1
		}
	}
	for i := 0; i < len(mnemonic); i++ {
		c := mnemonic[i]
		if isAlnum(c) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
		b.WriteByte(c)
	}
	flush(len(mnemonic))
	return b.String()
}

func isAlnum(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// Immediate returns the immediate class present in mnemonic. A mnemonic is
// assumed to carry at most one immediate; the widest one wins.
func Immediate(mnemonic string) Imm {
	found := ImmNone
	mapTokens(mnemonic, func(w string, c Imm) string {
		if c.Bytes() > found.Bytes() {
			found = c
		}
		return w
	})
	return found
}

// OperandBytes returns the number of immediate bytes following the opcode.
func OperandBytes(mnemonic string) int {
	return Immediate(mnemonic).Bytes()
}

// Template turns a mnemonic into a printf template: 8-bit placeholders
// become 0x%02X and 16-bit placeholders become 0x%04X.
func Template(mnemonic string) string {
	return mapTokens(mnemonic, func(w string, c Imm) string {
		switch c {
		case Imm8, ImmSigned8:
			return "0x%02X"
		case Imm16:
			return "0x%04X"
		}
		return w
	})
}

var punct = strings.NewReplacer("(", "", ")", "p", " ", "_", ",", "_")

// HandlerName derives the canonical handler name of an instruction from its
// mnemonic. It is the only naming rule in the module: stub generators feed
// it the mnemonic of each (family, operand) cell and the table builder
// feeds it descriptor mnemonics, so both sides agree by construction.
//
//	"RLC (HL)"       -> "rlc_hlp"
//	"LD (HL-),A"     -> "ldd_hlp_a"
//	"LD (FF00+u8),A" -> "ldh_np_a"
//	"LD HL,SP+i8"    -> "ldhl_sp_n"
func HandlerName(mnemonic string) string {
	name := mapTokens(mnemonic, func(w string, c Imm) string {
		switch c {
		case Imm8, ImmSigned8:
			return "n"
		case Imm16:
			return "nn"
		}
		return w
	})
	name = punct.Replace(strings.ToLower(name))

	// Addressing-mode rewrites; at most one applies.
	switch {
	case strings.Contains(name, "hl-"):
		name = rebase(name, "ld", "ldd")
		name = strings.Replace(name, "hl-", "hl", 1)
	case strings.Contains(name, "hl+"):
		name = rebase(name, "ld", "ldi")
		name = strings.Replace(name, "hl+", "hl", 1)
	case strings.Contains(name, "ff00+"):
		name = strings.Replace(name, "ff00+", "", 1)
		if Immediate(mnemonic) != ImmNone {
			name = rebase(name, "ld", "ldh")
		}
	case strings.Contains(name, "sp+"):
		if strings.HasPrefix(name, "ld_hl_sp+") {
			name = "ldhl_sp_" + name[len("ld_hl_sp+"):]
		} else {
			name = strings.Replace(name, "sp+", "sp_", 1)
		}
	}
	return name
}

// rebase swaps the leading mnemonic word of a normalized name.
func rebase(name, from, to string) string {
	if strings.HasPrefix(name, from+"_") {
		return to + name[len(from):]
	}
	return name
}
