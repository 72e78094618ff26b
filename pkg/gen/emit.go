package gen

import (
	"bytes"
	"io"
	"strconv"

	"github.com/oisee/gbopgen/pkg/inst"
)

// Body returns the single statement implementing s in dialect d.
//
// Read and write accessors are chosen independently: a memory-indirect
// operand is read with the read accessor and stored with the write
// accessor through the same HL address.
func Body(d Dialect, s Stub) string {
	switch s.Effect {
	case EffectWriteBack:
		return d.Write(s.Dst, transform(d, s))
	case EffectDiscard:
		return transform(d, s)
	case EffectAccumulate:
		return d.Call(d.Primitive(s.Family), d.Read(s.Src))
	case EffectCopy, EffectStore, EffectLoad:
		return d.Write(s.Dst, d.Read(s.Src))
	case EffectHalt:
		return d.Halt()
	}
	panic("gen: unknown effect " + s.Effect.String())
}

// transform calls the unary or bit primitive of a CB family.
func transform(d Dialect, s Stub) string {
	if s.Family.Kind.BitIndexed() {
		return d.Call(d.Primitive(s.Family), strconv.Itoa(int(s.Family.Bit)), d.Read(s.Src))
	}
	return d.Call(d.Primitive(s.Family), d.Read(s.Src))
}

// Handler returns the full definition of one stub.
func Handler(d Dialect, s Stub) string {
	return d.Func(s.Name, s.Opcode()+" "+s.Mnemonic, Body(d, s))
}

// Render returns the generated source for stubs, grouped by block.
func Render(d Dialect, pkg string, stubs []Stub) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(d.Header(pkg))

	var cur inst.Block
	for _, s := range stubs {
		if b, ok := inst.BlockOf(s.Space, s.Slot); ok && (b.Name != cur.Name) {
			cur = b
			buf.WriteString("\n// " + b.Space.String() + " " + b.Name + " block\n")
		}
		buf.WriteString("\n")
		buf.WriteString(Handler(d, s))
	}
	return d.Format(buf.Bytes())
}

// WriteStubs renders stubs and writes them to w.
func WriteStubs(w io.Writer, d Dialect, pkg string, stubs []Stub) error {
	src, err := Render(d, pkg, stubs)
	if err != nil {
		return err
	}
	_, err = w.Write(src)
	return err
}
