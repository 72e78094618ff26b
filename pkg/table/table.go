package table

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"

	"github.com/oisee/gbopgen/pkg/gen"
	"github.com/oisee/gbopgen/pkg/inst"
)

// ErrIncomplete is returned when a descriptor space does not describe
// exactly 256 opcodes.
var ErrIncomplete = errors.New("descriptor space is not dense")

// Row is one dispatch-table entry.
type Row struct {
	Opcode   uint8  `json:"opcode"`
	Mnemonic string `json:"mnemonic"` // printf template
	Length   int    `json:"length"`
	Cycles   int    `json:"cycles"`
	Operands int    `json:"operands"`          // immediate bytes: 0, 1 or 2
	Handler  string `json:"handler,omitempty"` // empty for the null handler
}

// IsNull reports whether the row dispatches to the null handler.
func (r Row) IsNull() bool { return r.Handler == "" }

// Format renders the row's mnemonic with an immediate value.
func (r Row) Format(imm uint16) string {
	switch r.Operands {
	case 1:
		return fmt.Sprintf(r.Mnemonic, uint8(imm))
	case 2:
		return fmt.Sprintf(r.Mnemonic, imm)
	}
	return r.Mnemonic
}

// Normalize turns a descriptor into a dispatch row. The handler name is
// inst.HandlerName of the mnemonic, or the null handler if the descriptor
// is unused.
func Normalize(d Descriptor) Row {
	if d.Unused {
		return Row{Mnemonic: d.Name, Length: d.Length, Cycles: d.Cycles}
	}
	return Row{
		Mnemonic: inst.Template(d.Name),
		Length:   d.Length,
		Cycles:   d.Cycles,
		Operands: inst.OperandBytes(d.Name),
		Handler:  inst.HandlerName(d.Name),
	}
}

// Table is a dense dispatch table indexed by the raw opcode byte.
type Table struct {
	Space inst.Space `json:"space"`
	Rows  [256]Row   `json:"rows"`
}

// Build normalizes descs, which must hold exactly one descriptor per
// opcode of space in opcode order.
func Build(space inst.Space, descs []Descriptor) (*Table, error) {
	if len(descs) != 256 {
		return nil, errors.Wrapf(ErrIncomplete, "%s: %d descriptors, want 256", space, len(descs))
	}
	t := &Table{Space: space}
	for i, d := range descs {
		r := Normalize(d)
		r.Opcode = uint8(i)
		t.Rows[i] = r
	}
	return t, nil
}

// BuildAll builds the tables of both spaces.
func BuildAll(set *Set) (unprefixed, cb *Table, err error) {
	if unprefixed, err = Build(inst.Unprefixed, set.Unprefixed); err != nil {
		return nil, nil, err
	}
	if cb, err = Build(inst.CBPrefixed, set.CBPrefixed); err != nil {
		return nil, nil, err
	}
	return unprefixed, cb, nil
}

// Handlers returns the non-null handler names in opcode order.
func (t *Table) Handlers() []string {
	var names []string
	for _, r := range t.Rows {
		if !r.IsNull() {
			names = append(names, r.Handler)
		}
	}
	return names
}

// Name returns the conventional table variable name for a dialect.
func Name(d gen.Dialect, space inst.Space) string {
	if d.Name() == "cpp" {
		if space == inst.CBPrefixed {
			return "bcinstructions"
		}
		return "instructions"
	}
	if space == inst.CBPrefixed {
		return "cbInstructions"
	}
	return "instructions"
}

// Body renders the table literal alone, one row per opcode byte.
func (t *Table) Body(d gen.Dialect, name string) string {
	var buf bytes.Buffer
	buf.WriteString(d.TableOpen(name))
	for _, r := range t.Rows {
		h := r.Handler
		if r.IsNull() {
			h = d.Null()
		}
		buf.WriteString(d.TableRow(r.Mnemonic, r.Length, r.Cycles, r.Operands, h))
	}
	buf.WriteString(d.TableClose())
	return buf.String()
}

// Render returns a complete source file holding the table.
func (t *Table) Render(d gen.Dialect, pkg, name string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(d.Header(pkg))
	buf.WriteString("\n")
	buf.WriteString(t.Body(d, name))
	return d.Format(buf.Bytes())
}
