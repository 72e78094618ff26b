package check

import (
	"fmt"
	"log/slog"

	"github.com/oisee/gbopgen/pkg/gen"
	"github.com/oisee/gbopgen/pkg/inst"
	"github.com/oisee/gbopgen/pkg/table"
)

// Kind classifies a consistency defect between stubs and dispatch rows.
type Kind uint8

const (
	MissingStub   Kind = iota // row inside a generated block names no stub
	AmbiguousStub             // row names more than one stub
	SlotMismatch              // row names a stub generated for another slot
	OrphanStub                // stub whose slot dispatches to the null handler
	DuplicateSlot             // two stubs claim the same slot
)

var kindNames = [...]string{"missing-stub", "ambiguous-stub", "slot-mismatch", "orphan-stub", "duplicate-slot"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Finding is one defect.
type Finding struct {
	Kind    Kind
	Space   inst.Space
	Slot    uint8
	Handler string
	Detail  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s %s %s: %s", f.Space.Opcode(f.Slot), f.Kind, f.Handler, f.Detail)
}

// Report summarizes a verification pass.
type Report struct {
	Findings []Finding
	Matched  int // rows bound to the stub generated for their slot
	External int // non-null rows outside generated blocks
	Null     int // null-handler rows
}

// OK reports whether no defects were found.
func (r *Report) OK() bool { return len(r.Findings) == 0 }

func (r *Report) add(k Kind, space inst.Space, slot uint8, handler, format string, args ...any) {
	r.Findings = append(r.Findings, Finding{
		Kind:    k,
		Space:   space,
		Slot:    slot,
		Handler: handler,
		Detail:  fmt.Sprintf(format, args...),
	})
}

// Verify cross-references stubs against tables. Every non-null row whose
// slot lies in a generated block must name exactly one stub, and that stub
// must have been generated for the row's slot. Rows outside generated
// blocks are counted as external handlers.
func Verify(stubs []gen.Stub, tables ...*table.Table) *Report {
	r := &Report{}
	idx := gen.NewIndex(stubs)

	type key struct {
		space inst.Space
		slot  uint8
	}
	bySlot := make(map[key]gen.Stub, len(stubs))
	for _, s := range stubs {
		k := key{s.Space, s.Slot}
		if prev, ok := bySlot[k]; ok {
			r.add(DuplicateSlot, s.Space, s.Slot, s.Name, "also claimed by %s", prev.Name)
			continue
		}
		bySlot[k] = s
	}

	for _, t := range tables {
		for _, row := range t.Rows {
			_, generated := inst.BlockOf(t.Space, row.Opcode)
			stub, hasStub := bySlot[key{t.Space, row.Opcode}]

			if row.IsNull() {
				r.Null++
				if hasStub {
					r.add(OrphanStub, t.Space, row.Opcode, stub.Name, "row dispatches to the null handler")
				}
				continue
			}

			matches := idx.Lookup(t.Space, row.Handler)
			if !generated {
				r.External++
				if len(matches) > 0 {
					r.add(SlotMismatch, t.Space, row.Opcode, row.Handler,
						"names the stub generated for %s", matches[0].Opcode())
				}
				continue
			}

			switch {
			case len(matches) == 0:
				want := ""
				if hasStub {
					want = stub.Name
				}
				r.add(MissingStub, t.Space, row.Opcode, row.Handler, "no stub of that name (slot generated %q)", want)
			case len(matches) > 1:
				r.add(AmbiguousStub, t.Space, row.Opcode, row.Handler, "%d stubs share the name", len(matches))
			case matches[0].Slot != row.Opcode:
				r.add(SlotMismatch, t.Space, row.Opcode, row.Handler,
					"names the stub generated for %s", matches[0].Opcode())
			default:
				r.Matched++
			}
		}
	}
	return r
}

// Log writes the report to logger, one record per finding.
func (r *Report) Log(logger *slog.Logger) {
	for _, f := range r.Findings {
		logger.Error("handler mismatch",
			"kind", f.Kind.String(),
			"opcode", f.Space.Opcode(f.Slot),
			"handler", f.Handler,
			"detail", f.Detail)
	}
	logger.Info("verification finished",
		"matched", r.Matched,
		"external", r.External,
		"null", r.Null,
		"findings", len(r.Findings))
}
