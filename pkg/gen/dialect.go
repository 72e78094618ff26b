package gen

import (
	"fmt"
	"go/format"
	"sort"
	"strconv"
	"strings"

	"github.com/oisee/gbopgen/pkg/inst"
)

// Dialect renders handler bodies and dispatch tables for one target
// language. The names it emits (state fields, memory accessors, ALU
// primitives) belong to the consuming CPU core.
type Dialect interface {
	Name() string

	// Read returns an expression yielding the operand's current value.
	Read(op inst.Operand) string
	// Write returns a statement storing value into the operand.
	Write(op inst.Operand, value string) string
	// Primitive returns the name of the helper implementing a family.
	Primitive(f inst.Family) string
	// Call returns a call of primitive with the state and args.
	Call(primitive string, args ...string) string
	// Halt returns the statement stopping the processor.
	Halt() string

	// Header returns the text preceding generated code.
	Header(pkg string) string
	// Func returns one handler definition.
	Func(name, comment, body string) string

	// TableOpen, TableRow and TableClose render a dispatch table.
	TableOpen(name string) string
	TableRow(template string, length, cycles, operands int, handler string) string
	TableClose() string
	// Null is the null-handler sentinel.
	Null() string

	// Format post-processes a complete generated file.
	Format(src []byte) ([]byte, error)
}

// The built-in dialects.
var (
	Go  Dialect = goDialect{}
	Cpp Dialect = cppDialect{}
)

var dialects = map[string]Dialect{
	"go":  Go,
	"cpp": Cpp,
}

// LookupDialect returns the dialect registered under name.
func LookupDialect(name string) (Dialect, error) {
	d, ok := dialects[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (want one of %s)", name, strings.Join(DialectNames(), ", "))
	}
	return d, nil
}

// DialectNames returns the registered dialect names, sorted.
func DialectNames() []string {
	names := make([]string, 0, len(dialects))
	for n := range dialects {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// goDialect emits Go handlers over a *State with exported register fields.
type goDialect struct{}

func (goDialect) Name() string { return "go" }

func (goDialect) Read(op inst.Operand) string {
	if op.IsMemoryIndirect() {
		return "ReadU8(s, s.HL())"
	}
	return "s." + strings.ToUpper(op.Register())
}

func (goDialect) Write(op inst.Operand, value string) string {
	if op.IsMemoryIndirect() {
		return "WriteU8(s, s.HL(), " + value + ")"
	}
	return "s." + strings.ToUpper(op.Register()) + " = " + value
}

// Primitive names follow the operand shape: rlcN, bitBR, addAN.
func (goDialect) Primitive(f inst.Family) string {
	switch {
	case f.Kind.BitIndexed():
		return f.Base() + "BR"
	case f.Kind == inst.KindAccumulator:
		return f.Name + "AN"
	}
	return f.Name + "N"
}

func (goDialect) Call(primitive string, args ...string) string {
	return primitive + "(" + strings.Join(append([]string{"s"}, args...), ", ") + ")"
}

func (goDialect) Halt() string { return "s.Halt = true" }

func (goDialect) Header(pkg string) string {
	return "// Code generated by gbopgen. DO NOT EDIT.\n\npackage " + pkg + "\n"
}

func (goDialect) Func(name, comment, body string) string {
	return fmt.Sprintf("// %s\nfunc %s(s *State) { %s }\n", comment, name, body)
}

func (goDialect) TableOpen(name string) string {
	return "var " + name + " = [256]Instruction{\n"
}

func (goDialect) TableRow(template string, length, cycles, operands int, handler string) string {
	return fmt.Sprintf("\t{%s, %d, %d, %d, %s},\n", strconv.Quote(template), length, cycles, operands, handler)
}

func (goDialect) TableClose() string { return "}\n" }

func (goDialect) Null() string { return "nil" }

func (goDialect) Format(src []byte) ([]byte, error) {
	return format.Source(src)
}

// cppDialect emits the C++ form consumed by the C++ emulator core:
// void name(state_t &s), s.regs.x fields, read_u8/write_u8 accessors and
// an instruction_t table.
type cppDialect struct{}

func (cppDialect) Name() string { return "cpp" }

func (cppDialect) Read(op inst.Operand) string {
	if op.IsMemoryIndirect() {
		return "read_u8(s, s.regs.hl)"
	}
	return "s.regs." + op.Register()
}

func (cppDialect) Write(op inst.Operand, value string) string {
	if op.IsMemoryIndirect() {
		return "write_u8(s, s.regs.hl, " + value + ")"
	}
	return "s.regs." + op.Register() + " = " + value
}

func (cppDialect) Primitive(f inst.Family) string {
	switch {
	case f.Kind.BitIndexed():
		return "_" + f.Base() + "_b_r"
	case f.Kind == inst.KindAccumulator:
		return "_" + f.Name + "_a_n"
	}
	return "_" + f.Name + "_n"
}

func (cppDialect) Call(primitive string, args ...string) string {
	return primitive + "(" + strings.Join(append([]string{"s"}, args...), ", ") + ")"
}

func (cppDialect) Halt() string { return "s.halt = true" }

func (cppDialect) Header(string) string {
	return "#pragma once\n\n// Generated by gbopgen. Do not edit.\n"
}

func (cppDialect) Func(name, comment, body string) string {
	return fmt.Sprintf("// %s\nvoid %s(state_t &s) { %s; }\n", comment, name, body)
}

func (cppDialect) TableOpen(name string) string {
	return "const instruction_t " + name + "[] = {\n"
}

func (cppDialect) TableRow(template string, length, cycles, operands int, handler string) string {
	return fmt.Sprintf("    {%s, %d, %d, %d, %s},\n", strconv.Quote(template), length, cycles, operands, handler)
}

func (cppDialect) TableClose() string { return "};\n" }

func (cppDialect) Null() string { return "NULL" }

func (cppDialect) Format(src []byte) ([]byte, error) { return src, nil }
