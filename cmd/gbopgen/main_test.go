package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestStubsCommand(t *testing.T) {
	out, _, err := run(t, "stubs")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "// Code generated by gbopgen. DO NOT EDIT."))
	assert.Equal(t, 384, strings.Count(out, "\nfunc "))

	out, _, err = run(t, "stubs", "--dialect", "cpp")
	require.NoError(t, err)
	assert.Contains(t, out, "void halt(state_t &s) { s.halt = true; }")
}

func TestTableCommand(t *testing.T) {
	out, _, err := run(t, "table", "--space", "cb")
	require.NoError(t, err)
	assert.Contains(t, out, "var cbInstructions = [256]Instruction{")

	out, _, err = run(t, "table", "--space", "unprefixed", "--dialect", "cpp")
	require.NoError(t, err)
	assert.Contains(t, out, "const instruction_t instructions[] = {")

	out, _, err = run(t, "table", "--space", "unprefixed", "--listing")
	require.NoError(t, err)
	assert.Equal(t, 256, strings.Count(out, "\n"))
	assert.Contains(t, out, "halt")

	_, _, err = run(t, "table", "--json", "--listing")
	assert.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	out, logs, err := run(t, "check")
	require.NoError(t, err)
	assert.Equal(t, "ok: 384 bound, 117 external, 11 null\n", out)
	assert.Contains(t, logs, "findings=0")

	_, _, err = run(t, "check", "--log-level", "warn", "--ops", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestCheckCommandFindings(t *testing.T) {
	raw, err := os.ReadFile("../../pkg/opdata/ops.json")
	require.NoError(t, err)
	// RLC B now normalizes to a name no stub carries.
	bad := bytes.Replace(raw, []byte(`"RLC B"`), []byte(`"RLC BB"`), 1)
	path := filepath.Join(t.TempDir(), "ops.json")
	require.NoError(t, os.WriteFile(path, bad, 0o644))

	_, logs, err := run(t, "check", "--ops", path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errFindings))
	assert.Contains(t, logs, "kind=missing-stub")
}

func TestTreeAndDump(t *testing.T) {
	out, _, err := run(t, "tree")
	require.NoError(t, err)
	assert.Contains(t, out, "rotate/shift/bit")

	out, _, err = run(t, "dump", "--space", "cb", "--slot", "0x46")
	require.NoError(t, err)
	assert.Contains(t, out, `Name: (string) (len=9) "bit_0_hlp"`)
	assert.Contains(t, out, `Cycles: (int) 12`)

	_, _, err = run(t, "dump", "--slot", "0x100")
	assert.Error(t, err)
}

func TestDiffCommand(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.json")
	b := filepath.Join(dir, "b.json")
	_, _, err := run(t, "table", "--space", "cb", "--json", "-o", a)
	require.NoError(t, err)
	_, _, err = run(t, "table", "--space", "unprefixed", "--json", "-o", b)
	require.NoError(t, err)

	out, _, err := run(t, "diff", a, a)
	require.NoError(t, err)
	assert.Empty(t, out)

	out, _, err = run(t, "diff", a, b)
	require.NoError(t, err)
	assert.Contains(t, out, "unprefixed")
}
