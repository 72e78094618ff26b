package check

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oisee/gbopgen/pkg/gen"
	"github.com/oisee/gbopgen/pkg/inst"
	"github.com/oisee/gbopgen/pkg/opdata"
	"github.com/oisee/gbopgen/pkg/table"
)

func defaultTables(t *testing.T) (*table.Table, *table.Table) {
	t.Helper()
	set, err := opdata.Default()
	require.NoError(t, err)
	unprefixed, cb, err := table.BuildAll(set)
	require.NoError(t, err)
	return unprefixed, cb
}

// TestDefaultConsistent is the main cross-reference property: the embedded
// descriptor tables and the generated stubs agree on every covered slot.
func TestDefaultConsistent(t *testing.T) {
	unprefixed, cb := defaultTables(t)
	r := Verify(gen.All(), unprefixed, cb)

	for _, f := range r.Findings {
		t.Error(f.String())
	}
	assert.Equal(t, 256+128, r.Matched)
	assert.Equal(t, 11, r.Null)
	assert.Equal(t, 256-128-11, r.External)
	assert.True(t, r.OK())
}

// TestEveryCBRowHasOneStub checks each non-null CB row names exactly one stub.
func TestEveryCBRowHasOneStub(t *testing.T) {
	_, cb := defaultTables(t)
	idx := gen.NewIndex(gen.All())
	for _, row := range cb.Rows {
		require.False(t, row.IsNull())
		matches := idx.Lookup(inst.CBPrefixed, row.Handler)
		require.Len(t, matches, 1, row.Handler)
		assert.Equal(t, row.Opcode, matches[0].Slot)
	}
}

func TestSwappedFamiliesDetected(t *testing.T) {
	_, cb := defaultTables(t)

	// Emulate set/res enumerated in the wrong order: names still exist but
	// sit at the wrong slots.
	stubs := gen.ShiftBit()
	for i := range stubs {
		switch {
		case stubs[i].Slot >= 0x80 && stubs[i].Slot < 0xC0:
			stubs[i].Slot += 0x40
		case stubs[i].Slot >= 0xC0:
			stubs[i].Slot -= 0x40
		}
	}
	r := Verify(stubs, cb)
	assert.False(t, r.OK())
	assert.Len(t, r.Findings, 128)
	for _, f := range r.Findings {
		assert.Equal(t, SlotMismatch, f.Kind)
	}
}

func TestMissingAndOrphan(t *testing.T) {
	_, cb := defaultTables(t)
	cb.Rows[0x10].Handler = "rl_bb"
	cb.Rows[0x11].Handler = ""

	r := Verify(gen.ShiftBit(), cb)
	require.Len(t, r.Findings, 2)
	assert.Equal(t, MissingStub, r.Findings[0].Kind)
	assert.Equal(t, uint8(0x10), r.Findings[0].Slot)
	assert.Equal(t, OrphanStub, r.Findings[1].Kind)
	assert.Equal(t, "rl_c", r.Findings[1].Handler)
}

func TestExternalRowNamingStub(t *testing.T) {
	unprefixed, _ := defaultTables(t)
	unprefixed.Rows[0x00].Handler = "add_a_b"

	r := Verify(gen.All(), unprefixed)
	require.Len(t, r.Findings, 1)
	assert.Equal(t, SlotMismatch, r.Findings[0].Kind)
	assert.Contains(t, r.Findings[0].Detail, "0x80")
}

func TestDuplicateSlot(t *testing.T) {
	stubs := gen.ALU()
	dup := stubs[0]
	dup.Name = "add_a_b2"
	stubs = append(stubs, dup)

	r := Verify(stubs)
	require.Len(t, r.Findings, 1)
	assert.Equal(t, DuplicateSlot, r.Findings[0].Kind)
}

func TestReportLog(t *testing.T) {
	_, cb := defaultTables(t)
	cb.Rows[0x10].Handler = "rl_bb"
	r := Verify(gen.ShiftBit(), cb)

	var buf bytes.Buffer
	r.Log(slog.New(slog.NewTextHandler(&buf, nil)))
	out := buf.String()
	assert.Contains(t, out, "kind=missing-stub")
	assert.Contains(t, out, "opcode=0xcb10")
	assert.Contains(t, out, "findings=1")
}
