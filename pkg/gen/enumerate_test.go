package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oisee/gbopgen/pkg/inst"
)

func TestShiftBitSlots(t *testing.T) {
	stubs := ShiftBit()
	require.Len(t, stubs, 256)

	for i, s := range stubs {
		row, col := i/8, i%8
		assert.Equal(t, inst.CBPrefixed, s.Space)
		assert.Equal(t, uint8(i), s.Slot, "stub %d", i)
		assert.Equal(t, inst.CBFamilies[row], s.Family, "stub %d", i)
		assert.Equal(t, inst.Axis[col], s.Src, "stub %d", i)
		assert.Equal(t, row, s.Row())
		assert.Equal(t, col, s.Col())
	}

	assert.Equal(t, "rlc_b", stubs[0x00].Name)
	assert.Equal(t, "rlc_hlp", stubs[0x06].Name)
	assert.Equal(t, "swap_a", stubs[0x37].Name)
	assert.Equal(t, "bit_7_hlp", stubs[0x7E].Name)
	assert.Equal(t, "set_0_b", stubs[0xC0].Name)
	assert.Equal(t, "res_7_a", stubs[0xBF].Name)
}

func TestALUSlots(t *testing.T) {
	stubs := ALU()
	require.Len(t, stubs, 64)

	for i, s := range stubs {
		assert.Equal(t, inst.Unprefixed, s.Space)
		assert.Equal(t, uint8(0x80+i), s.Slot, "stub %d", i)
		assert.Equal(t, inst.ALUFamilies[i/8], s.Family)
		assert.Equal(t, inst.Axis[i%8], s.Src)
		assert.Equal(t, inst.A, s.Dst)
		assert.Equal(t, EffectAccumulate, s.Effect)
	}
	assert.Equal(t, "add_a_hlp", stubs[6].Name)
	assert.Equal(t, "cp_a_a", stubs[63].Name)
}

func TestLoadSlots(t *testing.T) {
	stubs := Load()
	require.Len(t, stubs, 64)

	for i, s := range stubs {
		assert.Equal(t, uint8(0x40+i), s.Slot, "stub %d", i)
		assert.Equal(t, inst.Axis[i/8], s.Dst)
		assert.Equal(t, inst.Axis[i%8], s.Src)
	}
	assert.Equal(t, "ld_h_hlp", stubs[0x66-0x40].Name)
	assert.Equal(t, "ld_hlp_a", stubs[0x77-0x40].Name)
}

func TestHaltCell(t *testing.T) {
	s, ok := AtSlot(All(), inst.Unprefixed, 0x76)
	require.True(t, ok)
	assert.Equal(t, "halt", s.Name)
	assert.Equal(t, EffectHalt, s.Effect)
	assert.False(t, s.WritesBack())

	// No other load cell halts, and the halt cell is never a copy.
	for _, l := range Load() {
		if l.Slot == 0x76 {
			continue
		}
		assert.NotEqual(t, EffectHalt, l.Effect, "slot 0x%02X", l.Slot)
	}

	for _, d := range []string{"go", "cpp"} {
		dl, err := LookupDialect(d)
		require.NoError(t, err)
		body := Body(dl, s)
		assert.Equal(t, dl.Halt(), body)
		assert.NotContains(t, body, "U8")
		assert.NotContains(t, body, "u8")
	}
}

func TestLoadEffects(t *testing.T) {
	want := map[uint8]Effect{
		0x40: EffectCopy,  // LD B,B
		0x46: EffectLoad,  // LD B,(HL)
		0x70: EffectStore, // LD (HL),B
		0x77: EffectStore, // LD (HL),A
		0x7E: EffectLoad,  // LD A,(HL)
		0x7F: EffectCopy,  // LD A,A
	}
	for _, s := range Load() {
		if e, ok := want[s.Slot]; ok {
			assert.Equal(t, e, s.Effect, "slot 0x%02X", s.Slot)
		}
	}
}

func TestBitFamiliesWriteBack(t *testing.T) {
	for _, s := range ShiftBit() {
		switch s.Family.Kind {
		case inst.KindBitTest:
			assert.Equal(t, EffectDiscard, s.Effect, s.Name)
			assert.False(t, s.WritesBack(), s.Name)
		case inst.KindBitSet, inst.KindBitReset, inst.KindUnary:
			assert.Equal(t, EffectWriteBack, s.Effect, s.Name)
			assert.True(t, s.WritesBack(), s.Name)
		default:
			t.Errorf("unexpected kind %s in CB space", s.Family.Kind)
		}
	}
}

func TestAllUnique(t *testing.T) {
	stubs := All()
	require.Len(t, stubs, 384)

	type key struct {
		space inst.Space
		slot  uint8
	}
	slots := make(map[key]bool)
	idx := NewIndex(stubs)
	for _, s := range stubs {
		k := key{s.Space, s.Slot}
		assert.False(t, slots[k], "duplicate slot %s", s.Opcode())
		slots[k] = true
		assert.Len(t, idx.Lookup(s.Space, s.Name), 1, "name %s", s.Name)

		b, ok := inst.BlockOf(s.Space, s.Slot)
		require.True(t, ok, s.String())
		assert.Equal(t, inst.Slot(b.Base, s.Row(), s.Col()), s.Slot)
	}
}

func TestNameFromMnemonic(t *testing.T) {
	for _, s := range All() {
		assert.Equal(t, inst.HandlerName(s.Mnemonic), s.Name)
	}
}

func TestIdempotent(t *testing.T) {
	a, b := All(), All()
	assert.Equal(t, a, b)
}
