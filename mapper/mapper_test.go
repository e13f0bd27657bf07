package mapper

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briarwood/famicom/cartridge"
)

// buildROM assembles a minimal iNES image: one 16 KiB PRG bank and
// chrBlocks 8 KiB CHR banks (0 meaning CHR RAM).
func buildROM(chrBlocks uint8) []byte {
	var b bytes.Buffer
	b.WriteString("NES\x1a")
	b.WriteByte(1)         // 1 PRG bank
	b.WriteByte(chrBlocks) // CHR banks
	b.Write(make([]byte, 10))
	b.Write(make([]byte, 16384))
	if chrBlocks > 0 {
		b.Write(make([]byte, int(chrBlocks)*8192))
	}
	return b.Bytes()
}

func TestChrWriteIsDiscardedWhenCHRIsROM(t *testing.T) {
	cart, err := cartridge.Load(bytes.NewReader(buildROM(1)))
	require.NoError(t, err)
	m := New(cart)

	before := m.ChrRead(0x0000)
	m.ChrWrite(0x0000, before+1)

	assert.Equal(t, before, m.ChrRead(0x0000), "writes to CHR ROM must be discarded")
}

func TestChrWriteMutatesCHRRAM(t *testing.T) {
	cart, err := cartridge.Load(bytes.NewReader(buildROM(0)))
	require.NoError(t, err)
	m := New(cart)

	m.ChrWrite(0x0010, 0x42)
	assert.Equal(t, uint8(0x42), m.ChrRead(0x0010))
}
