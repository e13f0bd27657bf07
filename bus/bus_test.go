package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briarwood/famicom/cartridge"
	"github.com/briarwood/famicom/ppu"
)

// fakeMapper is a tiny mapper.Mapper fake: a flat 32KiB PRG bank (so
// the reset vector can be placed anywhere) and 8KiB of CHR RAM.
type fakeMapper struct {
	prg [0x8000]byte
	chr [0x2000]byte
}

func (m *fakeMapper) PrgRead(addr uint16) uint8        { return m.prg[addr-0x8000] }
func (m *fakeMapper) PrgWrite(addr uint16, v uint8)    {}
func (m *fakeMapper) ChrRead(addr uint16) uint8        { return m.chr[addr] }
func (m *fakeMapper) ChrWrite(addr uint16, v uint8)    { m.chr[addr] = v }
func (m *fakeMapper) Mirroring() cartridge.Mirroring   { return cartridge.MirrorHorizontal }

func newTestBus() (*Bus, *fakeMapper) {
	m := &fakeMapper{}
	// reset vector -> 0x8000
	m.prg[0xFFFC-0x8000] = 0x00
	m.prg[0xFFFD-0x8000] = 0x80
	b := New(m, ppu.DefaultPalette(), nil)
	return b, m
}

func TestResetLoadsPCFromVector(t *testing.T) {
	b, _ := newTestBus()
	b.Reset()
	assert.Equal(t, uint16(0x8000), b.CPU.PC)
}

func TestRAMMirrorsAcrossFourBanks(t *testing.T) {
	b, _ := newTestBus()
	b.Write(0x0000, 0x42)
	for _, mirror := range []uint16{0x0800, 0x1000, 0x1800} {
		assert.Equal(t, uint8(0x42), b.Read(mirror), "mirror at %#04x", mirror)
	}
}

func TestPPURegisterMirroringEveryEightBytes(t *testing.T) {
	b, _ := newTestBus()
	b.Write(0x2000, 0x80) // PPUCTRL, generate-NMI bit
	assert.Equal(t, b.PPU.ReadRegister(0x2002), b.Read(0x2008+2))
}

func TestOAMDMAStallsCPUAndCopiesIntoOAM(t *testing.T) {
	b, m := newTestBus()
	for i := 0; i < 256; i++ {
		m.prg[i] = byte(i) // page 0x80 maps to PRG offset 0
	}
	b.Write(0x4014, 0x80)
	require.Equal(t, 1, b.Stats().DMAStalls)
	assert.Contains(t, []int{513, 514}, b.pendingStall)

	b.Write(0x2003, 0x05) // OAMADDR = 5
	assert.Equal(t, uint8(0x05), b.Read(0x2004), "OAM byte 5 comes from $8005")
}

func TestJoypadWriteStrobeThenRead(t *testing.T) {
	b, _ := newTestBus()
	b.Joypad().SetButtons(0x01)
	b.Write(0x4016, 0x01)
	b.Write(0x4016, 0x00)
	assert.Equal(t, uint8(1), b.Read(0x4016))
}

func TestStepExecutesOneInstructionAndTicksDependentSubsystems(t *testing.T) {
	b, m := newTestBus()
	m.prg[0] = 0xEA // NOP at 0x8000
	b.Reset()
	b.CPU.PC = 0x8000

	pcBefore := b.CPU.PC
	_, ready := b.Step()

	assert.False(t, ready, "a single instruction never completes a full 262-scanline frame")
	assert.Equal(t, pcBefore+1, b.CPU.PC)
}
