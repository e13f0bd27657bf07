package nes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briarwood/famicom/cartridge"
	"github.com/briarwood/famicom/ppu"
)

type fakeMapper struct {
	prg [0x8000]byte
	chr [0x2000]byte
}

func (m *fakeMapper) PrgRead(addr uint16) uint8      { return m.prg[addr-0x8000] }
func (m *fakeMapper) PrgWrite(addr uint16, v uint8)  {}
func (m *fakeMapper) ChrRead(addr uint16) uint8      { return m.chr[addr] }
func (m *fakeMapper) ChrWrite(addr uint16, v uint8)  { m.chr[addr] = v }
func (m *fakeMapper) Mirroring() cartridge.Mirroring { return cartridge.MirrorHorizontal }

type recordingPresenter struct{ frames int }

func (p *recordingPresenter) PresentFrame(frame []byte) { p.frames++ }

func newTestConsole() (*Console, *fakeMapper) {
	m := &fakeMapper{}
	m.prg[0xFFFC-0x8000] = 0x00
	m.prg[0xFFFD-0x8000] = 0x80
	c := New(m, ppu.DefaultPalette(), nil)
	c.Reset()
	return c, m
}

func TestStepRetiresOneInstruction(t *testing.T) {
	c, m := newTestConsole()
	m.prg[0] = 0xEA // NOP
	pcBefore := c.Bus.CPU.PC
	c.Step()
	assert.Equal(t, pcBefore+1, c.Bus.CPU.PC)
}

func TestEndOnBRKStopsRunFrameImmediately(t *testing.T) {
	c, m := newTestConsole()
	m.prg[0] = 0x00 // BRK
	c.SetEndOnBRK(true)

	c.RunFrame()

	assert.True(t, c.BrokeOnBRK())
}

func TestHaltedStopsRunFrame(t *testing.T) {
	c, m := newTestConsole()
	m.prg[0] = 0x02 // a HLT/JAM illegal opcode
	assert.Panics(t, func() { c.RunFrame() }, "HLT is expected to raise a fatal decode error")
}

func TestRunExitsWhenContextCancelled(t *testing.T) {
	c, m := newTestConsole()
	for i := range m.prg[:16] {
		m.prg[i] = 0xEA // 16 NOPs; the zeroed PRG after them runs as BRK
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "Run did not honor context cancellation")
	}
}

func TestPresenterReceivesCompletedFrames(t *testing.T) {
	c, m := newTestConsole()
	for i := range m.prg[:16] {
		m.prg[i] = 0xEA
	}
	p := &recordingPresenter{}
	c.SetPresenter(p)

	for i := 0; i < 200000 && p.frames == 0; i++ {
		c.Step()
	}

	assert.Greater(t, p.frames, 0)
}
