package apu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBus is a minimal apu.Bus for tests that never exercise DMC
// sample fetches directly.
type fakeBus struct {
	mem    [0x10000]byte
	stalls int
}

func (b *fakeBus) ReadSample(addr uint16) uint8 { return b.mem[addr] }
func (b *fakeBus) StallCPU(n int)               { b.stalls += n }

func TestWriteChannelEnableClearsLengthCountersAndDMCIRQ(t *testing.T) {
	a := New(&fakeBus{})
	a.pulse1.lengthCounter = 5
	a.dmc.irqFlag = true

	a.writeChannelEnable(0x00)

	assert.False(t, a.pulse1.enabled)
	assert.Equal(t, uint8(0), a.pulse1.lengthCounter)
	assert.False(t, a.dmc.irqFlag)
}

func TestPulseTimerHighLoadsLengthCounterOnlyWhenEnabled(t *testing.T) {
	a := New(&fakeBus{})
	a.WriteRegister(0x4000, 0x00)
	a.WriteRegister(0x4003, 0x08) // length index 1 -> 254

	assert.Equal(t, uint8(0), a.pulse1.lengthCounter, "disabled channel must not load a length")

	a.writeChannelEnable(0x01)
	a.WriteRegister(0x4003, 0x08)
	assert.Equal(t, lengthTable[1], a.pulse1.lengthCounter)
}

func TestReadStatusClearsFrameIRQButNotDMCIRQ(t *testing.T) {
	a := New(&fakeBus{})
	a.frameIRQFlag = true
	a.dmc.irqFlag = true

	v := a.ReadStatus()
	assert.NotZero(t, v&(1<<6))
	assert.False(t, a.frameIRQFlag)
	assert.True(t, a.dmc.irqFlag)
}

func TestFrameCounterMode1WriteFiresQuarterAndHalfImmediately(t *testing.T) {
	a := New(&fakeBus{})
	a.writeChannelEnable(0x01)
	a.WriteRegister(0x4003, 0x08) // pulse1 length loaded

	before := a.pulse1.lengthCounter
	a.writeFrameCounter(0x80) // mode 1, IRQ not inhibited

	assert.Less(t, a.pulse1.lengthCounter, before, "mode-1 write should clock length immediately")
	assert.Equal(t, 0, a.frameCycle)
}

func TestFrameCounterMode0RaisesIRQAtCycle29831AndWrapsToZero(t *testing.T) {
	a := New(&fakeBus{})
	a.frameMode = false
	a.frameCycle = 29830

	a.stepFrameCounter() // -> 29831, sets IRQ
	assert.True(t, a.frameIRQFlag)

	a.frameCycle = 29830
	a.stepFrameCounter() // -> 29831 again, wraps
	assert.Equal(t, 0, a.frameCycle)
}

func TestIRQLineReflectsFrameAndDMCSources(t *testing.T) {
	a := New(&fakeBus{})
	assert.False(t, a.IRQLine())

	a.frameIRQFlag = true
	assert.True(t, a.IRQLine())

	a.irqInhibit = true
	assert.False(t, a.IRQLine(), "inhibited frame IRQ should not assert the line")

	a.irqInhibit = false
	a.frameIRQFlag = false
	a.dmc.irqFlag = true
	assert.True(t, a.IRQLine())
}

func TestTickEmitsSamplesIntoTheRing(t *testing.T) {
	a := New(&fakeBus{})
	require.Equal(t, 0, a.ring.Len())

	a.Tick(200)

	assert.Greater(t, a.ring.Len(), 0)
}

func TestPulseSweepOnesComplementAsymmetry(t *testing.T) {
	p1 := pulse{timerPeriod: 100, sweepShift: 2, sweepNegate: true}
	p2 := p1

	p1.applySweep(true)  // pulse 1: ones'-complement, extra -1
	p2.applySweep(false) // pulse 2: twos'-complement

	assert.Equal(t, p1.timerPeriod+1, p2.timerPeriod)
}
