package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flatBus is a 64KiB flat address space used to drive the CPU in
// isolation from the bus package's address decoding, mirroring, and
// side effects.
type flatBus struct {
	mem [65536]uint8
}

func (b *flatBus) Read(addr uint16) uint8       { return b.mem[addr] }
func (b *flatBus) Write(addr uint16, val uint8) { b.mem[addr] = val }

func (b *flatBus) load(addr uint16, bytes ...uint8) {
	for i, v := range bytes {
		b.mem[int(addr)+i] = v
	}
}

func newTestCPU(resetVector uint16) (*CPU, *flatBus) {
	bus := &flatBus{}
	bus.load(vectorReset, uint8(resetVector), uint8(resetVector>>8))
	c := New(bus)
	c.Reset()
	return c, bus
}

func TestResetLoadsVectorAndPowerOnState(t *testing.T) {
	c, _ := newTestCPU(0x8000)
	require.Equal(t, uint16(0x8000), c.PC)
	require.Equal(t, uint8(0xFD), c.SP)
	require.True(t, c.Status&FlagInterruptDisable != 0)
}

func TestLDAImmediateThenBRK(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0xA9, 0x42, 0x00) // LDA #$42 ; BRK
	bus.load(vectorIRQ, 0x00, 0x90)

	cycles, opByte := c.Step()
	assert.Equal(t, uint8(0xA9), opByte)
	assert.Equal(t, 2, cycles)
	assert.Equal(t, uint8(0x42), c.A)
	assert.False(t, c.Status&FlagZero != 0)
	assert.False(t, c.Status&FlagNegative != 0)

	cycles, opByte = c.Step()
	assert.Equal(t, uint8(0x00), opByte)
	assert.Equal(t, 7, cycles)
	assert.Equal(t, uint16(0x9000), c.PC)
	pushedStatus := bus.Read(c.stackAddr() + 1)
	assert.True(t, pushedStatus&FlagBreak != 0, "software BRK must push Break set")
}

func TestIndirectJMPPageWrapBug(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0x6C, 0xFF, 0x02) // JMP ($02FF)
	bus.load(0x02FF, 0x00)
	bus.load(0x0200, 0x80) // high byte incorrectly fetched from $0200, not $0300
	bus.load(0x0300, 0xFF) // if the bug were absent, PC would end up $FF00

	c.Step()
	assert.Equal(t, uint16(0x8000), c.PC, "page-wrap bug must read high byte from $xx00")
}

func TestAbsoluteXPageCrossAddsCycle(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0xBD, 0xFF, 0x02) // LDA $02FF,X
	bus.load(0x0300, 0x55)             // $02FF + 1 = $0300: crosses a page
	c.X = 1

	cycles, _ := c.Step()
	assert.Equal(t, 5, cycles, "page-crossing absolute,X read costs one extra cycle")
	assert.Equal(t, uint8(0x55), c.A)
}

func TestAbsoluteXNoPageCrossBaseCycles(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0xBD, 0x00, 0x02) // LDA $0200,X
	bus.load(0x0201, 0x66)
	c.X = 1

	cycles, _ := c.Step()
	assert.Equal(t, 4, cycles)
	assert.Equal(t, uint8(0x66), c.A)
}

func TestSTAAbsoluteXPageCrossPaysNoExtraCycle(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0x9D, 0xFF, 0x02) // STA $02FF,X
	c.X = 1                            // $02FF + 1 = $0300: crosses a page
	c.A = 0x77

	cycles, _ := c.Step()
	assert.Equal(t, 5, cycles, "stores never pay a page-cross penalty")
	assert.Equal(t, uint8(0x77), bus.Read(0x0300))
}

func TestPHPPushesBreakAndBreak2ThenPLPRestoresCallerFlags(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0x08, 0x28) // PHP ; PLP
	c.Status = FlagCarry | FlagZero

	c.Step() // PHP
	pushed := bus.Read(c.stackAddr() + 1)
	assert.True(t, pushed&FlagBreak != 0)
	assert.True(t, pushed&FlagBreak2 != 0)

	c.Status = 0
	c.Step() // PLP
	assert.True(t, c.Status&FlagCarry != 0)
	assert.True(t, c.Status&FlagZero != 0)
	assert.True(t, c.Status&FlagBreak2 != 0, "Break2 is always reported set")
}

func TestADCSignedOverflowFlag(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0x69, 0x50) // ADC #$50
	c.A = 0x50                   // 80 + 80 = 160, overflows into negative range

	c.Step()
	assert.Equal(t, uint8(0xA0), c.A)
	assert.True(t, c.Status&FlagOverflow != 0)
	assert.True(t, c.Status&FlagNegative != 0)
	assert.False(t, c.Status&FlagCarry != 0)
}

func TestSBCNoBorrowKeepsCarryAndSetsOverflow(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0xE9, 0x01) // SBC #$01
	c.A = 0x80
	c.Status |= FlagCarry // no borrow going in

	c.Step()
	assert.Equal(t, uint8(0x7F), c.A)
	assert.True(t, c.Status&FlagOverflow != 0, "0x80 - 1 overflows signed range")
	assert.True(t, c.Status&FlagCarry != 0, "no borrow was needed")
}

func TestBranchTakenSamePageCostsOneExtraCycle(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0xF0, 0x02) // BEQ +2
	c.Status |= FlagZero

	cycles, _ := c.Step()
	assert.Equal(t, 3, cycles)
	assert.Equal(t, uint16(0x8004), c.PC)
}

func TestBranchNotTakenCostsBaseCyclesOnly(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0xF0, 0x02) // BEQ +2

	cycles, _ := c.Step()
	assert.Equal(t, 2, cycles)
	assert.Equal(t, uint16(0x8002), c.PC)
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0x20, 0x00, 0x90) // JSR $9000
	bus.load(0x9000, 0x60)             // RTS

	c.Step() // JSR
	assert.Equal(t, uint16(0x9000), c.PC)

	c.Step() // RTS
	assert.Equal(t, uint16(0x8003), c.PC)
}

func TestNMIIsEdgeLatchedNotLevel(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0xEA, 0xEA, 0xEA) // NOP NOP NOP
	bus.load(vectorNMI, 0x00, 0x91)

	c.TriggerNMI()
	cycles, opByte := c.Step()
	assert.Equal(t, uint8(0x00), opByte, "an interrupt step reports opcode 0 as a sentinel")
	assert.Equal(t, 7, cycles)
	assert.Equal(t, uint16(0x9100), c.PC)

	// Re-triggering without an intervening ClearNMILine must not
	// fire again: the line is still high.
	c.PC = 0x8000
	c.TriggerNMI()
	cycles, _ = c.Step()
	assert.Equal(t, 2, cycles, "NMI does not refire while the line stays asserted")
}

func TestIRQRespectsInterruptDisable(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0xEA) // NOP
	c.Status |= FlagInterruptDisable
	c.SetIRQLine(true)

	cycles, _ := c.Step()
	assert.Equal(t, 2, cycles, "IRQ must be masked while I is set")
}

func TestLAXLoadsBothAAndX(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0xA7, 0x10) // LAX $10
	bus.load(0x0010, 0x77)

	c.Step()
	assert.Equal(t, uint8(0x77), c.A)
	assert.Equal(t, uint8(0x77), c.X)
}

func TestHLTHaltsAndFutureStepsAreNoOps(t *testing.T) {
	c, bus := newTestCPU(0x8000)
	bus.load(0x8000, 0x02) // HLT

	assert.Panics(t, func() { c.Step() })
	assert.True(t, c.Halted())

	cycles, opByte := c.Step()
	assert.Equal(t, 0, cycles)
	assert.Equal(t, uint8(0), opByte)
}
