package cpu

import (
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

// Trace renders a nestest-style disassembly line for the instruction
// about to execute: address, opcode bytes, mnemonic, and register
// state. It reads through the bus like a real fetch would, so tracing
// a ROM with memory-mapped side effects (PPU/APU registers) can itself
// perturb state; callers that need side-effect-free tracing should
// snapshot the bus first.
func (c *CPU) Trace() string {
	addr := c.PC
	opcodeByte := c.read(addr)
	op := opcodeTable[opcodeByte]

	raw := fmt.Sprintf("%02X", opcodeByte)
	for i := uint8(1); i < op.bytes; i++ {
		raw += fmt.Sprintf(" %02X", c.read(addr+uint16(i)))
	}

	name := op.name
	if name == "" {
		name = "???"
	}

	return fmt.Sprintf("%04X  %-9s %-4s  %s  CYC:%d", addr, raw, name, c.String(), c.cycles)
}

// DumpState returns a deeply-formatted, multi-line dump of every
// exported register via go-spew, for debugger sessions where the
// compact String()/Trace() line isn't enough detail.
func (c *CPU) DumpState() string {
	cfg := spew.ConfigState{Indent: "  ", DisableMethods: true}
	return cfg.Sdump(struct {
		A, X, Y, SP uint8
		PC          uint16
		Status      string
		Halted      bool
	}{c.A, c.X, c.Y, c.SP, c.PC, statusString(c.Status), c.halted})
}
