// Package nes is the top-level console: it owns the bus (and
// everything the bus owns) and drives the emulation loop, handing
// completed frames to a host-supplied Presenter and reading input
// through the bus's joypad.
package nes

import (
	"context"

	"github.com/briarwood/famicom/bus"
	"github.com/briarwood/famicom/joypad"
	"github.com/briarwood/famicom/mapper"
	"github.com/briarwood/famicom/ppu"
)

// Console is the whole machine: CPU, PPU, APU, mapper, and joypad,
// wired together by a Bus, plus the outer run loop.
type Console struct {
	Bus *bus.Bus

	presenter bus.Presenter
	endOnBRK  bool
}

// New constructs a Console over the given mapper. pal supplies the
// PPU's palette (use ppu.DefaultPalette() for the built-in NTSC
// table); input may be nil.
func New(m mapper.Mapper, pal *ppu.Palette, input joypad.InputSource) *Console {
	return &Console{Bus: bus.New(m, pal, input)}
}

// SetPresenter installs the frame sink. A nil presenter simply drops
// completed frames (useful for tests that only care about CPU/PPU
// state, not pixels).
func (c *Console) SetPresenter(p bus.Presenter) { c.presenter = p }

// SetEndOnBRK makes Step/RunFrame/Run stop as soon as a software BRK
// retires, for the -end-on-brk CLI flag and for test ROMs that signal
// completion with BRK.
func (c *Console) SetEndOnBRK(v bool) { c.endOnBRK = v }

// Reset resets the CPU to its power-on register state and reloads PC
// from the reset vector; PPU, APU, RAM and joypad state are left
// unchanged.
func (c *Console) Reset() { c.Bus.Reset() }

// Halted reports whether the CPU has hit a fatal HLT/JAM opcode.
func (c *Console) Halted() bool { return c.Bus.CPU.Halted() }

// BrokeOnBRK reports whether the most recently executed instruction
// was a software BRK; RunFrame and Run stop on it only when
// SetEndOnBRK(true) was called.
func (c *Console) BrokeOnBRK() bool { return c.Bus.CPU.LastInstructionWasBRK() }

// Step executes exactly one CPU instruction and its downstream
// PPU/APU ticks, presenting a frame through the Presenter if one
// completed.
func (c *Console) Step() {
	frame, ready := c.Bus.Step()
	if ready && c.presenter != nil {
		c.presenter.PresentFrame(frame)
	}
}

// RunFrame steps until a frame completes (or the CPU halts, or
// end-on-BRK is armed and a BRK retires), whichever comes first.
func (c *Console) RunFrame() {
	for {
		frame, ready := c.Bus.Step()
		if c.Bus.CPU.Halted() {
			return
		}
		if c.endOnBRK && c.Bus.CPU.LastInstructionWasBRK() {
			return
		}
		if ready {
			if c.presenter != nil {
				c.presenter.PresentFrame(frame)
			}
			return
		}
	}
}

// Run drives the console cooperatively until ctx is cancelled, the
// CPU halts, or (with end-on-BRK armed) a BRK retires. Grounded on
// console/bus.go's ctx-driven Run loop.
func (c *Console) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			c.Step()
			if c.Bus.CPU.Halted() {
				return
			}
			if c.endOnBRK && c.Bus.CPU.LastInstructionWasBRK() {
				return
			}
		}
	}
}
