// Package bus centralizes the CPU-visible address space: RAM mirrors,
// PPU/APU register decode, OAM DMA, and per-instruction tick fan-out
// (PPU at 3x CPU rate, APU at 1x). The bus owns the CPU, PPU, APU,
// mapper, and joypad exclusively, so nothing cyclically back-references
// the CPU; NMI and IRQ flow through narrow flag-setting interfaces
// instead.
package bus

import (
	"github.com/briarwood/famicom/apu"
	"github.com/briarwood/famicom/cpu"
	"github.com/briarwood/famicom/diag"
	"github.com/briarwood/famicom/joypad"
	"github.com/briarwood/famicom/mapper"
	"github.com/briarwood/famicom/ppu"
)

const ramSize = 0x0800

// Presenter is the "pointer-to-callable or small interface with one
// method" a host implements to receive completed frames. A
// window-backed host (cmd/famicom) renders it; a headless host
// (tests, cmd/famidbg without a window) can simply record it.
type Presenter interface {
	PresentFrame(frame []byte)
}

// Stats exposes counters the debugger/HUD displays.
type Stats struct {
	DMAStalls int
}

// Bus wires the CPU, PPU, APU, mapper, and joypad together and
// performs all CPU-visible address decoding.
type Bus struct {
	CPU *cpu.CPU
	PPU *ppu.PPU
	APU *apu.APU

	mapper mapper.Mapper
	pad1   *joypad.Joypad

	ram [ramSize]byte

	log diag.Logger

	totalCycles  uint64
	pendingStall int
	stats        Stats
}

// New constructs a fully wired console bus. pal supplies the PPU's
// color lookup (use ppu.DefaultPalette() when no external .pal file
// was loaded); input may be nil if button state will only ever be
// pushed via Joypad().SetButtons.
func New(m mapper.Mapper, pal *ppu.Palette, input joypad.InputSource) *Bus {
	b := &Bus{mapper: m, log: diag.NopLogger{}}
	b.CPU = cpu.New(b)
	b.PPU = ppu.New(b, pal, ppu.Mirroring(m.Mirroring()))
	b.APU = apu.New(b)
	b.pad1 = joypad.New(input)
	return b
}

// SetLogger routes IgnoredWrite diagnostics from every owned
// subsystem (and the bus itself) to l.
func (b *Bus) SetLogger(l diag.Logger) {
	if l == nil {
		l = diag.NopLogger{}
	}
	b.log = l
	b.CPU.SetLogger(l)
	b.PPU.SetLogger(l)
	b.APU.SetLogger(l)
}

// SetCorruption installs a PPU address-space perturbation hook for
// fault-injection debugging (spec.md §6's "extensible corruption
// parameter").
func (b *Bus) SetCorruption(fn func(addr uint16) uint16) { b.PPU.SetCorruption(fn) }

// Joypad returns the first controller port, for the host to wire an
// InputSource or call SetButtons directly.
func (b *Bus) Joypad() *joypad.Joypad { return b.pad1 }

// Stats returns diagnostic counters for the HUD.
func (b *Bus) Stats() Stats { return b.stats }

// Reset resets the CPU's registers and positions it at the reset
// vector. PPU, APU, RAM and joypad state are left unchanged. It does
// not consume a pending NMI/IRQ latch.
func (b *Bus) Reset() {
	b.CPU.Reset()
}

// Step executes exactly one CPU instruction (servicing any pending
// interrupt first), fans the consumed cycles out to the PPU (3x) and
// APU (1x), and reports a completed frame buffer when the PPU's
// pre-render line finishes. On frame completion the joypad's input
// source is polled, matching spec.md §2's "the bus... invokes the
// host callback... and polls input."
func (b *Bus) Step() (frame []byte, frameReady bool) {
	cycles, _ := b.CPU.Step()
	cycles += b.pendingStall
	b.pendingStall = 0

	b.totalCycles += uint64(cycles)

	frame, frameReady = b.PPU.Tick(cycles * 3)
	b.APU.Tick(cycles)
	b.CPU.SetIRQLine(b.APU.IRQLine())

	if frameReady {
		b.pad1.PollSource()
	}
	return frame, frameReady
}

// Read implements cpu.Bus: the full CPU-visible memory map.
func (b *Bus) Read(addr uint16) uint8 {
	switch {
	case addr <= 0x1FFF:
		return b.ram[addr&0x07FF]
	case addr <= 0x3FFF:
		return b.PPU.ReadRegister(0x2000 + addr&0x0007)
	case addr == 0x4015:
		return b.APU.ReadStatus()
	case addr == 0x4016:
		return b.pad1.Read()
	case addr == 0x4017:
		return 0 // second controller: out of scope, reads as open bus
	case addr <= 0x401F:
		return 0
	case addr <= 0x5FFF:
		return 0 // no mapper registers/expansion audio in the fixed-bank mapper
	case addr <= 0x7FFF:
		return 0 // cartridge save RAM: out of scope
	default:
		return b.mapper.PrgRead(addr)
	}
}

// Write implements cpu.Bus.
func (b *Bus) Write(addr uint16, val uint8) {
	switch {
	case addr <= 0x1FFF:
		b.ram[addr&0x07FF] = val
	case addr <= 0x3FFF:
		b.PPU.WriteRegister(0x2000+addr&0x0007, val)
	case addr == 0x4014:
		b.runOAMDMA(val)
	case addr == 0x4016:
		b.pad1.Write(val)
	case addr <= 0x4013, addr == 0x4015, addr == 0x4017:
		b.APU.WriteRegister(addr, val)
	case addr <= 0x401F:
		b.log.Printf("bus: ignored write to unmapped IO register %#04x", addr)
	case addr <= 0x7FFF:
		b.log.Printf("bus: ignored write to unsupported save-RAM range %#04x", addr)
	default:
		b.log.Printf("bus: ignored write to ROM at %#04x", addr)
		b.mapper.PrgWrite(addr, val)
	}
}

// runOAMDMA copies a full 256-byte page into PPU OAM and stalls the
// CPU 513 cycles (514 if the DMA starts on an odd CPU cycle), per
// spec.md §4.2.
func (b *Bus) runOAMDMA(page uint8) {
	base := uint16(page) << 8
	var buf [256]byte
	for i := range buf {
		buf[i] = b.Read(base + uint16(i))
	}
	b.PPU.WriteOAMDMA(buf)

	stall := 513
	if b.totalCycles%2 == 1 {
		stall = 514
	}
	b.pendingStall += stall
	b.stats.DMAStalls++
}

// ChrRead implements ppu.Bus.
func (b *Bus) ChrRead(addr uint16) uint8 { return b.mapper.ChrRead(addr) }

// ChrWrite implements ppu.Bus.
func (b *Bus) ChrWrite(addr uint16, val uint8) { b.mapper.ChrWrite(addr, val) }

// TriggerNMI implements ppu.Bus.
func (b *Bus) TriggerNMI() { b.CPU.TriggerNMI() }

// ClearNMILine implements ppu.Bus.
func (b *Bus) ClearNMILine() { b.CPU.ClearNMILine() }

// ReadSample implements apu.Bus: DMC sample fetches read through the
// same CPU-visible memory map (cartridge PRG, typically 0xC000-0xFFFF).
func (b *Bus) ReadSample(addr uint16) uint8 { return b.Read(addr) }

// StallCPU implements apu.Bus: DMC sample fetches cost the CPU 4
// cycles, accounted for on the next Step call.
func (b *Bus) StallCPU(cycles int) { b.pendingStall += cycles }
