// Package apu implements the five-channel Audio Processing Unit: two
// pulse channels, a triangle channel, noise, delta-modulation sample
// playback, the shared frame sequencer that drives envelopes/length
// counters/sweep, and the non-linear mixer feeding a mutex-guarded
// sample ring the host audio thread drains.
package apu

import "github.com/briarwood/famicom/diag"

// Bus is the APU's view of the system needed for DMC sample fetches
// and CPU stalling; the bus package implements it by delegating to the
// CPU/mapper.
type Bus interface {
	ReadSample(addr uint16) uint8
	StallCPU(cycles int)
}

// cpuFrequencyHz is the NTSC 2A03 clock used to derive the
// cycles-per-audio-sample divisor.
const cpuFrequencyHz = 1789773.0
const sampleRateHz = 44100.0

// APU owns every channel, the frame sequencer, and the output mixer.
type APU struct {
	bus Bus
	log diag.Logger

	pulse1   pulse
	pulse2   pulse
	triangle triangle
	noise    noise
	dmc      dmc

	frameMode     bool // false = 4-step, true = 5-step
	frameStep     int
	frameCycle    int
	irqInhibit    bool
	frameIRQFlag  bool
	cycleParityOdd bool

	cycles int

	sampleAccum float64
	filters     filterChain
	ring        *SampleRing

	levels ChannelLevels
}

// New constructs an APU wired to bus, with a default 4096-sample ring.
func New(bus Bus) *APU {
	a := &APU{
		bus:        bus,
		log:        diag.NopLogger{},
		irqInhibit: false,
		ring:       NewSampleRing(4096),
	}
	a.noise.shiftRegister = 1
	a.filters = newFilterChain(sampleRateHz)
	return a
}

// SetLogger routes IgnoredWrite diagnostics to l.
func (a *APU) SetLogger(l diag.Logger) {
	if l == nil {
		l = diag.NopLogger{}
	}
	a.log = l
}

// SampleRing exposes the ring the host audio callback drains.
func (a *APU) SampleRing() *SampleRing { return a.ring }

// IRQLine reports whether the frame counter or DMC want CPU service;
// the bus polls this once per tick and forwards it to cpu.SetIRQLine.
func (a *APU) IRQLine() bool {
	return (a.frameIRQFlag && !a.irqInhibit) || a.dmc.irqFlag
}

// WriteRegister handles a CPU write to 0x4000-0x4013, 0x4015, 0x4017.
func (a *APU) WriteRegister(addr uint16, v uint8) {
	switch addr {
	case 0x4000:
		a.pulse1.writeControl(v)
	case 0x4001:
		a.pulse1.writeSweep(v)
	case 0x4002:
		a.pulse1.writeTimerLow(v)
	case 0x4003:
		a.pulse1.writeTimerHigh(v)
	case 0x4004:
		a.pulse2.writeControl(v)
	case 0x4005:
		a.pulse2.writeSweep(v)
	case 0x4006:
		a.pulse2.writeTimerLow(v)
	case 0x4007:
		a.pulse2.writeTimerHigh(v)
	case 0x4008:
		a.triangle.writeControl(v)
	case 0x400A:
		a.triangle.writeTimerLow(v)
	case 0x400B:
		a.triangle.writeTimerHigh(v)
	case 0x400C:
		a.noise.writeControl(v)
	case 0x400E:
		a.noise.writePeriod(v)
	case 0x400F:
		a.noise.writeLength(v)
	case 0x4010:
		a.dmc.writeControl(v)
	case 0x4011:
		a.dmc.writeDirectLoad(v)
	case 0x4012:
		a.dmc.writeSampleAddress(v)
	case 0x4013:
		a.dmc.writeSampleLength(v)
	case 0x4015:
		a.writeChannelEnable(v)
	case 0x4017:
		a.writeFrameCounter(v)
	default:
		a.log.Printf("apu: write to unmapped register %#04x", addr)
	}
}

func (a *APU) writeChannelEnable(v uint8) {
	a.pulse1.enabled = v&0x01 != 0
	a.pulse2.enabled = v&0x02 != 0
	a.triangle.enabled = v&0x04 != 0
	a.noise.enabled = v&0x08 != 0
	a.dmc.enabled = v&0x10 != 0

	if !a.pulse1.enabled {
		a.pulse1.lengthCounter = 0
	}
	if !a.pulse2.enabled {
		a.pulse2.lengthCounter = 0
	}
	if !a.triangle.enabled {
		a.triangle.lengthCounter = 0
	}
	if !a.noise.enabled {
		a.noise.lengthCounter = 0
	}
	a.dmc.irqFlag = false
	if !a.dmc.enabled {
		a.dmc.bytesRemaining = 0
	} else if a.dmc.bytesRemaining == 0 {
		a.dmc.restart()
	}
}

// writeFrameCounter loads the frame-sequencer mode. Per the resolved
// Open Question on mode-1 writes: setting bit 7 (5-step mode) always
// fires the quarter+half events immediately, and setting bit 6
// (IRQ inhibit) clears both the latched and published IRQ flags
// right away, regardless of where in the sequence this write lands.
func (a *APU) writeFrameCounter(v uint8) {
	a.frameMode = v&0x80 != 0
	a.irqInhibit = v&0x40 != 0
	a.frameCycle = 0
	if a.irqInhibit {
		a.frameIRQFlag = false
	}
	if a.frameMode {
		a.clockQuarter()
		a.clockHalf()
	}
}

// ReadStatus services a CPU read of 0x4015; reading clears the frame
// IRQ flag (but not the DMC IRQ flag).
func (a *APU) ReadStatus() uint8 {
	var v uint8
	if a.pulse1.lengthCounter > 0 {
		v |= 1 << 0
	}
	if a.pulse2.lengthCounter > 0 {
		v |= 1 << 1
	}
	if a.triangle.lengthCounter > 0 {
		v |= 1 << 2
	}
	if a.noise.lengthCounter > 0 {
		v |= 1 << 3
	}
	if a.dmc.bytesRemaining > 0 {
		v |= 1 << 4
	}
	if a.frameIRQFlag {
		v |= 1 << 6
	}
	if a.dmc.irqFlag {
		v |= 1 << 7
	}
	a.frameIRQFlag = false
	return v
}

// Tick advances the APU by n CPU cycles, one cycle at a time (the bus
// calls this once per instruction with that instruction's cycle count).
func (a *APU) Tick(n int) {
	for i := 0; i < n; i++ {
		a.tickOne()
	}
}

func (a *APU) tickOne() {
	a.cycles++
	a.cycleParityOdd = a.cycles%2 == 1

	a.stepFrameCounter()

	a.triangle.tickTimer()
	if a.cycleParityOdd {
		a.pulse1.tickTimer()
		a.pulse2.tickTimer()
		a.noise.tickTimer()
		a.dmc.tickTimer(a.bus)
	}

	a.sampleAccum += sampleRateHz / cpuFrequencyHz
	if a.sampleAccum >= 1.0 {
		a.sampleAccum -= 1.0
		a.emitSample()
	}
}

// stepFrameCounter implements the cycle numbers spec.md §4.4 assigns
// to mode 0 (4-step) and mode 1 (5-step).
func (a *APU) stepFrameCounter() {
	a.frameCycle++
	if a.frameMode {
		switch a.frameCycle {
		case 7459:
			a.clockQuarter()
		case 14915:
			a.clockQuarter()
			a.clockHalf()
		case 22373:
			a.clockQuarter()
		case 37283:
			a.clockQuarter()
			a.clockHalf()
			a.frameCycle = 0
		}
		return
	}
	switch a.frameCycle {
	case 7459:
		a.clockQuarter()
	case 14915:
		a.clockQuarter()
		a.clockHalf()
	case 22373:
		a.clockQuarter()
	case 29830:
		if !a.irqInhibit {
			a.frameIRQFlag = true
		}
	case 29831:
		if !a.irqInhibit {
			a.frameIRQFlag = true
		}
		a.frameCycle = 0
	}
}

func (a *APU) clockQuarter() {
	a.pulse1.clockEnvelope()
	a.pulse2.clockEnvelope()
	a.noise.clockEnvelope()
	a.triangle.clockLinear()
}

func (a *APU) clockHalf() {
	a.pulse1.clockLength()
	a.pulse1.clockSweep(true)
	a.pulse2.clockLength()
	a.pulse2.clockSweep(false)
	a.triangle.clockLength()
	a.noise.clockLength()
}

func (a *APU) emitSample() {
	p0 := a.pulse1.output()
	p1 := a.pulse2.output()
	t := a.triangle.output()
	n := a.noise.output()
	d := a.dmc.output()

	raw := mix(p0, p1, t, n, d)
	filtered := a.filters.apply(raw)
	a.ring.Push(filtered)

	a.levels = ChannelLevels{Pulse1: p0, Pulse2: p1, Triangle: t, Noise: n, DMC: d}
}

// ChannelLevels is a diagnostic-only snapshot of each channel's most
// recent raw output level, used by the debugger's VU display; never
// consulted by mixing logic itself.
type ChannelLevels struct {
	Pulse1, Pulse2 uint8
	Triangle       uint8
	Noise          uint8
	DMC            uint8
}

// Channels returns the most recent per-channel output snapshot.
func (a *APU) Channels() ChannelLevels { return a.levels }
