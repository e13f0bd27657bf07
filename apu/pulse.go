package apu

// dutySequences are the four 8-step pulse duty waveforms, MSB first.
var dutySequences = [4][8]uint8{
	{0, 1, 0, 0, 0, 0, 0, 0}, // 12.5%
	{0, 1, 1, 0, 0, 0, 0, 0}, // 25%
	{0, 1, 1, 1, 1, 0, 0, 0}, // 50%
	{1, 0, 0, 1, 1, 1, 1, 1}, // 75% (25% inverted)
}

var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

type pulse struct {
	enabled bool

	dutyCycle    uint8
	dutyIndex    uint8
	lengthHalt   bool // also the envelope-loop flag
	constVolume  bool
	volume       uint8

	sweepEnabled bool
	sweepPeriod  uint8
	sweepNegate  bool
	sweepShift   uint8
	sweepReload  bool
	sweepCounter uint8

	timerPeriod uint16
	timerValue  uint16

	lengthCounter uint8

	envStart   bool
	envDivider uint8
	envDecay   uint8
}

func (p *pulse) writeControl(v uint8) {
	p.dutyCycle = v >> 6
	p.lengthHalt = v&0x20 != 0
	p.constVolume = v&0x10 != 0
	p.volume = v & 0x0F
}

func (p *pulse) writeSweep(v uint8) {
	p.sweepEnabled = v&0x80 != 0
	p.sweepPeriod = (v >> 4) & 0x07
	p.sweepNegate = v&0x08 != 0
	p.sweepShift = v & 0x07
	p.sweepReload = true
}

func (p *pulse) writeTimerLow(v uint8) {
	p.timerPeriod = p.timerPeriod&0xFF00 | uint16(v)
}

func (p *pulse) writeTimerHigh(v uint8) {
	p.timerPeriod = p.timerPeriod&0x00FF | uint16(v&0x07)<<8
	p.dutyIndex = 0
	p.envStart = true
	if p.enabled {
		p.lengthCounter = lengthTable[v>>3]
	}
}

// tickTimer runs the duty sequencer; called on odd CPU cycles, i.e.
// every other CPU clock (the pulse timer itself runs at half rate).
func (p *pulse) tickTimer() {
	if p.timerValue == 0 {
		p.timerValue = p.timerPeriod
		p.dutyIndex = (p.dutyIndex + 1) % 8
	} else {
		p.timerValue--
	}
}

func (p *pulse) clockEnvelope() {
	if p.envStart {
		p.envStart = false
		p.envDecay = 15
		p.envDivider = p.volume
		return
	}
	if p.envDivider == 0 {
		p.envDivider = p.volume
		if p.envDecay > 0 {
			p.envDecay--
		} else if p.lengthHalt {
			p.envDecay = 15
		}
	} else {
		p.envDivider--
	}
}

func (p *pulse) clockLength() {
	if !p.lengthHalt && p.lengthCounter > 0 {
		p.lengthCounter--
	}
}

// clockSweep implements the pulse sweep unit. ones is true for pulse
// 1 (channel 0), which subtracts an extra 1 on negate to reproduce the
// ones-complement/twos-complement asymmetry between the two pulse
// channels on real hardware.
func (p *pulse) clockSweep(ones bool) {
	if p.sweepReload {
		if p.sweepCounter == 0 && p.sweepEnabled {
			p.applySweep(ones)
		}
		p.sweepCounter = p.sweepPeriod
		p.sweepReload = false
		return
	}
	if p.sweepCounter > 0 {
		p.sweepCounter--
		return
	}
	p.sweepCounter = p.sweepPeriod
	if p.sweepEnabled {
		p.applySweep(ones)
	}
}

func (p *pulse) applySweep(ones bool) {
	if p.sweepShift == 0 || p.timerPeriod < 8 {
		return
	}
	delta := p.timerPeriod >> p.sweepShift
	var newPeriod int32
	if p.sweepNegate {
		if ones {
			newPeriod = int32(p.timerPeriod) - int32(delta) - 1
		} else {
			newPeriod = int32(p.timerPeriod) - int32(delta)
		}
		if newPeriod < 0 { // saturate at 0 rather than wrap
			newPeriod = 0
		}
	} else {
		newPeriod = int32(p.timerPeriod) + int32(delta)
	}
	if newPeriod < 0x800 {
		p.timerPeriod = uint16(newPeriod)
	}
}

func (p *pulse) output() uint8 {
	if !p.enabled || p.lengthCounter == 0 || p.timerPeriod < 8 || p.timerPeriod > 0x7FF {
		return 0
	}
	if dutySequences[p.dutyCycle][p.dutyIndex] == 0 {
		return 0
	}
	if p.constVolume {
		return p.volume
	}
	return p.envDecay
}
