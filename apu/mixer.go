package apu

// mix combines the five channel outputs via the NES's non-linear
// mixer formula (spec.md §4.4).
func mix(pulse0, pulse1, triangleOut, noiseOut, dmcOut uint8) float32 {
	var pulseOut float64
	if pulse0 != 0 || pulse1 != 0 {
		pulseOut = 95.88 / (8218.0/(float64(pulse0)+float64(pulse1)) + 100.0)
	}

	var tndOut float64
	if triangleOut != 0 || noiseOut != 0 || dmcOut != 0 {
		denom := float64(triangleOut)/8227.0 + float64(noiseOut)/12241.0 + float64(dmcOut)/22638.0
		tndOut = 159.79 / (1.0/denom + 100.0)
	}

	return float32(pulseOut + tndOut)
}

// firstOrderFilter is a one-pole IIR filter shared by the high-pass
// and low-pass stages; which formula applies is selected by highPass.
type firstOrderFilter struct {
	alpha    float64
	highPass bool
	prevIn   float32
	prevOut  float32
}

func newHighPass(cutoffHz, sampleRateHz float64) firstOrderFilter {
	rc := 1.0 / (2 * 3.14159265358979 * cutoffHz)
	dt := 1.0 / sampleRateHz
	alpha := rc / (rc + dt)
	return firstOrderFilter{alpha: alpha, highPass: true}
}

func newLowPass(cutoffHz, sampleRateHz float64) firstOrderFilter {
	dt := 1.0 / sampleRateHz
	rc := 1.0 / (2 * 3.14159265358979 * cutoffHz)
	alpha := dt / (rc + dt)
	return firstOrderFilter{alpha: alpha, highPass: false}
}

func (f *firstOrderFilter) apply(in float32) float32 {
	var out float32
	if f.highPass {
		out = float32(f.alpha) * (f.prevOut + in - f.prevIn)
	} else {
		out = f.prevOut + float32(f.alpha)*(in-f.prevOut)
	}
	f.prevIn = in
	f.prevOut = out
	return out
}

// filterChain cascades the three filters spec.md §4.4 names: two
// high-pass stages (90 Hz, 440 Hz) removing DC offset and rumble, and
// one low-pass stage (14 kHz) removing aliasing above the audible
// range, all parameterized by the output sample rate.
type filterChain struct {
	hp1, hp2 firstOrderFilter
	lp       firstOrderFilter
}

func newFilterChain(sampleRateHz float64) filterChain {
	return filterChain{
		hp1: newHighPass(90, sampleRateHz),
		hp2: newHighPass(440, sampleRateHz),
		lp:  newLowPass(14000, sampleRateHz),
	}
}

func (c *filterChain) apply(in float32) float32 {
	out := c.hp1.apply(in)
	out = c.hp2.apply(out)
	out = c.lp.apply(out)
	return out
}
