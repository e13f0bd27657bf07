package main

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/briarwood/famicom/apu"
)

// samplePlayer bridges the APU's mutex-guarded SampleRing to ebiten's
// pull-based audio player by implementing io.Reader: ebiten's audio
// goroutine calls Read, which drains whatever the emulation thread has
// pushed since the last call and converts it from float32 [-1,1] to
// signed 16-bit stereo PCM.
type samplePlayer struct {
	ring *apu.SampleRing
	ctx  *audio.Context
}

func newSamplePlayer(ctx *audio.Context, ring *apu.SampleRing) *audio.Player {
	p, err := ctx.NewPlayer(&samplePlayer{ring: ring, ctx: ctx})
	if err != nil {
		panic(err) // audio device setup failure: not a ROM/config error, a host environment fault
	}
	p.SetVolume(1.0)
	return p
}

// Read implements io.Reader. Samples not yet produced by the emulation
// thread are reported as silence rather than blocking, so a slow CPU
// thread never stalls ebiten's audio callback.
func (s *samplePlayer) Read(p []byte) (int, error) {
	n := len(p) / 4 // 2 bytes/channel * 2 channels
	samples := s.ring.Drain()
	if len(samples) > n {
		samples = samples[:n]
	}
	i := 0
	for ; i < len(samples); i++ {
		v := int16(clamp(samples[i]) * math.MaxInt16)
		binary.LittleEndian.PutUint16(p[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(p[i*4+2:], uint16(v))
	}
	for ; i < n; i++ {
		binary.LittleEndian.PutUint16(p[i*4:], 0)
		binary.LittleEndian.PutUint16(p[i*4+2:], 0)
	}
	return n * 4, nil
}

func clamp(v float32) float32 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}

var _ io.Reader = (*samplePlayer)(nil)
