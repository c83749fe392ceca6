// Package sound synthesises the short cue effects as raw PCM,
// so hosts need no audio assets.
package sound

import (
	"encoding/binary"
	"math"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// SampleRate is the default output rate in Hz.
const SampleRate = 44100

// Tone is a sine sweep from Freq to EndFreq with a linear fade-out.
type Tone struct {
	Freq     float64 // Hz at the start
	EndFreq  float64 // Hz at the end, Freq when zero
	Duration float64 // Seconds
	Volume   float64 // 0..1
}

// Cues maps each sound to its tone.
var Cues = map[core.Sound]Tone{
	core.SoundFlap:  {Freq: 520, EndFreq: 780, Duration: 0.07, Volume: 0.25},
	core.SoundScore: {Freq: 880, EndFreq: 1320, Duration: 0.12, Volume: 0.3},
	core.SoundCrash: {Freq: 240, EndFreq: 70, Duration: 0.35, Volume: 0.4},
}

// Samples returns the number of frames t lasts at sampleRate.
func (t Tone) Samples(sampleRate int) int {
	if t.Duration <= 0 || sampleRate <= 0 {
		return 0
	}
	return int(t.Duration * float64(sampleRate))
}

// PCM renders t as signed 16-bit little-endian stereo.
func (t Tone) PCM(sampleRate int) []byte {
	n := t.Samples(sampleRate)
	buf := make([]byte, n*4)

	end := t.EndFreq
	if end == 0 {
		end = t.Freq
	}
	vol := core.ClampF(t.Volume, 0, 1)

	phase := 0.0
	for i := range n {
		progress := float64(i) / float64(n)
		freq := t.Freq + (end-t.Freq)*progress
		amp := vol * (1 - progress)

		v := int16(math.Sin(phase) * amp * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))

		phase += 2 * math.Pi * freq / float64(sampleRate)
	}
	return buf
}

// CuePCM renders the tone for s. ok is false for unknown sounds.
func CuePCM(s core.Sound, sampleRate int) (pcm []byte, ok bool) {
	t, ok := Cues[s]
	if !ok {
		return nil, false
	}
	return t.PCM(sampleRate), true
}
