package window

import (
	"github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/vovakirdan/flappy-arcade/internal/core"
	"github.com/vovakirdan/flappy-arcade/internal/prefs"
	"github.com/vovakirdan/flappy-arcade/internal/sound"
)

// Audio plays synthesised cues through the ebiten audio context.
type Audio struct {
	ctx     *audio.Context
	cues    map[core.Sound][]byte
	prefs   *prefs.Manager
	playing []*audio.Player
}

// NewAudio renders every cue once. p may be nil, which plays at full volume.
func NewAudio(p *prefs.Manager) *Audio {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sound.SampleRate)
	}

	cues := make(map[core.Sound][]byte, len(sound.Cues))
	for s := range sound.Cues {
		if pcm, ok := sound.CuePCM(s, ctx.SampleRate()); ok {
			cues[s] = pcm
		}
	}
	return &Audio{ctx: ctx, cues: cues, prefs: p}
}

// Play implements core.SoundSink.
func (a *Audio) Play(s core.Sound) {
	vol := 1.0
	if a.prefs != nil {
		vol = a.prefs.Volume()
	}
	pcm, ok := a.cues[s]
	if !ok || vol <= 0 {
		return
	}

	p := a.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(vol)
	p.Play()

	// Keep live players referenced until they finish
	live := a.playing[:0]
	for _, old := range a.playing {
		if old.IsPlaying() {
			live = append(live, old)
		}
	}
	a.playing = append(live, p)
}
