package tui

import (
	"io"

	"github.com/vovakirdan/flappy-arcade/internal/core"
)

// BellSink plays sound cues as the terminal bell.
// Flap cues are dropped.
type BellSink struct {
	w io.Writer
}

// NewBellSink creates a sink writing BEL to w. A nil writer is silent.
func NewBellSink(w io.Writer) *BellSink {
	return &BellSink{w: w}
}

// Play implements core.SoundSink.
func (b *BellSink) Play(s core.Sound) {
	if b == nil || b.w == nil || s == core.SoundFlap {
		return
	}
	//nolint:errcheck // Best-effort bell
	b.w.Write([]byte{'\a'})
}
