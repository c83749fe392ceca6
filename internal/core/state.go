package core

// Mode is the top-level game state.
type Mode int

const (
	ModeMenu Mode = iota
	ModePlaying
	ModePaused
	ModeEnd
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeMenu:
		return "menu"
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	case ModeEnd:
		return "end"
	default:
		return "unknown"
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Mode     Mode
	Score    int     // Current round score
	Elapsed  float64 // Seconds spent in Playing this round
	GameOver bool    // Mode == ModeEnd
	Paused   bool    // Mode == ModePaused
}

// Event is something notable that happened during a tick.
type Event int

const (
	EventStarted Event = iota + 1
	EventFlapped
	EventScored
	EventHitGround
	EventHitObstacle
	EventPaused
	EventResumed
	EventQuit
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventStarted:
		return "started"
	case EventFlapped:
		return "flapped"
	case EventScored:
		return "scored"
	case EventHitGround:
		return "hit_ground"
	case EventHitObstacle:
		return "hit_obstacle"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Sound identifies a fire-and-forget audio cue.
type Sound int

const (
	SoundFlap Sound = iota + 1
	SoundScore
	SoundCrash
)

// String returns a human-readable name for the sound.
func (s Sound) String() string {
	switch s {
	case SoundFlap:
		return "flap"
	case SoundScore:
		return "score"
	case SoundCrash:
		return "crash"
	default:
		return "unknown"
	}
}

// SoundSink plays sound cues. Implementations must not block the tick.
type SoundSink interface {
	Play(s Sound)
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
	Sounds []Sound // Only filled when the variant has sound enabled
	Quit   bool    // The player asked to leave the game
}

// Has reports whether the given event happened this tick.
func (r StepResult) Has(e Event) bool {
	for _, ev := range r.Events {
		if ev == e {
			return true
		}
	}
	return false
}
