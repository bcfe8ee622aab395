// Package sound provides best-effort audio feedback. Playback is
// fire-and-forget: failures are swallowed and never block or fail the
// session flow.
package sound

import "io"

// Player plays short feedback cues.
type Player interface {
	// Correct plays the right-answer cue.
	Correct()

	// Wrong plays the wrong-answer cue.
	Wrong()
}

// BellPlayer rings the terminal bell. Write errors are ignored.
type BellPlayer struct {
	W io.Writer
}

func (p BellPlayer) Correct() {
	if p.W != nil {
		_, _ = p.W.Write([]byte{'\a'})
	}
}

func (p BellPlayer) Wrong() {
	if p.W != nil {
		_, _ = p.W.Write([]byte{'\a'})
	}
}

// Muted is a Player that stays silent, used when sound is disabled in
// settings.
type Muted struct{}

func (Muted) Correct() {}
func (Muted) Wrong()   {}

// ForSettings returns a bell player or a muted one.
func ForSettings(enabled bool, w io.Writer) Player {
	if enabled {
		return BellPlayer{W: w}
	}
	return Muted{}
}
