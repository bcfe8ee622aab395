package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/playmath/internal/store"
	"github.com/abhisek/playmath/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that want the
// header to show the active level and score.
type StatusProvider interface {
	Status() (level, score int)
}

// The messages below are broadcast by the router to every screen on
// the stack, not just the active one. Game screens emit them as their
// session persists changes, so background screens can keep cached
// views current without re-reading the store.

// ProgressChangedMsg announces a new completion percent for a game.
type ProgressChangedMsg struct {
	Game    store.GameID
	Percent int
}

// ScoreChangedMsg announces a new total score for a game.
type ScoreChangedMsg struct {
	Game  store.GameID
	Score int
}

// LevelCompletedMsg announces a finished level. HasNext is false when
// the game's last configured level was just cleared.
type LevelCompletedMsg struct {
	Game    store.GameID
	Level   int
	HasNext bool
}

// DataResetMsg announces that all saved progress was wiped.
type DataResetMsg struct{}
