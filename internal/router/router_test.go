package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/playmath/internal/screen"
	"github.com/abhisek/playmath/internal/store"
)

// stubScreen is a minimal Screen for router tests.
type stubScreen struct {
	name   string
	inited bool
	msgs   []tea.Msg
}

func (s *stubScreen) Init() tea.Cmd {
	s.inited = true
	return nil
}

func (s *stubScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.msgs = append(s.msgs, msg)
	return s, nil
}

func (s *stubScreen) View(width, height int) string { return s.name }
func (s *stubScreen) Title() string                 { return s.name }

func TestPushPop(t *testing.T) {
	home := &stubScreen{name: "home"}
	r := New(home)

	if r.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", r.Depth())
	}

	game := &stubScreen{name: "game"}
	r.Push(game)

	if !game.inited {
		t.Error("pushed screen was not initialized")
	}
	if r.Active() != game {
		t.Errorf("active = %v, want game", r.Active().Title())
	}

	r.Pop()
	if r.Active() != home {
		t.Errorf("active after pop = %v, want home", r.Active().Title())
	}
}

func TestPopNeverEmptiesStack(t *testing.T) {
	home := &stubScreen{name: "home"}
	r := New(home)

	r.Pop()
	if r.Depth() != 1 {
		t.Errorf("depth = %d, want 1 (last screen must survive)", r.Depth())
	}
	if r.Active() != home {
		t.Error("home screen was popped")
	}
}

func TestReplaceKeepsDepth(t *testing.T) {
	home := &stubScreen{name: "home"}
	r := New(home)
	r.Push(&stubScreen{name: "game"})

	levelup := &stubScreen{name: "levelup"}
	r.Replace(levelup)

	if r.Depth() != 2 {
		t.Errorf("depth = %d, want 2", r.Depth())
	}
	if r.Active() != levelup {
		t.Error("replace did not install the new screen")
	}
	if !levelup.inited {
		t.Error("replacement screen was not initialized")
	}
}

func TestUpdateHandlesNavigationMessages(t *testing.T) {
	home := &stubScreen{name: "home"}
	r := New(home)

	game := &stubScreen{name: "game"}
	r.Update(PushScreenMsg{Screen: game})
	if r.Active() != game {
		t.Error("PushScreenMsg did not push")
	}

	r.Update(PopScreenMsg{})
	if r.Active() != home {
		t.Error("PopScreenMsg did not pop")
	}
}

func TestGameEventsReachWholeStack(t *testing.T) {
	home := &stubScreen{name: "home"}
	r := New(home)
	game := &stubScreen{name: "game"}
	r.Push(game)

	r.Update(screen.ProgressChangedMsg{Game: store.GameAddition, Percent: 40})

	for _, s := range []*stubScreen{home, game} {
		if len(s.msgs) != 1 {
			t.Fatalf("%s received %d messages, want 1", s.name, len(s.msgs))
		}
		got, ok := s.msgs[0].(screen.ProgressChangedMsg)
		if !ok {
			t.Fatalf("%s received %T, want ProgressChangedMsg", s.name, s.msgs[0])
		}
		if got.Game != store.GameAddition || got.Percent != 40 {
			t.Errorf("%s received %+v, want addition at 40", s.name, got)
		}
	}
}
