package game

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/playmath/internal/screen"
	"github.com/abhisek/playmath/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open("file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestSessionEventsQueueBroadcasts(t *testing.T) {
	g := New(openTestStore(t), store.GameAddition)
	ev := g.events()

	ev.OnScoreChanged(store.GameAddition, 30)
	ev.OnProgressChanged(store.GameAddition, 90)
	ev.OnLevelCompleted(store.GameAddition, 3, true)

	want := []tea.Msg{
		screen.ScoreChangedMsg{Game: store.GameAddition, Score: 30},
		screen.ProgressChangedMsg{Game: store.GameAddition, Percent: 90},
		screen.LevelCompletedMsg{Game: store.GameAddition, Level: 3, HasNext: true},
	}
	if len(g.notices) != len(want) {
		t.Fatalf("queued %d messages, want %d", len(g.notices), len(want))
	}
	for i := range want {
		if g.notices[i] != want[i] {
			t.Errorf("notice %d = %#v, want %#v", i, g.notices[i], want[i])
		}
	}

	if cmd := g.flushNotices(); cmd == nil {
		t.Fatal("expected a command carrying the queued messages")
	}
	if len(g.notices) != 0 {
		t.Error("expected the queue drained after flush")
	}
	if g.flushNotices() != nil {
		t.Error("expected no command when nothing is queued")
	}
}
