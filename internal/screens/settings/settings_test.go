package settings

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"

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

func loadedScreen(t *testing.T, st *store.Store) *SettingsScreen {
	t.Helper()
	s := New(st)
	msg := s.Init()()
	updated, _ := s.Update(msg)
	return updated.(*SettingsScreen)
}

func TestSettings_LoadsDefaults(t *testing.T) {
	s := loadedScreen(t, openTestStore(t))
	if !s.loaded {
		t.Fatal("expected settings to load")
	}
	if !s.settings.SoundEnabled {
		t.Error("expected sound on by default")
	}
	if s.settings.MaxQuestionsPerRound != 10 {
		t.Errorf("MaxQuestionsPerRound = %d, want 10", s.settings.MaxQuestionsPerRound)
	}
}

func TestSettings_ToggleSound(t *testing.T) {
	s := loadedScreen(t, openTestStore(t))

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if s.settings.SoundEnabled {
		t.Error("expected sound toggled off")
	}
	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	if !s.settings.SoundEnabled {
		t.Error("expected sound toggled back on")
	}
}

func TestSettings_RoundSizeClamps(t *testing.T) {
	s := loadedScreen(t, openTestStore(t))
	s.selected = rowRoundSize

	for i := 0; i < 30; i++ {
		s.adjust(-1)
	}
	if s.settings.MaxQuestionsPerRound != 1 {
		t.Errorf("round size floor = %d, want 1", s.settings.MaxQuestionsPerRound)
	}

	for i := 0; i < 100; i++ {
		s.adjust(1)
	}
	if s.settings.MaxQuestionsPerRound != 20 {
		t.Errorf("round size cap = %d, want 20", s.settings.MaxQuestionsPerRound)
	}
}

func TestSettings_SavePersists(t *testing.T) {
	st := openTestStore(t)
	s := loadedScreen(t, st)

	s.settings.SoundEnabled = false
	s.settings.MaxQuestionsPerRound = 5
	gs := s.settings.Games[store.GameSubtraction]
	gs.AllowNegative = true
	s.setGame(store.GameSubtraction, gs)

	msg := s.save()()
	if saved, ok := msg.(savedMsg); !ok || saved.Err != nil {
		t.Fatalf("save failed: %v", msg)
	}

	stored, err := st.Settings().Get(context.Background())
	if err != nil {
		t.Fatalf("reload settings: %v", err)
	}
	if stored.SoundEnabled {
		t.Error("expected sound off after save")
	}
	if stored.MaxQuestionsPerRound != 5 {
		t.Errorf("MaxQuestionsPerRound = %d, want 5", stored.MaxQuestionsPerRound)
	}
	if !stored.Games[store.GameSubtraction].AllowNegative {
		t.Error("expected AllowNegative persisted")
	}
}

func TestSettings_CycleDifficulty(t *testing.T) {
	d := store.DifficultyEasy
	d = cycleDifficulty(d, 1)
	if d != store.DifficultyMedium {
		t.Errorf("got %q, want medium", d)
	}
	d = cycleDifficulty(d, 1)
	if d != store.DifficultyHard {
		t.Errorf("got %q, want hard", d)
	}
	d = cycleDifficulty(d, 1)
	if d != store.DifficultyEasy {
		t.Errorf("got %q, want easy (wraps)", d)
	}
	if cycleDifficulty(store.DifficultyEasy, -1) != store.DifficultyHard {
		t.Error("expected backward wrap to hard")
	}
}
