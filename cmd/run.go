package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/playmath/internal/app"
	"github.com/abhisek/playmath/internal/store"
)

// runApp opens the store and launches the TUI. A non-empty startGame
// jumps straight into that game.
func runApp(cmd *cobra.Command, startGame store.GameID) error {
	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	return app.Run(app.Options{
		Store:     st,
		StartGame: startGame,
	})
}
