package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/playmath/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Start playing, optionally jumping straight into a game",
	Long: "Start the app. With a game argument, the round begins immediately.\n\n" +
		"Games: " + strings.Join(gameNames(), ", "),
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var startGame store.GameID
		if len(args) == 1 {
			startGame = store.GameID(args[0])
			if !startGame.Valid() {
				return fmt.Errorf("unknown game %q (games: %s)", args[0], strings.Join(gameNames(), ", "))
			}
		}
		return runApp(cmd, startGame)
	},
}

func gameNames() []string {
	var names []string
	for _, id := range store.AllGames() {
		names = append(names, string(id))
	}
	return names
}
