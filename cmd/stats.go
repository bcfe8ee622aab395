package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/playmath/internal/parent"
	"github.com/abhisek/playmath/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print per-game scores, levels, and progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ov, err := parent.NewService(st).Overview(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("%-22s %6s %6s %10s %12s\n", "GAME", "LEVEL", "SCORE", "PROGRESS", "LAST PLAYED")
		for _, id := range store.AllGames() {
			stats := ov.Stats[id]
			summary := ov.Progress[id]
			last := "never"
			if summary.LastPlayed != nil {
				last = summary.LastPlayed.Local().Format("2006-01-02")
			}
			fmt.Printf("%-22s %6d %6d %9d%% %12s\n",
				id.Title(), stats.Level, stats.Score, summary.Percent, last)
		}

		if len(ov.Achievements) > 0 {
			fmt.Printf("\nAchievements (%d):\n", len(ov.Achievements))
			for _, a := range ov.Achievements {
				fmt.Printf("  %s  (%s)\n", a.ID, a.DateEarned.Local().Format("2006-01-02"))
			}
		}
		return nil
	},
}
