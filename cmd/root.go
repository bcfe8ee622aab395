package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/playmath/internal/games"
	"github.com/abhisek/playmath/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "playmath",
	Short: "Math games for young kids",
	Long:  "PlayMath is a terminal app of math mini-games for early learners: addition, subtraction, number recognition, and skip counting.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A broken level table is a programming error; refuse to start.
		return games.ValidateLevels()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PLAYMATH_DB env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then PLAYMATH_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the path and opens the store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, err
	}
	return store.Open(dbPath)
}
