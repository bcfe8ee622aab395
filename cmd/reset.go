package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/playmath/internal/parent"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all scores, levels, progress, and achievements",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("refusing to reset without --yes")
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := parent.NewService(st).ResetAll(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("All progress has been reset.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
