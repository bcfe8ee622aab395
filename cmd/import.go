package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/playmath/internal/parent"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore scores and levels from an exported snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		snap, err := parent.NewService(st).ImportSnapshot(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Imported snapshot %s from %s\n", snap.ID, snap.Timestamp.Local().Format("2006-01-02"))
		return nil
	},
}
