package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/playmath/internal/parent"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a snapshot of scores, levels, and achievements to a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			out = fmt.Sprintf("playmath-export-%s.json", time.Now().Format("2006-01-02"))
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		if err := parent.NewService(st).WriteSnapshot(cmd.Context(), out); err != nil {
			return err
		}
		fmt.Println("Exported to", out)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "Output file path")
}
