package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-javaseis/pkg/dataset"
)

var removeCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Delete a dataset's extents, secondary directories, and metadata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := dataset.Remove(args[0]); err != nil {
			return err
		}
		if !GetQuiet() {
			fmt.Printf("removed %s\n", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
