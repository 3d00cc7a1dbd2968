package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-javaseis/pkg/dataset"
)

var validateCmd = &cobra.Command{
	Use:   "validate <path>",
	Short: "Check a dataset's extent coverage and header disjointness invariants",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := dataset.Open(args[0], true, nil)
		if err != nil {
			return err
		}
		defer ds.Close()
		if err := ds.Validate(); err != nil {
			return err
		}
		if !GetQuiet() {
			fmt.Println("ok")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
