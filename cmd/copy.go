package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-javaseis/pkg/dataset"
)

var copyMove bool

var copyCmd = &cobra.Command{
	Use:   "copy <src> <dst>",
	Short: "Copy one dataset's frames into a new dataset",
	Long: `Copy iterates every frame of src in linear order and writes the
live ones into a freshly created dataset at dst. With --move, src is
removed after the copy succeeds.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, dst := args[0], args[1]
		var err error
		if copyMove {
			err = dataset.Move(src, dst)
		} else {
			err = dataset.Copy(src, dst)
		}
		if err != nil {
			return err
		}
		if !GetQuiet() {
			fmt.Printf("copied %s to %s\n", src, dst)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(copyCmd)
	copyCmd.Flags().BoolVar(&copyMove, "move", false, "remove src after a successful copy")
}
