package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-javaseis/pkg/dataset"
)

var infoCmd = &cobra.Command{
	Use:   "info <path>",
	Short: "Print a dataset's structural summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ds, err := dataset.Open(args[0], true, nil)
		if err != nil {
			return err
		}
		defer ds.Close()
		printInfo(ds.Info())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func printInfo(info dataset.Info) {
	fmt.Printf("name:             %s\n", info.DescriptiveName)
	fmt.Printf("data type:        %s\n", info.DataType)
	fmt.Printf("sample format:    %s\n", info.SampleFormat)
	fmt.Printf("byte order:       %s\n", info.ByteOrder)
	fmt.Printf("dimensions:       %d\n", info.Dimensions)
	fmt.Printf("axis lengths:     %v\n", info.AxisLengths)
	fmt.Printf("traces per frame: %d\n", info.TracesPerFrame)
	fmt.Printf("samples per trace:%d\n", info.SamplesPerTrace)
	fmt.Printf("total frames:     %d\n", info.TotalFrames)
	fmt.Printf("header length:    %d bytes\n", info.HeaderLength)
	fmt.Printf("extents:          %d\n", info.NExtents)
	fmt.Printf("has traces:       %v\n", info.HasTraces)
}
