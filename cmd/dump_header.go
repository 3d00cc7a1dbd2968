package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-javaseis/internal/header"
	"github.com/deploymenttheory/go-javaseis/internal/types"
	"github.com/deploymenttheory/go-javaseis/pkg/dataset"
)

var dumpHeaderCmd = &cobra.Command{
	Use:   "dump-header <path> <frame>",
	Short: "Print one frame's header records, one line per live trace property",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		frame, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid frame number %q: %w", args[1], err)
		}
		return runDumpHeader(args[0], frame)
	},
}

func init() {
	rootCmd.AddCommand(dumpHeaderCmd)
}

func runDumpHeader(path string, frame int64) error {
	ds, err := dataset.Open(path, true, nil)
	if err != nil {
		return err
	}
	defer ds.Close()

	tracesPerFrame := ds.Descriptor.TracesPerFrame()
	samplesPerTrace := ds.Descriptor.SamplesPerTrace()
	headerLen := ds.Descriptor.Schema.Length()

	traceBuf := make([][]float32, tracesPerFrame)
	for i := range traceBuf {
		traceBuf[i] = make([]float32, samplesPerTrace)
	}
	headerBuf := make([]byte, tracesPerFrame*headerLen)

	fold, err := ds.ReadFrame(frame, traceBuf, headerBuf)
	if err != nil {
		return err
	}

	acc := ds.Accessor()
	props := ds.Descriptor.Schema.Properties()
	for t := int32(0); t < fold; t++ {
		row := headerBuf[int(t)*headerLen : int(t+1)*headerLen]
		fmt.Printf("trace %d:\n", t)
		for _, p := range props {
			if err := printProperty(acc, row, p); err != nil {
				return err
			}
		}
	}
	return nil
}

func printProperty(acc *header.Accessor, row []byte, p types.TraceProperty) error {
	if p.Format == types.ByteStringFormat {
		v, err := acc.GetString(row, p.Label)
		if err != nil {
			return err
		}
		fmt.Printf("  %-10s %q\n", p.Label, v)
		return nil
	}
	if p.ElementCount == 1 {
		v, err := acc.GetScalar(row, p.Label)
		if err != nil {
			return err
		}
		fmt.Printf("  %-10s %v\n", p.Label, v)
		return nil
	}
	v, err := acc.GetVector(row, p.Label)
	if err != nil {
		return err
	}
	fmt.Printf("  %-10s %v\n", p.Label, v)
	return nil
}
