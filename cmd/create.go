package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-javaseis/internal/config"
	"github.com/deploymenttheory/go-javaseis/internal/types"
	"github.com/deploymenttheory/go-javaseis/pkg/dataset"
)

var (
	createAxes        string
	createName        string
	createComments    string
	createDataType    string
	createFormat      string
	createByteOrder   string
	createSecondaries string
	createExtents     int
	createMapped      bool
)

var createCmd = &cobra.Command{
	Use:   "create <path>",
	Short: "Create a new dataset",
	Long: `Create a new JavaSeis dataset directory.

Example:
  javaseis create ./shot001.js --axes 1500,240,96 --format COMPRESSED_INT16`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().StringVar(&createAxes, "axes", "", "comma-separated axis lengths, 3 to 5 entries: sample,trace,frame[,volume[,hypercube]]")
	createCmd.Flags().StringVar(&createName, "name", "", "descriptive name")
	createCmd.Flags().StringVar(&createComments, "comments", "", "free-form comments")
	createCmd.Flags().StringVar(&createDataType, "data-type", "", "data type label, e.g. STACK or CMP")
	createCmd.Flags().StringVar(&createFormat, "format", "FLOAT", "sample format: FLOAT, COMPRESSED_INT16 (DOUBLE is readable on disk but cannot be created; COMPRESSED_INT32 is not supported)")
	createCmd.Flags().StringVar(&createByteOrder, "byte-order", "LITTLE_ENDIAN", "header byte order: LITTLE_ENDIAN or BIG_ENDIAN")
	createCmd.Flags().StringVar(&createSecondaries, "secondaries", ".", "comma-separated secondary filesystem roots")
	createCmd.Flags().IntVar(&createExtents, "extents", 0, "extent count override, 0 selects the heuristic")
	createCmd.Flags().BoolVar(&createMapped, "mapped", true, "build a trace map (sparse fold-mapped dataset)")
	createCmd.MarkFlagRequired("axes")
}

func parseAxisLengths(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	lengths := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid axis length %q: %w", p, err)
		}
		lengths = append(lengths, n)
	}
	return lengths, nil
}

// runCreate layers the javaseis.yaml/JAVASEIS_-env config loaded by
// internal/config under whichever create flags the caller actually set,
// so an operator can pin a site-wide default sample format or secondary
// root list without repeating it on every invocation.
func runCreate(cmd *cobra.Command, path string) error {
	lengths, err := parseAxisLengths(createAxes)
	if err != nil {
		return err
	}

	axes := make([]types.Axis, len(lengths))
	for i, n := range lengths {
		axes[i] = types.Axis{Length: n, LogicalDelta: 1}
		if i >= 1 {
			axes[i].LogicalOrigin = 1
		}
	}

	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	sampleFmt := cfg.DefaultSampleFormat
	if cmd.Flags().Changed("format") {
		sampleFmt, err = types.ParseSampleFormat(createFormat)
		if err != nil {
			return err
		}
	}
	byteOrder := cfg.DefaultByteOrder
	if cmd.Flags().Changed("byte-order") {
		byteOrder, err = types.ParseByteOrder(createByteOrder)
		if err != nil {
			return err
		}
	}
	secondaries := cfg.DefaultSecondaries
	if cmd.Flags().Changed("secondaries") {
		secondaries = strings.Split(createSecondaries, ",")
	}
	nextents := createExtents
	if !cmd.Flags().Changed("extents") && cfg.ExtentCountOverride > 0 {
		nextents = cfg.ExtentCountOverride
	}

	mapped := createMapped
	ds, err := dataset.Create(path, dataset.CreateOptions{
		DescriptiveName: createName,
		Comments:        createComments,
		DataType:        createDataType,
		Axes:            axes,
		SampleFormat:    sampleFmt,
		ByteOrder:       byteOrder,
		Mapped:          &mapped,
		Secondaries:     secondaries,
		NExtents:        nextents,
	})
	if err != nil {
		return err
	}
	defer ds.Close()

	if !GetQuiet() {
		fmt.Printf("created dataset at %s\n", path)
		printInfo(ds.Info())
	}
	return nil
}
