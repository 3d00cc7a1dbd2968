// Package config loads runtime tuning knobs for this module (extent
// sizing overrides, default secondary storage roots, default trace
// format) from environment variables, a config file, and hardcoded
// defaults, layered with spf13/viper the way the teacher repo's device
// package loads DMG defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-javaseis/internal/types"
)

// Config holds the module's tunable defaults. Any dataset-specific value
// (axes, schema, sample format) still comes from the caller or the
// dataset's own metadata; Config only supplies fallbacks spec.md leaves
// as "implementation defined".
type Config struct {
	// ExtentCountOverride, when > 0, is used in place of the extent-count
	// heuristic of spec.md §4.1 for every dataset created through this
	// process.
	ExtentCountOverride int

	// DefaultSecondaries lists the secondary storage roots assigned to
	// new datasets that don't specify their own.
	DefaultSecondaries []string

	// DefaultSampleFormat is the sample format assumed for new datasets
	// that don't specify one.
	DefaultSampleFormat types.SampleFormat

	// DefaultByteOrder is the byte order assumed for new datasets that
	// don't specify one.
	DefaultByteOrder types.ByteOrder
}

const envPrefix = "JAVASEIS"

// Load reads configuration from (in increasing precedence) hardcoded
// defaults, a javaseis.yaml/json/toml config file found on the given
// search paths, and JAVASEIS_-prefixed environment variables.
func Load(searchPaths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("javaseis")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("extent.count_override", 0)
	v.SetDefault("extent.default_secondaries", []string{"."})
	v.SetDefault("format.sample", "FLOAT")
	v.SetDefault("format.byte_order", "LITTLE_ENDIAN")

	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	sampleFmt, err := types.ParseSampleFormat(v.GetString("format.sample"))
	if err != nil {
		return nil, fmt.Errorf("config: format.sample: %w", err)
	}
	byteOrder, err := types.ParseByteOrder(v.GetString("format.byte_order"))
	if err != nil {
		return nil, fmt.Errorf("config: format.byte_order: %w", err)
	}

	return &Config{
		ExtentCountOverride: v.GetInt("extent.count_override"),
		DefaultSecondaries:  v.GetStringSlice("extent.default_secondaries"),
		DefaultSampleFormat: sampleFmt,
		DefaultByteOrder:    byteOrder,
	}, nil
}
