package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-javaseis/internal/types"
)

func TestLoadDefaultsWithNoConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Zero(t, cfg.ExtentCountOverride)
	assert.Equal(t, []string{"."}, cfg.DefaultSecondaries)
	assert.Equal(t, types.SampleFloat32, cfg.DefaultSampleFormat)
	assert.Equal(t, types.LittleEndian, cfg.DefaultByteOrder)
}

func TestLoadHonorsEnvOverride(t *testing.T) {
	t.Setenv("JAVASEIS_EXTENT_COUNT_OVERRIDE", "4")
	t.Setenv("JAVASEIS_FORMAT_SAMPLE", "COMPRESSED_INT16")
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.ExtentCountOverride)
	assert.Equal(t, types.SampleCompressedInt16, cfg.DefaultSampleFormat)
}
