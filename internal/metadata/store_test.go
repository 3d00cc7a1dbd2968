package metadata

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-javaseis/internal/types"
)

func buildTestDescriptor() *types.Descriptor {
	schema := types.NewHeaderSchema()
	schema.Add(types.TracePropertyDefinition{Label: types.PropTraceType, Format: types.Int32, ElementCount: 1})
	schema.Add(types.TracePropertyDefinition{Label: types.PropTraceNumber, Format: types.Int32, ElementCount: 1})

	trcProp, _ := schema.ByLabel(types.PropTraceNumber)

	return &types.Descriptor{
		DescriptiveName: "test dataset",
		Comments:        "created by a test",
		DataType:        "STACK",
		Mapped:          true,
		ByteOrder:       types.LittleEndian,
		SampleFmt:       types.SampleFloat32,
		Schema:          schema,
		Axes: []types.Axis{
			{Length: 100, Unit: "sec", Domain: "time", LogicalOrigin: 0, LogicalDelta: 1, PhysicalOrigin: 0, PhysicalDelta: 0.002},
			{Length: 64, Property: &trcProp, Unit: "index", Domain: "space", LogicalOrigin: 1, LogicalDelta: 1},
			{Length: 10, Unit: "index", Domain: "space", LogicalOrigin: 1, LogicalDelta: 1},
		},
		Secondaries: []string{"."},
	}
}

func TestStoreWriteThenReadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "ds.js")
	require.NoError(t, os.MkdirAll(primary, 0o755))

	d := buildTestDescriptor()
	s := NewStore(nil)
	require.NoError(t, s.Write(primary, d))

	got, err := s.Read(primary)
	require.NoError(t, err)

	assert.Equal(t, d.DescriptiveName, got.DescriptiveName)
	assert.Equal(t, d.Comments, got.Comments)
	assert.Equal(t, d.SampleFmt, got.SampleFmt)
	assert.Equal(t, d.ByteOrder, got.ByteOrder)
	assert.Equal(t, d.Mapped, got.Mapped)
	require.Len(t, got.Axes, 3)
	assert.Equal(t, 100, got.Axes[0].Length)
	assert.Equal(t, 64, got.Axes[1].Length)
	assert.Equal(t, 10, got.Axes[2].Length)
	assert.NotNil(t, got.Axes[1].Property)
	assert.Equal(t, types.PropTraceNumber, got.Axes[1].Property.Label)
	assert.False(t, got.HasTraces)
	assert.Greater(t, got.NExtents, 0)
}

func TestStoreWriteSetsVFIOMaxPosToMaxFileSizeMinusOne(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "ds.js")
	require.NoError(t, os.MkdirAll(primary, 0o755))

	d := buildTestDescriptor()
	s := NewStore(nil)
	require.NoError(t, s.Write(primary, d))

	_, info, err := ReadExtentManager(filepath.Join(primary, TraceFileXML), primary)
	require.NoError(t, err)

	root, err := ReadDocument(filepath.Join(primary, TraceFileXML))
	require.NoError(t, err)
	em, ok := root.Sub(extentManagerName)
	require.True(t, ok)
	maxPosPar, ok := em.Par("VFIO_MAXPOS")
	require.True(t, ok)
	maxPos, err := maxPosPar.Int()
	require.NoError(t, err)
	assert.Equal(t, info.MaxFileSize-1, maxPos)
}

func TestStoreReadSourcesSecondariesFromVirtualFolders(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "ds.js")
	require.NoError(t, os.MkdirAll(primary, 0o755))

	d := buildTestDescriptor()
	d.Secondaries = []string{".", "."}
	s := NewStore(nil)
	require.NoError(t, s.Write(primary, d))

	got, err := s.Read(primary)
	require.NoError(t, err)
	assert.Equal(t, []string{".", "."}, got.Secondaries)

	fromVF, err := ReadVirtualFolders(filepath.Join(primary, VirtualFoldersFile))
	require.NoError(t, err)
	assert.Equal(t, fromVF, got.Secondaries)
}

func TestStoreDataPropertiesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "ds.js")
	require.NoError(t, os.MkdirAll(primary, 0o755))

	d := buildTestDescriptor()
	d.DataProperties = map[string]string{"Client": "Acme", "Area": "GulfOfMexico"}
	s := NewStore(nil)
	require.NoError(t, s.Write(primary, d))

	got, err := s.Read(primary)
	require.NoError(t, err)
	assert.Equal(t, d.DataProperties, got.DataProperties)
}

func TestStoreWriteStatusUpdatesOnlyStatusFile(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "ds.js")
	require.NoError(t, os.MkdirAll(primary, 0o755))

	d := buildTestDescriptor()
	s := NewStore(nil)
	require.NoError(t, s.Write(primary, d))
	require.NoError(t, s.WriteStatus(primary, true))

	got, err := s.Read(primary)
	require.NoError(t, err)
	assert.True(t, got.HasTraces)
}
