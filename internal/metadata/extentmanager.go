package metadata

import (
	"fmt"
	"strconv"

	"github.com/deploymenttheory/go-javaseis/internal/extent"
	"github.com/deploymenttheory/go-javaseis/internal/types"
)

// extentManagerName is the inner parset name shared by TraceFile.xml and
// TraceHeaders.xml. spec.md §4.1, §6.
const extentManagerName = "ExtentManager"

// ExtentManagerInfo is the subset of TraceFile.xml / TraceHeaders.xml
// needed to reconstruct a stream's types.ExtentSet without re-running
// the create-time sizing heuristic.
type ExtentManagerInfo struct {
	StreamName  string
	ExtentSize  int64
	MaxFileSize int64
	NExtents    int
	Secondaries []string
}

// WriteExtentManager renders info as a TraceFile.xml/TraceHeaders.xml
// document. spec.md §4.1 "on-disk layout".
func WriteExtentManager(path string, info ExtentManagerInfo) error {
	root := &Parset{Name: rootName}
	em := root.AddSub(extentManagerName)
	em.Set("VFIO_VERSION", "string", "2006.2")
	em.Set("VFIO_MAXFILE", "long", strconv.FormatInt(info.MaxFileSize, 10))
	em.Set("VFIO_EXTSIZE", "long", strconv.FormatInt(info.ExtentSize, 10))
	em.Set("VFIO_MAXPOS", "long", strconv.FormatInt(info.MaxFileSize-1, 10))
	em.Set("VFIO_EXTNAME", "string", info.StreamName)
	em.Set("VFIO_POLICY", "string", "RANDOM")
	for i := 0; i < info.NExtents; i++ {
		sec := "."
		if len(info.Secondaries) > 0 {
			sec = info.Secondaries[i%len(info.Secondaries)]
		}
		em.Set(fmt.Sprintf("VFIO_EXTFILE-%d", i), "string", sec)
	}
	return WriteDocument(path, root)
}

// ReadExtentManager parses a TraceFile.xml/TraceHeaders.xml document and
// rebuilds the stream's extent set, resolving secondary directories
// relative to datasetPath exactly as extent.Build does at create time.
func ReadExtentManager(path, datasetPath string) (types.ExtentSet, ExtentManagerInfo, error) {
	root, err := ReadDocument(path)
	if err != nil {
		return types.ExtentSet{}, ExtentManagerInfo{}, err
	}
	em, ok := root.Sub(extentManagerName)
	if !ok {
		return types.ExtentSet{}, ExtentManagerInfo{}, types.Malformed(
			"metadata.ReadExtentManager", fmt.Errorf("%s: missing ExtentManager parset", path))
	}

	info := ExtentManagerInfo{}
	extSizePar, ok := em.Par("VFIO_EXTSIZE")
	if !ok {
		return types.ExtentSet{}, info, types.Malformed("metadata.ReadExtentManager", fmt.Errorf("%s: missing VFIO_EXTSIZE", path))
	}
	info.ExtentSize, err = extSizePar.Int()
	if err != nil {
		return types.ExtentSet{}, info, types.Malformed("metadata.ReadExtentManager", err)
	}
	maxFilePar, ok := em.Par("VFIO_MAXFILE")
	if !ok {
		return types.ExtentSet{}, info, types.Malformed("metadata.ReadExtentManager", fmt.Errorf("%s: missing VFIO_MAXFILE", path))
	}
	info.MaxFileSize, err = maxFilePar.Int()
	if err != nil {
		return types.ExtentSet{}, info, types.Malformed("metadata.ReadExtentManager", err)
	}
	namePar, ok := em.Par("VFIO_EXTNAME")
	if !ok {
		return types.ExtentSet{}, info, types.Malformed("metadata.ReadExtentManager", fmt.Errorf("%s: missing VFIO_EXTNAME", path))
	}
	info.StreamName = namePar.String()

	var secondaries []string
	for i := 0; ; i++ {
		p, ok := em.Par(fmt.Sprintf("VFIO_EXTFILE-%d", i))
		if !ok {
			break
		}
		secondaries = append(secondaries, p.String())
	}
	info.NExtents = len(secondaries)
	info.Secondaries = secondaries
	if info.NExtents == 0 {
		return types.ExtentSet{}, info, types.Malformed("metadata.ReadExtentManager", fmt.Errorf("%s: no VFIO_EXTFILE-* entries", path))
	}

	totalBytes := info.MaxFileSize
	set, err := extent.Build(info.StreamName, totalBytes, info.NExtents, info.ExtentSize, info.Secondaries, datasetPath)
	if err != nil {
		return types.ExtentSet{}, info, err
	}
	return set, info, nil
}
