package metadata

import (
	"fmt"
	"strconv"

	"github.com/deploymenttheory/go-javaseis/internal/types"
)

// VirtualFoldersFile is the dataset-level sidecar recording the
// secondary storage roots a dataset's streams are allowed to scatter
// their extents across. spec.md §4.1, §6.
const VirtualFoldersFile = "VirtualFolders.xml"

const virtualFoldersName = "VirtualFolders"

// WriteVirtualFolders renders secondaries (as resolved, absolute or
// dataset-relative directories) into a VirtualFolders.xml document.
func WriteVirtualFolders(path string, secondaries []string) error {
	root := &Parset{Name: rootName}
	vf := root.AddSub(virtualFoldersName)
	vf.Set("NDIR", "int", strconv.Itoa(len(secondaries)))
	vf.Set("Version", "string", "2006.2")
	vf.Set("Header", "string", "VirtualFolderDefinition")
	vf.Set("Type", "string", "SS")
	vf.Set("POLICY_ID", "string", "RANDOM")
	vf.Set("GLOBAL_REQUIRED_FREE_SPACE", "long", "0")
	for i, s := range secondaries {
		vf.Set(fmt.Sprintf("FILESYSTEM-%d", i), "string", s+",READ_WRITE")
	}
	return WriteDocument(path, root)
}

// ReadVirtualFolders parses VirtualFolders.xml and returns the ordered
// list of secondary directories, stripped of their READ_WRITE/READ_ONLY
// access tag.
func ReadVirtualFolders(path string) ([]string, error) {
	root, err := ReadDocument(path)
	if err != nil {
		return nil, err
	}
	vf, ok := root.Sub(virtualFoldersName)
	if !ok {
		return nil, types.Malformed("metadata.ReadVirtualFolders", fmt.Errorf("%s: missing VirtualFolders parset", path))
	}
	ndirPar, ok := vf.Par("NDIR")
	if !ok {
		return nil, types.Malformed("metadata.ReadVirtualFolders", fmt.Errorf("%s: missing NDIR", path))
	}
	ndir, err := ndirPar.Int()
	if err != nil {
		return nil, types.Malformed("metadata.ReadVirtualFolders", err)
	}
	out := make([]string, 0, ndir)
	for i := int64(0); i < ndir; i++ {
		p, ok := vf.Par(fmt.Sprintf("FILESYSTEM-%d", i))
		if !ok {
			return nil, types.Malformed("metadata.ReadVirtualFolders", fmt.Errorf("%s: missing FILESYSTEM-%d", path, i))
		}
		fields := p.CSV()
		if len(fields) == 0 {
			return nil, types.Malformed("metadata.ReadVirtualFolders", fmt.Errorf("%s: malformed FILESYSTEM-%d", path, i))
		}
		out = append(out, fields[0])
	}
	return out, nil
}
