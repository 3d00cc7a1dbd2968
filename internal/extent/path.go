// Package extent computes the set of extent files backing a dataset
// stream, their sizes, secondary-storage assignment, and the
// offset-to-extent lookup. spec.md §4.1.
package extent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deploymenttheory/go-javaseis/internal/types"
)

// dataHomeEnvVars are consulted in order; the first one set wins. spec.md
// §6. Reads happen fresh on every call — no global caching (spec.md §9).
var dataHomeEnvVars = []string{"JAVASEIS_DATA_HOME", "PROMAX_DATA_HOME"}

// ResolveSecondaryDir returns the directory under secondary root s that
// backs extents for the dataset at datasetPath, per spec.md §4.1.
func ResolveSecondaryDir(s, datasetPath string) (string, error) {
	if s == "." {
		if filepath.IsAbs(datasetPath) {
			return datasetPath, nil
		}
		wd, err := os.Getwd()
		if err != nil {
			return "", types.IOFail("extent.ResolveSecondaryDir", err)
		}
		return filepath.Join(wd, datasetPath), nil
	}

	absPath, err := filepath.Abs(datasetPath)
	if err != nil {
		return "", types.IOFail("extent.ResolveSecondaryDir", err)
	}

	for _, envVar := range dataHomeEnvVars {
		home := os.Getenv(envVar)
		if home == "" {
			continue
		}
		absHome, err := filepath.Abs(home)
		if err != nil {
			return "", types.IOFail("extent.ResolveSecondaryDir", err)
		}
		rel, err := filepath.Rel(absHome, absPath)
		if err != nil || strings.HasPrefix(rel, "..") {
			return "", types.EnvMisconfigured("extent.ResolveSecondaryDir", fmt.Errorf(
				"%s=%s is not a prefix of dataset path %s", envVar, home, absPath))
		}
		return filepath.Clean(filepath.Join(s, rel)), nil
	}

	trimmed := strings.TrimPrefix(datasetPath, string(filepath.Separator))
	return filepath.Clean(filepath.Join(s, trimmed)), nil
}
