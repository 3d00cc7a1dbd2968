package metadata

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/deploymenttheory/go-javaseis/internal/types"
)

// NamePropertiesFile and StatusPropertiesFile are the plain key=value
// sidecar files living alongside FileProperties.xml. spec.md §6, §7.
const (
	NamePropertiesFile   = "Name.properties"
	StatusPropertiesFile = "Status.properties"
)

func writeProperties(path string, kv map[string]string, order []string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "#%s\n", "javaseis metadata")
	for _, k := range order {
		fmt.Fprintf(&b, "%s=%s\n", k, kv[k])
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return types.IOFail("metadata.writeProperties", err)
	}
	return nil
}

func readProperties(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, types.IOFail("metadata.readProperties", err)
	}
	defer f.Close()

	out := make(map[string]string)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		out[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, types.IOFail("metadata.readProperties", err)
	}
	return out, nil
}

// WriteNameProperties writes Name.properties with the dataset's
// user-facing descriptive name.
func WriteNameProperties(path, descriptiveName string) error {
	return writeProperties(path, map[string]string{"DescriptiveName": descriptiveName}, []string{"DescriptiveName"})
}

// ReadNameProperties reads Name.properties. A missing file yields an
// empty name, since the descriptive name is optional. spec.md §6.
func ReadNameProperties(path string) (string, error) {
	kv, err := readProperties(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return kv["DescriptiveName"], nil
}

// WriteStatusProperties writes Status.properties recording whether the
// dataset currently has any written traces.
func WriteStatusProperties(path string, hasTraces bool) error {
	v := "false"
	if hasTraces {
		v = "true"
	}
	return writeProperties(path, map[string]string{"HasTraces": v}, []string{"HasTraces"})
}

// ReadStatusProperties reads Status.properties. Per spec.md §7, an
// absent file means the dataset has no traces yet.
func ReadStatusProperties(path string) (bool, error) {
	kv, err := readProperties(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return kv["HasTraces"] == "true", nil
}
