package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// LoadRegistryFile reads a catalog manifest from a local .json, .yaml, or
// .yml file and wraps it in a static client. This is the offline composition
// path: no cache, no network.
func LoadRegistryFile(path string) (*Client, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry file %s: %w", path, err)
	}

	var reg Registry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &reg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &reg); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported registry file extension %q", ErrParse, filepath.Ext(path))
	}

	if reg.Components == nil {
		reg.Components = map[string]ComponentRecord{}
	}
	return NewStatic(&reg), nil
}
