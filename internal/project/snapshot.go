package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// PackageSnapshot is a read-only view of the workspace package.json taken
// once at plan time. Only the dependency maps are consulted.
type PackageSnapshot struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// LoadSnapshot parses <root>/package.json. A missing or unparseable manifest
// returns an error the caller may degrade to "skip dependency install".
func LoadSnapshot(root string) (*PackageSnapshot, error) {
	path := filepath.Join(root, "package.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var snapshot PackageSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &snapshot, nil
}

// Spec returns the installed specifier for a package, checking runtime
// dependencies before dev dependencies. Empty when absent.
func (s *PackageSnapshot) Spec(name string) string {
	if s == nil {
		return ""
	}
	if spec, ok := s.Dependencies[name]; ok {
		return spec
	}
	return s.DevDependencies[name]
}
