package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// FileName is the workspace configuration file motion-core looks for.
	FileName = "motion-core.json"
	// SchemaURL is written into freshly created configuration files.
	SchemaURL = "https://motion-core.dev/registry/schema/config-schema.json"
)

// Config is the parsed contents of motion-core.json. It maps registry file
// targets onto workspace directories and names the generated export barrel.
type Config struct {
	Schema        string        `json:"$schema,omitempty"`
	Tailwind      TailwindEntry `json:"tailwind"`
	Aliases       Aliases       `json:"aliases"`
	AliasPrefixes AliasPrefixes `json:"aliasPrefixes"`
	Exports       Exports       `json:"exports"`
}

// TailwindEntry points at the workspace's Tailwind CSS entry file.
type TailwindEntry struct {
	CSS string `json:"css"`
}

// Aliases holds the directory mappings for each registry file target.
type Aliases struct {
	Components AliasEntry `json:"components"`
	Helpers    AliasEntry `json:"helpers"`
	Utils      AliasEntry `json:"utils"`
	Assets     AliasEntry `json:"assets"`
}

// AliasEntry pairs a workspace-relative directory with its import path.
type AliasEntry struct {
	Filesystem string `json:"filesystem"`
	Import     string `json:"import"`
}

// AliasPrefixes carries the import prefix used when rendering barrel lines.
type AliasPrefixes struct {
	Components string `json:"components"`
}

// Exports configures the generated barrel file.
type Exports struct {
	Components ExportEntry `json:"components"`
}

// ExportEntry names the barrel file and its export strategy.
type ExportEntry struct {
	Barrel   string `json:"barrel"`
	Strategy string `json:"strategy"`
}

// Default returns the configuration written by `motion-core init` for a
// SvelteKit layout.
func Default() *Config {
	return &Config{
		Schema:   SchemaURL,
		Tailwind: TailwindEntry{CSS: "src/app.css"},
		Aliases: Aliases{
			Components: AliasEntry{Filesystem: "src/lib/motion-core", Import: "$lib/motion-core"},
			Helpers:    AliasEntry{Filesystem: "src/lib/motion-core/helpers", Import: "$lib/motion-core/helpers"},
			Utils:      AliasEntry{Filesystem: "src/lib/motion-core/utils", Import: "$lib/motion-core/utils"},
			Assets:     AliasEntry{Filesystem: "src/lib/motion-core/assets", Import: "$lib/motion-core/assets"},
		},
		AliasPrefixes: AliasPrefixes{Components: "$lib/motion-core"},
		Exports: Exports{
			Components: ExportEntry{Barrel: "src/lib/motion-core/index.ts", Strategy: "named"},
		},
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config at %s: %w", path, err)
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating config at %s: %w", path, err)
	}
	if !result.Valid {
		return nil, fmt.Errorf("config at %s is invalid: %s", path, result.Issues[0].Message)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config at %s: %w", path, err)
	}
	return cfg, nil
}

// TryLoad returns nil without error when the file does not exist.
func TryLoad(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return Load(path)
}

// Save writes the configuration as indented JSON.
func Save(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing config at %s: %w", path, err)
	}
	return nil
}

// Locate walks upward from start looking for motion-core.json. It returns the
// workspace root and config path; when no config exists anywhere up the tree,
// it returns start and the path the file would have there.
func Locate(start string) (root string, configPath string) {
	current, err := filepath.Abs(start)
	if err != nil {
		current = start
	}
	for {
		candidate := filepath.Join(current, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return current, candidate
		}
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent
	}
	fallback, err := filepath.Abs(start)
	if err != nil {
		fallback = start
	}
	return fallback, filepath.Join(fallback, FileName)
}
