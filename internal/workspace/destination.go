package workspace

import (
	"path/filepath"
	"strings"

	"github.com/motion-core/motion-cli/internal/config"
	"github.com/motion-core/motion-cli/internal/registry"
)

// ResolveDestination maps a registry file record onto its workspace path.
// The file's target tag picks the alias directory (components by default);
// the registry path is stripped of its category prefix and sanitized before
// joining, so a hostile path can never land outside the workspace root.
func ResolveDestination(root string, cfg *config.Config, file registry.ComponentFileRecord) string {
	relative := SanitizeRelative(stripCategory(file.Path))

	var base string
	switch file.Target {
	case "helper", "helpers":
		base = cfg.Aliases.Helpers.Filesystem
	case "utils":
		base = cfg.Aliases.Utils.Filesystem
	case "asset", "assets":
		base = cfg.Aliases.Assets.Filesystem
	case "root":
		base = ""
	default:
		base = cfg.Aliases.Components.Filesystem
	}

	basePath := UnderRoot(root, base)
	if relative == "" {
		return basePath
	}
	return filepath.Join(basePath, relative)
}

// stripCategory removes the leading registry category directory so files
// nest directly under their alias directory.
func stripCategory(path string) string {
	first, rest, found := strings.Cut(path, "/")
	if !found {
		return path
	}
	switch first {
	case "components", "helpers", "utils", "assets":
		return rest
	}
	return path
}
