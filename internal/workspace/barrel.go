package workspace

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/motion-core/motion-cli/internal/config"
)

// ComponentExport is one default export to merge into the barrel.
type ComponentExport struct {
	ExportName string
	EntryPath  string
}

// TypeExport is a set of named type exports declared by one entry file.
type TypeExport struct {
	ExportNames []string
	EntryPath   string
}

// RenderBarrel merges new component and type exports into the existing barrel
// text. It returns the rendered text and whether anything changed; callers
// must not write the barrel when changed is false. Output is deterministic:
// components block then types block, each sorted by exported identifier, one
// export per line.
func RenderBarrel(root string, cfg *config.Config, components []ComponentExport, types []TypeExport, existing string) (string, bool) {
	if len(components) == 0 && len(types) == 0 {
		return "", false
	}

	exports := parseExportMap(existing)
	modified := false

	barrelPath := UnderRoot(root, cfg.Exports.Components.Barrel)
	barrelDir := filepath.Dir(barrelPath)
	componentsRoot := UnderRoot(root, cfg.Aliases.Components.Filesystem)

	for _, component := range components {
		importPath, ok := computeImportPath(componentsRoot, barrelDir, component.EntryPath)
		if !ok {
			continue
		}
		line := "export { default as " + component.ExportName + " } from \"" + importPath + "\";"
		if exports.components[component.ExportName] != line {
			exports.components[component.ExportName] = line
			modified = true
		}
	}

	for _, typeExport := range types {
		importPath, ok := computeImportPath(componentsRoot, barrelDir, typeExport.EntryPath)
		if !ok {
			continue
		}
		for _, name := range typeExport.ExportNames {
			if name == "" {
				continue
			}
			line := "export type { " + name + " } from \"" + importPath + "\";"
			if exports.types[name] != line {
				exports.types[name] = line
				modified = true
			}
		}
	}

	if !modified || exports.empty() {
		return "", false
	}
	return exports.render(), true
}

// computeImportPath prefers the components-alias-relative form when the entry
// lives under the configured components directory, falling back to a path
// relative to the barrel's own directory. The result is always dot-relative.
func computeImportPath(componentsRoot, barrelDir, entryPath string) (string, bool) {
	if rel, err := filepath.Rel(componentsRoot, entryPath); err == nil && !strings.HasPrefix(rel, "..") && rel != "." {
		return "./" + filepath.ToSlash(rel), true
	}

	rel, err := filepath.Rel(barrelDir, entryPath)
	if err != nil {
		return "", false
	}
	slashed := filepath.ToSlash(rel)
	if !strings.HasPrefix(slashed, ".") {
		slashed = "./" + slashed
	}
	return slashed, true
}

type barrelExports struct {
	components map[string]string
	types      map[string]string
}

func (b *barrelExports) empty() bool {
	return len(b.components) == 0 && len(b.types) == 0
}

func (b *barrelExports) render() string {
	var sb strings.Builder
	for _, name := range sortedKeys(b.components) {
		sb.WriteString(b.components[name])
		sb.WriteByte('\n')
	}
	for _, name := range sortedKeys(b.types) {
		sb.WriteString(b.types[name])
		sb.WriteByte('\n')
	}
	return sb.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// parseExportMap reads an existing barrel into per-name canonical lines.
// Unrecognized lines are dropped from the rendered output; the barrel is a
// generated file and only the two export shapes below are ever written to it.
func parseExportMap(contents string) *barrelExports {
	exports := &barrelExports{
		components: make(map[string]string),
		types:      make(map[string]string),
	}

	for _, line := range strings.Split(contents, "\n") {
		trimmed := strings.TrimSpace(line)

		if rest, ok := strings.CutPrefix(trimmed, "export { default as "); ok {
			name, remainder, found := strings.Cut(rest, " } from ")
			if !found {
				continue
			}
			name = strings.TrimSpace(name)
			source := trimImportSource(remainder)
			exports.components[name] = "export { default as " + name + " } from \"" + source + "\";"
			continue
		}

		if rest, ok := strings.CutPrefix(trimmed, "export type {"); ok {
			names, remainder, found := strings.Cut(rest, "} from ")
			if !found {
				continue
			}
			source := trimImportSource(remainder)
			for _, name := range strings.Split(names, ",") {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				exports.types[name] = "export type { " + name + " } from \"" + source + "\";"
			}
		}
	}
	return exports
}

func trimImportSource(remainder string) string {
	source := strings.TrimSpace(remainder)
	source = strings.TrimPrefix(source, "\"")
	source = strings.TrimSuffix(source, "\";")
	return source
}
