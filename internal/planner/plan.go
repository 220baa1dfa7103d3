package planner

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/motion-core/motion-cli/internal/config"
	"github.com/motion-core/motion-cli/internal/project"
	"github.com/motion-core/motion-cli/internal/registry"
	"github.com/motion-core/motion-cli/internal/workspace"
)

const entryExtension = ".svelte"

// BuildAddPlan resolves the requested slugs into a complete install plan.
// It reads existing workspace files for status classification but performs
// no writes.
func BuildAddPlan(root string, cfg *config.Config, client *registry.Client, requested []string) (*AddPlan, error) {
	order, components, err := resolveClosure(client, requested)
	if err != nil {
		return nil, err
	}

	plan := &AddPlan{
		Root:            root,
		Config:          cfg,
		Requested:       append([]string(nil), requested...),
		InstallOrder:    order,
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
		components:      components,
	}

	for _, slug := range order {
		record := components[slug]
		mergeRequirements(plan.Dependencies, record.Dependencies)
		mergeRequirements(plan.DevDependencies, record.DevDependencies)

		destinations := make(map[string]string, len(record.Files))
		for _, file := range record.Files {
			planned, err := planFile(root, cfg, client, slug, file)
			if err != nil {
				return nil, err
			}
			destinations[file.Path] = planned.Destination
			plan.Files = append(plan.Files, planned)
		}

		collectExports(plan, slug, record, destinations)
	}

	plan.BarrelPath = workspace.UnderRoot(root, cfg.Exports.Components.Barrel)
	existing, err := os.ReadFile(plan.BarrelPath)
	switch {
	case err == nil:
		plan.BarrelExisting = string(existing)
	case !errors.Is(err, fs.ErrNotExist):
		// Regenerating the barrel from nothing would drop its entries, so a
		// failed read aborts the plan.
		return nil, fmt.Errorf("reading barrel %s: %w", plan.BarrelPath, err)
	}

	plan.PackageManager = project.DetectPackageManager(root)
	if snapshot, err := project.LoadSnapshot(root); err == nil {
		plan.Snapshot = snapshot
	}

	return plan, nil
}

// resolveClosure walks internal dependencies with an explicit stack and a
// seen set, so cyclic declarations terminate and the install order is the
// discovery order. Every slug reached, requested or transitive, must exist
// in the catalog.
func resolveClosure(client *registry.Client, requested []string) ([]string, map[string]registry.ComponentRecord, error) {
	stack := make([]string, 0, len(requested))
	for i := len(requested) - 1; i >= 0; i-- {
		stack = append(stack, requested[i])
	}

	var order []string
	seen := make(map[string]bool)
	components := make(map[string]registry.ComponentRecord)

	for len(stack) > 0 {
		slug := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		record, ok, err := client.Component(slug)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrComponentNotFound, slug)
		}
		if seen[slug] {
			continue
		}
		seen[slug] = true
		order = append(order, slug)
		components[slug] = record

		for i := len(record.InternalDependencies) - 1; i >= 0; i-- {
			dep := record.InternalDependencies[i]
			if !seen[dep] {
				stack = append(stack, dep)
			}
		}
	}

	return order, components, nil
}

// mergeRequirements overlays src onto dst; a later component's specifier
// replaces an earlier one for the same package name.
func mergeRequirements(dst, src map[string]string) {
	for name, spec := range src {
		dst[name] = spec
	}
}

func planFile(root string, cfg *config.Config, client *registry.Client, slug string, file registry.ComponentFileRecord) (PlannedFile, error) {
	contents, err := client.FetchComponentFile(file.Path)
	if err != nil {
		return PlannedFile{}, fmt.Errorf("fetching %s for %s: %w", file.Path, slug, err)
	}

	planned := PlannedFile{
		Component:   slug,
		SourcePath:  file.Path,
		Destination: workspace.ResolveDestination(root, cfg, file),
		Contents:    contents,
		Apply:       true,
	}

	existing, readErr := os.ReadFile(planned.Destination)
	switch {
	case readErr == nil && bytes.Equal(existing, contents):
		planned.Existing = existing
		planned.Status = StatusUnchanged
	case readErr == nil:
		planned.Existing = existing
		planned.Status = StatusUpdate
	case errors.Is(readErr, fs.ErrNotExist):
		planned.Status = StatusCreate
	default:
		// The destination exists but its contents could not be captured;
		// treat it as a conflict so the user decides.
		planned.Unreadable = true
		planned.Status = StatusUpdate
	}

	return planned, nil
}

// collectExports derives barrel export specs for one component. Entry files
// are those tagged kind "entry"; when none is tagged, the first file with
// the component extension stands in. The first entry exports under the
// slug's PascalCase name, subsequent entries under their own file stem so
// multi-entry components never collide.
func collectExports(plan *AddPlan, slug string, record registry.ComponentRecord, destinations map[string]string) {
	var entries []string
	for _, file := range record.Files {
		if file.Kind == "entry" {
			entries = append(entries, file.Path)
		}
	}
	if len(entries) == 0 {
		for _, file := range record.Files {
			if strings.HasSuffix(file.Path, entryExtension) {
				entries = append(entries, file.Path)
				break
			}
		}
	}

	if len(entries) == 0 {
		plan.MissingEntries = append(plan.MissingEntries, slug)
	}

	for i, entry := range entries {
		name := formatExportName(slug)
		if i > 0 {
			name = formatExportName(fileStem(entry))
		}
		plan.ComponentExports = append(plan.ComponentExports, workspace.ComponentExport{
			ExportName: name,
			EntryPath:  destinations[entry],
		})
	}

	for _, file := range record.Files {
		if len(file.TypeExports) == 0 {
			continue
		}
		plan.TypeExports = append(plan.TypeExports, workspace.TypeExport{
			ExportNames: append([]string(nil), file.TypeExports...),
			EntryPath:   destinations[file.Path],
		})
	}
}

// formatExportName turns an arbitrary slug or file stem into an
// identifier-safe PascalCase name: split on non-alphanumeric ASCII, drop
// empty segments, capitalize each segment's first character.
func formatExportName(value string) string {
	var sb strings.Builder
	startSegment := true
	for _, r := range value {
		alnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !alnum {
			startSegment = true
			continue
		}
		if startSegment && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		sb.WriteRune(r)
		startSegment = false
	}
	return sb.String()
}

func fileStem(path string) string {
	base := filepath.Base(strings.ReplaceAll(path, "/", string(filepath.Separator)))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
