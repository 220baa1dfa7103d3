package planner

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/motion-core/motion-cli/internal/project"
	"github.com/motion-core/motion-cli/internal/workspace"
)

// Apply executes an already-resolved plan: writes approved files, merges the
// barrel, and reconciles runtime then dev dependencies. With dryRun set it
// performs zero mutation and reports what would happen instead.
func Apply(plan *AddPlan, dryRun bool, installer project.Installer) (*Outcome, error) {
	outcome := &Outcome{DryRun: dryRun}

	for i := range plan.Files {
		file := &plan.Files[i]
		action, err := applyFile(file, dryRun)
		if err != nil {
			return nil, err
		}
		outcome.Files = append(outcome.Files, FileResult{File: file, Action: action})
	}

	rendered, changed := workspace.RenderBarrel(plan.Root, plan.Config, plan.ComponentExports, plan.TypeExports, plan.BarrelExisting)
	if changed && !dryRun {
		if err := writeWorkspaceFile(plan.BarrelPath, []byte(rendered)); err != nil {
			return nil, fmt.Errorf("writing barrel: %w", err)
		}
	}
	outcome.BarrelUpdated = changed

	runtime, err := reconcileDependencies(plan, plan.Dependencies, false, dryRun, installer)
	if err != nil {
		return nil, err
	}
	outcome.Runtime = runtime

	dev, err := reconcileDependencies(plan, plan.DevDependencies, true, dryRun, installer)
	if err != nil {
		return nil, err
	}
	outcome.Dev = dev

	return outcome, nil
}

// applyFile re-classifies against the disk state at write time, so an edit
// made between planning and applying is still reported accurately.
func applyFile(file *PlannedFile, dryRun bool) (FileAction, error) {
	if !file.Apply {
		return ActionSkipped, nil
	}

	current, readErr := os.ReadFile(file.Destination)
	switch {
	case readErr == nil && bytes.Equal(current, file.Contents):
		return ActionUnchanged, nil
	case readErr == nil:
		if !dryRun {
			if err := workspace.ReplaceFile(file.Destination, file.Contents); err != nil {
				return 0, err
			}
		}
		return ActionUpdated, nil
	case errors.Is(readErr, fs.ErrNotExist):
		if !dryRun {
			if err := writeWorkspaceFile(file.Destination, file.Contents); err != nil {
				return 0, err
			}
		}
		return ActionCreated, nil
	default:
		return 0, fmt.Errorf("reading %s: %w", file.Destination, readErr)
	}
}

func writeWorkspaceFile(path string, contents []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if _, err := os.Stat(path); err == nil {
		return workspace.ReplaceFile(path, contents)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// reconcileDependencies computes the unsatisfied subset of one requirement
// scope and settles it: nothing missing means already installed, a missing
// package manifest means the check is skipped, an unknown package manager
// means manual installation, and otherwise the installer runs. Installer
// failures are hard failures.
func reconcileDependencies(plan *AddPlan, required map[string]string, dev, dryRun bool, installer project.Installer) (DependencyReport, error) {
	if len(required) == 0 {
		return DependencyReport{Status: DepsAlreadyInstalled}, nil
	}
	if plan.Snapshot == nil {
		return DependencyReport{Status: DepsSkipped, Packages: FormatPackages(required)}, nil
	}

	missing := make(map[string]string)
	for name, spec := range required {
		if !project.SpecSatisfies(plan.Snapshot.Spec(name), spec) {
			missing[name] = spec
		}
	}
	if len(missing) == 0 {
		return DependencyReport{Status: DepsAlreadyInstalled}, nil
	}

	packages := FormatPackages(missing)
	switch {
	case plan.PackageManager == project.Unknown:
		return DependencyReport{Status: DepsManual, Packages: packages}, nil
	case dryRun:
		return DependencyReport{Status: DepsDryRun, Packages: packages}, nil
	}

	if err := installer.Install(packages, dev, plan.Root); err != nil {
		scope := "dependencies"
		if dev {
			scope = "dev dependencies"
		}
		return DependencyReport{}, fmt.Errorf("installing %s: %w", scope, err)
	}
	return DependencyReport{Status: DepsInstalled, Packages: packages}, nil
}

// FormatPackages renders canonical name@specifier strings sorted by name.
// An empty specifier means any version.
func FormatPackages(specs map[string]string) []string {
	packages := make([]string, 0, len(specs))
	for name, spec := range specs {
		if spec == "" {
			spec = "*"
		}
		packages = append(packages, name+"@"+spec)
	}
	sort.Strings(packages)
	return packages
}
