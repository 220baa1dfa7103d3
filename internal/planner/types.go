package planner

import (
	"errors"

	"github.com/motion-core/motion-cli/internal/config"
	"github.com/motion-core/motion-cli/internal/project"
	"github.com/motion-core/motion-cli/internal/registry"
	"github.com/motion-core/motion-cli/internal/workspace"
)

// ErrComponentNotFound reports an unknown slug anywhere in the dependency
// closure, not just among the requested components.
var ErrComponentNotFound = errors.New("component not found")

// FileStatus classifies a planned file against on-disk state.
type FileStatus int

const (
	StatusCreate FileStatus = iota
	StatusUpdate
	StatusUnchanged
)

func (s FileStatus) String() string {
	switch s {
	case StatusCreate:
		return "create"
	case StatusUpdate:
		return "update"
	case StatusUnchanged:
		return "unchanged"
	}
	return "unknown"
}

// PlannedFile is one pending file write. Apply starts true and is flipped to
// false only when the user declines an overwrite during conflict resolution.
type PlannedFile struct {
	Component   string
	SourcePath  string
	Destination string
	Contents    []byte
	Existing    []byte
	Unreadable  bool
	Status      FileStatus
	Apply       bool
}

// AddPlan is the complete, read-only description of what an add command will
// change. It is built once per invocation and consumed once by Apply.
type AddPlan struct {
	Root      string
	Config    *config.Config
	Requested []string

	InstallOrder []string
	Files        []PlannedFile

	ComponentExports []workspace.ComponentExport
	TypeExports      []workspace.TypeExport

	Dependencies    map[string]string
	DevDependencies map[string]string

	BarrelPath     string
	BarrelExisting string

	PackageManager project.PackageManagerKind
	Snapshot       *project.PackageSnapshot

	// MissingEntries lists components that contributed no entry file and so
	// have no barrel export. Callers surface these as warnings.
	MissingEntries []string

	components map[string]registry.ComponentRecord
}

// Component returns the catalog record for a slug in the install order.
func (p *AddPlan) Component(slug string) (registry.ComponentRecord, bool) {
	record, ok := p.components[slug]
	return record, ok
}

// FileAction is the per-file result of an apply pass, re-derived against the
// disk state at write time.
type FileAction int

const (
	ActionCreated FileAction = iota
	ActionUpdated
	ActionUnchanged
	ActionSkipped
)

func (a FileAction) String() string {
	switch a {
	case ActionCreated:
		return "created"
	case ActionUpdated:
		return "updated"
	case ActionUnchanged:
		return "unchanged"
	case ActionSkipped:
		return "skipped"
	}
	return "unknown"
}

// FileResult pairs a planned file with what the apply pass did to it.
type FileResult struct {
	File   *PlannedFile
	Action FileAction
}

// DependencyStatus describes how one dependency scope (runtime or dev) was
// reconciled.
type DependencyStatus int

const (
	// DepsAlreadyInstalled means every requirement was satisfied.
	DepsAlreadyInstalled DependencyStatus = iota
	// DepsInstalled means the package manager was invoked successfully.
	DepsInstalled
	// DepsDryRun means missing packages were reported without installing.
	DepsDryRun
	// DepsManual means packages are missing but no package manager was
	// detected, so the user must install them by hand.
	DepsManual
	// DepsSkipped means no package manifest could be read, so satisfaction
	// could not be judged and no install was attempted.
	DepsSkipped
)

// DependencyReport is the outcome for one dependency scope. Packages holds
// the unsatisfied requirements as name@specifier strings.
type DependencyReport struct {
	Status   DependencyStatus
	Packages []string
}

// Outcome summarizes an apply pass.
type Outcome struct {
	DryRun        bool
	Files         []FileResult
	BarrelUpdated bool
	Runtime       DependencyReport
	Dev           DependencyReport
}

// Changed reports whether the command mutated the workspace.
func (o *Outcome) Changed() bool {
	if o.DryRun {
		return false
	}
	for _, result := range o.Files {
		if result.Action == ActionCreated || result.Action == ActionUpdated {
			return true
		}
	}
	return o.BarrelUpdated ||
		o.Runtime.Status == DepsInstalled ||
		o.Dev.Status == DepsInstalled
}

// Counts tallies file results by action.
func (o *Outcome) Counts() (created, updated, unchanged, skipped int) {
	for _, result := range o.Files {
		switch result.Action {
		case ActionCreated:
			created++
		case ActionUpdated:
			updated++
		case ActionUnchanged:
			unchanged++
		case ActionSkipped:
			skipped++
		}
	}
	return
}
