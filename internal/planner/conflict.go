package planner

import (
	"fmt"
	"path/filepath"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/motion-core/motion-cli/internal/reporter"
)

// Mode controls how update conflicts are resolved.
type Mode int

const (
	// ModePrompt asks per file whether to overwrite.
	ModePrompt Mode = iota
	// ModeAssumeYes overwrites every conflict without asking.
	ModeAssumeYes
	// ModeNonInteractive behaves like ModeAssumeYes; it exists so callers
	// can distinguish an explicit flag from an inferred environment.
	ModeNonInteractive
)

// SelectMode picks the resolution mode from boundary-detected facts, in
// precedence order: an explicit assume-yes request, then a CI environment,
// then terminal interactivity.
func SelectMode(assumeYes, ci, interactive bool) Mode {
	switch {
	case assumeYes:
		return ModeAssumeYes
	case ci:
		return ModeNonInteractive
	case interactive:
		return ModePrompt
	default:
		return ModeNonInteractive
	}
}

// ResolveConflicts walks every planned update in plan order, shows what
// would change, and settles the per-file apply flag. Dry runs only announce
// that a prompt would happen. Declining an overwrite affects that file
// alone.
func ResolveConflicts(plan *AddPlan, mode Mode, dryRun bool, rep reporter.Reporter, confirm reporter.Confirmer) error {
	autoNoticeShown := false

	for i := range plan.Files {
		file := &plan.Files[i]
		if file.Status != StatusUpdate {
			continue
		}

		display := relativeTo(plan.Root, file.Destination)
		rep.Warn(fmt.Sprintf("%s differs from the registry version", display))
		showDiff(file, rep)

		switch {
		case dryRun:
			rep.Info(fmt.Sprintf("would prompt before overwriting %s", display))
		case mode == ModePrompt:
			// Keeping the local file is the safe answer.
			overwrite, err := confirm.Confirm(fmt.Sprintf("Overwrite %s?", display), false)
			if err != nil {
				return fmt.Errorf("reading confirmation for %s: %w", display, err)
			}
			if !overwrite {
				file.Apply = false
				rep.Info(fmt.Sprintf("keeping local %s", display))
			}
		default:
			if !autoNoticeShown {
				rep.Warn("overwriting modified files automatically")
				autoNoticeShown = true
			}
		}
	}
	return nil
}

func showDiff(file *PlannedFile, rep reporter.Reporter) {
	if file.Unreadable {
		rep.Warn("existing content unreadable, no diff available")
		return
	}
	if !utf8.Valid(file.Existing) || !utf8.Valid(file.Contents) {
		rep.Info("binary content, no diff available")
		return
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(file.Existing)),
		B:        difflib.SplitLines(string(file.Contents)),
		FromFile: "local",
		ToFile:   "registry",
		Context:  3,
	})
	if err != nil || diff == "" {
		return
	}
	rep.Info(diff)
}

func relativeTo(root, target string) string {
	if rel, err := filepath.Rel(root, target); err == nil {
		return rel
	}
	return target
}
