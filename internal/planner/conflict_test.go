package planner

import (
	"path/filepath"
	"testing"

	"github.com/motion-core/motion-cli/internal/reporter"
)

// scriptedConfirmer answers prompts from a fixed script.
type scriptedConfirmer struct {
	answers []bool
	asked   int
}

func (s *scriptedConfirmer) Confirm(prompt string, defaultYes bool) (bool, error) {
	if s.asked >= len(s.answers) {
		return defaultYes, nil
	}
	answer := s.answers[s.asked]
	s.asked++
	return answer, nil
}

func TestSelectMode(t *testing.T) {
	tests := []struct {
		name        string
		assumeYes   bool
		ci          bool
		interactive bool
		want        Mode
	}{
		{"assume yes wins over everything", true, true, true, ModeAssumeYes},
		{"ci wins over tty", false, true, true, ModeNonInteractive},
		{"tty prompts", false, false, true, ModePrompt},
		{"default non-interactive", false, false, false, ModeNonInteractive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SelectMode(tt.assumeYes, tt.ci, tt.interactive); got != tt.want {
				t.Errorf("SelectMode(%v, %v, %v) = %v, want %v", tt.assumeYes, tt.ci, tt.interactive, got, tt.want)
			}
		})
	}
}

// conflictPlan builds a plan with two update conflicts and one create.
func conflictPlan(t *testing.T) *AddPlan {
	t.Helper()
	root := t.TempDir()
	return &AddPlan{
		Root: root,
		Files: []PlannedFile{
			{
				Component:   "card",
				Destination: filepath.Join(root, "card", "Card.svelte"),
				Contents:    []byte("incoming card"),
				Existing:    []byte("local card"),
				Status:      StatusUpdate,
				Apply:       true,
			},
			{
				Component:   "modal",
				Destination: filepath.Join(root, "modal", "Modal.svelte"),
				Contents:    []byte("incoming modal"),
				Existing:    []byte("local modal"),
				Status:      StatusUpdate,
				Apply:       true,
			},
			{
				Component:   "grid",
				Destination: filepath.Join(root, "grid", "Grid.svelte"),
				Contents:    []byte("new grid"),
				Status:      StatusCreate,
				Apply:       true,
			},
		},
	}
}

func TestResolveConflicts_InteractiveDeclineIsPerFile(t *testing.T) {
	plan := conflictPlan(t)
	rep := &reporter.Memory{}
	confirmer := &scriptedConfirmer{answers: []bool{false, true}}

	if err := ResolveConflicts(plan, ModePrompt, false, rep, confirmer); err != nil {
		t.Fatalf("ResolveConflicts error: %v", err)
	}

	if plan.Files[0].Apply {
		t.Error("declined file must have Apply=false")
	}
	if !plan.Files[1].Apply {
		t.Error("accepted file must keep Apply=true")
	}
	if !plan.Files[2].Apply {
		t.Error("non-conflicting file must never be prompted")
	}
	if confirmer.asked != 2 {
		t.Errorf("asked = %d, want 2 (one per conflict)", confirmer.asked)
	}
}

// An exhausted script answers with the prompt default, which must keep the
// local file.
func TestResolveConflicts_PromptDefaultsToKeepLocal(t *testing.T) {
	plan := conflictPlan(t)
	rep := &reporter.Memory{}
	confirmer := &scriptedConfirmer{}

	if err := ResolveConflicts(plan, ModePrompt, false, rep, confirmer); err != nil {
		t.Fatalf("ResolveConflicts error: %v", err)
	}

	if plan.Files[0].Apply || plan.Files[1].Apply {
		t.Error("default answer must decline the overwrite")
	}
	if !plan.Files[2].Apply {
		t.Error("non-conflicting file must stay applied")
	}
}

func TestResolveConflicts_AutoNoticeShownOnce(t *testing.T) {
	plan := conflictPlan(t)
	rep := &reporter.Memory{}

	if err := ResolveConflicts(plan, ModeNonInteractive, false, rep, nil); err != nil {
		t.Fatalf("ResolveConflicts error: %v", err)
	}

	notices := 0
	for _, line := range rep.Lines() {
		if line.Text == "overwriting modified files automatically" {
			notices++
		}
	}
	if notices != 1 {
		t.Errorf("auto-overwrite notice shown %d times, want exactly 1", notices)
	}
	for i, file := range plan.Files {
		if !file.Apply {
			t.Errorf("file %d: auto mode must not flip Apply", i)
		}
	}
}

func TestResolveConflicts_DryRunOnlyAnnounces(t *testing.T) {
	plan := conflictPlan(t)
	rep := &reporter.Memory{}

	if err := ResolveConflicts(plan, ModePrompt, true, rep, nil); err != nil {
		t.Fatalf("ResolveConflicts error: %v", err)
	}

	if !rep.Contains("would prompt before overwriting") {
		t.Error("dry run must announce the pending prompt")
	}
	for i, file := range plan.Files {
		if !file.Apply {
			t.Errorf("file %d: dry run must not flip Apply", i)
		}
	}
}

func TestResolveConflicts_ShowsUnifiedDiff(t *testing.T) {
	plan := conflictPlan(t)
	rep := &reporter.Memory{}

	if err := ResolveConflicts(plan, ModeAssumeYes, false, rep, nil); err != nil {
		t.Fatalf("ResolveConflicts error: %v", err)
	}
	if !rep.Contains("-local card") || !rep.Contains("+incoming card") {
		t.Errorf("diff hunks missing from output: %+v", rep.Lines())
	}
}

func TestResolveConflicts_BinaryContent(t *testing.T) {
	plan := conflictPlan(t)
	plan.Files[0].Existing = []byte{0xff, 0xfe, 0x00}

	rep := &reporter.Memory{}
	if err := ResolveConflicts(plan, ModeAssumeYes, false, rep, nil); err != nil {
		t.Fatalf("ResolveConflicts error: %v", err)
	}
	if !rep.Contains("binary content") {
		t.Errorf("binary note missing: %+v", rep.Lines())
	}
}

func TestResolveConflicts_UnreadableExisting(t *testing.T) {
	plan := conflictPlan(t)
	plan.Files[0].Existing = nil
	plan.Files[0].Unreadable = true

	rep := &reporter.Memory{}
	if err := ResolveConflicts(plan, ModeAssumeYes, false, rep, nil); err != nil {
		t.Fatalf("ResolveConflicts error: %v", err)
	}
	if !rep.Contains("unreadable") {
		t.Errorf("unreadable note missing: %+v", rep.Lines())
	}
}
