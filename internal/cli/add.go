package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/motion-core/motion-cli/internal/config"
	"github.com/motion-core/motion-cli/internal/planner"
	"github.com/motion-core/motion-cli/internal/project"
	"github.com/motion-core/motion-cli/internal/registry"
	"github.com/motion-core/motion-cli/internal/reporter"
)

var (
	addDryRun bool
	addYes    bool
)

var addCmd = &cobra.Command{
	Use:   "add <component...>",
	Short: "Add components and their dependencies to the workspace",
	Long: `Add one or more components from the registry. Internal dependencies are
resolved automatically, exports are merged into the barrel, and missing npm
packages are installed through the detected package manager.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().BoolVar(&addDryRun, "dry-run", false, "Show what would change without writing anything")
	addCmd.Flags().BoolVarP(&addYes, "yes", "y", false, "Overwrite modified files without prompting")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	console := reporter.NewConsole()
	settings := config.LoadSettings()
	logger := newLogger()
	defer logger.Sync()

	root, cfg, ok, err := locateWorkspace(console)
	if err != nil || !ok {
		return err
	}

	store := registry.NewStore(settings.CacheDir, settings.RegistryTTL, settings.AssetTTL, logger)
	client, err := newRegistryClient(settings, store, logger)
	if err != nil {
		return err
	}

	plan, err := planner.BuildAddPlan(root, cfg, client, args)
	if err != nil {
		if errors.Is(err, planner.ErrComponentNotFound) {
			console.Warn(err.Error())
			console.Info("run 'motion-core list' to see available components")
			return nil
		}
		return err
	}

	for _, slug := range plan.MissingEntries {
		console.Warn(fmt.Sprintf("%s has no entry file; it will not be exported from the barrel", slug))
	}

	previewPlan(console, plan)

	mode := planner.SelectMode(
		addYes || settings.AssumeYes,
		settings.CI,
		isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	)
	proceed, err := confirmPlan(console, console, mode, addDryRun)
	if err != nil {
		return err
	}
	if !proceed {
		console.Info("aborted; no files were written")
		return nil
	}

	if err := planner.ResolveConflicts(plan, mode, addDryRun, console, console); err != nil {
		return err
	}

	installer := project.ExecInstaller{Manager: plan.PackageManager}
	outcome, err := planner.Apply(plan, addDryRun, installer)
	if err != nil {
		return err
	}

	reportOutcome(console, plan, outcome)
	return nil
}

// previewPlan shows the resolved install order and every pending write
// before the plan is confirmed.
func previewPlan(rep reporter.Reporter, plan *planner.AddPlan) {
	rep.Info(fmt.Sprintf("components to install: %s", strings.Join(plan.InstallOrder, ", ")))
	for _, file := range plan.Files {
		dest := file.Destination
		if rel, err := filepath.Rel(plan.Root, dest); err == nil {
			dest = rel
		}
		rep.Info(fmt.Sprintf("  %-9s %s", file.Status, dest))
	}
	if len(plan.Dependencies) > 0 {
		rep.Info(fmt.Sprintf("npm dependencies: %s", strings.Join(planner.FormatPackages(plan.Dependencies), " ")))
	}
	if len(plan.DevDependencies) > 0 {
		rep.Info(fmt.Sprintf("npm dev dependencies: %s", strings.Join(planner.FormatPackages(plan.DevDependencies), " ")))
	}
}

// confirmPlan gates the whole plan before any file is touched. Interactive
// sessions approve it explicitly; the automatic modes announce why they
// proceed without asking.
func confirmPlan(rep reporter.Reporter, confirm reporter.Confirmer, mode planner.Mode, dryRun bool) (bool, error) {
	if dryRun {
		rep.Info("dry run: nothing will be written")
		return true, nil
	}
	switch mode {
	case planner.ModePrompt:
		proceed, err := confirm.Confirm("Apply this plan?", true)
		if err != nil {
			return false, fmt.Errorf("reading plan confirmation: %w", err)
		}
		return proceed, nil
	case planner.ModeAssumeYes:
		rep.Info("applying without prompting (assume yes)")
	default:
		rep.Info("applying without prompting (no interactive terminal)")
	}
	return true, nil
}

func reportOutcome(rep reporter.Reporter, plan *planner.AddPlan, outcome *planner.Outcome) {
	created, updated, unchanged, skipped := outcome.Counts()

	rep.Blank()
	if outcome.DryRun {
		rep.Info(fmt.Sprintf("would create %d, update %d files (%d unchanged, %d skipped)", created, updated, unchanged, skipped))
	} else {
		rep.Info(fmt.Sprintf("created %d, updated %d files (%d unchanged, %d skipped)", created, updated, unchanged, skipped))
	}

	switch {
	case outcome.BarrelUpdated && outcome.DryRun:
		rep.Info("would update component exports")
	case outcome.BarrelUpdated:
		rep.Info("updated component exports")
	}

	reportDependencies(rep, "dependencies", outcome.Runtime)
	reportDependencies(rep, "dev dependencies", outcome.Dev)

	if !outcome.Changed() && !outcome.DryRun {
		rep.Info("no changes")
	}
}

func reportDependencies(rep reporter.Reporter, scope string, report planner.DependencyReport) {
	packages := strings.Join(report.Packages, " ")
	switch report.Status {
	case planner.DepsAlreadyInstalled:
	case planner.DepsInstalled:
		rep.Info(fmt.Sprintf("installed %s: %s", scope, packages))
	case planner.DepsDryRun:
		rep.Info(fmt.Sprintf("would install %s: %s", scope, packages))
	case planner.DepsManual:
		rep.Warn(fmt.Sprintf("no package manager detected; install %s manually: %s", scope, packages))
	case planner.DepsSkipped:
		rep.Warn(fmt.Sprintf("no readable package.json; skipped %s check", scope))
	}
}
