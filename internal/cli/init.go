package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/motion-core/motion-cli/internal/config"
	"github.com/motion-core/motion-cli/internal/planner"
	"github.com/motion-core/motion-cli/internal/project"
	"github.com/motion-core/motion-cli/internal/registry"
	"github.com/motion-core/motion-cli/internal/reporter"
	"github.com/motion-core/motion-cli/internal/workspace"
)

var (
	initDryRun bool
	initForce  bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Set up motion-core in the current project",
	Long: `Initialize the current Svelte project for motion-core: write the default
motion-core.json, create the alias directories, install the base package
dependencies, and merge the design tokens into the Tailwind entry CSS.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initDryRun, "dry-run", false, "Show what would change without writing anything")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing motion-core.json with defaults")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	console := reporter.NewConsole()
	settings := config.LoadSettings()
	logger := newLogger()
	defer logger.Sync()

	root, err := os.Getwd()
	if err != nil {
		return err
	}

	detection, err := project.DetectFramework(root)
	if err != nil {
		console.Warn("no readable package.json here; run init from a Svelte project root")
		return nil
	}
	if detection.Framework == project.UnknownFramework {
		console.Warn("this does not look like a Svelte project (no @sveltejs/kit or vite-plugin-svelte)")
		return nil
	}
	if !detection.SvelteSupported {
		console.Warn(fmt.Sprintf("motion-core needs svelte 5 or newer (found %q)", detection.SvelteVersion))
		return nil
	}
	if !detection.TailwindSupported {
		console.Warn(fmt.Sprintf("tailwindcss 4 or newer not detected (found %q); design tokens will not be synced", detection.TailwindVersion))
	}

	cfg, err := initConfig(root, console)
	if err != nil {
		return err
	}

	store := registry.NewStore(settings.CacheDir, settings.RegistryTTL, settings.AssetTTL, logger)
	client, err := newRegistryClient(settings, store, logger)
	if err != nil {
		return err
	}

	report, err := workspace.Scaffold(root, cfg, client, store, initDryRun)
	if err != nil {
		if !errors.Is(err, registry.ErrAssetNotFound) {
			return err
		}
		console.Warn("registry does not publish the cn helper; skipping")
	}
	if report != nil && report.Any() {
		for _, dir := range report.Directories {
			console.Info("created " + dir + string(filepath.Separator))
		}
		for _, file := range report.Files {
			console.Info("created " + file)
		}
	}

	if err := installBaseDependencies(root, cfg, client, console); err != nil {
		return err
	}

	if detection.TailwindSupported {
		status, err := workspace.SyncTailwindTokens(root, cfg, client, initDryRun)
		if err != nil {
			return fmt.Errorf("syncing tailwind tokens: %w", err)
		}
		reportTailwindSync(console, status)
	}

	console.Blank()
	console.Info("workspace ready; run 'motion-core add <component>' to install components")
	return nil
}

// initConfig writes the default configuration, or keeps an existing one
// unless --force was given.
func initConfig(root string, rep reporter.Reporter) (*config.Config, error) {
	configPath := filepath.Join(root, config.FileName)
	existing, err := config.TryLoad(configPath)
	if err != nil {
		return nil, err
	}

	if existing != nil && !initForce {
		rep.Info(config.FileName + " already exists; keeping it (use --force to reset)")
		return existing, nil
	}

	cfg := config.Default()
	if initDryRun {
		rep.Info("would write " + config.FileName)
		return cfg, nil
	}
	if err := config.Save(configPath, cfg); err != nil {
		return nil, err
	}
	rep.Info("wrote " + config.FileName)
	return cfg, nil
}

// installBaseDependencies reconciles the registry's base dependency maps the
// same way add reconciles component dependencies, via an export-free plan.
func installBaseDependencies(root string, cfg *config.Config, client *registry.Client, rep reporter.Reporter) error {
	base, err := client.BaseDependencies()
	if err != nil {
		return fmt.Errorf("loading base dependencies: %w", err)
	}
	if len(base.Dependencies) == 0 && len(base.DevDependencies) == 0 {
		return nil
	}

	plan := &planner.AddPlan{
		Root:            root,
		Config:          cfg,
		Dependencies:    base.Dependencies,
		DevDependencies: base.DevDependencies,
		PackageManager:  project.DetectPackageManager(root),
	}
	if snapshot, err := project.LoadSnapshot(root); err == nil {
		plan.Snapshot = snapshot
	}

	outcome, err := planner.Apply(plan, initDryRun, project.ExecInstaller{Manager: plan.PackageManager})
	if err != nil {
		return err
	}
	reportDependencies(rep, "base dependencies", outcome.Runtime)
	reportDependencies(rep, "base dev dependencies", outcome.Dev)
	return nil
}

func reportTailwindSync(rep reporter.Reporter, status workspace.TailwindSyncStatus) {
	switch status.Kind {
	case workspace.TailwindMissingConfig:
		rep.Warn("no tailwind.css path configured; skipping token sync")
	case workspace.TailwindMissingFile:
		rep.Warn(fmt.Sprintf("tailwind entry %s does not exist; skipping token sync", status.Target))
	case workspace.TailwindAlreadyPresent:
	case workspace.TailwindDryRun:
		rep.Info(fmt.Sprintf("would merge design tokens into %s", status.Target))
	case workspace.TailwindUpdated:
		rep.Info(fmt.Sprintf("merged design tokens into %s", status.Target))
	}
}
