package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/motion-core/motion-cli/internal/config"
	"github.com/motion-core/motion-cli/internal/registry"
	"github.com/motion-core/motion-cli/internal/reporter"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var registryOverride string

var rootCmd = &cobra.Command{
	Use:   "motion-core",
	Short: "Install Motion Core components into a Svelte workspace",
	Long: `motion-core copies reusable Svelte component bundles from a registry into
your project, keeps the generated export barrel in sync, and reconciles the
package dependencies each component needs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&registryOverride, "registry", "", "Registry URL or local catalog file (overrides MOTION_CORE_REGISTRY_URL)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	if err := rootCmd.Execute(); err != nil {
		reporter.NewConsole().Error(err.Error())
		return err
	}
	return nil
}

// newLogger builds the warn-level console logger shared by the cache and
// registry client. Logging failures degrade to a no-op logger.
func newLogger() *zap.Logger {
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		zap.WarnLevel,
	)
	return zap.New(core)
}

// newRegistryClient builds the client for the resolved registry source. A
// source without an http(s) scheme is treated as a local catalog file, which
// bypasses the cache entirely.
func newRegistryClient(settings config.Settings, store *registry.Store, logger *zap.Logger) (*registry.Client, error) {
	source := settings.RegistryURL
	if registryOverride != "" {
		source = registryOverride
	}
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return registry.LoadRegistryFile(source)
	}
	return registry.NewRemoteCached(source, store.Scoped(source), logger), nil
}

// locateWorkspace finds the workspace root and loads its configuration. A
// missing configuration is reported as a warning, not an error; callers get
// ok=false and should exit cleanly without changes.
func locateWorkspace(rep reporter.Reporter) (root string, cfg *config.Config, ok bool, err error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", nil, false, err
	}

	root, configPath := config.Locate(cwd)
	cfg, err = config.TryLoad(configPath)
	if err != nil {
		return "", nil, false, err
	}
	if cfg == nil {
		rep.Warn("no motion-core.json found in this directory or any parent")
		rep.Info("run 'motion-core init' to set up the workspace")
		return "", nil, false, nil
	}
	return root, cfg, true, nil
}
