package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/motion-core/motion-cli/internal/config"
	"github.com/motion-core/motion-cli/internal/registry"
	"github.com/motion-core/motion-cli/internal/reporter"
)

var (
	cacheClear bool
	cacheForce bool
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the registry cache",
	Args:  cobra.NoArgs,
	RunE:  runCache,
}

func init() {
	cacheCmd.Flags().BoolVar(&cacheClear, "clear", false, "Delete all cached registry data")
	cacheCmd.Flags().BoolVar(&cacheForce, "force", false, "Clear without asking for confirmation")
	rootCmd.AddCommand(cacheCmd)
}

func runCache(cmd *cobra.Command, args []string) error {
	console := reporter.NewConsole()
	settings := config.LoadSettings()
	logger := newLogger()
	defer logger.Sync()

	store := registry.NewStore(settings.CacheDir, settings.RegistryTTL, settings.AssetTTL, logger)
	info := store.Info()

	if !cacheClear {
		fmt.Fprintf(cmd.OutOrStdout(), "cache directory: %s\n", info.Path)
		fmt.Fprintf(cmd.OutOrStdout(), "registry TTL:    %s\n", info.RegistryTTL)
		fmt.Fprintf(cmd.OutOrStdout(), "asset TTL:       %s\n", info.AssetTTL)
		return nil
	}

	if !cacheForce && !settings.AssumeYes {
		confirmed, err := console.Confirm(fmt.Sprintf("Delete everything under %s?", info.Path), false)
		if err != nil {
			return err
		}
		if !confirmed {
			console.Info("cache left untouched")
			return nil
		}
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	console.Info("cache cleared")
	return nil
}
