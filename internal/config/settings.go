package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultRegistryURL is the production registry endpoint.
	DefaultRegistryURL = "https://registry.motion-core.dev"

	defaultRegistryTTL = 10 * time.Minute
	defaultAssetTTL    = 24 * time.Hour
)

// Settings is the runtime configuration resolved once at process start.
// Cache TTLs and confirmation behavior are carried here instead of being read
// from the environment deep inside the core packages.
type Settings struct {
	RegistryURL string
	CacheDir    string
	RegistryTTL time.Duration
	AssetTTL    time.Duration
	AssumeYes   bool
	CI          bool
}

// LoadSettings binds the MOTION_CORE environment surface through viper and
// resolves defaults. It never fails: unparseable values fall back to defaults.
func LoadSettings() Settings {
	v := viper.New()
	v.SetEnvPrefix("MOTION_CORE")
	v.AutomaticEnv()
	v.SetDefault("registry_url", DefaultRegistryURL)
	v.SetDefault("cache_ttl_ms", int64(defaultRegistryTTL/time.Millisecond))
	v.SetDefault("asset_cache_ttl_ms", int64(defaultAssetTTL/time.Millisecond))

	settings := Settings{
		RegistryURL: v.GetString("registry_url"),
		CacheDir:    v.GetString("cache_dir"),
		RegistryTTL: time.Duration(v.GetInt64("cache_ttl_ms")) * time.Millisecond,
		AssetTTL:    time.Duration(v.GetInt64("asset_cache_ttl_ms")) * time.Millisecond,
		AssumeYes:   v.GetBool("cli_assume_yes"),
		CI:          os.Getenv("CI") != "",
	}

	if settings.RegistryTTL <= 0 {
		settings.RegistryTTL = defaultRegistryTTL
	}
	if settings.AssetTTL <= 0 {
		settings.AssetTTL = defaultAssetTTL
	}
	if settings.CacheDir == "" {
		settings.CacheDir = defaultCacheDir()
	}
	return settings
}

func defaultCacheDir() string {
	if base, err := os.UserCacheDir(); err == nil {
		return filepath.Join(base, "motion-core")
	}
	return filepath.Join(os.TempDir(), "motion-core")
}
