package workspace

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/motion-core/motion-cli/internal/config"
	"github.com/motion-core/motion-cli/internal/registry"
)

const cnHelperRegistryPath = "utils/cn.ts"

// ScaffoldReport lists what Scaffold created (or would create in dry-run).
type ScaffoldReport struct {
	Directories []string
	Files       []string
}

// Any reports whether scaffolding changed anything.
func (r *ScaffoldReport) Any() bool {
	return len(r.Directories) > 0 || len(r.Files) > 0
}

// Scaffold ensures the alias directories exist and seeds the cn class-merge
// helper. When the live registry cannot serve the helper, a stale cached
// component manifest is tried before giving up.
func Scaffold(root string, cfg *config.Config, client *registry.Client, cache *registry.Store, dryRun bool) (*ScaffoldReport, error) {
	report := &ScaffoldReport{}

	for _, alias := range []string{
		cfg.Aliases.Components.Filesystem,
		cfg.Aliases.Helpers.Filesystem,
		cfg.Aliases.Utils.Filesystem,
		cfg.Aliases.Assets.Filesystem,
	} {
		dir := UnderRoot(root, alias)
		created, err := ensureDirectory(dir, dryRun)
		if err != nil {
			return nil, err
		}
		if created {
			report.Directories = append(report.Directories, relativeDisplay(root, dir))
		}
	}

	cnPath := filepath.Join(UnderRoot(root, cfg.Aliases.Utils.Filesystem), "cn.ts")
	if _, err := os.Stat(cnPath); err == nil {
		return report, nil
	}
	if dryRun {
		report.Files = append(report.Files, relativeDisplay(root, cnPath))
		return report, nil
	}

	helper, err := fetchCnHelper(client, cache)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(cnPath), 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", filepath.Dir(cnPath), err)
	}
	if err := os.WriteFile(cnPath, helper, 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", cnPath, err)
	}
	report.Files = append(report.Files, relativeDisplay(root, cnPath))
	return report, nil
}

func fetchCnHelper(client *registry.Client, cache *registry.Store) ([]byte, error) {
	helper, primaryErr := client.FetchComponentFile(cnHelperRegistryPath)
	if primaryErr == nil {
		return helper, nil
	}

	if helper, ok := cnHelperFromCache(client, cache); ok {
		return helper, nil
	}
	return nil, fmt.Errorf("downloading helper %s: %w", cnHelperRegistryPath, primaryErr)
}

// cnHelperFromCache reuses a stale cached component manifest when the live
// registry fetch failed.
func cnHelperFromCache(client *registry.Client, cache *registry.Store) ([]byte, bool) {
	if cache == nil || client.BaseURL() == "" {
		return nil, false
	}
	scoped := cache.Scoped(client.BaseURL())
	entry, ok := scoped.ComponentsManifest(true)
	if !ok {
		return nil, false
	}

	var manifest map[string]string
	if err := json.Unmarshal(entry.Bytes, &manifest); err != nil {
		return nil, false
	}
	client.PreloadComponentManifest(manifest)

	helper, err := client.FetchComponentFile(cnHelperRegistryPath)
	if err != nil {
		return nil, false
	}
	return helper, true
}

func ensureDirectory(path string, dryRun bool) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if dryRun {
		return true, nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return false, fmt.Errorf("creating %s: %w", path, err)
	}
	return true, nil
}
