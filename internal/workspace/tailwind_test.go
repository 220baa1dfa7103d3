package workspace

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/motion-core/motion-cli/internal/config"
	"github.com/motion-core/motion-cli/internal/registry"
)

const tokenBundle = `@import "tailwindcss";

@utility card-highlight {
  box-shadow: 0 0 0 1px var(--mc-border);
}
`

func tokenClient(t *testing.T, bundle string) *registry.Client {
	t.Helper()
	client := registry.NewStatic(&registry.Registry{Name: "motion-core"})
	client.PreloadComponentManifest(map[string]string{
		CSSTokenRegistryPath: base64.StdEncoding.EncodeToString([]byte(bundle)),
	})
	return client
}

func writeAppCSS(t *testing.T, root, contents string) string {
	t.Helper()
	path := filepath.Join(root, "src", "app.css")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating css dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing app.css: %v", err)
	}
	return path
}

func TestSyncTailwindTokens_InsertsAfterImports(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	path := writeAppCSS(t, root, "@import \"tailwindcss\";\n\nbody { margin: 0; }\n")

	status, err := SyncTailwindTokens(root, cfg, tokenClient(t, tokenBundle), false)
	if err != nil {
		t.Fatalf("SyncTailwindTokens error: %v", err)
	}
	if status.Kind != TailwindUpdated {
		t.Fatalf("Kind = %v, want TailwindUpdated", status.Kind)
	}

	updated, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading back: %v", err)
	}
	text := string(updated)
	if !strings.Contains(text, CSSTokenSentinel) {
		t.Error("token block missing from synced file")
	}
	if strings.Count(text, "@import \"tailwindcss\";") != 1 {
		t.Error("tailwind import duplicated")
	}
	if strings.Index(text, "@import") > strings.Index(text, CSSTokenSentinel) {
		t.Error("tokens inserted before the import header")
	}
	if !strings.Contains(text, "body { margin: 0; }") {
		t.Error("existing rules dropped")
	}
}

func TestSyncTailwindTokens_Idempotent(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	path := writeAppCSS(t, root, "@import \"tailwindcss\";\n")
	client := tokenClient(t, tokenBundle)

	if _, err := SyncTailwindTokens(root, cfg, client, false); err != nil {
		t.Fatalf("first sync error: %v", err)
	}
	first, _ := os.ReadFile(path)

	status, err := SyncTailwindTokens(root, cfg, client, false)
	if err != nil {
		t.Fatalf("second sync error: %v", err)
	}
	if status.Kind != TailwindAlreadyPresent {
		t.Fatalf("Kind = %v, want TailwindAlreadyPresent", status.Kind)
	}
	second, _ := os.ReadFile(path)
	if string(first) != string(second) {
		t.Error("second sync modified the file")
	}
}

func TestSyncTailwindTokens_DryRun(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	path := writeAppCSS(t, root, "@import \"tailwindcss\";\n")

	status, err := SyncTailwindTokens(root, cfg, tokenClient(t, tokenBundle), true)
	if err != nil {
		t.Fatalf("SyncTailwindTokens error: %v", err)
	}
	if status.Kind != TailwindDryRun {
		t.Fatalf("Kind = %v, want TailwindDryRun", status.Kind)
	}

	contents, _ := os.ReadFile(path)
	if strings.Contains(string(contents), CSSTokenSentinel) {
		t.Error("dry run wrote the file")
	}
}

func TestSyncTailwindTokens_MissingFile(t *testing.T) {
	status, err := SyncTailwindTokens(t.TempDir(), config.Default(), tokenClient(t, tokenBundle), false)
	if err != nil {
		t.Fatalf("SyncTailwindTokens error: %v", err)
	}
	if status.Kind != TailwindMissingFile {
		t.Fatalf("Kind = %v, want TailwindMissingFile", status.Kind)
	}
}

func TestSyncTailwindTokens_MissingConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Tailwind.CSS = ""

	status, err := SyncTailwindTokens(t.TempDir(), cfg, tokenClient(t, tokenBundle), false)
	if err != nil {
		t.Fatalf("SyncTailwindTokens error: %v", err)
	}
	if status.Kind != TailwindMissingConfig {
		t.Fatalf("Kind = %v, want TailwindMissingConfig", status.Kind)
	}
}

func TestSyncTailwindTokens_EmptyBundle(t *testing.T) {
	root := t.TempDir()
	writeAppCSS(t, root, "@import \"tailwindcss\";\n")

	_, err := SyncTailwindTokens(root, config.Default(), tokenClient(t, "@import \"tailwindcss\";\n\n\n"), false)
	if err != ErrTokensEmpty {
		t.Fatalf("err = %v, want ErrTokensEmpty", err)
	}
}

func TestScaffold(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	client := registry.NewStatic(&registry.Registry{Name: "motion-core"})
	client.PreloadComponentManifest(map[string]string{
		"utils/cn.ts": base64.StdEncoding.EncodeToString([]byte("export const cn = () => \"\";\n")),
	})

	report, err := Scaffold(root, cfg, client, nil, false)
	if err != nil {
		t.Fatalf("Scaffold error: %v", err)
	}
	if !report.Any() {
		t.Fatal("fresh workspace scaffold should create something")
	}

	for _, dir := range []string{
		cfg.Aliases.Components.Filesystem,
		cfg.Aliases.Helpers.Filesystem,
		cfg.Aliases.Utils.Filesystem,
		cfg.Aliases.Assets.Filesystem,
	} {
		if _, err := os.Stat(UnderRoot(root, dir)); err != nil {
			t.Errorf("alias directory %s missing: %v", dir, err)
		}
	}
	if _, err := os.Stat(filepath.Join(UnderRoot(root, cfg.Aliases.Utils.Filesystem), "cn.ts")); err != nil {
		t.Errorf("cn helper missing: %v", err)
	}

	again, err := Scaffold(root, cfg, client, nil, false)
	if err != nil {
		t.Fatalf("second Scaffold error: %v", err)
	}
	if again.Any() {
		t.Errorf("second scaffold should be a no-op, got %+v", again)
	}
}
