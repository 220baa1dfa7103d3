package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const yamlCatalog = `name: motion-core
version: 1.4.0
baseDependencies:
  "@motionone/dom": ^10.0.0
components:
  card:
    name: Card
    category: surfaces
    files:
      - path: components/card/Card.svelte
        kind: entry
        typeExports: [CardProps]
    internalDependencies: []
`

func writeRegistryFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestLoadRegistryFile_YAML(t *testing.T) {
	client, err := LoadRegistryFile(writeRegistryFile(t, "catalog.yaml", yamlCatalog))
	if err != nil {
		t.Fatalf("LoadRegistryFile error: %v", err)
	}

	record, ok, err := client.Component("card")
	if err != nil || !ok {
		t.Fatalf("Component(card) = %v, %v", ok, err)
	}
	if record.Name != "Card" || record.Category != "surfaces" {
		t.Errorf("record = %+v", record)
	}
	if len(record.Files) != 1 || record.Files[0].Kind != "entry" {
		t.Fatalf("files = %+v", record.Files)
	}
	if len(record.Files[0].TypeExports) != 1 || record.Files[0].TypeExports[0] != "CardProps" {
		t.Errorf("typeExports = %v", record.Files[0].TypeExports)
	}

	base, err := client.BaseDependencies()
	if err != nil {
		t.Fatalf("BaseDependencies error: %v", err)
	}
	if base.Dependencies["@motionone/dom"] != "^10.0.0" {
		t.Errorf("baseDependencies = %v", base.Dependencies)
	}
}

func TestLoadRegistryFile_JSON(t *testing.T) {
	path := writeRegistryFile(t, "catalog.json", `{"name":"motion-core","version":"1.0.0","components":{}}`)
	client, err := LoadRegistryFile(path)
	if err != nil {
		t.Fatalf("LoadRegistryFile error: %v", err)
	}
	summary, err := client.Summary()
	if err != nil || summary.Name != "motion-core" {
		t.Errorf("Summary = %+v, %v", summary, err)
	}
}

func TestLoadRegistryFile_BadExtension(t *testing.T) {
	path := writeRegistryFile(t, "catalog.toml", "name = 'x'")
	if _, err := LoadRegistryFile(path); !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestLoadRegistryFile_Missing(t *testing.T) {
	if _, err := LoadRegistryFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
