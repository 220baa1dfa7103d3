package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writePackageJSON(t *testing.T, root, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, "package.json"), []byte(contents), 0644); err != nil {
		t.Fatalf("writing package.json: %v", err)
	}
}

func TestDetectFramework_SvelteKit(t *testing.T) {
	root := t.TempDir()
	writePackageJSON(t, root, `{
		"devDependencies": {
			"@sveltejs/kit": "^2.0.0",
			"svelte": "^5.1.0",
			"tailwindcss": "^4.0.0"
		}
	}`)

	detection, err := DetectFramework(root)
	if err != nil {
		t.Fatalf("DetectFramework error: %v", err)
	}
	if detection.Framework != SvelteKit {
		t.Errorf("Framework = %v, want %v", detection.Framework, SvelteKit)
	}
	if !detection.SvelteSupported {
		t.Error("svelte ^5.1.0 should be supported")
	}
	if !detection.TailwindSupported {
		t.Error("tailwindcss ^4.0.0 should be supported")
	}
}

func TestDetectFramework_ViteSvelte(t *testing.T) {
	root := t.TempDir()
	writePackageJSON(t, root, `{
		"devDependencies": {
			"@sveltejs/vite-plugin-svelte": "^4.0.0",
			"svelte": "^4.2.0"
		}
	}`)

	detection, err := DetectFramework(root)
	if err != nil {
		t.Fatalf("DetectFramework error: %v", err)
	}
	if detection.Framework != ViteSvelte {
		t.Errorf("Framework = %v, want %v", detection.Framework, ViteSvelte)
	}
	if detection.SvelteSupported {
		t.Error("svelte ^4.2.0 must not be supported")
	}
	if detection.TailwindSupported {
		t.Error("absent tailwindcss must not be supported")
	}
}

func TestDetectFramework_NotSvelte(t *testing.T) {
	root := t.TempDir()
	writePackageJSON(t, root, `{"dependencies": {"react": "^18.0.0"}}`)

	detection, err := DetectFramework(root)
	if err != nil {
		t.Fatalf("DetectFramework error: %v", err)
	}
	if detection.Framework != UnknownFramework {
		t.Errorf("Framework = %v, want %v", detection.Framework, UnknownFramework)
	}
}

func TestDetectFramework_NoManifest(t *testing.T) {
	if _, err := DetectFramework(t.TempDir()); err == nil {
		t.Fatal("expected error without package.json")
	}
}

func TestParseMajor(t *testing.T) {
	tests := []struct {
		spec string
		want uint64
		ok   bool
	}{
		{"^5.1.0", 5, true},
		{"~4.0.0", 4, true},
		{">=3", 3, true},
		{"workspace:^5.0.0", 5, true},
		{"5", 5, true},
		{"latest", 0, false},
		{"workspace:*", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			major, ok := parseMajor(tt.spec)
			if ok != tt.ok {
				t.Fatalf("parseMajor(%q) ok = %v, want %v", tt.spec, ok, tt.ok)
			}
			if ok && major != tt.want {
				t.Errorf("parseMajor(%q) = %d, want %d", tt.spec, major, tt.want)
			}
		})
	}
}

func TestSnapshotSpec(t *testing.T) {
	root := t.TempDir()
	writePackageJSON(t, root, `{
		"dependencies": {"svelte": "^5.0.0"},
		"devDependencies": {"svelte": "^4.0.0", "vitest": "^2.0.0"}
	}`)

	snapshot, err := LoadSnapshot(root)
	if err != nil {
		t.Fatalf("LoadSnapshot error: %v", err)
	}
	if got := snapshot.Spec("svelte"); got != "^5.0.0" {
		t.Errorf("runtime deps should win: Spec(svelte) = %q", got)
	}
	if got := snapshot.Spec("vitest"); got != "^2.0.0" {
		t.Errorf("Spec(vitest) = %q, want ^2.0.0", got)
	}
	if got := snapshot.Spec("absent"); got != "" {
		t.Errorf("Spec(absent) = %q, want empty", got)
	}

	var nilSnapshot *PackageSnapshot
	if got := nilSnapshot.Spec("svelte"); got != "" {
		t.Errorf("nil snapshot Spec = %q, want empty", got)
	}
}
