package project

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

func TestDetectPackageManager(t *testing.T) {
	tests := []struct {
		name     string
		lockfile string
		want     PackageManagerKind
	}{
		{"pnpm", "pnpm-lock.yaml", Pnpm},
		{"yarn", "yarn.lock", Yarn},
		{"bun text lock", "bun.lock", Bun},
		{"bun binary lock", "bun.lockb", Bun},
		{"npm", "package-lock.json", Npm},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			touch(t, filepath.Join(root, tt.lockfile))
			if got := DetectPackageManager(root); got != tt.want {
				t.Errorf("DetectPackageManager = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectPackageManager_WalksUp(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "pnpm-lock.yaml"))
	nested := filepath.Join(root, "apps", "web")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("creating nested dir: %v", err)
	}

	if got := DetectPackageManager(nested); got != Pnpm {
		t.Errorf("DetectPackageManager(nested) = %v, want %v", got, Pnpm)
	}
}

func TestDetectPackageManager_PnpmWinsOverNpm(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "package-lock.json"))
	touch(t, filepath.Join(root, "pnpm-lock.yaml"))

	if got := DetectPackageManager(root); got != Pnpm {
		t.Errorf("DetectPackageManager = %v, want %v", got, Pnpm)
	}
}

func TestDetectPackageManager_NoneFound(t *testing.T) {
	if got := DetectPackageManager(t.TempDir()); got != Unknown {
		t.Errorf("DetectPackageManager = %v, want %v", got, Unknown)
	}
}

func TestInstallCommand(t *testing.T) {
	tests := []struct {
		manager  PackageManagerKind
		dev      bool
		wantBin  string
		wantArgs []string
	}{
		{Npm, false, "npm", []string{"install"}},
		{Npm, true, "npm", []string{"install", "--save-dev"}},
		{Pnpm, true, "pnpm", []string{"add", "-D"}},
		{Yarn, true, "yarn", []string{"add", "-D"}},
		{Bun, true, "bun", []string{"add", "-d"}},
	}

	for _, tt := range tests {
		bin, args := installCommand(tt.manager, tt.dev)
		if bin != tt.wantBin {
			t.Errorf("installCommand(%v, %v) bin = %q, want %q", tt.manager, tt.dev, bin, tt.wantBin)
		}
		if len(args) != len(tt.wantArgs) {
			t.Fatalf("installCommand(%v, %v) args = %v, want %v", tt.manager, tt.dev, args, tt.wantArgs)
		}
		for i := range args {
			if args[i] != tt.wantArgs[i] {
				t.Errorf("installCommand(%v, %v) args = %v, want %v", tt.manager, tt.dev, args, tt.wantArgs)
				break
			}
		}
	}
}
