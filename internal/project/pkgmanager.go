package project

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// PackageManagerKind identifies the package manager owning a workspace.
type PackageManagerKind string

const (
	Npm     PackageManagerKind = "npm"
	Pnpm    PackageManagerKind = "pnpm"
	Yarn    PackageManagerKind = "yarn"
	Bun     PackageManagerKind = "bun"
	Unknown PackageManagerKind = "unknown"
)

// DetectPackageManager sniffs lockfiles walking upward from root. First match
// wins, in pnpm, yarn, bun, npm order.
func DetectPackageManager(root string) PackageManagerKind {
	current := root
	for {
		switch {
		case exists(filepath.Join(current, "pnpm-lock.yaml")):
			return Pnpm
		case exists(filepath.Join(current, "yarn.lock")):
			return Yarn
		case exists(filepath.Join(current, "bun.lockb")) || exists(filepath.Join(current, "bun.lock")):
			return Bun
		case exists(filepath.Join(current, "package-lock.json")):
			return Npm
		}

		parent := filepath.Dir(current)
		if parent == current {
			return Unknown
		}
		current = parent
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Installer runs the workspace's package manager to add dependencies. It is
// the single external-process capability the apply engine depends on, kept
// behind an interface so tests never spawn anything.
type Installer interface {
	Install(packages []string, dev bool, cwd string) error
}

// ExecInstaller shells out to the detected package manager.
type ExecInstaller struct {
	Manager PackageManagerKind
}

// Install adds the packages to the workspace manifest, blocking until the
// package manager exits. A non-zero exit or spawn failure is an error.
func (e ExecInstaller) Install(packages []string, dev bool, cwd string) error {
	if len(packages) == 0 {
		return nil
	}

	name, args := installCommand(e.Manager, dev)
	if name == "" {
		return fmt.Errorf("package manager not supported: %s", e.Manager)
	}

	cmd := exec.Command(name, append(args, packages...)...)
	cmd.Dir = cwd
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}

func installCommand(manager PackageManagerKind, dev bool) (string, []string) {
	switch manager {
	case Npm:
		args := []string{"install"}
		if dev {
			args = append(args, "--save-dev")
		}
		return "npm", args
	case Pnpm:
		args := []string{"add"}
		if dev {
			args = append(args, "-D")
		}
		return "pnpm", args
	case Yarn:
		args := []string{"add"}
		if dev {
			args = append(args, "-D")
		}
		return "yarn", args
	case Bun:
		args := []string{"add"}
		if dev {
			args = append(args, "-d")
		}
		return "bun", args
	}
	return "", nil
}
