package project

import "strings"

// FrameworkKind classifies the workspace's Svelte setup.
type FrameworkKind string

const (
	SvelteKit        FrameworkKind = "sveltekit"
	ViteSvelte       FrameworkKind = "vite-svelte"
	UnknownFramework FrameworkKind = "unknown"
)

// FrameworkDetection summarizes the workspace support check run by init.
type FrameworkDetection struct {
	Framework         FrameworkKind
	SvelteVersion     string
	SvelteSupported   bool
	TailwindVersion   string
	TailwindSupported bool
}

// DetectFramework probes package.json for the Svelte flavor and the installed
// svelte/tailwindcss majors. Motion Core needs svelte >=5 and tailwind >=4.
func DetectFramework(root string) (*FrameworkDetection, error) {
	snapshot, err := LoadSnapshot(root)
	if err != nil {
		return nil, err
	}

	framework := UnknownFramework
	switch {
	case snapshot.Spec("@sveltejs/kit") != "":
		framework = SvelteKit
	case snapshot.Spec("@sveltejs/vite-plugin-svelte") != "" || snapshot.Spec("@sveltejs/adapter-auto") != "":
		framework = ViteSvelte
	}

	svelteVersion := snapshot.Spec("svelte")
	tailwindVersion := snapshot.Spec("tailwindcss")

	return &FrameworkDetection{
		Framework:         framework,
		SvelteVersion:     svelteVersion,
		SvelteSupported:   majorAtLeast(svelteVersion, 5),
		TailwindVersion:   tailwindVersion,
		TailwindSupported: majorAtLeast(tailwindVersion, 4),
	}, nil
}

func majorAtLeast(spec string, minimum uint64) bool {
	major, ok := parseMajor(spec)
	return ok && major >= minimum
}

// parseMajor extracts the major version from a loosely formatted specifier,
// tolerating workspace:/file: prefixes, range operators, and partial
// versions. Specs with no digits (e.g. "workspace:*", "latest") fail.
func parseMajor(spec string) (uint64, bool) {
	value := strings.TrimSpace(spec)
	for _, prefix := range []string{"workspace:", "file:"} {
		value = strings.TrimPrefix(value, prefix)
	}

	start := strings.IndexFunc(value, func(r rune) bool { return r >= '0' && r <= '9' })
	if start < 0 {
		return 0, false
	}
	value = value[start:]

	end := strings.IndexFunc(value, func(r rune) bool {
		return !(r >= '0' && r <= '9') && r != '.' && r != '-' && r != '+' &&
			!(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z')
	})
	if end >= 0 {
		value = value[:end]
	}

	version, ok := parseAnchor(value)
	if !ok {
		return 0, false
	}
	return version.Major(), true
}
