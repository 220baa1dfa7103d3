// Package workspace handles everything that touches files inside a target
// project: safe path resolution, the generated export barrel, directory
// scaffolding, and the Tailwind token sync. Registry entries are untrusted
// input, so every registry-relative path passes through SanitizeRelative
// before it is joined under the workspace root.
package workspace

import (
	"path/filepath"
	"strings"
)

// SanitizeRelative strips parent-directory references, current-directory
// references, root markers, and volume prefixes from a registry-relative
// path, keeping only normal named segments in order. The result is always a
// relative path, so joining it under a root can never escape that root.
func SanitizeRelative(path string) string {
	path = strings.TrimPrefix(path, filepath.VolumeName(path))
	path = filepath.ToSlash(path)

	var kept []string
	for _, segment := range strings.Split(path, "/") {
		switch segment {
		case "", ".", "..":
			continue
		}
		kept = append(kept, segment)
	}
	return filepath.Join(kept...)
}

// UnderRoot sanitizes a configured relative path and joins it under root.
// An empty sanitized result yields root itself.
func UnderRoot(root, configured string) string {
	relative := SanitizeRelative(configured)
	if relative == "" {
		return root
	}
	return filepath.Join(root, relative)
}
