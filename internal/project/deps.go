package project

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// SpecSatisfies reports whether an installed dependency specifier already
// covers a required one. The installed side is treated as a range; the
// required side is reduced to the minimal concrete version it implies, and
// the check passes when the installed range accepts that version.
//
// This is a deliberately conservative superset heuristic, not range
// intersection: upper bounds in a compound requirement are ignored, an exact
// string match always passes, and any parse failure fails closed so the
// dependency gets (re)installed rather than silently skipped.
func SpecSatisfies(installed, required string) bool {
	installed = strings.TrimSpace(installed)
	required = strings.TrimSpace(required)
	if installed == "" || required == "" {
		return false
	}
	if installed == required {
		return true
	}

	installedRange, err := semver.NewConstraint(installed)
	if err != nil {
		return false
	}
	minimal, ok := minimalVersion(required)
	if !ok {
		return false
	}
	return installedRange.Check(minimal)
}

// minimalVersion derives the smallest concrete version a requirement can
// mean. Comparators are scanned in declaration order; the first one whose
// operator anchors a lower bound wins. Strict lower bounds are bumped one
// patch level. A bare-wildcard requirement means version 0.0.0.
func minimalVersion(spec string) (*semver.Version, bool) {
	if _, err := semver.NewConstraint(spec); err != nil {
		return nil, false
	}

	for _, comparator := range strings.Split(spec, ",") {
		comparator = strings.TrimSpace(comparator)
		if comparator == "" {
			continue
		}

		op, rest := splitOperator(comparator)
		switch op {
		case "", "=", "^", "~", ">=":
			if isBareWildcard(rest) {
				return semver.New(0, 0, 0, "", ""), true
			}
			return parseAnchor(rest)
		case ">":
			version, ok := parseAnchor(rest)
			if !ok {
				return nil, false
			}
			return semver.New(version.Major(), version.Minor(), version.Patch()+1, "", ""), true
		case "<", "<=":
			continue
		}
	}
	return nil, false
}

func splitOperator(comparator string) (op, rest string) {
	for _, candidate := range []string{">=", "<=", ">", "<", "=", "^", "~"} {
		if strings.HasPrefix(comparator, candidate) {
			return candidate, strings.TrimSpace(comparator[len(candidate):])
		}
	}
	return "", comparator
}

func isBareWildcard(value string) bool {
	switch value {
	case "*", "x", "X":
		return true
	}
	return false
}

// parseAnchor reads a comparator's version part, defaulting missing minor and
// patch segments (and wildcard segments) to zero.
func parseAnchor(value string) (*semver.Version, bool) {
	value = strings.TrimPrefix(value, "v")

	core, pre, _ := strings.Cut(value, "-")
	segments := strings.Split(core, ".")
	for len(segments) < 3 {
		segments = append(segments, "0")
	}
	for i, segment := range segments {
		if isBareWildcard(segment) || segment == "" {
			segments[i] = "0"
		}
	}

	normalized := strings.Join(segments[:3], ".")
	if pre != "" {
		normalized += "-" + pre
	}

	version, err := semver.NewVersion(normalized)
	if err != nil {
		return nil, false
	}
	return version, true
}
