// Package project inspects the target workspace: which package manager owns
// it, what package.json already provides, whether the framework is supported,
// and whether an installed dependency specifier satisfies a required one.
package project
