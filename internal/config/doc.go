// Package config loads and validates the workspace configuration file
// (motion-core.json) and builds the process-wide runtime settings. Settings
// are resolved once at startup from flags and environment; everything past
// the CLI boundary receives them as plain values.
package config
