// Package cli defines the Cobra command tree for motion-core. Each file in
// this package registers one top-level command (init, add, list, cache,
// version) with the root command. Command implementations handle flag
// parsing, environment detection, and output; planning and apply logic lives
// in the internal packages they delegate to.
package cli
