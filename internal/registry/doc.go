// Package registry provides access to a Motion Core component catalog. A
// Client can be backed by a static in-memory catalog (tests, offline
// composition from a local file) or by a remote HTTP registry layered over a
// TTL-bound disk cache that serves stale data when the network is down.
package registry
