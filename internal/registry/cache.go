package registry

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

const (
	registryManifestFile   = "registry.json"
	componentsManifestFile = "components.json"

	// staleMaxAge caps how old a cache entry may be and still serve as an
	// offline fallback.
	staleMaxAge = 30 * 24 * time.Hour
)

// Store is the on-disk cache root shared by all registry scopes.
type Store struct {
	root        string
	registryTTL time.Duration
	assetTTL    time.Duration
	logger      *zap.Logger
}

// CacheInfo describes the store for the cache command.
type CacheInfo struct {
	Path        string
	RegistryTTL time.Duration
	AssetTTL    time.Duration
}

// CachedData is raw manifest bytes plus whether they are within their TTL.
// Stale data (fresh=false) is only handed out when the caller opted in.
type CachedData struct {
	Bytes []byte
	Fresh bool
}

// NewStore creates a cache store rooted at dir. The root directory is created
// eagerly; failure to create it is logged and later reads simply miss.
func NewStore(dir string, registryTTL, assetTTL time.Duration, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := &Store{
		root:        dir,
		registryTTL: registryTTL,
		assetTTL:    assetTTL,
		logger:      logger,
	}
	store.ensureRoot()
	return store
}

// Info reports the cache location and TTLs.
func (s *Store) Info() CacheInfo {
	return CacheInfo{Path: s.root, RegistryTTL: s.registryTTL, AssetTTL: s.assetTTL}
}

// Scoped namespaces the store for one registry source so multiple registries
// never collide. The namespace is URL-safe base64 of the source identifier.
func (s *Store) Scoped(source string) *ScopedCache {
	encoded := base64.RawURLEncoding.EncodeToString([]byte(source))
	return &ScopedCache{
		dir:         filepath.Join(s.root, "registry-"+encoded),
		registryTTL: s.registryTTL,
		assetTTL:    s.assetTTL,
		logger:      s.logger,
	}
}

// Clear deletes the entire cache root and recreates it empty.
func (s *Store) Clear() error {
	if _, err := os.Stat(s.root); err == nil {
		if err := os.RemoveAll(s.root); err != nil {
			return err
		}
	}
	s.ensureRoot()
	return nil
}

func (s *Store) ensureRoot() {
	if err := os.MkdirAll(s.root, 0755); err != nil {
		s.logger.Warn("failed to create cache dir", zap.String("path", s.root), zap.Error(err))
	}
}

// ScopedCache persists the two manifest blobs for a single registry source.
type ScopedCache struct {
	dir         string
	registryTTL time.Duration
	assetTTL    time.Duration
	logger      *zap.Logger
}

// RegistryManifest reads the cached catalog manifest.
func (c *ScopedCache) RegistryManifest(allowStale bool) (CachedData, bool) {
	return c.readFile(filepath.Join(c.dir, registryManifestFile), c.registryTTL, allowStale)
}

// WriteRegistryManifest persists the catalog manifest. Best-effort: failures
// are logged, never propagated.
func (c *ScopedCache) WriteRegistryManifest(data []byte) {
	c.writeFile(filepath.Join(c.dir, registryManifestFile), data)
}

// ComponentsManifest reads the cached component-file manifest.
func (c *ScopedCache) ComponentsManifest(allowStale bool) (CachedData, bool) {
	return c.readFile(filepath.Join(c.dir, componentsManifestFile), c.assetTTL, allowStale)
}

// WriteComponentsManifest persists the component-file manifest, best-effort.
func (c *ScopedCache) WriteComponentsManifest(data []byte) {
	c.writeFile(filepath.Join(c.dir, componentsManifestFile), data)
}

func (c *ScopedCache) readFile(path string, ttl time.Duration, allowStale bool) (CachedData, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return CachedData{}, false
	}
	age := time.Since(info.ModTime())

	if age <= ttl {
		data, err := os.ReadFile(path)
		if err != nil {
			return CachedData{}, false
		}
		return CachedData{Bytes: data, Fresh: true}, true
	}

	if allowStale && age <= staleMaxAge {
		data, err := os.ReadFile(path)
		if err != nil {
			return CachedData{}, false
		}
		return CachedData{Bytes: data, Fresh: false}, true
	}

	return CachedData{}, false
}

func (c *ScopedCache) writeFile(path string, data []byte) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		c.logger.Warn("failed to create cache scope dir", zap.String("path", c.dir), zap.Error(err))
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		c.logger.Warn("failed to persist cache entry", zap.String("path", path), zap.Error(err))
	}
}
