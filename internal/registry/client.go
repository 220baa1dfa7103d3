package registry

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const requestTimeout = 15 * time.Second

// Client exposes catalog listings and component file fetches over one of two
// backends: a static in-memory catalog or a remote HTTP registry layered on
// the scoped cache.
//
// The component-file manifest is memoized in-process after the first load.
// PreloadComponentManifest replaces the memoized manifest wholesale, whether
// or not a load already happened; it exists for tests and offline flows.
type Client struct {
	static   *Registry
	baseURL  string
	http     *http.Client
	cache    *ScopedCache
	logger   *zap.Logger
	manifest map[string]string // nil until loaded or preloaded
}

// NewStatic builds a client over an in-memory catalog.
func NewStatic(reg *Registry) *Client {
	return &Client{static: reg, logger: zap.NewNop()}
}

// NewRemote builds a client for a remote registry without caching.
func NewRemote(baseURL string, logger *zap.Logger) *Client {
	return NewRemoteCached(baseURL, nil, logger)
}

// NewRemoteCached builds a client for a remote registry backed by a scoped
// cache. A nil cache disables both the fresh-read shortcut and the stale
// fallback.
func NewRemoteCached(baseURL string, cache *ScopedCache, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
		cache:   cache,
		logger:  logger,
	}
}

// BaseURL returns the remote endpoint, or "" for static clients.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListComponents returns every catalog entry sorted by slug.
func (c *Client) ListComponents() ([]Component, error) {
	reg, err := c.loadRegistry()
	if err != nil {
		return nil, err
	}
	components := make([]Component, 0, len(reg.Components))
	for slug, record := range reg.Components {
		components = append(components, Component{Slug: slug, Record: record})
	}
	sortComponents(components)
	return components, nil
}

// Component looks up a single catalog entry by slug.
func (c *Client) Component(slug string) (ComponentRecord, bool, error) {
	reg, err := c.loadRegistry()
	if err != nil {
		return ComponentRecord{}, false, err
	}
	record, ok := reg.Components[slug]
	return record, ok, nil
}

// Summary returns catalog metadata.
func (c *Client) Summary() (Summary, error) {
	reg, err := c.loadRegistry()
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		Name:           reg.Name,
		Version:        reg.Version,
		Description:    reg.Description,
		ComponentCount: len(reg.Components),
	}, nil
}

// BaseDependencies returns the packages every workspace needs regardless of
// requested components.
func (c *Client) BaseDependencies() (BaseDependencies, error) {
	reg, err := c.loadRegistry()
	if err != nil {
		return BaseDependencies{}, err
	}
	return BaseDependencies{
		Dependencies:    reg.BaseDependencies,
		DevDependencies: reg.BaseDevDependencies,
	}, nil
}

// FetchComponentFile returns the decoded bytes for a registry-relative path
// from the component-file manifest.
func (c *Client) FetchComponentFile(path string) ([]byte, error) {
	manifest, err := c.loadComponentManifest()
	if err != nil {
		return nil, err
	}
	encoded, ok := manifest[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, path)
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, path, err)
	}
	return data, nil
}

// PreloadComponentManifest seeds (or overrides) the in-process component-file
// manifest, bypassing cache and network.
func (c *Client) PreloadComponentManifest(manifest map[string]string) {
	c.manifest = manifest
}

func (c *Client) loadRegistry() (*Registry, error) {
	if c.static != nil {
		return c.static, nil
	}

	if c.cache != nil {
		if entry, ok := c.cache.RegistryManifest(false); ok {
			if reg, err := parseRegistry(entry.Bytes); err == nil {
				return reg, nil
			}
		}
	}

	body, fetchErr := c.fetchJSON(c.baseURL + "/" + registryManifestFile)
	if fetchErr == nil {
		if c.cache != nil {
			c.cache.WriteRegistryManifest(body)
		}
		return parseRegistry(body)
	}
	return c.registryFromStaleCache(fetchErr)
}

// registryFromStaleCache is the offline fallback after a failed live fetch.
// Not-found responses propagate unchanged: a 404 means misconfiguration, and
// stale data for the wrong endpoint would be misleading.
func (c *Client) registryFromStaleCache(fetchErr error) (*Registry, error) {
	if isNotFound(fetchErr) {
		return nil, fetchErr
	}
	if c.cache != nil {
		if entry, ok := c.cache.RegistryManifest(true); ok {
			c.logger.Warn("registry request failed; falling back to cached manifest", zap.Error(fetchErr))
			return parseRegistry(entry.Bytes)
		}
	}
	return nil, fetchErr
}

func (c *Client) loadComponentManifest() (map[string]string, error) {
	if c.manifest != nil {
		return c.manifest, nil
	}

	if c.static != nil {
		c.manifest = map[string]string{}
		return c.manifest, nil
	}

	if c.cache != nil {
		if entry, ok := c.cache.ComponentsManifest(false); ok {
			if manifest, err := parseComponentManifest(entry.Bytes); err == nil {
				c.manifest = manifest
				return manifest, nil
			}
		}
	}

	body, fetchErr := c.fetchJSON(c.baseURL + "/" + componentsManifestFile)
	if fetchErr == nil {
		if c.cache != nil {
			c.cache.WriteComponentsManifest(body)
		}
		manifest, err := parseComponentManifest(body)
		if err != nil {
			return nil, err
		}
		c.manifest = manifest
		return manifest, nil
	}

	if !isNotFound(fetchErr) && c.cache != nil {
		if entry, ok := c.cache.ComponentsManifest(true); ok {
			c.logger.Warn("component manifest request failed; using cached entries", zap.Error(fetchErr))
			manifest, err := parseComponentManifest(entry.Bytes)
			if err != nil {
				return nil, err
			}
			c.manifest = manifest
			return manifest, nil
		}
	}
	return nil, fetchErr
}

func (c *Client) fetchJSON(url string) ([]byte, error) {
	resp, err := c.http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("%w: fetching %s: %v", ErrNetwork, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, url)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrNetwork, url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrNetwork, url, err)
	}
	return body, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func parseRegistry(data []byte) (*Registry, error) {
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &reg, nil
}

func parseComponentManifest(data []byte) (map[string]string, error) {
	var manifest map[string]string
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return manifest, nil
}
