package texture

import (
	"sync"

	"graphite-raster/internal/logging"
	"graphite-raster/internal/raster"
)

// Resolver resolves a texture name to something the rasterizer can sample.
// A nil result means the name is unknown.
type Resolver interface {
	Resolve(name string) raster.Texture
}

// Map is a fixed Resolver, keyed by exact name.
type Map map[string]raster.Texture

func (m Map) Resolve(name string) raster.Texture { return m[name] }

// Cache is a concurrency-safe texture cache.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*Image
	index *Index
}

// NewCache creates a new texture cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*Image),
		index: index,
	}
}

// Resolve loads and caches a texture by name. Returns nil if the name is not
// indexed or the file fails to decode; failures are cached too.
func (c *Cache) Resolve(name string) raster.Texture {
	path, ok := c.index.ResolvePath(name)
	if !ok {
		return nil
	}

	c.mu.RLock()
	img, exists := c.items[path]
	c.mu.RUnlock()
	if !exists {
		img = c.load(path)
	}

	if img == nil {
		return nil
	}
	return img
}

func (c *Cache) load(path string) *Image {
	var tex *Image
	src, err := Load(path)
	if err != nil {
		logging.Logger().Warn("texture: load failed", "path", path, "err", err)
	} else {
		tex = NewImage(src)
		logging.Logger().Debug("texture: loaded", "path", path,
			"width", tex.width, "height", tex.height)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, exists := c.items[path]; exists {
		return existing
	}
	c.items[path] = tex
	return tex
}
