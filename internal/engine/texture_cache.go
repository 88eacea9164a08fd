package engine

import (
	"Gopher64/internal/logger"
	"Gopher64/internal/renderer"

	"go.uber.org/zap"
)

// TextureStats provides debugging information about a TextureCache.
type TextureStats struct {
	Loaded      int
	CacheHits   int
	CacheMisses int
	Active      int
}

// TextureCache shares file-backed textures by path and frees them once the
// last reference is released. It is used from the render thread only.
type TextureCache struct {
	target   textureTarget
	byPath   map[string]renderer.TextureID
	refCount map[renderer.TextureID]int
	paths    map[renderer.TextureID]string
	stats    TextureStats
}

func NewTextureCache(target textureTarget) *TextureCache {
	return &TextureCache{
		target:   target,
		byPath:   make(map[string]renderer.TextureID),
		refCount: make(map[renderer.TextureID]int),
		paths:    make(map[renderer.TextureID]string),
	}
}

// Load returns the texture for path, uploading it on unit on first use.
// Every successful call takes a reference.
func (tc *TextureCache) Load(unit int, path string) (renderer.TextureID, error) {
	if tex, ok := tc.byPath[path]; ok {
		tc.refCount[tex]++
		tc.stats.CacheHits++
		logger.Log.Debug("Texture cache hit",
			zap.String("path", path),
			zap.Uint32("textureID", uint32(tex)),
			zap.Int("refCount", tc.refCount[tex]))
		return tex, nil
	}

	tc.stats.CacheMisses++
	tex, err := LoadTextureFile(tc.target, unit, path)
	if err != nil {
		return 0, err
	}
	tc.byPath[path] = tex
	tc.refCount[tex] = 1
	tc.paths[tex] = path
	tc.stats.Loaded++
	tc.stats.Active++
	return tex, nil
}

// Release drops one reference to tex and deletes it when none remain.
func (tc *TextureCache) Release(tex renderer.TextureID) {
	n, ok := tc.refCount[tex]
	if !ok {
		logger.Log.Warn("Attempted to release unknown texture", zap.Uint32("textureID", uint32(tex)))
		return
	}
	n--
	if n > 0 {
		tc.refCount[tex] = n
		return
	}

	tc.target.DeleteTexture(tex)
	delete(tc.byPath, tc.paths[tex])
	delete(tc.refCount, tex)
	delete(tc.paths, tex)
	tc.stats.Active--
	logger.Log.Debug("Texture freed", zap.Uint32("textureID", uint32(tex)))
}

// Stats returns a snapshot of the cache counters.
func (tc *TextureCache) Stats() TextureStats { return tc.stats }
