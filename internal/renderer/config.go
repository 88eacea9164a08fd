package renderer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"Gopher64/internal/logger"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Config holds the tunables of a rendering Context.
type Config struct {
	// Program pool and resampling limits
	ProgramPoolSize int  `json:"program_pool_size"`
	ScratchSide     int  `json:"scratch_side"` // texels per axis of the resample buffer
	MinTextureSide  int  `json:"min_texture_side"`
	MaxTextureSide  int  `json:"max_texture_side"`
	ForcePOT        bool `json:"force_pot"` // resample even when the device reports NPOT support

	AlphaDiscardRef float32    `json:"alpha_discard_ref"`
	DecalOffset     mgl32.Vec3 `json:"decal_offset"` // depth bias emulation for decal z-mode

	// Optional strategies, all off by default
	MixByVertexColor bool `json:"mix_by_vertex_color"`
	MixTexturePass   bool `json:"mix_texture_pass"`
	FogPass          bool `json:"fog_pass"`

	FogColor mgl32.Vec4 `json:"fog_color"`
	FogStart float32    `json:"fog_start"`
	FogEnd   float32    `json:"fog_end"`

	ViewportWidth  int `json:"viewport_width"`
	ViewportHeight int `json:"viewport_height"`
}

// DefaultConfig returns the limits and offsets the renderer was tuned with.
func DefaultConfig() Config {
	return Config{
		ProgramPoolSize: 64,
		ScratchSide:     64,
		MinTextureSide:  8,
		MaxTextureSide:  256,
		AlphaDiscardRef: 1.0 / 3.0,
		DecalOffset:     mgl32.Vec3{0, 2.1, 0.9},
		FogColor:        mgl32.Vec4{1, 0, 0, 0.5},
		FogStart:        0,
		FogEnd:          256,
		ViewportWidth:   640,
		ViewportHeight:  480,
	}
}

// Validate reports settings the Context cannot work with.
func (c Config) Validate() error {
	switch {
	case c.ProgramPoolSize <= 0:
		return fmt.Errorf("config: program_pool_size must be positive, got %d", c.ProgramPoolSize)
	case c.ScratchSide <= 0:
		return fmt.Errorf("config: scratch_side must be positive, got %d", c.ScratchSide)
	case c.MinTextureSide <= 0 || !isPOT(c.MinTextureSide):
		return fmt.Errorf("config: min_texture_side must be a power of two, got %d", c.MinTextureSide)
	case c.MaxTextureSide < c.MinTextureSide || !isPOT(c.MaxTextureSide):
		return fmt.Errorf("config: max_texture_side must be a power of two >= min_texture_side, got %d", c.MaxTextureSide)
	case c.ViewportWidth <= 0 || c.ViewportHeight <= 0:
		return fmt.Errorf("config: viewport must be positive, got %dx%d", c.ViewportWidth, c.ViewportHeight)
	}
	return nil
}

// LoadConfig reads a JSON config file over the defaults. A missing file
// yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Log.Info("No renderer config found, using defaults", zap.String("path", path))
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// SaveConfig writes cfg as indented JSON.
func SaveConfig(path string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
