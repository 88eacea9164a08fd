package engine

import (
	"fmt"

	"Gopher64/internal/combiner"
	"Gopher64/internal/renderer"

	"go.uber.org/multierr"
)

// Batch is one draw request: a combiner signature, the textures it samples
// and the triangles to draw.
type Batch struct {
	Signature  combiner.Signature
	Textures   [renderer.NumTextureUnits]renderer.TextureID
	Vertices   []renderer.Vertex
	Triangles  int
	UseAlpha   bool
	ZModeDecal bool
}

// drawTarget is the part of the renderer Context a frame needs.
type drawTarget interface {
	LookupProgram(sig combiner.Signature) (*renderer.Program, bool)
	CreateProgram(sig combiner.Signature) (*renderer.Program, error)
	LoadProgram(p *renderer.Program)
	ActiveProgram() *renderer.Program
	SelectTexture(unit int, tex renderer.TextureID) error
	SetUseAlpha(on bool)
	SetZModeDecal(on bool)
	Draw(buf []renderer.Vertex, numTris int) error
}

// DrawBatch resolves the program of b, binds its textures and draws it.
func DrawBatch(t drawTarget, b Batch) error {
	p, ok := t.LookupProgram(b.Signature)
	if ok {
		if p != t.ActiveProgram() {
			t.LoadProgram(p)
		}
	} else {
		var err error
		if p, err = t.CreateProgram(b.Signature); err != nil {
			return err
		}
	}

	used := p.Features.UsedTextures
	for unit := range b.Textures {
		if !used[unit] {
			continue
		}
		if err := t.SelectTexture(unit, b.Textures[unit]); err != nil {
			return err
		}
	}
	t.SetUseAlpha(b.UseAlpha)
	t.SetZModeDecal(b.ZModeDecal)
	if err := t.Draw(b.Vertices, b.Triangles); err != nil {
		return fmt.Errorf("signature %v: %w", b.Signature, err)
	}
	return nil
}

// DrawFrame draws every batch, combining failures instead of stopping at
// the first one.
func DrawFrame(t drawTarget, frame []Batch) error {
	var err error
	for _, b := range frame {
		err = multierr.Append(err, DrawBatch(t, b))
	}
	return err
}
