package renderer

import (
	"errors"
	"fmt"

	"Gopher64/internal/combiner"
	"Gopher64/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrPoolFull  = errors.New("renderer: program pool is full")
	ErrNoProgram = errors.New("renderer: no program loaded")
)

// Program is the cached pipeline configuration of one combiner signature.
type Program struct {
	Signature combiner.Signature
	Features  combiner.Features
	Category  combiner.Category
	// TextureOrder[0] is the primary unit; only meaningful for two textures.
	TextureOrder [2]int

	configured bool
}

// UsesTexture reports whether either texture slot is sampled.
func (p *Program) UsesTexture() bool {
	return p.Features.UsedTextures[0] || p.Features.UsedTextures[1]
}

// Configured reports whether the one-time combine state has been applied
// since the program was last loaded.
func (p *Program) Configured() bool { return p.configured }

// programPool stores programs by value in a slice that never grows past its
// initial capacity, so pointers into it stay valid for the pool's lifetime.
type programPool struct {
	programs []Program
}

func newProgramPool(capacity int) programPool {
	return programPool{programs: make([]Program, 0, capacity)}
}

func (pp *programPool) lookup(sig combiner.Signature) *Program {
	for i := range pp.programs {
		if pp.programs[i].Signature == sig {
			return &pp.programs[i]
		}
	}
	return nil
}

func (pp *programPool) add(p Program) (*Program, error) {
	if len(pp.programs) == cap(pp.programs) {
		return nil, fmt.Errorf("%w: %d programs, adding %v", ErrPoolFull, cap(pp.programs), p.Signature)
	}
	pp.programs = append(pp.programs, p)
	return &pp.programs[len(pp.programs)-1], nil
}

// LookupProgram returns the cached program for sig, if any.
func (c *Context) LookupProgram(sig combiner.Signature) (*Program, bool) {
	p := c.pool.lookup(sig)
	return p, p != nil
}

// CreateProgram builds the program for sig, stores it and loads it.
// Callers must only create signatures LookupProgram did not find. On error
// neither the pool nor the loaded program changes.
func (c *Context) CreateProgram(sig combiner.Signature) (*Program, error) {
	features := c.extractor.Extract(sig)
	category, order, err := combiner.Classify(features)
	if err != nil {
		return nil, fmt.Errorf("signature %v: %w", sig, err)
	}

	p, err := c.pool.add(Program{
		Signature:    sig,
		Features:     features,
		Category:     category,
		TextureOrder: order,
	})
	if err != nil {
		logger.Log.Error("Program pool exhausted", zap.Stringer("signature", sig), zap.Error(err))
		return nil, err
	}

	logger.Log.Debug("Program created",
		zap.Stringer("signature", sig),
		zap.Stringer("category", category),
		zap.Int("numInputs", features.NumInputs),
		zap.Int("poolSize", len(c.pool.programs)))
	if reason := DrawOverrideReason(sig); reason != "" {
		logger.Log.Info("Program uses compatibility override",
			zap.Stringer("signature", sig),
			zap.String("reason", reason))
	}

	c.LoadProgram(p)
	return p, nil
}

// ResolveProgram returns the cached program for sig, creating it on first use,
// and loads it unless it is already the active program.
func (c *Context) ResolveProgram(sig combiner.Signature) (*Program, error) {
	if p, ok := c.LookupProgram(sig); ok {
		if p != c.active {
			c.LoadProgram(p)
		}
		return p, nil
	}
	return c.CreateProgram(sig)
}

// LoadProgram makes p the active program. Its one-time state is applied again
// on the next draw.
func (c *Context) LoadProgram(p *Program) {
	c.active = p
	if p != nil {
		p.configured = false
	}
}

// UnloadProgram clears the active program if it is p, or unconditionally when
// p is nil.
func (c *Context) UnloadProgram(p *Program) {
	if c.active != nil && (p == nil || c.active == p) {
		c.active.configured = false
		c.active = nil
	}
}

// ActiveProgram returns the loaded program or nil.
func (c *Context) ActiveProgram() *Program { return c.active }

// ProgramCount returns the number of cached programs.
func (c *Context) ProgramCount() int { return len(c.pool.programs) }

// ProgramInfo reports the vertex input count and texture slots of p.
func ProgramInfo(p *Program) (numInputs int, usedTextures [2]bool) {
	return p.Features.NumInputs, p.Features.UsedTextures
}
