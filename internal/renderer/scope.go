package renderer

import "github.com/go-gl/mathgl/mgl32"

// stateScope records temporary pipeline changes so they can be undone in
// reverse order with restore.
type stateScope struct {
	c    *Context
	undo []func()
}

func (c *Context) newScope() *stateScope {
	return &stateScope{c: c}
}

func (s *stateScope) onRestore(f func()) {
	s.undo = append(s.undo, f)
}

func (s *stateScope) enable(cp Capability, on bool) {
	prev := s.c.state.enabled[cp]
	s.c.setEnabled(cp, on)
	s.onRestore(func() { s.c.setEnabled(cp, prev) })
}

func (s *stateScope) array(a ClientArray, on bool) {
	prev := s.c.state.arrays[a]
	s.c.setArray(a, on)
	s.onRestore(func() { s.c.setArray(a, prev) })
}

func (s *stateScope) combineMode(m CombineMode) {
	prev := s.c.state.combine
	s.c.setCombineMode(m)
	s.onRestore(func() { s.c.setCombineMode(prev) })
}

func (s *stateScope) depthFunc(f DepthFunc) {
	prev := s.c.state.depthFunc
	s.c.setDepthFunc(f)
	s.onRestore(func() { s.c.setDepthFunc(prev) })
}

func (s *stateScope) depthMask(write bool) {
	prev := s.c.state.depthMask
	s.c.setDepthMask(write)
	s.onRestore(func() { s.c.setDepthMask(prev) })
}

func (s *stateScope) blendFunc(src, dst BlendFactor) {
	prevSrc, prevDst := s.c.state.blendSrc, s.c.state.blendDst
	s.c.setBlendFunc(src, dst)
	s.onRestore(func() { s.c.setBlendFunc(prevSrc, prevDst) })
}

func (s *stateScope) color(col mgl32.Vec4) {
	prev := s.c.state.color
	s.c.setColor(col)
	s.onRestore(func() { s.c.setColor(prev) })
}

// matrix pushes the stack of mode and loads (or multiplies by) m. The
// model-view stack stays selected afterwards.
func (s *stateScope) matrix(mode MatrixMode, m mgl32.Mat4, load bool) {
	b := s.c.backend
	if mode != MatrixModelView {
		b.MatrixMode(mode)
	}
	b.PushMatrix()
	if load {
		b.LoadMatrix(m)
	} else {
		b.MultMatrix(m)
	}
	if mode != MatrixModelView {
		b.MatrixMode(MatrixModelView)
	}
	s.onRestore(func() {
		if mode != MatrixModelView {
			b.MatrixMode(mode)
		}
		b.PopMatrix()
		if mode != MatrixModelView {
			b.MatrixMode(MatrixModelView)
		}
	})
}

// restore undoes every recorded change, newest first.
func (s *stateScope) restore() {
	for i := len(s.undo) - 1; i >= 0; i-- {
		s.undo[i]()
	}
	s.undo = nil
}
