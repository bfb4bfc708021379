package vg

import "errors"

// Phase is the lifecycle state of a render context.
type Phase uint8

const (
	// PhaseIdle means no operation has been issued yet.
	PhaseIdle Phase = iota
	// PhaseDrawing means at least one operation has been issued.
	PhaseDrawing
	// PhaseFinished means Finish has completed; the context is closed.
	PhaseFinished
)

// Snapshot is one saved entry of the graphics state: the values Restore
// brings back. ClipDepth tells the backend how many clip layers to pop.
type Snapshot struct {
	Transform Affine
	Stroke    StrokeStyle
	ClipDepth int
}

// GraphicsState implements the state machine shared by all backends: the
// save/restore snapshot stack, the current transform and stroke style,
// clip-depth bookkeeping, the Idle/Drawing/Finished phase transitions and
// deferred-error accumulation. Backends embed it and layer their painting
// on top.
type GraphicsState struct {
	phase     Phase
	transform Affine
	stroke    StrokeStyle
	clipDepth int
	stack     []Snapshot
	status    error
}

// NewGraphicsState returns an idle state with the identity transform and
// default stroke style.
func NewGraphicsState() GraphicsState {
	return GraphicsState{
		transform: Identity(),
		stroke:    DefaultStrokeStyle(),
	}
}

// Phase returns the current lifecycle phase.
func (g *GraphicsState) Phase() Phase {
	return g.phase
}

// Begin marks the start of an operation, transitioning Idle to Drawing.
// It returns ErrUnbalancedState once the context is finished.
func (g *GraphicsState) Begin() error {
	if g.phase == PhaseFinished {
		return ErrUnbalancedState
	}
	g.phase = PhaseDrawing
	return nil
}

// Save pushes the current transform, stroke style and clip depth.
func (g *GraphicsState) Save() error {
	if err := g.Begin(); err != nil {
		return err
	}
	g.stack = append(g.stack, Snapshot{
		Transform: g.transform,
		Stroke:    g.stroke,
		ClipDepth: g.clipDepth,
	})
	return nil
}

// Restore pops the most recent snapshot and returns it so the backend can
// unwind its clip stack to snap.ClipDepth. With no matching Save it
// returns ErrUnbalancedState and leaves the state unchanged.
func (g *GraphicsState) Restore() (Snapshot, error) {
	if err := g.Begin(); err != nil {
		return Snapshot{}, err
	}
	if len(g.stack) == 0 {
		return Snapshot{}, ErrUnbalancedState
	}
	snap := g.stack[len(g.stack)-1]
	g.stack = g.stack[:len(g.stack)-1]
	g.transform = snap.Transform
	g.stroke = snap.Stroke
	g.clipDepth = snap.ClipDepth
	return snap, nil
}

// SaveDepth returns the number of outstanding saves.
func (g *GraphicsState) SaveDepth() int {
	return len(g.stack)
}

// Transform composes a with the current transform. After Finish the
// transform is left untouched and ErrUnbalancedState accumulates in the
// status.
func (g *GraphicsState) Transform(a Affine) {
	if err := g.Begin(); err != nil {
		g.SetError(err)
		return
	}
	g.transform = g.transform.Mul(a)
}

// CurrentTransform returns the active transform.
func (g *GraphicsState) CurrentTransform() Affine {
	return g.transform
}

// StrokeStyle returns the active stroke style.
func (g *GraphicsState) StrokeStyle() StrokeStyle {
	return g.stroke
}

// SetStrokeStyle replaces the active stroke style. After Finish the
// style is left untouched and ErrUnbalancedState accumulates in the
// status.
func (g *GraphicsState) SetStrokeStyle(s StrokeStyle) {
	if err := g.Begin(); err != nil {
		g.SetError(err)
		return
	}
	g.stroke = s
}

// PushClip records one clip layer and returns the new depth.
func (g *GraphicsState) PushClip() int {
	g.clipDepth++
	return g.clipDepth
}

// ClipDepth returns the number of active clip layers.
func (g *GraphicsState) ClipDepth() int {
	return g.clipDepth
}

// SetError accumulates a deferred error. Multiple errors are joined;
// nil is ignored.
func (g *GraphicsState) SetError(err error) {
	if err == nil {
		return
	}
	g.status = errors.Join(g.status, err)
}

// Err returns the accumulated deferred error without clearing it.
// Buffering backends use it to decide whether to go inert.
func (g *GraphicsState) Err() error {
	return g.status
}

// Status returns the accumulated deferred error and clears it.
func (g *GraphicsState) Status() error {
	err := g.status
	g.status = nil
	return err
}

// FinishState closes the state machine. Unbalanced saves are folded into
// the returned status as ErrUnbalancedState. Calling FinishState twice
// returns ErrUnbalancedState.
func (g *GraphicsState) FinishState() error {
	if g.phase == PhaseFinished {
		return ErrUnbalancedState
	}
	g.phase = PhaseFinished
	if len(g.stack) > 0 {
		g.SetError(ErrUnbalancedState)
		g.stack = nil
	}
	return g.Status()
}
