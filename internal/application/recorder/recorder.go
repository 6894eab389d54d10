// Package recorder turns live pointer gestures on the play board into an
// ActionSequence.
package recorder

import (
	"github.com/younwookim/playbook/internal/application/state"
	"github.com/younwookim/playbook/internal/domain/play"
)

// gesture is what the pointer is currently doing
type gesture int

const (
	gestureNone gesture = iota
	gestureDraw
	gestureErase
	gestureDrag
)

// drag tracks one token drag from pointer down to pointer up
type drag struct {
	tokenID          int
	offsetX, offsetY float64
}

// View is the render-facing snapshot of a recorder
type View struct {
	Phase       state.RecorderPhase
	EraseMode   bool
	Board       play.Board
	ActionCount int
}

// Recorder owns the live board and, while recording, the action list
type Recorder struct {
	phase     state.RecorderPhase
	actions   play.ActionSequence
	board     play.Board
	eraseMode bool
	gesture   gesture
	drag      drag
	paths     map[int][]play.PathPoint // Drag path accumulators by token id
}

// New creates an idle recorder with the initial token layout
func New() *Recorder {
	return &Recorder{
		board: play.NewBoard(),
		paths: make(map[int][]play.PathPoint),
	}
}

// Start begins a new recording, dropping any previous actions. A gesture
// already in progress ends unrecorded, so every recorded stroke or drag
// begins with its own pointer down.
func (r *Recorder) Start() {
	r.abandonGesture()
	r.phase = state.RecorderRecording
	r.actions = make(play.ActionSequence, 0, 256)
	r.paths = make(map[int][]play.PathPoint)
}

// Stop ends the recording and returns the finished sequence. It returns nil
// when not recording.
func (r *Recorder) Stop() play.ActionSequence {
	if r.phase != state.RecorderRecording {
		return nil
	}
	r.phase = state.RecorderStopped
	r.paths = make(map[int][]play.PathPoint)
	return r.actions.Clone()
}

// Discard drops the recording without saving it
func (r *Recorder) Discard() {
	r.phase = state.RecorderIdle
	r.actions = nil
	r.paths = make(map[int][]play.PathPoint)
}

// Phase returns the current recording phase
func (r *Recorder) Phase() state.RecorderPhase {
	return r.phase
}

// IsRecording returns whether gestures are being captured
func (r *Recorder) IsRecording() bool {
	return r.phase == state.RecorderRecording
}

// Actions returns a copy of the recorded actions
func (r *Recorder) Actions() play.ActionSequence {
	return r.actions.Clone()
}

// ActionCount returns the number of recorded actions
func (r *Recorder) ActionCount() int {
	return len(r.actions)
}

// EraseMode reports whether pointer gestures erase instead of draw
func (r *Recorder) EraseMode() bool {
	return r.eraseMode
}

// SetEraseMode switches between drawing and erasing. A stroke in progress is
// abandoned.
func (r *Recorder) SetEraseMode(on bool) {
	if r.gesture == gestureDraw {
		r.abandonGesture()
	}
	r.eraseMode = on
}

// ToggleErase flips erase mode
func (r *Recorder) ToggleErase() {
	r.SetEraseMode(!r.eraseMode)
}

// Clear removes every stroke from the board
func (r *Recorder) Clear() {
	r.board.ClearStrokes()
	if r.gesture == gestureDraw {
		r.gesture = gestureNone
	}
	r.emit(play.Clear())
}

// ResetTokens puts every token back on its starting spot. No action is
// emitted, so after a reset during a recording the replayed sequence leaves
// the tokens where they were before the reset, not on the live layout.
func (r *Recorder) ResetTokens() {
	if r.gesture == gestureDrag {
		r.abandonGesture()
	}
	r.board.ResetTokens()
}

// View returns a snapshot for rendering
func (r *Recorder) View() View {
	return View{
		Phase:       r.phase,
		EraseMode:   r.eraseMode,
		Board:       r.board.Clone(),
		ActionCount: len(r.actions),
	}
}

// abandonGesture drops the active gesture without emitting anything. A
// dragged token stays where the pointer last left it.
func (r *Recorder) abandonGesture() {
	switch r.gesture {
	case gestureDraw:
		r.board.Current = nil
	case gestureDrag:
		delete(r.paths, r.drag.tokenID)
		r.drag = drag{}
	}
	r.gesture = gestureNone
}

// emit appends an action while recording
func (r *Recorder) emit(a play.Action) {
	if r.phase != state.RecorderRecording {
		return
	}
	r.actions = append(r.actions, a)
}
