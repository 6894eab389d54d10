// Package playback replays a recorded ActionSequence as a timed animation.
//
// The Animator is a pure state machine: each call to Advance applies exactly
// one step and returns how long the caller should wait before the next one.
// Scheduling lives outside it, in Clock (frame driven) or Run (timer driven).
package playback

import (
	"time"

	"github.com/younwookim/playbook/internal/application/state"
	"github.com/younwookim/playbook/internal/domain/play"
)

// dragReplay is an in-progress drag path sub-animation
type dragReplay struct {
	action play.Action
	index  int // Next path point to show
}

// View is the render-facing snapshot of an animator
type View struct {
	Phase    state.PlaybackPhase
	Board    play.Board
	DragPath []play.PathPoint // Trajectory being animated, if any
	Step     int
	Total    int
}

// Animator replays one ActionSequence. It never modifies the sequence it
// was given.
type Animator struct {
	seq     play.ActionSequence
	timing  Timing
	playing bool
	run     uint64
	step    int
	board   play.Board
	drag    *dragReplay
}

// New creates an animator positioned at the start of seq
func New(seq play.ActionSequence, timing Timing) *Animator {
	return &Animator{
		seq:    seq.Clone(),
		timing: timing,
		run:    1,
		board:  play.NewBoard(),
	}
}

// Play starts or resumes playback from the current step
func (a *Animator) Play() {
	a.playing = true
}

// Pause stops scheduling further steps. The board is kept as is.
func (a *Animator) Pause() {
	a.playing = false
}

// Playing reports whether the animator wants further ticks
func (a *Animator) Playing() bool {
	return a.playing
}

// Done reports whether every action has been shown
func (a *Animator) Done() bool {
	return a.step >= len(a.seq) && a.drag == nil
}

// Run returns the current run generation. Ticks scheduled for an older
// generation are ignored by Advance.
func (a *Animator) Run() uint64 {
	return a.run
}

// Phase returns the externally visible playback state
func (a *Animator) Phase() state.PlaybackPhase {
	switch {
	case a.playing:
		return state.PlaybackPlaying
	case a.Done() && a.step > 0:
		return state.PlaybackFinished
	case a.pristine():
		return state.PlaybackReady
	default:
		return state.PlaybackPaused
	}
}

// Reset restores the initial board and rewinds to the first action. The
// playing flag is left alone.
func (a *Animator) Reset() {
	if a.pristine() {
		return
	}
	a.run++
	a.step = 0
	a.drag = nil
	a.board = play.NewBoard()
}

func (a *Animator) pristine() bool {
	return a.step == 0 && a.drag == nil && a.board.Current == nil &&
		len(a.board.Strokes) == 0 && tokensAtStart(a.board.Tokens)
}

func tokensAtStart(tokens []play.Token) bool {
	initial := play.InitialTokens()
	if len(tokens) != len(initial) {
		return false
	}
	for i := range tokens {
		if tokens[i] != initial[i] {
			return false
		}
	}
	return true
}

// Advance applies the next step of run and returns the delay before the
// following one. It returns false, and does nothing, when the run is stale,
// playback is paused or the sequence is exhausted; reaching the end also
// clears the playing flag.
func (a *Animator) Advance(run uint64) (time.Duration, bool) {
	if run != a.run || !a.playing {
		return 0, false
	}

	if a.drag != nil {
		return a.advanceDrag(), true
	}

	if a.step >= len(a.seq) {
		a.playing = false
		return 0, false
	}

	act := a.seq[a.step]
	if act.Kind == play.KindPlayerDragPath {
		if len(act.Path) > 1 {
			a.drag = &dragReplay{action: act}
			return a.advanceDrag(), true
		}
		a.step++
		return a.timing.Skip, true
	}

	a.board = play.Apply(a.board, act)
	a.step++
	return a.timing.For(act.Kind), true
}

// advanceDrag moves the dragged token one point along its path. Showing the
// last point ends the sub-animation and consumes the paired PlayerMove.
func (a *Animator) advanceDrag() time.Duration {
	d := a.drag
	p := d.action.Path[d.index]
	a.board.MoveToken(d.action.PlayerID, p.X, p.Y)
	d.index++

	if d.index >= len(d.action.Path) {
		a.drag = nil
		a.step++
		if a.step < len(a.seq) && d.action.IsRedundantMove(a.seq[a.step]) {
			a.step++
		}
	}
	return a.timing.DragStep
}

// View returns a snapshot for rendering
func (a *Animator) View() View {
	v := View{
		Phase: a.Phase(),
		Board: a.board.Clone(),
		Step:  a.step,
		Total: len(a.seq),
	}
	if a.drag != nil {
		v.DragPath = append([]play.PathPoint(nil), a.drag.action.Path...)
	}
	return v
}
