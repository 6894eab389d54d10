// Package designer is the drawing board scene: live drawing, erasing and
// token dragging, with recording into an ActionSequence.
package designer

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/younwookim/playbook/internal/application/library"
	"github.com/younwookim/playbook/internal/application/playback"
	"github.com/younwookim/playbook/internal/application/recorder"
	"github.com/younwookim/playbook/internal/application/render"
	"github.com/younwookim/playbook/internal/application/replay"
	"github.com/younwookim/playbook/internal/application/scene"
	"github.com/younwookim/playbook/internal/application/scene/viewer"
	"github.com/younwookim/playbook/internal/application/state"
	"github.com/younwookim/playbook/internal/application/system"
	"github.com/younwookim/playbook/internal/domain/play"
)

// Options configures a Designer
type Options struct {
	Library *library.Service
	Timing  playback.Timing
	TeamID  string
	User    string
	Sport   string
	Input   func() system.InputState
	Trace   *replay.Recorder // optional raw input capture
	Log     *zap.SugaredLogger
}

// Designer is the drawing board scene
type Designer struct {
	opts    Options
	rec     *recorder.Recorder
	tracker system.PointerTracker
	message string
}

// New creates a designer with an idle recorder
func New(opts Options) *Designer {
	if opts.Log == nil {
		opts.Log = zap.NewNop().Sugar()
	}
	return &Designer{
		opts: opts,
		rec:  recorder.New(),
	}
}

// Update reads one frame of input
func (d *Designer) Update(_ time.Duration) (scene.Scene, error) {
	in := d.opts.Input()
	if d.opts.Trace != nil {
		d.opts.Trace.RecordFrame(in)
	}
	return d.Feed(in)
}

// Feed applies one frame of input: key commands first, then the pointer.
// It returns the review scene when a recording stops.
func (d *Designer) Feed(in system.InputState) (scene.Scene, error) {
	for _, intent := range system.DesignerKeys.Intents(in) {
		switch intent {
		case system.IntentRecord:
			if d.rec.IsRecording() {
				return d.stop(), nil
			}
			d.tracker.Release(d.rec)
			d.rec.Start()
			d.message = ""
			d.opts.Log.Debugw("recording started", "team", d.opts.TeamID)
		case system.IntentReview:
			if d.rec.Phase() == state.RecorderStopped {
				return d.review(d.rec.Actions()), nil
			}
		case system.IntentToggleErase:
			d.rec.ToggleErase()
		case system.IntentClear:
			d.rec.Clear()
		case system.IntentResetTokens:
			d.rec.ResetTokens()
		case system.IntentBack:
			return nil, ebiten.Termination
		}
	}

	d.tracker.Feed(d.rec, in)
	return nil, nil
}

func (d *Designer) stop() scene.Scene {
	d.tracker.Release(d.rec)
	seq := d.rec.Stop()
	d.opts.Log.Debugw("recording stopped", "team", d.opts.TeamID, "actions", len(seq))
	return d.review(seq)
}

func (d *Designer) review(seq play.ActionSequence) scene.Scene {
	return viewer.NewReview(seq, d.rec, viewer.Options{
		Library: d.opts.Library,
		Timing:  d.opts.Timing,
		TeamID:  d.opts.TeamID,
		User:    d.opts.User,
		Sport:   d.opts.Sport,
		Input:   d.opts.Input,
		Back:    d,
	})
}

// Notify shows msg in the status bar
func (d *Designer) Notify(msg string) {
	d.message = msg
}

// Recorder exposes the recorder, for driving the board without a window
func (d *Designer) Recorder() *recorder.Recorder {
	return d.rec
}

// Draw renders the live board and status bar
func (d *Designer) Draw(screen *ebiten.Image) {
	v := d.rec.View()
	render.Board(screen, v.Board)
	render.Status(screen, v.Phase == state.RecorderRecording, statusLines(v, d.message)...)
}

func statusLines(v recorder.View, message string) []string {
	mode := "Draw"
	if v.EraseMode {
		mode = "Erase"
	}

	var line string
	switch v.Phase {
	case state.RecorderRecording:
		line = fmt.Sprintf("Recording  %d actions  mode: %s", v.ActionCount, mode)
	case state.RecorderStopped:
		line = fmt.Sprintf("Stopped  %d actions  mode: %s", v.ActionCount, mode)
	default:
		line = fmt.Sprintf("Not recording  mode: %s", mode)
	}
	if message != "" {
		line += "  " + message
	}

	help := "R record  E erase  C clear  P reset players  Esc quit"
	switch v.Phase {
	case state.RecorderRecording:
		help = "R stop  E erase  C clear  P reset players  Esc quit"
	case state.RecorderStopped:
		help = "V review  R record again  E erase  C clear  P reset players  Esc quit"
	}
	return []string{line, help}
}

// OnEnter is a no-op
func (d *Designer) OnEnter() {}

// OnExit ends any gesture in progress
func (d *Designer) OnExit() {
	d.tracker.Release(d.rec)
}
