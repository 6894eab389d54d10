package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/younwookim/playbook/internal/application/game"
	"github.com/younwookim/playbook/internal/application/library"
	"github.com/younwookim/playbook/internal/application/playback"
	"github.com/younwookim/playbook/internal/application/render"
	"github.com/younwookim/playbook/internal/application/replay"
	"github.com/younwookim/playbook/internal/application/scene"
	"github.com/younwookim/playbook/internal/application/scene/designer"
	"github.com/younwookim/playbook/internal/application/scene/viewer"
	"github.com/younwookim/playbook/internal/application/system"
	"github.com/younwookim/playbook/internal/domain/play"
	"github.com/younwookim/playbook/internal/infrastructure/config"
	"github.com/younwookim/playbook/internal/infrastructure/pubsub"
)

const loadTimeout = 10 * time.Second

// app holds the wired services for one run of the binary
type app struct {
	cfg    *config.BoardConfig
	lib    *library.Service
	events *pubsub.PubSub
	log    *zap.SugaredLogger
	timing playback.Timing
	out    io.Writer
}

// list prints the team's plays, newest first
func (a *app) list(tag string) error {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	plays, err := a.lib.List(ctx, a.cfg.Team.ID, tag)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSPORT\tCREATED\tTAGS")
	for _, p := range plays {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			p.ID, p.Title, p.SportType, p.CreatedAt.Local().Format("2006-01-02 15:04"), strings.Join(p.Tags, ","))
	}
	return tw.Flush()
}

// playHeadless animates a saved play in real time, logging every step
func (a *app) playHeadless(id string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loadCtx, cancel := context.WithTimeout(ctx, loadTimeout)
	p, seq, err := a.lib.Load(loadCtx, id)
	cancel()
	if err != nil {
		return err
	}

	anim := playback.New(seq, a.timing)
	anim.Play()
	a.log.Infow("playing", "id", p.ID, "title", p.Title, "actions", len(seq))

	err = playback.Run(ctx, anim, func(v playback.View) {
		a.log.Debugw("step", "step", v.Step, "total", v.Total, "strokes", len(v.Board.Strokes), "dragging", len(v.DragPath) > 0)
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	last := anim.View()
	fmt.Fprintf(a.out, "%s: %s after %d/%d actions\n", p.Title, last.Phase, last.Step, last.Total)
	fmt.Fprint(a.out, describeBoard(last.Board))
	return nil
}

// replayTrace drives a fresh board with a recorded input trace and prints
// the resulting diagram JSON
func (a *app) replayTrace(path string) error {
	data, err := replay.LoadReplay(path)
	if err != nil {
		return err
	}

	d := designer.New(designer.Options{
		Timing: a.timing,
		TeamID: a.cfg.Team.ID,
		Log:    a.log,
	})
	rep := replay.NewReplayer(*data)
	seq := replayInto(d, rep)

	payload, err := play.Encode(seq)
	if err != nil {
		return err
	}
	a.log.Infow("trace replayed", "file", path, "frames", rep.CurrentFrame(), "actions", len(seq))
	fmt.Fprintln(a.out, payload)
	return nil
}

// replayInto feeds every frame of rep to d and returns what was recorded.
// Scene changes are ignored; only the recorder matters here.
func replayInto(d *designer.Designer, rep *replay.Replayer) play.ActionSequence {
	for !rep.Done() {
		in, _ := rep.GetInput()
		if _, err := d.Feed(in); err != nil {
			break
		}
	}

	rec := d.Recorder()
	if rec.IsRecording() {
		return rec.Stop()
	}
	return rec.Actions()
}

// autoTrace as the -trace value names the trace file after the start time
const autoTrace = "auto"

// traceFile resolves the -trace flag to a file path, empty when disabled
func traceFile(flagValue string) string {
	if flagValue == autoTrace {
		return replay.GenerateFilename()
	}
	return flagValue
}

// runWindow opens the board. With playID set it starts on that saved play.
func (a *app) runWindow(playID, tracePath string) error {
	input := system.NewInputSystem()
	var trace *replay.Recorder
	if tracePath != "" {
		trace = replay.NewRecorder(a.cfg.Team.ID)
		a.log.Infow("input trace enabled", "file", tracePath)
	}

	board := designer.New(designer.Options{
		Library: a.lib,
		Timing:  a.timing,
		TeamID:  a.cfg.Team.ID,
		User:    a.cfg.Team.User,
		Sport:   a.cfg.Team.Sport,
		Input:   input.GetInput,
		Trace:   trace,
		Log:     a.log,
	})

	var first scene.Scene = board
	if playID != "" {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		p, seq, err := a.lib.Load(ctx, playID)
		cancel()
		if err != nil {
			return err
		}
		first = viewer.NewSaved(p, seq, viewer.Options{
			Library: a.lib,
			Timing:  a.timing,
			TeamID:  a.cfg.Team.ID,
			User:    a.cfg.Team.User,
			Sport:   a.cfg.Team.Sport,
			Input:   input.GetInput,
			Back:    board,
		})
	}

	sub := a.events.Subscribe()
	defer a.events.Unsubscribe(sub)
	go a.logEvents(sub)

	setupWindow(a.cfg)
	err := ebiten.RunGame(game.New(first, render.ScreenWidth, render.ScreenHeight, a.cfg.Display.Framerate))

	if trace != nil {
		trace.Stop()
		if saveErr := trace.Save(tracePath); saveErr != nil {
			a.log.Warnw("failed to save input trace", "file", tracePath, "error", saveErr)
		} else {
			a.log.Infow("input trace saved", "file", tracePath, "frames", trace.FrameCount())
		}
	}
	return err
}

func (a *app) logEvents(ch chan pubsub.Event) {
	for ev := range ch {
		a.log.Infow("board event", "type", ev.Type, "payload", ev.Payload)
	}
}

// newPubSub wires NATS when configured. A NATS failure falls back to local
// delivery so the board still works offline.
func newPubSub(cfg config.PubSubConfig, log *zap.SugaredLogger) (*pubsub.PubSub, func()) {
	if cfg.NATSURL == "" {
		return pubsub.New(log), func() {}
	}

	up, err := pubsub.NewNATSUpstream(cfg.NATSURL, cfg.Subject, log)
	if err != nil {
		log.Warnw("NATS unavailable, using local events only", "url", cfg.NATSURL, "error", err)
		return pubsub.New(log), func() {}
	}
	log.Infow("connected to NATS", "url", cfg.NATSURL, "subject", cfg.Subject)
	return pubsub.NewWithUpstream(up, log), up.Close
}

// timingFromConfig converts millisecond settings, keeping defaults for zeros
func timingFromConfig(tc config.TimingConfig) playback.Timing {
	t := playback.DefaultTiming()
	set := func(dst *time.Duration, ms int) {
		if ms > 0 {
			*dst = time.Duration(ms) * time.Millisecond
		}
	}
	set(&t.DrawStart, tc.DrawStartMs)
	set(&t.DrawMove, tc.DrawMoveMs)
	set(&t.DrawEnd, tc.DrawEndMs)
	set(&t.PlayerMove, tc.PlayerMoveMs)
	set(&t.Erase, tc.EraseMs)
	set(&t.Clear, tc.ClearMs)
	set(&t.DragStep, tc.DragStepMs)
	set(&t.Skip, tc.SkipMs)
	return t
}

// describeBoard renders the final board as text
func describeBoard(b play.Board) string {
	var sb strings.Builder
	for _, t := range b.Tokens {
		fmt.Fprintf(&sb, "  player %d (%s) at %.0f,%.0f\n", t.ID, t.Color, t.X, t.Y)
	}
	fmt.Fprintf(&sb, "  %d lines\n", len(b.Strokes))
	return sb.String()
}
