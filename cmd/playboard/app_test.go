package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/younwookim/playbook/internal/application/library"
	"github.com/younwookim/playbook/internal/application/playback"
	"github.com/younwookim/playbook/internal/application/replay"
	"github.com/younwookim/playbook/internal/application/system"
	"github.com/younwookim/playbook/internal/domain/play"
	"github.com/younwookim/playbook/internal/infrastructure/config"
	"github.com/younwookim/playbook/internal/infrastructure/pubsub"
	"github.com/younwookim/playbook/internal/infrastructure/store"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	cfg, err := loadConfig("")
	require.NoError(t, err)
	cfg.Team.ID = "team-a"

	log := zap.NewNop().Sugar()
	out := &bytes.Buffer{}
	timing := timingFromConfig(config.TimingConfig{})
	timing.DrawStart, timing.DrawMove, timing.DrawEnd = time.Millisecond, time.Millisecond, time.Millisecond
	ps := pubsub.New(log)
	return &app{
		cfg:    cfg,
		lib:    library.NewService(store.NewMemoryStore(), ps, log),
		events: ps,
		log:    log,
		timing: timing,
		out:    out,
	}, out
}

func strokeSequence() play.ActionSequence {
	line := []play.Point{{X: 10, Y: 10}, {X: 20, Y: 20}}
	return play.ActionSequence{play.DrawStart(line[0]), play.DrawMove(line[1]), play.DrawEnd(line)}
}

func TestLoadConfig_Embedded(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.Equal(t, 200, cfg.Timing.DrawStartMs)
}

func TestLoadConfig_Dir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "board.json"), []byte(`{"team":{"id":"from-disk"}}`), 0o644))

	cfg, err := loadConfig(dir)
	require.NoError(t, err)
	if _, set := os.LookupEnv("DB_DRIVER"); !set {
		assert.Equal(t, "memory", cfg.Store.Driver)
	}
	if _, set := os.LookupEnv("TEAM_ID"); !set {
		assert.Equal(t, "from-disk", cfg.Team.ID)
	}
}

func TestTimingFromConfig(t *testing.T) {
	got := timingFromConfig(config.TimingConfig{PlayerMoveMs: 500, DragStepMs: 16})
	want := playback.DefaultTiming()
	want.PlayerMove = 500 * time.Millisecond
	want.DragStep = 16 * time.Millisecond
	assert.Equal(t, want, got)
}

func TestList(t *testing.T) {
	a, out := newTestApp(t)
	_, err := a.lib.Save(context.Background(), library.SaveRequest{TeamID: "team-a", Title: "Horns", Tags: []string{"set"}, Actions: strokeSequence()})
	require.NoError(t, err)

	require.NoError(t, a.list(""))
	assert.Contains(t, out.String(), "TITLE")
	assert.Contains(t, out.String(), "Horns")

	out.Reset()
	require.NoError(t, a.list("press"))
	assert.NotContains(t, out.String(), "Horns")
}

func TestPlayHeadless(t *testing.T) {
	a, out := newTestApp(t)
	saved, err := a.lib.Save(context.Background(), library.SaveRequest{TeamID: "team-a", Title: "Horns", Actions: strokeSequence()})
	require.NoError(t, err)

	require.NoError(t, a.playHeadless(saved.ID))
	assert.Contains(t, out.String(), "Horns: Finished after 3/3 actions")
	assert.Contains(t, out.String(), "1 lines")
}

func TestPlayHeadless_Missing(t *testing.T) {
	a, _ := newTestApp(t)
	assert.ErrorIs(t, a.playHeadless("nope"), store.ErrNotFound)
}

func TestReplayTrace(t *testing.T) {
	a, out := newTestApp(t)

	rec := replay.NewRecorder("team-a")
	for _, in := range []system.InputState{
		{Keys: []ebiten.Key{ebiten.KeyR}},
		{PointerX: 10, PointerY: 10, PointerPressed: true, PointerHeld: true},
		{PointerX: 20, PointerY: 20, PointerHeld: true},
		{PointerX: 20, PointerY: 20, PointerReleased: true},
	} {
		rec.RecordFrame(in)
	}
	path := filepath.Join(t.TempDir(), "trace.json")
	require.NoError(t, rec.Save(path))

	require.NoError(t, a.replayTrace(path))

	want, err := play.Encode(strokeSequence())
	require.NoError(t, err)
	assert.Equal(t, want+"\n", out.String())
}

func TestDescribeBoard(t *testing.T) {
	text := describeBoard(play.NewBoard())
	assert.Contains(t, text, "player 1 (blue) at 100,40")
	assert.Contains(t, text, "0 lines")
}

func TestTraceFile(t *testing.T) {
	assert.Empty(t, traceFile(""))
	assert.Equal(t, "session.json", traceFile("session.json"))

	auto := traceFile("auto")
	assert.Regexp(t, `^trace_\d{8}_\d{6}\.json$`, auto)
}
