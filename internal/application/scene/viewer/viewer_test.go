package viewer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/younwookim/playbook/internal/application/library"
	"github.com/younwookim/playbook/internal/application/playback"
	"github.com/younwookim/playbook/internal/application/recorder"
	"github.com/younwookim/playbook/internal/application/scene"
	"github.com/younwookim/playbook/internal/application/state"
	"github.com/younwookim/playbook/internal/application/system"
	"github.com/younwookim/playbook/internal/domain/play"
	"github.com/younwookim/playbook/internal/infrastructure/store"
)

const frame = time.Second / 60

// inputQueue hands out queued frames, then idle ones
type inputQueue struct {
	frames []system.InputState
}

func (q *inputQueue) push(in ...system.InputState) {
	q.frames = append(q.frames, in...)
}

func (q *inputQueue) next() system.InputState {
	if len(q.frames) == 0 {
		return system.InputState{}
	}
	in := q.frames[0]
	q.frames = q.frames[1:]
	return in
}

func keys(k ...ebiten.Key) system.InputState {
	return system.InputState{Keys: k}
}

type backScene struct {
	scene.Scene
	messages []string
}

func (b *backScene) Notify(msg string) {
	b.messages = append(b.messages, msg)
}

type failingStore struct {
	store.PlayStore
}

func (failingStore) SavePlay(context.Context, *play.Play) (*play.Play, error) {
	return nil, errors.New("disk full")
}

func fastTiming() playback.Timing {
	return playback.Timing{
		DrawStart: frame, DrawMove: frame, DrawEnd: frame, PlayerMove: frame,
		Erase: frame, Clear: frame, DragStep: frame, Skip: frame,
	}
}

func diagonalStroke() play.ActionSequence {
	line := []play.Point{{X: 10, Y: 10}, {X: 20, Y: 20}}
	return play.ActionSequence{play.DrawStart(line[0]), play.DrawMove(line[1]), play.DrawEnd(line)}
}

func setup(t *testing.T, s store.PlayStore) (Options, *inputQueue, *backScene) {
	t.Helper()
	q := &inputQueue{}
	back := &backScene{}
	return Options{
		Library: library.NewService(s, nil, zap.NewNop().Sugar()),
		Timing:  fastTiming(),
		TeamID:  "team-a",
		User:    "coach",
		Input:   q.next,
		Back:    back,
	}, q, back
}

func recorded(t *testing.T) (*recorder.Recorder, play.ActionSequence) {
	t.Helper()
	rec := recorder.New()
	rec.Start()
	rec.PointerDown(play.Point{X: 10, Y: 10})
	rec.PointerMove(play.Point{X: 20, Y: 20})
	rec.PointerUp(play.Point{X: 20, Y: 20})
	seq := rec.Stop()
	require.Len(t, seq, 3)
	return rec, seq
}

func runFrames(t *testing.T, v *Viewer, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		next, err := v.Update(frame)
		require.NoError(t, err)
		require.Nil(t, next)
	}
}

func TestSaved_AutoStartsAndFinishes(t *testing.T) {
	opts, _, _ := setup(t, store.NewMemoryStore())
	v := NewSaved(&play.Play{Title: "Horns"}, diagonalStroke(), opts)

	assert.Equal(t, state.PlaybackReady, v.Phase())
	v.OnEnter()
	assert.Equal(t, state.PlaybackPlaying, v.Phase())

	runFrames(t, v, 10)
	assert.Equal(t, state.PlaybackFinished, v.Phase())
	assert.Equal(t, []play.Stroke{{{X: 10, Y: 10}, {X: 20, Y: 20}}}, v.Board().Strokes)
}

func TestReview_WaitsForPlay(t *testing.T) {
	opts, q, _ := setup(t, store.NewMemoryStore())
	rec, seq := recorded(t)
	v := NewReview(seq, rec, opts)
	v.OnEnter()

	runFrames(t, v, 5)
	assert.Equal(t, state.PlaybackReady, v.Phase())

	q.push(keys(ebiten.KeySpace))
	runFrames(t, v, 10)
	assert.Equal(t, state.PlaybackFinished, v.Phase())

	// play again from a finished state restarts
	q.push(keys(ebiten.KeySpace))
	runFrames(t, v, 1)
	assert.Equal(t, state.PlaybackPlaying, v.Phase())
	assert.Len(t, v.Board().Strokes, 0)
}

func TestReview_PauseAndRestart(t *testing.T) {
	opts, q, _ := setup(t, store.NewMemoryStore())
	opts.Timing = playback.DefaultTiming()
	rec, seq := recorded(t)
	v := NewReview(seq, rec, opts)

	q.push(keys(ebiten.KeySpace))
	runFrames(t, v, 2)
	q.push(keys(ebiten.KeySpace))
	runFrames(t, v, 1)
	assert.Equal(t, state.PlaybackPaused, v.Phase())

	q.push(keys(ebiten.KeyR))
	runFrames(t, v, 1)
	assert.Equal(t, state.PlaybackReady, v.Phase())
	assert.Equal(t, play.NewBoard(), v.Board())
}

func TestReview_SaveWithTitle(t *testing.T) {
	ms := store.NewMemoryStore()
	opts, q, back := setup(t, ms)
	rec, seq := recorded(t)
	v := NewReview(seq, rec, opts)

	q.push(
		keys(ebiten.KeyS),
		system.InputState{Chars: []rune("Hornz")},
		keys(ebiten.KeyBackspace),
		system.InputState{Chars: []rune("s")},
		keys(ebiten.KeyEnter),
	)
	for i := 0; i < 4; i++ {
		next, err := v.Update(frame)
		require.NoError(t, err)
		require.Nil(t, next)
	}
	next, err := v.Update(frame)
	require.NoError(t, err)
	assert.Same(t, back, next)
	assert.Equal(t, []string{`Saved "Horns"`}, back.messages)
	assert.Equal(t, state.RecorderIdle, rec.Phase())

	plays, err := ms.ListPlays(context.Background(), "team-a", "")
	require.NoError(t, err)
	require.Len(t, plays, 1)
	assert.Equal(t, "Horns", plays[0].Title)
	assert.Equal(t, "coach", plays[0].CreatedBy)
	assert.Equal(t, play.DefaultSportType, plays[0].SportType)
	assert.Empty(t, plays[0].Tags)

	decoded, err := play.Decode(plays[0].DiagramJSON)
	require.NoError(t, err)
	assert.Equal(t, seq, decoded)
}

func TestReview_SaveWithTagsAndSport(t *testing.T) {
	ms := store.NewMemoryStore()
	opts, q, back := setup(t, ms)
	opts.Sport = "football"
	rec, seq := recorded(t)
	v := NewReview(seq, rec, opts)

	q.push(
		keys(ebiten.KeyS),
		system.InputState{Chars: []rune("Horns")},
		keys(ebiten.KeyTab),
		system.InputState{Chars: []rune("zone, press,")},
		keys(ebiten.KeyEnter),
	)
	runFrames(t, v, 4)
	assert.Equal(t, []string{"Title: Horns", "Tags (comma separated): zone, press,_"}, v.promptLines())

	next, err := v.Update(frame)
	require.NoError(t, err)
	assert.Same(t, back, next)

	ctx := context.Background()
	tagged, err := opts.Library.List(ctx, "team-a", "press")
	require.NoError(t, err)
	require.Len(t, tagged, 1)
	assert.Equal(t, "Horns", tagged[0].Title)
	assert.Equal(t, "football", tagged[0].SportType)
	assert.ElementsMatch(t, []string{"zone", "press"}, tagged[0].Tags)

	untagged, err := opts.Library.List(ctx, "team-a", "transition")
	require.NoError(t, err)
	assert.Empty(t, untagged)
}

func TestReview_SaveFailureKeepsRecording(t *testing.T) {
	opts, q, back := setup(t, failingStore{store.NewMemoryStore()})
	rec, seq := recorded(t)
	v := NewReview(seq, rec, opts)

	q.push(keys(ebiten.KeyS), keys(ebiten.KeyEnter))
	runFrames(t, v, 2)

	assert.Equal(t, state.RecorderStopped, rec.Phase())
	assert.Equal(t, "save failed: disk full", v.message)
	assert.Empty(t, back.messages)
	assert.False(t, v.naming)
}

func TestReview_EmptyRecordingIsRejected(t *testing.T) {
	opts, q, _ := setup(t, store.NewMemoryStore())
	rec := recorder.New()
	rec.Start()
	seq := rec.Stop()
	v := NewReview(seq, rec, opts)

	q.push(keys(ebiten.KeyS), keys(ebiten.KeyEnter))
	runFrames(t, v, 2)

	assert.Contains(t, v.message, "Nothing recorded")
	assert.Equal(t, state.RecorderStopped, rec.Phase())
}

func TestReview_EscapeCancelsNaming(t *testing.T) {
	opts, q, _ := setup(t, store.NewMemoryStore())
	rec, seq := recorded(t)
	v := NewReview(seq, rec, opts)

	q.push(keys(ebiten.KeyS), system.InputState{Chars: []rune("x")}, keys(ebiten.KeyEscape))
	runFrames(t, v, 3)
	assert.False(t, v.naming)
	assert.Equal(t, state.RecorderStopped, rec.Phase())
}

func TestReview_Discard(t *testing.T) {
	opts, q, back := setup(t, store.NewMemoryStore())
	rec, seq := recorded(t)
	v := NewReview(seq, rec, opts)

	q.push(keys(ebiten.KeyX))
	next, err := v.Update(frame)
	require.NoError(t, err)
	assert.Same(t, back, next)
	assert.Equal(t, state.RecorderIdle, rec.Phase())
	assert.Equal(t, []string{"Recording discarded"}, back.messages)
}

func TestSaved_IgnoresReviewKeys(t *testing.T) {
	opts, q, _ := setup(t, store.NewMemoryStore())
	v := NewSaved(&play.Play{Title: "Horns"}, diagonalStroke(), opts)

	q.push(keys(ebiten.KeyS), keys(ebiten.KeyX))
	runFrames(t, v, 2)
	assert.False(t, v.naming)
}

func TestBack_WithoutBackSceneQuits(t *testing.T) {
	opts, q, _ := setup(t, store.NewMemoryStore())
	opts.Back = nil
	v := NewSaved(&play.Play{Title: "Horns"}, diagonalStroke(), opts)

	q.push(keys(ebiten.KeyEscape))
	_, err := v.Update(frame)
	assert.ErrorIs(t, err, ebiten.Termination)
}

func TestStatusLines(t *testing.T) {
	opts, _, _ := setup(t, store.NewMemoryStore())
	rec, seq := recorded(t)
	v := NewReview(seq, rec, opts)

	lines := v.statusLines(playback.View{Phase: state.PlaybackPaused, Step: 1, Total: 3})
	assert.Equal(t, "Review recording  [Paused 1/3]", lines[0])
	assert.Contains(t, lines[1], "S save")
}
