package replay

import (
	"path/filepath"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/playbook/internal/application/system"
)

func TestRecorder_SkipsIdleFrames(t *testing.T) {
	rec := NewRecorder("team-a")

	rec.RecordFrame(system.InputState{PointerX: 5, PointerY: 5})
	rec.RecordFrame(system.InputState{PointerX: 10, PointerY: 20, PointerPressed: true, PointerHeld: true})
	rec.RecordFrame(system.InputState{PointerX: 10, PointerY: 20})
	rec.RecordFrame(system.InputState{Keys: []ebiten.Key{ebiten.KeyR}, Chars: []rune("r")})

	data := rec.Data()
	assert.Equal(t, 4, rec.FrameCount())
	require.Len(t, data.Frames, 2)
	assert.Equal(t, FrameInput{F: 1, X: 10, Y: 20, P: true, H: true}, data.Frames[0])
	assert.Equal(t, 3, data.Frames[1].F)
	assert.Equal(t, []int{int(ebiten.KeyR)}, data.Frames[1].K)
	assert.Equal(t, "r", data.Frames[1].Chr)
}

func TestRecorder_Stop(t *testing.T) {
	rec := NewRecorder("team-a")
	rec.Stop()
	rec.RecordFrame(system.InputState{PointerPressed: true})

	assert.Zero(t, rec.FrameCount())
	assert.Empty(t, rec.Data().Frames)
}

func TestSaveAndLoad(t *testing.T) {
	rec := NewRecorder("team-a")
	rec.RecordFrame(system.InputState{PointerX: 1, PointerY: 2, PointerPressed: true, PointerHeld: true})

	path := filepath.Join(t.TempDir(), GenerateFilename())
	require.NoError(t, rec.Save(path))

	data, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, "team-a", data.Team)
	assert.Equal(t, rec.Data().Frames, data.Frames)
}

func TestSave_NoFrames(t *testing.T) {
	rec := NewRecorder("team-a")
	assert.Error(t, rec.Save(filepath.Join(t.TempDir(), "empty.json")))
}

func TestLoadReplay_Missing(t *testing.T) {
	_, err := LoadReplay(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestReplayer_ReproducesRecordedFrames(t *testing.T) {
	inputs := []system.InputState{
		{PointerX: 10, PointerY: 10, PointerPressed: true, PointerHeld: true},
		{PointerX: 10, PointerY: 10},
		{PointerX: 30, PointerY: 40, PointerHeld: true},
		{PointerX: 30, PointerY: 40, PointerReleased: true},
		{Keys: []ebiten.Key{ebiten.KeyE}},
	}
	rec := NewRecorder("t")
	for _, in := range inputs {
		rec.RecordFrame(in)
	}

	rep := NewReplayer(rec.Data())
	for i, want := range inputs {
		got, ok := rep.GetInput()
		require.True(t, ok, "frame %d", i)
		if i == 1 {
			// idle frames replay at the last pointer position
			assert.Equal(t, system.InputState{PointerX: 10, PointerY: 10}, got)
			continue
		}
		if i == 4 {
			assert.Equal(t, want.Keys, got.Keys)
			continue
		}
		assert.Equal(t, want, got, "frame %d", i)
	}

	assert.True(t, rep.Done())
	_, ok := rep.GetInput()
	assert.False(t, ok)
	assert.Equal(t, 5, rep.CurrentFrame())
}
