// Package replay records the designer's raw input frames to a trace file and
// plays them back, so a board session can be reproduced exactly.
package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/playbook/internal/application/system"
)

// Replayer feeds recorded frames back as input
type Replayer struct {
	data  ReplayData
	frame int
	next  int // index of the next recorded frame
	lastX int
	lastY int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{data: data}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}

	return &data, nil
}

// GetInput returns the input for the current frame and advances. Frames with
// no recorded activity come back idle at the last pointer position. The
// second result is false once every recorded frame has been returned.
func (r *Replayer) GetInput() (system.InputState, bool) {
	if r.next >= len(r.data.Frames) {
		return system.InputState{PointerX: r.lastX, PointerY: r.lastY}, false
	}

	frame := r.frame
	r.frame++

	fi := r.data.Frames[r.next]
	if fi.F != frame {
		return system.InputState{PointerX: r.lastX, PointerY: r.lastY}, true
	}
	r.next++
	r.lastX, r.lastY = fi.X, fi.Y

	in := system.InputState{
		PointerX:        fi.X,
		PointerY:        fi.Y,
		PointerPressed:  fi.P,
		PointerHeld:     fi.H,
		PointerReleased: fi.R,
	}
	for _, k := range fi.K {
		in.Keys = append(in.Keys, ebiten.Key(k))
	}
	if fi.Chr != "" {
		in.Chars = []rune(fi.Chr)
	}
	return in, true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// Done reports whether every recorded frame has been replayed
func (r *Replayer) Done() bool {
	return r.next >= len(r.data.Frames)
}

