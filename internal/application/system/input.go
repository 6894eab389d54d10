package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/playbook/internal/domain/play"
)

// InputSystem samples mouse, touch and keyboard input once per frame
type InputSystem struct {
	keys  []ebiten.Key
	chars []rune
	touch []ebiten.TouchID
}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// InputState holds the input observed during one frame
type InputState struct {
	PointerX        int
	PointerY        int
	PointerPressed  bool // went down this frame
	PointerHeld     bool
	PointerReleased bool // went up this frame
	Keys            []ebiten.Key
	Chars           []rune
}

// JustPressed reports whether key went down this frame
func (in InputState) JustPressed(key ebiten.Key) bool {
	for _, k := range in.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// GetInput reads the current input state. The first touch acts as the mouse.
func (s *InputSystem) GetInput() InputState {
	s.keys = inpututil.AppendJustPressedKeys(s.keys[:0])
	s.chars = ebiten.AppendInputChars(s.chars[:0])

	mx, my := ebiten.CursorPosition()
	in := InputState{
		PointerX:        mx,
		PointerY:        my,
		PointerPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		PointerHeld:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		PointerReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		Keys:            s.keys,
		Chars:           s.chars,
	}

	s.touch = ebiten.AppendTouchIDs(s.touch[:0])
	if len(s.touch) > 0 {
		id := s.touch[0]
		in.PointerX, in.PointerY = ebiten.TouchPosition(id)
		in.PointerPressed = inpututil.TouchPressDuration(id) == 1
		in.PointerHeld = true
	}
	return in
}

// PointerSink receives canvas pointer events
type PointerSink interface {
	PointerDown(p play.Point)
	PointerMove(p play.Point)
	PointerUp(p play.Point)
}

// PointerTracker turns per-frame pointer samples into down, move and up
// events in canvas coordinates. A gesture starts only inside the canvas;
// once started, positions are clamped to it.
type PointerTracker struct {
	down bool
	last play.Point
}

// Feed forwards the frame's pointer changes to sink
func (t *PointerTracker) Feed(sink PointerSink, in InputState) {
	p := play.Point{X: float64(in.PointerX), Y: float64(in.PointerY)}

	if !t.down {
		if in.PointerPressed && insideCanvas(p) {
			t.down = true
			t.last = p
			sink.PointerDown(p)
		}
		return
	}

	p = clampToCanvas(p)
	if in.PointerReleased || !in.PointerHeld {
		t.down = false
		sink.PointerUp(t.last)
		return
	}
	if p != t.last {
		t.last = p
		sink.PointerMove(p)
	}
}

// Release ends a gesture in progress at its last position
func (t *PointerTracker) Release(sink PointerSink) {
	if !t.down {
		return
	}
	t.down = false
	sink.PointerUp(t.last)
}

// Active reports whether a gesture is in progress
func (t *PointerTracker) Active() bool {
	return t.down
}

func insideCanvas(p play.Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < play.CanvasWidth && p.Y < play.CanvasHeight
}

func clampToCanvas(p play.Point) play.Point {
	p.X = min(max(p.X, 0), play.CanvasWidth-1)
	p.Y = min(max(p.Y, 0), play.CanvasHeight-1)
	return p
}
