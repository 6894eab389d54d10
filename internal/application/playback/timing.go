package playback

import (
	"time"

	"github.com/younwookim/playbook/internal/domain/play"
)

// Timing holds the pause after each kind of step
type Timing struct {
	DrawStart  time.Duration
	DrawMove   time.Duration
	DrawEnd    time.Duration
	PlayerMove time.Duration
	Erase      time.Duration
	Clear      time.Duration
	DragStep   time.Duration // Between points of a drag path
	Skip       time.Duration // After a step with nothing to show
}

// DefaultTiming returns the standard narration pace: discrete events linger,
// continuous motion is quick.
func DefaultTiming() Timing {
	return Timing{
		DrawStart:  200 * time.Millisecond,
		DrawMove:   40 * time.Millisecond,
		DrawEnd:    200 * time.Millisecond,
		PlayerMove: 300 * time.Millisecond,
		Erase:      200 * time.Millisecond,
		Clear:      200 * time.Millisecond,
		DragStep:   40 * time.Millisecond,
		Skip:       10 * time.Millisecond,
	}
}

// For returns the delay after applying an action of the given kind
func (t Timing) For(kind play.ActionKind) time.Duration {
	switch kind {
	case play.KindDrawStart:
		return t.DrawStart
	case play.KindDrawMove:
		return t.DrawMove
	case play.KindDrawEnd:
		return t.DrawEnd
	case play.KindPlayerMove:
		return t.PlayerMove
	case play.KindErase:
		return t.Erase
	case play.KindClear:
		return t.Clear
	case play.KindPlayerDragPath:
		return t.DragStep
	default:
		return t.Skip
	}
}
