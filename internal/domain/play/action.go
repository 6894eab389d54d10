// Package play holds the play diagram model shared by the recorder and the
// animator: actions, tokens, strokes, the working board and its wire codec.
package play

// Point is a canvas position
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PathPoint is one sample of a token drag trajectory
type PathPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Color string  `json:"color"`
}

// ActionKind identifies which variant an Action carries
type ActionKind int

const (
	KindDrawStart ActionKind = iota
	KindDrawMove
	KindDrawEnd
	KindErase
	KindClear
	KindPlayerMove
	KindPlayerDragPath
)

// String returns the wire name of the kind
func (k ActionKind) String() string {
	switch k {
	case KindDrawStart:
		return "drawStart"
	case KindDrawMove:
		return "drawMove"
	case KindDrawEnd:
		return "drawEnd"
	case KindErase:
		return "erase"
	case KindClear:
		return "clear"
	case KindPlayerMove:
		return "playerMove"
	case KindPlayerDragPath:
		return "playerDragPath"
	default:
		return "unknown"
	}
}

// parseKind is the inverse of String
func parseKind(s string) (ActionKind, bool) {
	for k := KindDrawStart; k <= KindPlayerDragPath; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Action is one recorded gesture. Only the fields belonging to Kind are set:
//
//	DrawStart, DrawMove, Erase: Pointer
//	DrawEnd:                    Line
//	PlayerMove:                 PlayerID, X, Y, Color
//	PlayerDragPath:             PlayerID, Path
type Action struct {
	Kind     ActionKind
	Pointer  Point
	Line     []Point
	PlayerID int
	X, Y     float64
	Color    string
	Path     []PathPoint
}

// DrawStart begins a freehand stroke at p
func DrawStart(p Point) Action { return Action{Kind: KindDrawStart, Pointer: p} }

// DrawMove extends the stroke in progress
func DrawMove(p Point) Action { return Action{Kind: KindDrawMove, Pointer: p} }

// DrawEnd commits a stroke with its full point list
func DrawEnd(line []Point) Action {
	return Action{Kind: KindDrawEnd, Line: append([]Point(nil), line...)}
}

// Erase removes strokes near p
func Erase(p Point) Action { return Action{Kind: KindErase, Pointer: p} }

// Clear removes all strokes
func Clear() Action { return Action{Kind: KindClear} }

// PlayerMove places a token at its final resting position
func PlayerMove(id int, x, y float64, color string) Action {
	return Action{Kind: KindPlayerMove, PlayerID: id, X: x, Y: y, Color: color}
}

// PlayerDragPath carries the intermediate trajectory of a token drag
func PlayerDragPath(id int, path []PathPoint) Action {
	return Action{Kind: KindPlayerDragPath, PlayerID: id, Path: append([]PathPoint(nil), path...)}
}

// ActionSequence is the ordered narrative of one play
type ActionSequence []Action

// Clone returns a deep copy so the receiver can never be mutated through it
func (s ActionSequence) Clone() ActionSequence {
	if s == nil {
		return nil
	}
	out := make(ActionSequence, len(s))
	for i, a := range s {
		if a.Line != nil {
			a.Line = append([]Point(nil), a.Line...)
		}
		if a.Path != nil {
			a.Path = append([]PathPoint(nil), a.Path...)
		}
		out[i] = a
	}
	return out
}

// IsRedundantMove reports whether next is the trailing PlayerMove paired with
// the drag path a: same token and same final position as the path's end.
func (a Action) IsRedundantMove(next Action) bool {
	if a.Kind != KindPlayerDragPath || next.Kind != KindPlayerMove || len(a.Path) == 0 {
		return false
	}
	last := a.Path[len(a.Path)-1]
	return next.PlayerID == a.PlayerID && next.X == last.X && next.Y == last.Y
}
