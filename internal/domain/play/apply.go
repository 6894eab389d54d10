package play

// Apply returns the board that results from applying a single action to b.
// The input board is not modified. A PlayerDragPath moves its token to the
// end of the path; animating the intermediate points is up to the caller.
func Apply(b Board, a Action) Board {
	next := b.Clone()
	switch a.Kind {
	case KindDrawStart:
		next.Current = Stroke{a.Pointer}
	case KindDrawMove:
		next.Current = append(next.Current, a.Pointer)
	case KindDrawEnd:
		line := next.Current
		if len(line) < 2 && len(a.Line) >= 2 {
			line = a.Line
		}
		if len(line) >= 2 {
			next.Commit(line)
		}
		next.Current = nil
	case KindErase:
		next.EraseAt(a.Pointer)
	case KindClear:
		next.ClearStrokes()
	case KindPlayerMove:
		next.MoveToken(a.PlayerID, a.X, a.Y)
	case KindPlayerDragPath:
		if n := len(a.Path); n > 1 {
			next.MoveToken(a.PlayerID, a.Path[n-1].X, a.Path[n-1].Y)
		}
	}
	return next
}

// Replay applies a whole sequence to a fresh board with no timing
func Replay(seq ActionSequence) Board {
	b := NewBoard()
	for _, a := range seq {
		b = Apply(b, a)
	}
	return b
}
