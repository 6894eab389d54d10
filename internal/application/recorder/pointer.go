package recorder

import "github.com/younwookim/playbook/internal/domain/play"

// PointerDown starts an erase, a token drag or a stroke at p
func (r *Recorder) PointerDown(p play.Point) {
	if r.gesture != gestureNone {
		r.PointerUp(p)
	}

	if r.eraseMode {
		r.gesture = gestureErase
		r.eraseAt(p)
		return
	}

	if tok, ok := r.board.TokenAt(p); ok {
		r.beginDrag(tok, p)
		return
	}

	r.gesture = gestureDraw
	r.board.Current = play.Stroke{p}
	r.emit(play.DrawStart(p))
}

// PointerMove extends the active gesture. Moves with no gesture are ignored.
func (r *Recorder) PointerMove(p play.Point) {
	switch r.gesture {
	case gestureErase:
		r.eraseAt(p)
	case gestureDraw:
		r.board.Current = append(r.board.Current, p)
		r.emit(play.DrawMove(p))
	case gestureDrag:
		r.moveDrag(p)
	}
}

// PointerUp finishes the active gesture
func (r *Recorder) PointerUp(p play.Point) {
	switch r.gesture {
	case gestureDraw:
		line := r.board.Current
		if len(line) >= 2 {
			r.board.Commit(line)
			r.emit(play.DrawEnd(line))
		}
		r.board.Current = nil
	case gestureDrag:
		r.endDrag(p)
	}
	r.gesture = gestureNone
}

func (r *Recorder) eraseAt(p play.Point) {
	r.board.EraseAt(p)
	r.emit(play.Erase(p))
}

func (r *Recorder) beginDrag(tok play.Token, p play.Point) {
	r.gesture = gestureDrag
	r.drag = drag{
		tokenID: tok.ID,
		offsetX: tok.X - p.X,
		offsetY: tok.Y - p.Y,
	}
	if r.IsRecording() {
		r.paths[tok.ID] = []play.PathPoint{{X: tok.X, Y: tok.Y, Color: tok.Color}}
	}
}

// tokenPos maps a pointer position to the dragged token's center
func (r *Recorder) tokenPos(p play.Point) (float64, float64) {
	return p.X + r.drag.offsetX, p.Y + r.drag.offsetY
}

func (r *Recorder) moveDrag(p play.Point) {
	x, y := r.tokenPos(p)
	r.board.MoveToken(r.drag.tokenID, x, y)
	if !r.IsRecording() {
		return
	}
	tok, _ := r.board.Token(r.drag.tokenID)
	r.paths[r.drag.tokenID] = append(r.paths[r.drag.tokenID], play.PathPoint{X: x, Y: y, Color: tok.Color})
}

func (r *Recorder) endDrag(p play.Point) {
	id := r.drag.tokenID
	x, y := r.tokenPos(p)
	r.board.MoveToken(id, x, y)
	tok, _ := r.board.Token(id)

	path := r.paths[id]
	delete(r.paths, id)
	if !r.IsRecording() {
		return
	}

	if len(path) > 1 {
		if last := path[len(path)-1]; last.X != x || last.Y != y {
			path = append(path, play.PathPoint{X: x, Y: y, Color: tok.Color})
		}
		r.emit(play.PlayerDragPath(id, path))
	}
	r.emit(play.PlayerMove(id, x, y, tok.Color))
}
