package play

import "math"

// Token is one of the five player markers
type Token struct {
	ID    int
	X, Y  float64
	Color string
}

// Stroke is one continuous freehand mark
type Stroke []Point

// Near reports whether any point of the stroke lies within EraseRadius of p
func (s Stroke) Near(p Point) bool {
	for _, pt := range s {
		if math.Hypot(p.X-pt.X, p.Y-pt.Y) < EraseRadius {
			return true
		}
	}
	return false
}

// Board is the visual state of the canvas: token positions, committed
// strokes and the stroke currently being drawn.
type Board struct {
	Tokens  []Token
	Strokes []Stroke
	Current Stroke
}

// NewBoard returns a board with the initial token layout and no strokes
func NewBoard() Board {
	return Board{Tokens: InitialTokens()}
}

// Clone returns a deep copy of the board
func (b Board) Clone() Board {
	out := Board{
		Tokens: append([]Token(nil), b.Tokens...),
	}
	if b.Strokes != nil {
		out.Strokes = make([]Stroke, len(b.Strokes))
		for i, s := range b.Strokes {
			out.Strokes[i] = append(Stroke(nil), s...)
		}
	}
	if b.Current != nil {
		out.Current = append(Stroke(nil), b.Current...)
	}
	return out
}

// Token returns the token with the given id
func (b Board) Token(id int) (Token, bool) {
	for _, t := range b.Tokens {
		if t.ID == id {
			return t, true
		}
	}
	return Token{}, false
}

// MoveToken repositions a token. Unknown ids are ignored.
func (b *Board) MoveToken(id int, x, y float64) {
	for i := range b.Tokens {
		if b.Tokens[i].ID == id {
			b.Tokens[i].X = x
			b.Tokens[i].Y = y
			return
		}
	}
}

// TokenAt returns the topmost token whose disc contains p
func (b Board) TokenAt(p Point) (Token, bool) {
	for i := len(b.Tokens) - 1; i >= 0; i-- {
		t := b.Tokens[i]
		if math.Hypot(p.X-t.X, p.Y-t.Y) <= TokenRadius {
			return t, true
		}
	}
	return Token{}, false
}

// EraseAt deletes every stroke touched by p and returns how many were removed.
// Strokes are removed whole.
func (b *Board) EraseAt(p Point) int {
	kept := b.Strokes[:0]
	removed := 0
	for _, s := range b.Strokes {
		if s.Near(p) {
			removed++
			continue
		}
		kept = append(kept, s)
	}
	b.Strokes = kept
	return removed
}

// ClearStrokes drops committed strokes and the stroke in progress
func (b *Board) ClearStrokes() {
	b.Strokes = nil
	b.Current = nil
}

// Commit moves the in-progress stroke into the committed set
func (b *Board) Commit(s Stroke) {
	b.Strokes = append(b.Strokes, append(Stroke(nil), s...))
	b.Current = nil
}

// ResetTokens restores the initial token layout
func (b *Board) ResetTokens() {
	b.Tokens = InitialTokens()
}
