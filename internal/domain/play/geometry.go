package play

// Canvas geometry shared by recording and playback. Recorded coordinates are
// only meaningful against these values, so they are not configurable.
const (
	CanvasWidth  = 600
	CanvasHeight = 400

	// EraseRadius is the distance under which an erase pointer removes a stroke
	EraseRadius = 20.0

	// TokenRadius is the drawn radius of a player token and its hit area
	TokenRadius = 20.0

	// TokenCount is the fixed number of player tokens on the board
	TokenCount = 5
)

// InitialTokens returns the starting token layout: five evenly spaced
// tokens along the top of the court.
func InitialTokens() []Token {
	return []Token{
		{ID: 1, X: 100, Y: 40, Color: "blue"},
		{ID: 2, X: 200, Y: 40, Color: "red"},
		{ID: 3, X: 300, Y: 40, Color: "green"},
		{ID: 4, X: 400, Y: 40, Color: "orange"},
		{ID: 5, X: 500, Y: 40, Color: "purple"},
	}
}
