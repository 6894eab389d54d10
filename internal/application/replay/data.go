package replay

// FrameInput records the input of one frame that had any activity
type FrameInput struct {
	F   int    `json:"f"`             // Frame number
	X   int    `json:"x"`             // PointerX
	Y   int    `json:"y"`             // PointerY
	P   bool   `json:"p,omitempty"`   // PointerPressed
	H   bool   `json:"h,omitempty"`   // PointerHeld
	R   bool   `json:"r,omitempty"`   // PointerReleased
	K   []int  `json:"k,omitempty"`   // Keys just pressed, as ebiten.Key
	Chr string `json:"chr,omitempty"` // Typed characters
}

// ReplayData is a gesture trace of one board session
type ReplayData struct {
	Version   string       `json:"version"`
	Team      string       `json:"team"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
