package play

import "time"

// Defaults applied to recorded plays when the caller leaves them blank
const (
	DefaultSportType  = "basketball"
	DefaultVisibility = "team"
)

// Play is the stored record of a saved play. DiagramJSON holds the encoded
// ActionSequence.
type Play struct {
	ID           string    `json:"id"`
	TeamID       string    `json:"teamId"`
	Title        string    `json:"title"`
	SportType    string    `json:"sportType"`
	DiagramJSON  string    `json:"diagramJson"`
	PreviewImage string    `json:"previewImage,omitempty"`
	Visibility   string    `json:"visibility"`
	CreatedBy    string    `json:"createdBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	Tags         []string  `json:"tags,omitempty"`
}

// HasTag reports whether the play carries the given tag
func (p *Play) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
