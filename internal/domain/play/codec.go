package play

import (
	"encoding/json"
	"fmt"
)

// wireAction is the persisted shape of an Action. Field names match what
// earlier clients stored in diagram_json.
type wireAction struct {
	Type    string      `json:"type"`
	Pointer *Point      `json:"pointer,omitempty"`
	Line    []Point     `json:"line,omitempty"`
	ID      int         `json:"id,omitempty"`
	X       *float64    `json:"x,omitempty"`
	Y       *float64    `json:"y,omitempty"`
	Color   string      `json:"color,omitempty"`
	Path    []PathPoint `json:"path,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (a Action) MarshalJSON() ([]byte, error) {
	w := wireAction{Type: a.Kind.String()}
	switch a.Kind {
	case KindDrawStart, KindDrawMove, KindErase:
		p := a.Pointer
		w.Pointer = &p
	case KindDrawEnd:
		w.Line = a.Line
	case KindClear:
	case KindPlayerMove:
		x, y := a.X, a.Y
		w.ID, w.X, w.Y, w.Color = a.PlayerID, &x, &y, a.Color
	case KindPlayerDragPath:
		w.ID, w.Path = a.PlayerID, a.Path
	default:
		return nil, fmt.Errorf("unknown action kind %d", a.Kind)
	}
	return json.Marshal(w)
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Action) UnmarshalJSON(data []byte) error {
	var w wireAction
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	kind, ok := parseKind(w.Type)
	if !ok {
		return fmt.Errorf("unknown action type %q", w.Type)
	}

	*a = Action{Kind: kind}
	switch kind {
	case KindDrawStart, KindDrawMove, KindErase:
		if w.Pointer == nil {
			return fmt.Errorf("%s action without pointer", w.Type)
		}
		a.Pointer = *w.Pointer
	case KindDrawEnd:
		a.Line = w.Line
	case KindPlayerMove:
		if w.X == nil || w.Y == nil {
			return fmt.Errorf("playerMove action without position")
		}
		a.PlayerID, a.X, a.Y, a.Color = w.ID, *w.X, *w.Y, w.Color
	case KindPlayerDragPath:
		a.PlayerID, a.Path = w.ID, w.Path
	}
	return nil
}

// Encode serializes a sequence into a diagram_json payload
func Encode(seq ActionSequence) (string, error) {
	if seq == nil {
		seq = ActionSequence{}
	}
	data, err := json.Marshal(seq)
	if err != nil {
		return "", fmt.Errorf("failed to encode actions: %w", err)
	}
	return string(data), nil
}

// Decode parses a diagram_json payload. Any malformed element fails the
// whole payload.
func Decode(payload string) (ActionSequence, error) {
	var seq ActionSequence
	if err := json.Unmarshal([]byte(payload), &seq); err != nil {
		return nil, fmt.Errorf("failed to decode actions: %w", err)
	}
	if seq == nil {
		seq = ActionSequence{}
	}
	return seq, nil
}
