package system

import "github.com/hajimehoshi/ebiten/v2"

// Intent is a command the user asked for this frame
type Intent int

const (
	IntentNone Intent = iota
	IntentRecord
	IntentToggleErase
	IntentClear
	IntentResetTokens
	IntentReview
	IntentPlayPause
	IntentRestart
	IntentSave
	IntentDiscard
	IntentBack
)

func (i Intent) String() string {
	switch i {
	case IntentRecord:
		return "Record"
	case IntentToggleErase:
		return "ToggleErase"
	case IntentClear:
		return "Clear"
	case IntentResetTokens:
		return "ResetTokens"
	case IntentReview:
		return "Review"
	case IntentPlayPause:
		return "PlayPause"
	case IntentRestart:
		return "Restart"
	case IntentSave:
		return "Save"
	case IntentDiscard:
		return "Discard"
	case IntentBack:
		return "Back"
	default:
		return "None"
	}
}

// Keymap binds keys to intents
type Keymap map[ebiten.Key]Intent

// DesignerKeys is the keymap of the drawing board
var DesignerKeys = Keymap{
	ebiten.KeyR:      IntentRecord,
	ebiten.KeyE:      IntentToggleErase,
	ebiten.KeyC:      IntentClear,
	ebiten.KeyP:      IntentResetTokens,
	ebiten.KeyV:      IntentReview,
	ebiten.KeyEscape: IntentBack,
}

// ViewerKeys is the keymap of playback
var ViewerKeys = Keymap{
	ebiten.KeySpace:  IntentPlayPause,
	ebiten.KeyR:      IntentRestart,
	ebiten.KeyS:      IntentSave,
	ebiten.KeyX:      IntentDiscard,
	ebiten.KeyEscape: IntentBack,
}

// Intents returns the intents for the keys pressed this frame, in key order
func (km Keymap) Intents(in InputState) []Intent {
	var out []Intent
	for _, k := range in.Keys {
		if i, ok := km[k]; ok {
			out = append(out, i)
		}
	}
	return out
}
