// Package viewer plays back an ActionSequence: either a recording under
// review, which can then be saved or discarded, or a saved play.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/playbook/internal/application/library"
	"github.com/younwookim/playbook/internal/application/playback"
	"github.com/younwookim/playbook/internal/application/recorder"
	"github.com/younwookim/playbook/internal/application/render"
	"github.com/younwookim/playbook/internal/application/scene"
	"github.com/younwookim/playbook/internal/application/state"
	"github.com/younwookim/playbook/internal/application/system"
	"github.com/younwookim/playbook/internal/domain/play"
)

const (
	saveTimeout  = 5 * time.Second
	maxTitleRune = 60
	maxTagsRune  = 120
)

// promptField is the save prompt input being typed into
type promptField int

const (
	fieldTitle promptField = iota
	fieldTags
)

// Notifier is implemented by scenes that can show a one-line message
type Notifier interface {
	Notify(msg string)
}

// Options configures a Viewer
type Options struct {
	Library *library.Service
	Timing  playback.Timing
	TeamID  string
	User    string
	Sport   string // empty saves with the default sport
	Input   func() system.InputState
	Back    scene.Scene // nil quits the board
}

// Viewer is the playback scene
type Viewer struct {
	opts      Options
	anim      *playback.Animator
	clock     *playback.Clock
	seq       play.ActionSequence
	title     string
	review    *recorder.Recorder // set while reviewing an unsaved recording
	autoStart bool

	naming  bool
	field   promptField
	name    []rune
	tags    []rune
	message string
}

// NewSaved creates a viewer for a saved play. Playback starts on entry.
func NewSaved(p *play.Play, seq play.ActionSequence, opts Options) *Viewer {
	v := newViewer(seq, opts)
	v.title = p.Title
	v.autoStart = true
	return v
}

// NewReview creates a viewer for the stopped recording held by rec
func NewReview(seq play.ActionSequence, rec *recorder.Recorder, opts Options) *Viewer {
	v := newViewer(seq, opts)
	v.title = "Review recording"
	v.review = rec
	return v
}

func newViewer(seq play.ActionSequence, opts Options) *Viewer {
	anim := playback.New(seq, opts.Timing)
	return &Viewer{
		opts:  opts,
		anim:  anim,
		clock: playback.NewClock(anim),
		seq:   seq.Clone(),
	}
}

// Update handles input, then advances playback by dt
func (v *Viewer) Update(dt time.Duration) (scene.Scene, error) {
	next, err := v.handle(v.opts.Input())
	if next != nil || err != nil {
		return next, err
	}
	v.clock.Update(dt)
	return nil, nil
}

func (v *Viewer) handle(in system.InputState) (scene.Scene, error) {
	if v.naming {
		return v.handleNaming(in)
	}

	for _, intent := range system.ViewerKeys.Intents(in) {
		switch intent {
		case system.IntentPlayPause:
			v.togglePlay()
		case system.IntentRestart:
			v.anim.Reset()
		case system.IntentSave:
			if v.review != nil {
				v.naming = true
				v.field = fieldTitle
				v.name = v.name[:0]
				v.tags = v.tags[:0]
				v.message = ""
			}
		case system.IntentDiscard:
			if v.review != nil {
				v.review.Discard()
				return v.back("Recording discarded")
			}
		case system.IntentBack:
			return v.back("")
		}
	}
	return nil, nil
}

func (v *Viewer) togglePlay() {
	if v.anim.Playing() {
		v.anim.Pause()
		return
	}
	if v.anim.Done() {
		v.anim.Reset()
	}
	v.anim.Play()
}

func (v *Viewer) handleNaming(in system.InputState) (scene.Scene, error) {
	input, limit := &v.name, maxTitleRune
	if v.field == fieldTags {
		input, limit = &v.tags, maxTagsRune
	}
	for _, r := range in.Chars {
		if len(*input) < limit {
			*input = append(*input, r)
		}
	}

	switch {
	case in.JustPressed(ebiten.KeyEscape):
		v.naming = false
	case in.JustPressed(ebiten.KeyTab):
		v.field = 1 - v.field
	case in.JustPressed(ebiten.KeyBackspace):
		if n := len(*input); n > 0 {
			*input = (*input)[:n-1]
		}
	case in.JustPressed(ebiten.KeyEnter), in.JustPressed(ebiten.KeyNumpadEnter):
		v.naming = false
		return v.save()
	}
	return nil, nil
}

// save persists the reviewed recording. On failure the recording stays
// stopped so the user can try again.
func (v *Viewer) save() (scene.Scene, error) {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	saved, err := v.opts.Library.Save(ctx, library.SaveRequest{
		TeamID:    v.opts.TeamID,
		Title:     strings.TrimSpace(string(v.name)),
		SportType: v.opts.Sport,
		Tags:      library.SplitTags(string(v.tags)),
		Actions:   v.seq,
		CreatedBy: v.opts.User,
	})
	if err != nil {
		v.message = saveMessage(err)
		return nil, nil
	}

	v.review.Discard()
	return v.back(fmt.Sprintf("Saved %q", saved.Title))
}

func saveMessage(err error) string {
	if errors.Is(err, library.ErrEmptySequence) {
		return "Nothing recorded. Record some actions before saving."
	}
	return err.Error()
}

func (v *Viewer) back(msg string) (scene.Scene, error) {
	if v.opts.Back == nil {
		return nil, ebiten.Termination
	}
	if n, ok := v.opts.Back.(Notifier); ok && msg != "" {
		n.Notify(msg)
	}
	return v.opts.Back, nil
}

// Draw renders the board, the drag trail being replayed and the status bar
func (v *Viewer) Draw(screen *ebiten.Image) {
	view := v.anim.View()
	render.Board(screen, view.Board)
	render.Trail(screen, view.DragPath)
	render.Status(screen, false, v.statusLines(view)...)
	if v.naming {
		render.Prompt(screen, v.promptLines()...)
	}
}

func (v *Viewer) statusLines(view playback.View) []string {
	line := fmt.Sprintf("%s  [%s %d/%d]", v.title, view.Phase, view.Step, view.Total)
	if v.message != "" {
		line += "  " + v.message
	}

	help := "Space play/pause  R restart  Esc back"
	if v.review != nil {
		help = "Space play/pause  R restart  S save  X discard  Esc back"
	}
	if v.naming {
		help = "Tab switches title/tags, Enter to save, Esc to cancel"
	}
	return []string{line, help}
}

// promptLines shows both save fields, with a cursor on the active one
func (v *Viewer) promptLines() []string {
	title, tags := string(v.name), string(v.tags)
	if v.field == fieldTitle {
		title += "_"
	} else {
		tags += "_"
	}
	return []string{"Title: " + title, "Tags (comma separated): " + tags}
}

// OnEnter starts saved plays from the beginning
func (v *Viewer) OnEnter() {
	if v.autoStart {
		v.anim.Reset()
		v.anim.Play()
	}
}

// OnExit stops playback
func (v *Viewer) OnExit() {
	v.anim.Pause()
}

// Phase returns the playback phase
func (v *Viewer) Phase() state.PlaybackPhase {
	return v.anim.Phase()
}

// Board returns the board currently shown
func (v *Viewer) Board() play.Board {
	return v.anim.View().Board
}
