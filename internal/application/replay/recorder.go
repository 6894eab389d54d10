package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/playbook/internal/application/system"
)

// Recorder captures the designer's per-frame input into a trace
type Recorder struct {
	data      ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a recorder for team
func NewRecorder(team string) *Recorder {
	return &Recorder{
		data: ReplayData{
			Version:   "1.0",
			Team:      team,
			StartTime: time.Now().Format(time.RFC3339),
			Frames:    make([]FrameInput, 0, 1024),
		},
		recording: true,
	}
}

// RecordFrame records in if the frame had any activity. Every call counts as
// one frame.
func (r *Recorder) RecordFrame(in system.InputState) {
	if !r.recording {
		return
	}
	defer func() { r.frame++ }()

	if !in.PointerPressed && !in.PointerHeld && !in.PointerReleased && len(in.Keys) == 0 && len(in.Chars) == 0 {
		return
	}

	fi := FrameInput{
		F:   r.frame,
		X:   in.PointerX,
		Y:   in.PointerY,
		P:   in.PointerPressed,
		H:   in.PointerHeld,
		R:   in.PointerReleased,
		Chr: string(in.Chars),
	}
	for _, k := range in.Keys {
		fi.K = append(fi.K, int(k))
	}
	r.data.Frames = append(r.data.Frames, fi)
}

// Save writes the trace to a file
func (r *Recorder) Save(filename string) error {
	if len(r.data.Frames) == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode trace: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// FrameCount returns the number of frames seen, active or not
func (r *Recorder) FrameCount() int {
	return r.frame
}

// Data returns the trace
func (r *Recorder) Data() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("trace_%s.json", time.Now().Format("20060102_150405"))
}
