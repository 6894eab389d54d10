package state

// RecorderPhase is the lifecycle of a recording session
type RecorderPhase int

const (
	RecorderIdle RecorderPhase = iota
	RecorderRecording
	RecorderStopped
)

// String returns the string representation of the recorder phase
func (s RecorderPhase) String() string {
	switch s {
	case RecorderIdle:
		return "Idle"
	case RecorderRecording:
		return "Recording"
	case RecorderStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// PlaybackPhase is the externally visible state of an animator
type PlaybackPhase int

const (
	PlaybackReady PlaybackPhase = iota
	PlaybackPlaying
	PlaybackPaused
	PlaybackFinished
)

// String returns the string representation of the playback phase
func (s PlaybackPhase) String() string {
	switch s {
	case PlaybackReady:
		return "Ready"
	case PlaybackPlaying:
		return "Playing"
	case PlaybackPaused:
		return "Paused"
	case PlaybackFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}
