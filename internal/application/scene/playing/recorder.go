package playing

import (
	"time"

	"github.com/younwookim/pixelrun/internal/application/replay"
	"github.com/younwookim/pixelrun/internal/application/system"
)

// Recorder handles input recording for replay
type Recorder struct {
	data      replay.ReplayData
	recording bool
	frame     int
}

// NewRecorder creates a new recorder with seed and difficulty for
// deterministic replay
func NewRecorder(seed int64, level string, difficulty int) *Recorder {
	return &Recorder{
		data: replay.ReplayData{
			Version:    replay.Version,
			Seed:       seed,
			Level:      level,
			Difficulty: difficulty,
			StartTime:  time.Now().Format(time.RFC3339),
			Frames:     make([]replay.FrameInput, 0, 3600), // Pre-allocate for ~1 minute at 60fps
		},
		recording: true,
	}
}

// RecordFrame records a single frame's input
func (r *Recorder) RecordFrame(input system.InputState) {
	if !r.recording {
		return
	}

	fi := replay.FrameInput{
		F:  r.frame,
		L:  input.Left,
		R:  input.Right,
		J:  input.Jump,
		Fi: input.Fire,
		P:  input.Pause,
		Rs: input.Restart,
		C:  input.Confirm,
	}
	// Only pointers that matter to the level: held or just pressed
	for _, p := range input.Pointers {
		if !p.Down && !p.Pressed {
			continue
		}
		fi.Ptr = append(fi.Ptr, replay.PointerInput{ID: p.ID, X: p.X, Y: p.Y, D: p.Down, P: p.Pressed})
	}

	r.data.Frames = append(r.data.Frames, fi)
	r.frame++
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	return replay.SaveReplay(filename, r.data)
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// GetData returns the replay data (for testing)
func (r *Recorder) GetData() replay.ReplayData {
	return r.data
}

// InputFromReplay converts a replayed frame back to live input.
func InputFromReplay(in replay.ReplayInput) system.InputState {
	out := system.InputState{
		Left:    in.Left,
		Right:   in.Right,
		Jump:    in.Jump,
		Fire:    in.Fire,
		Pause:   in.Pause,
		Restart: in.Restart,
		Confirm: in.Confirm,
	}
	for _, p := range in.Pointers {
		out.Pointers = append(out.Pointers, system.Pointer{ID: p.ID, X: p.X, Y: p.Y, Down: p.Down, Pressed: p.Pressed})
	}
	return out
}
