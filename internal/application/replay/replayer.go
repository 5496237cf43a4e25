package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Version is written into every replay file.
const Version = "1.1"

// ReplayInput represents input state during replay
type ReplayInput struct {
	Left     bool
	Right    bool
	Jump     bool
	Fire     bool
	Pause    bool
	Restart  bool
	Confirm  bool
	Pointers []ReplayPointer
}

// ReplayPointer is a recorded mouse or touch pointer
type ReplayPointer struct {
	ID      int
	X, Y    int
	Down    bool
	Pressed bool
}

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}

	return &data, nil
}

// SaveReplay writes replay data to a file as indented JSON
func SaveReplay(filename string, data ReplayData) error {
	if len(data.Frames) == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// GetInput returns the input for the current frame and advances
func (r *Replayer) GetInput() (ReplayInput, bool) {
	if r.frame >= len(r.data.Frames) {
		return ReplayInput{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++

	in := ReplayInput{
		Left:    fi.L,
		Right:   fi.R,
		Jump:    fi.J,
		Fire:    fi.Fi,
		Pause:   fi.P,
		Restart: fi.Rs,
		Confirm: fi.C,
	}
	for _, p := range fi.Ptr {
		in.Pointers = append(in.Pointers, ReplayPointer{
			ID:      p.ID,
			X:       p.X,
			Y:       p.Y,
			Down:    p.D,
			Pressed: p.P,
		})
	}
	return in, true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// Seed returns the seed used for the replay
func (r *Replayer) Seed() int64 {
	return r.data.Seed
}

// Difficulty returns the preferred difficulty the session was played at
func (r *Replayer) Difficulty() int {
	return r.data.Difficulty
}

// Level returns the level the replay was recorded on
func (r *Replayer) Level() string {
	return r.data.Level
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// CreateTestReplayData creates replay data for testing (player runs right)
func CreateTestReplayData(frames int, right bool) ReplayData {
	data := ReplayData{
		Version:   Version,
		Seed:      12345,
		Level:     "test",
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{
			F: i,
			R: right,
		}
	}

	return data
}
