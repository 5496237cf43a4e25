package replay

// FrameInput records input state for a single frame
type FrameInput struct {
	F   int            `json:"f"`             // Frame number
	L   bool           `json:"l,omitempty"`   // Left
	R   bool           `json:"r,omitempty"`   // Right
	J   bool           `json:"j,omitempty"`   // Jump (held)
	Fi  bool           `json:"fi,omitempty"`  // Fire pressed
	P   bool           `json:"p,omitempty"`   // Pause pressed
	Rs  bool           `json:"rs,omitempty"`  // Restart pressed
	C   bool           `json:"c,omitempty"`   // Confirm pressed
	Ptr []PointerInput `json:"ptr,omitempty"` // Pointers that are down or went down
}

// PointerInput records one mouse or touch pointer
type PointerInput struct {
	ID int  `json:"id"`
	X  int  `json:"x"`
	Y  int  `json:"y"`
	D  bool `json:"d,omitempty"` // Down
	P  bool `json:"p,omitempty"` // Pressed this frame
}

// ReplayData contains all data needed to replay a game session
type ReplayData struct {
	Version    string       `json:"version"`
	Seed       int64        `json:"seed"`
	Level      string       `json:"level"`
	Difficulty int          `json:"difficulty"` // scales touch damage
	StartTime  string       `json:"startTime"`
	Frames     []FrameInput `json:"frames"`
}
