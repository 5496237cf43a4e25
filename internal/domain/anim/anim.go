// Package anim keeps the named frame animations sprites can play.
package anim

import (
	"fmt"

	"github.com/younwookim/pixelrun/internal/ecs"
)

// Animation is a sequence of frames of one texture.
type Animation struct {
	Key       string
	Texture   string
	Frames    int
	FrameRate float64 // frames per second
	Repeat    int     // extra passes after the first, -1 loops forever
}

// FrameDuration returns the time one frame stays on screen in ms.
func (a Animation) FrameDuration() float64 {
	if a.FrameRate <= 0 {
		return 0
	}
	return 1000 / a.FrameRate
}

// Registry holds animations by key.
type Registry struct {
	anims map[string]Animation
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{anims: make(map[string]Animation)}
}

// Create registers an animation. A key that already exists is kept as is
// and Create returns false.
func (r *Registry) Create(key, texture string, frames int, frameRate float64, repeat int) (bool, error) {
	if _, ok := r.anims[key]; ok {
		return false, nil
	}
	if frames <= 0 {
		return false, fmt.Errorf("animation %q: frame count %d must be positive", key, frames)
	}
	r.anims[key] = Animation{
		Key:       key,
		Texture:   texture,
		Frames:    frames,
		FrameRate: frameRate,
		Repeat:    repeat,
	}
	return true, nil
}

// Exists reports whether key is registered.
func (r *Registry) Exists(key string) bool {
	_, ok := r.anims[key]
	return ok
}

// Get returns the animation for key.
func (r *Registry) Get(key string) (Animation, bool) {
	a, ok := r.anims[key]
	return a, ok
}

// Play starts key on the sprite. With ignoreIfPlaying a sprite already
// running key keeps its frame.
func (r *Registry) Play(s *ecs.Sprite, key string, ignoreIfPlaying bool) {
	if !ignoreIfPlaying {
		s.Anim = ""
	}
	s.Play(key)
	if a, ok := r.anims[key]; ok {
		s.Texture = a.Texture
	}
}

// Advance moves the sprite's animation forward by dtMs milliseconds.
func (r *Registry) Advance(s *ecs.Sprite, dtMs float64) {
	a, ok := r.anims[s.Anim]
	if !ok {
		return
	}
	s.Texture = a.Texture

	step := a.FrameDuration()
	if step <= 0 {
		return
	}
	if a.Repeat >= 0 && s.Loop > a.Repeat {
		return
	}

	s.FrameTimer += dtMs
	for s.FrameTimer >= step {
		s.FrameTimer -= step
		if s.Frame+1 < a.Frames {
			s.Frame++
			continue
		}
		if a.Repeat >= 0 && s.Loop >= a.Repeat {
			// finished: hold the last frame
			s.Loop = a.Repeat + 1
			s.FrameTimer = 0
			return
		}
		s.Loop++
		s.Frame = 0
	}
}

// AdvanceAll advances every visible sprite in the world.
func (r *Registry) AdvanceAll(w *ecs.World, dtMs float64) {
	for id, s := range w.Sprite {
		if !s.Visible || s.Anim == "" {
			continue
		}
		r.Advance(&s, dtMs)
		w.Sprite[id] = s
	}
}
