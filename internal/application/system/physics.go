package system

import (
	"github.com/younwookim/pixelrun/internal/ecs"
	"github.com/younwookim/pixelrun/internal/infrastructure/config"
)

// PhysicsSystem runs the arcade physics world: gravity, tile collision
// and world bounds for every enabled body.
type PhysicsSystem struct {
	world   *ecs.World
	tilemap ecs.Tilemap
	config  ecs.PhysicsConfig
	paused  bool
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(w *ecs.World, tm ecs.Tilemap, cfg config.PhysicsSettings) *PhysicsSystem {
	return &PhysicsSystem{
		world:   w,
		tilemap: tm,
		config:  PhysicsConfigFrom(cfg),
	}
}

// PhysicsConfigFrom converts px based settings to internal units.
func PhysicsConfigFrom(cfg config.PhysicsSettings) ecs.PhysicsConfig {
	substeps := cfg.Substeps
	if substeps <= 0 {
		substeps = 10
	}
	return ecs.PhysicsConfig{
		Gravity:      ecs.ToIUAccelPerFrame(cfg.Gravity),
		MaxFallSpeed: ecs.ToIUPerSubstep(cfg.MaxFallSpeed),
		RestSpeed:    ecs.ToIUPerSubstep(cfg.RestSpeed),
		Substeps:     substeps,
	}
}

// Update steps the world one frame.
// Normal: Substeps sub-steps = full speed
func (s *PhysicsSystem) Update() {
	if s.paused {
		return
	}

	ecs.BeginFrame(s.world, s.config)
	for i := 0; i < s.config.Substeps; i++ {
		ecs.MoveBodies(s.world, s.tilemap, s.config)
	}
	ecs.UpdateContacts(s.world, s.tilemap, s.config)
}

// Pause stops all body movement and overlap checks.
func (s *PhysicsSystem) Pause() { s.paused = true }

// Resume restarts the simulation.
func (s *PhysicsSystem) Resume() { s.paused = false }

// Paused reports whether the world is paused.
func (s *PhysicsSystem) Paused() bool { return s.paused }

// Gravity returns the signed world gravity in IU per frame.
func (s *PhysicsSystem) Gravity() int { return s.config.Gravity }

// Config returns the converted physics configuration.
func (s *PhysicsSystem) Config() ecs.PhysicsConfig { return s.config }
