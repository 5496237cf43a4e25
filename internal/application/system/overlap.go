package system

import (
	"slices"

	"github.com/solarlune/resolv"

	"github.com/younwookim/pixelrun/internal/ecs"
)

// overlapCellSize is the broad phase cell size in pixels.
const overlapCellSize = 32

// One tag per entity kind. resolv tags are process-wide bits.
var kindTags = map[ecs.Kind]resolv.Tags{
	ecs.KindPlayer:      resolv.NewTag("player"),
	ecs.KindEnemy:       resolv.NewTag("enemy"),
	ecs.KindChaser:      resolv.NewTag("chaser"),
	ecs.KindBullet:      resolv.NewTag("bullet"),
	ecs.KindCollectible: resolv.NewTag("collectible"),
	ecs.KindApple:       resolv.NewTag("apple"),
	ecs.KindGoal:        resolv.NewTag("goal"),
}

// OverlapFunc is called with one entity of each registered kind.
type OverlapFunc func(a, b ecs.EntityID)

type overlapPair struct {
	a, b     ecs.Kind
	callback OverlapFunc
}

// OverlapSystem reports overlapping bodies through registered callbacks.
// Callbacks fire every frame the bodies keep touching.
type OverlapSystem struct {
	world *ecs.World
	space *resolv.Space

	shapes  map[ecs.EntityID]resolv.IShape
	owners  map[resolv.IShape]ecs.EntityID
	inSpace map[ecs.EntityID]bool
	pairs   []overlapPair
}

// NewOverlapSystem creates a broad phase covering a width x height world.
func NewOverlapSystem(w *ecs.World, width, height int) *OverlapSystem {
	return &OverlapSystem{
		world:   w,
		space:   resolv.NewSpace(width, height, overlapCellSize, overlapCellSize),
		shapes:  make(map[ecs.EntityID]resolv.IShape),
		owners:  make(map[resolv.IShape]ecs.EntityID),
		inSpace: make(map[ecs.EntityID]bool),
	}
}

// Overlap registers cb for every pair of overlapping kindA and kindB bodies.
// Pairs are checked in registration order.
func (s *OverlapSystem) Overlap(kindA, kindB ecs.Kind, cb OverlapFunc) {
	s.pairs = append(s.pairs, overlapPair{a: kindA, b: kindB, callback: cb})
}

// Update syncs bodies into the space and runs the callbacks.
// A body disabled by an earlier callback is skipped for the rest of the pass.
func (s *OverlapSystem) Update() {
	s.sync()

	for _, pair := range s.pairs {
		tag, ok := kindTags[pair.b]
		if !ok {
			continue
		}
		for _, a := range s.world.ByKind(pair.a) {
			if !s.world.IsEnabled(a) {
				continue
			}
			for _, b := range s.touching(a, tag) {
				if !s.world.IsEnabled(a) {
					break
				}
				if b == a || !s.world.IsEnabled(b) {
					continue
				}
				pair.callback(a, b)
			}
		}
	}
}

// touching returns the entities tagged tag that intersect a, in ID order.
func (s *OverlapSystem) touching(a ecs.EntityID, tag resolv.Tags) []ecs.EntityID {
	shape, ok := s.shapes[a]
	if !ok || !s.inSpace[a] {
		return nil
	}

	var hits []ecs.EntityID
	shape.IntersectionTest(resolv.IntersectionTestSettings{
		TestAgainst: shape.SelectTouchingCells(0).FilterShapes().ByTags(tag),
		OnIntersect: func(set resolv.IntersectionSet) bool {
			if id, ok := s.owners[set.OtherShape]; ok {
				hits = append(hits, id)
			}
			return true
		},
	})
	slices.Sort(hits)
	return slices.Compact(hits)
}

// sync mirrors enabled bodies into the space and drops the rest.
func (s *OverlapSystem) sync() {
	for id, body := range s.world.Body {
		shape, ok := s.shapes[id]

		if !body.Enabled || body.Width <= 0 || body.Height <= 0 {
			if ok && s.inSpace[id] {
				s.space.Remove(shape)
				s.inSpace[id] = false
			}
			continue
		}

		tag, tagged := kindTags[s.world.Kind[id]]
		if !tagged {
			continue
		}

		pos := s.world.Position[id]
		if !ok {
			shape = resolv.NewRectangleFromTopLeft(
				float64(pos.PixelX()), float64(pos.PixelY()),
				float64(body.Width), float64(body.Height),
			)
			shape.Tags().Set(tag)
			s.shapes[id] = shape
			s.owners[shape] = id
		}

		// Shapes are positioned by their centre
		shape.SetPosition(
			float64(pos.PixelX())+float64(body.Width)/2,
			float64(pos.PixelY())+float64(body.Height)/2,
		)
		if !s.inSpace[id] {
			s.space.Add(shape)
			s.inSpace[id] = true
		}
	}

	// Destroyed entities
	for id, shape := range s.shapes {
		if _, ok := s.world.Body[id]; ok {
			continue
		}
		if s.inSpace[id] {
			s.space.Remove(shape)
		}
		delete(s.shapes, id)
		delete(s.owners, shape)
		delete(s.inSpace, id)
	}
}
