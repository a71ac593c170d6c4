package systems

import (
	"cmp"
	"math"
	"slices"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/vortex/components"
)

// InteractionPoint is one entry of an aggregator snapshot, in normalized coordinates.
type InteractionPoint struct {
	ID    int64
	X, Y  float64
	Speed float64 // magnitude of the last sample-to-sample displacement
}

// InteractionAggregator tracks active interaction sources (mouse, touches, gestures).
// Each source is an ECS entity keyed by its id. All methods are safe to call
// from an input goroutine while the frame loop takes snapshots.
type InteractionAggregator struct {
	mu     sync.Mutex
	world  *ecs.World
	mapper *ecs.Map4[components.Pointer, components.Position, components.Velocity, components.Sample]
	filter *ecs.Filter3[components.Pointer, components.Position, components.Velocity]
	index  map[int64]ecs.Entity
}

// NewInteractionAggregator creates an empty aggregator.
func NewInteractionAggregator() *InteractionAggregator {
	world := ecs.NewWorld()
	return &InteractionAggregator{
		world:  world,
		mapper: ecs.NewMap4[components.Pointer, components.Position, components.Velocity, components.Sample](world),
		filter: ecs.NewFilter3[components.Pointer, components.Position, components.Velocity](world),
		index:  make(map[int64]ecs.Entity),
	}
}

// Upsert records a new sample for id. A new id starts with zero velocity;
// an existing id gets velocity = sample - previous raw sample.
func (a *InteractionAggregator) Upsert(id int64, x, y float64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entity, ok := a.index[id]
	if !ok {
		ptr := components.Pointer{ID: id}
		pos := components.Position{X: x, Y: y}
		vel := components.Velocity{}
		sample := components.Sample{LastX: x, LastY: y}
		a.index[id] = a.mapper.NewEntity(&ptr, &pos, &vel, &sample)
		return
	}

	_, pos, vel, sample := a.mapper.Get(entity)
	vel.X = x - sample.LastX
	vel.Y = y - sample.LastY
	sample.LastX, sample.LastY = x, y
	pos.X, pos.Y = x, y
}

// Remove drops id. Removing an unknown id is a no-op.
func (a *InteractionAggregator) Remove(id int64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	entity, ok := a.index[id]
	if !ok {
		return
	}
	delete(a.index, id)
	if a.world.Alive(entity) {
		a.world.RemoveEntity(entity)
	}
}

// Snapshot appends the current points to dst[:0], ordered by id, and returns it.
// The result is a copy; later updates do not affect it.
func (a *InteractionAggregator) Snapshot(dst []InteractionPoint) []InteractionPoint {
	a.mu.Lock()
	defer a.mu.Unlock()

	dst = dst[:0]
	query := a.filter.Query()
	for query.Next() {
		ptr, pos, vel := query.Get()
		dst = append(dst, InteractionPoint{
			ID:    ptr.ID,
			X:     pos.X,
			Y:     pos.Y,
			Speed: math.Hypot(vel.X, vel.Y),
		})
	}

	slices.SortFunc(dst, func(p, q InteractionPoint) int {
		return cmp.Compare(p.ID, q.ID)
	})
	return dst
}

// IDs returns the active ids in ascending order.
func (a *InteractionAggregator) IDs() []int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	ids := make([]int64, 0, len(a.index))
	for id := range a.index {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of active points.
func (a *InteractionAggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.index)
}

// Clear removes every point.
func (a *InteractionAggregator) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	for id, entity := range a.index {
		if a.world.Alive(entity) {
			a.world.RemoveEntity(entity)
		}
		delete(a.index, id)
	}
}
