// Package proximity scales registered targets by how close the pointer is to
// each target's elliptical response zone, easing every target's current value
// toward its desired value one scheduled tick at a time.
package proximity

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/harmonica"
)

// TargetOption configures a target at registration.
type TargetOption func(*target)

// WithHoverFloor makes the target rest at floor instead of neutral while it is
// marked hovered via SetHovered, including when the pointer is outside its zone.
func WithHoverFloor(floor float64) TargetOption {
	return func(t *target) {
		if finite(floor) && floor >= 0 {
			t.floor = floor
			t.hasFloor = true
		}
	}
}

// TargetState is a read-only copy of one target.
type TargetState struct {
	ID        string  `json:"id"`
	Current   float64 `json:"current"`
	Target    float64 `json:"target"`
	Proximity float64 `json:"proximity"`
	Hovered   bool    `json:"hovered"`
}

type target struct {
	id     string
	bounds BoundsFunc

	current   float64
	desired   float64
	velocity  float64
	proximity float64 // falloff result from the last accepted sample

	hovered  bool
	floor    float64
	hasFloor bool
}

// Animator owns the target registry and the interpolation loop. All methods
// are safe to call from multiple goroutines; the Scheduler must not run a
// callback synchronously from RequestTick.
type Animator struct {
	cfg    Config
	sched  Scheduler
	spring *harmonica.Spring

	mu       sync.Mutex
	targets  map[string]*target
	filter   sampleFilter
	handle   TickHandle
	gen      uint64
	detach   []func()
	disposed bool
}

func New(cfg Config, sched Scheduler) (*Animator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sched == nil {
		return nil, fmt.Errorf("%w: nil scheduler", ErrInvalidConfig)
	}
	a := &Animator{
		cfg:     cfg,
		sched:   sched,
		targets: map[string]*target{},
		filter:  sampleFilter{threshold: cfg.ThresholdPx},
	}
	if cfg.Spring != nil {
		s := harmonica.NewSpring(harmonica.FPS(cfg.Spring.FPS), cfg.Spring.Frequency, cfg.Spring.Damping)
		a.spring = &s
	}
	return a, nil
}

func (a *Animator) Config() Config { return a.cfg }

// Attach subscribes the animator to src until Dispose.
func (a *Animator) Attach(src PointerSource) {
	unsubscribe := src.Subscribe(a.PointerMove, a.PointerLeave)
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		unsubscribe()
		return
	}
	a.detach = append(a.detach, unsubscribe)
	a.mu.Unlock()
}

// Register adds or replaces a target. Replacing resets its values to neutral.
func (a *Animator) Register(id string, bounds BoundsFunc, opts ...TargetOption) {
	t := &target{
		id:        id,
		bounds:    bounds,
		current:   a.cfg.Neutral,
		desired:   a.cfg.Neutral,
		proximity: a.cfg.Neutral,
	}
	for _, opt := range opts {
		opt(t)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disposed {
		return
	}
	a.targets[id] = t
	if !a.needsTickLocked() {
		a.cancelLocked()
	}
}

// Unregister removes a target; unknown ids are ignored.
func (a *Animator) Unregister(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.targets[id]; !ok {
		return
	}
	delete(a.targets, id)
	if !a.needsTickLocked() {
		a.cancelLocked()
	}
}

// PointerMove recomputes every target's desired value if the sample passes the
// movement threshold.
func (a *Animator) PointerMove(x, y float64) {
	if !finite(x) || !finite(y) {
		return
	}
	a.mu.Lock()
	if a.disposed || !a.filter.accept(x, y) {
		a.mu.Unlock()
		return
	}
	snap := a.snapshotLocked()
	a.mu.Unlock()

	// Bounds accessors run unlocked so they may read the animator.
	results := make([]float64, len(snap))
	for i, t := range snap {
		results[i] = a.falloffFor(t.bounds, x, y)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disposed {
		return
	}
	for i, t := range snap {
		if a.targets[t.id] != t {
			continue // unregistered or replaced meanwhile
		}
		t.proximity = results[i]
		t.desired = a.desiredFor(t)
	}
	a.ensureLoopLocked()
}

// PointerLeave eases every target back to neutral.
func (a *Animator) PointerLeave() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disposed {
		return
	}
	a.filter.reset()
	for _, t := range a.targets {
		t.proximity = a.cfg.Neutral
		t.hovered = false
		t.desired = a.cfg.Neutral
	}
	a.ensureLoopLocked()
}

// SetHovered marks a target as directly hovered. It only affects targets
// registered WithHoverFloor.
func (a *Animator) SetHovered(id string, hovered bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.targets[id]
	if a.disposed || !ok || t.hovered == hovered {
		return
	}
	t.hovered = hovered
	t.desired = a.desiredFor(t)
	a.ensureLoopLocked()
}

// Value returns the interpolated value for id, or neutral if id is unknown.
func (a *Animator) Value(id string) float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	if t, ok := a.targets[id]; ok {
		return t.current
	}
	return a.cfg.Neutral
}

func (a *Animator) Target(id string) (TargetState, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	t, ok := a.targets[id]
	if !ok {
		return TargetState{}, false
	}
	return t.state(), true
}

// Snapshot returns every target ordered by id.
func (a *Animator) Snapshot() []TargetState {
	a.mu.Lock()
	out := make([]TargetState, 0, len(a.targets))
	for _, t := range a.targets {
		out = append(out, t.state())
	}
	a.mu.Unlock()
	slices.SortFunc(out, func(x, y TargetState) int { return strings.Compare(x.ID, y.ID) })
	return out
}

// Animating reports whether a tick is scheduled.
func (a *Animator) Animating() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.handle != 0
}

// Dispose drops all targets, cancels the loop and detaches pointer sources.
// Later calls are no-ops.
func (a *Animator) Dispose() {
	a.mu.Lock()
	if a.disposed {
		a.mu.Unlock()
		return
	}
	a.disposed = true
	a.cancelLocked()
	a.targets = map[string]*target{}
	detach := a.detach
	a.detach = nil
	a.mu.Unlock()

	for _, fn := range detach {
		fn()
	}
}

func (a *Animator) tick(gen uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.disposed || gen != a.gen {
		return
	}
	a.handle = 0

	animating := false
	for _, t := range a.targets {
		if a.step(t) {
			animating = true
		}
	}
	if animating {
		a.requestLocked()
		return
	}
	for _, t := range a.targets {
		t.current = t.desired
		t.velocity = 0
	}
}

// step advances one target and reports whether it is still moving.
func (a *Animator) step(t *target) bool {
	eps := a.cfg.Epsilon
	if a.spring != nil {
		if math.Abs(t.desired-t.current) <= eps && math.Abs(t.velocity) <= eps {
			return false
		}
		t.current, t.velocity = a.spring.Update(t.current, t.velocity, t.desired)
		if t.current < 0 {
			t.current, t.velocity = 0, 0
		}
		return true
	}
	diff := t.desired - t.current
	if math.Abs(diff) <= eps {
		return false
	}
	t.current += diff * a.cfg.Smoothing
	return true
}

func (a *Animator) falloffFor(bounds BoundsFunc, x, y float64) float64 {
	if bounds == nil {
		return a.cfg.Neutral
	}
	return Falloff(EllipseDistance(bounds(), x, y), a.cfg.Neutral, a.cfg.MaxBoost)
}

func (a *Animator) desiredFor(t *target) float64 {
	if t.hovered && t.hasFloor && t.proximity < t.floor {
		return t.floor
	}
	return t.proximity
}

func (a *Animator) needsTickLocked() bool {
	for _, t := range a.targets {
		// Exact comparison: a sub-epsilon gap still needs the snapping tick.
		if t.desired != t.current || t.velocity != 0 {
			return true
		}
	}
	return false
}

func (a *Animator) ensureLoopLocked() {
	if a.handle != 0 || !a.needsTickLocked() {
		return
	}
	a.requestLocked()
}

func (a *Animator) requestLocked() {
	gen := a.gen
	a.handle = a.sched.RequestTick(func() { a.tick(gen) })
}

func (a *Animator) cancelLocked() {
	a.gen++
	if a.handle != 0 {
		a.sched.CancelTick(a.handle)
		a.handle = 0
	}
}

func (a *Animator) snapshotLocked() []*target {
	out := make([]*target, 0, len(a.targets))
	for _, t := range a.targets {
		out = append(out, t)
	}
	return out
}

func (t *target) state() TargetState {
	return TargetState{
		ID:        t.id,
		Current:   t.current,
		Target:    t.desired,
		Proximity: t.proximity,
		Hovered:   t.hovered,
	}
}
