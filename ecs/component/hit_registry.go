package component

// HitRegistry is the world singleton that remembers which targets each
// activation (one hitbox window, one projectile flight, one burst) already
// struck.
type HitRegistry struct {
	next uint64
	sets map[uint64]map[uint64]struct{}
}

func NewHitRegistry() *HitRegistry {
	return &HitRegistry{sets: make(map[uint64]map[uint64]struct{})}
}

// Begin allocates a fresh activation with an empty target set.
func (r *HitRegistry) Begin() uint64 {
	if r.sets == nil {
		r.sets = make(map[uint64]map[uint64]struct{})
	}
	r.next++
	r.sets[r.next] = make(map[uint64]struct{}, 2)
	return r.next
}

// Reset clears the set of a re-activated hitbox.
func (r *HitRegistry) Reset(activation uint64) {
	if r.sets == nil {
		return
	}
	if set, ok := r.sets[activation]; ok {
		clear(set)
	}
}

// End forgets an activation once its hitbox or projectile is gone.
func (r *HitRegistry) End(activation uint64) {
	delete(r.sets, activation)
}

// TryRegisterHit is true the first time target is seen during activation and
// false afterwards. Unknown activations never register.
func (r *HitRegistry) TryRegisterHit(activation, target uint64) bool {
	if r == nil || r.sets == nil {
		return false
	}
	set, ok := r.sets[activation]
	if !ok {
		return false
	}
	if _, seen := set[target]; seen {
		return false
	}
	set[target] = struct{}{}
	return true
}

// Active is the number of live activations.
func (r *HitRegistry) Active() int {
	return len(r.sets)
}

var HitRegistryComponent = NewComponent[HitRegistry]()
