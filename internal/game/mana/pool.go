package mana

import "fmt"

const (
	// StartingMax is the mana crystal count each side begins the match with.
	StartingMax = 1
	// MaxCrystals caps the number of mana crystals a side can hold.
	MaxCrystals = 10
)

// ErrNotEnough is returned by Spend when the pool cannot cover a cost.
type ErrNotEnough struct {
	Cost      int
	Available int
}

func (e *ErrNotEnough) Error() string {
	return fmt.Sprintf("not enough mana: cost %d, available %d", e.Cost, e.Available)
}

// Pool tracks one side's spendable mana and crystal count.
// Invariant: 0 <= Current <= Max <= MaxCrystals once the first refill happened.
type Pool struct {
	Current int
	Max     int
}

// NewPool returns a pool with one full crystal.
func NewPool() Pool {
	return Pool{Current: StartingMax, Max: StartingMax}
}

// CanAfford reports whether cost can be paid right now.
func (p Pool) CanAfford(cost int) bool {
	return cost >= 0 && cost <= p.Current
}

// Spend deducts cost, leaving the pool untouched if it cannot be paid.
func (p *Pool) Spend(cost int) error {
	if cost < 0 {
		return fmt.Errorf("negative mana cost %d", cost)
	}
	if cost > p.Current {
		return &ErrNotEnough{Cost: cost, Available: p.Current}
	}
	p.Current -= cost
	return nil
}

// Ramp adds one crystal, capped at MaxCrystals.
func (p *Pool) Ramp() {
	if p.Max < MaxCrystals {
		p.Max++
	}
}

// Refill restores Current to Max.
func (p *Pool) Refill() {
	p.Current = p.Max
}
