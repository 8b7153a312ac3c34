package targeting

import (
	"math/rand"

	"github.com/hearthforge/hearthforge-go/internal/game/entity"
)

// Resolver computes automatic targets for effects that were not given an
// explicit target.
type Resolver struct {
	rng *rand.Rand
}

// NewResolver creates a resolver drawing random picks from rng.
func NewResolver(rng *rand.Rand) *Resolver {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &Resolver{rng: rng}
}

// Resolve returns the targets for t from controller's perspective.
// Single-target types resolve to nothing: they need an explicit choice.
func (r *Resolver) Resolve(t entity.TargetingType, boards BoardAccessor, controller entity.Side) []Target {
	enemy := controller.Opponent()
	switch t.Normalize() {
	case entity.TargetAllMinions:
		out := minionTargets(controller, boards.BoardIDs(controller))
		return append(out, minionTargets(enemy, boards.BoardIDs(enemy))...)
	case entity.TargetAllFriendlyMinions:
		return minionTargets(controller, boards.BoardIDs(controller))
	case entity.TargetAllEnemyMinions:
		return minionTargets(enemy, boards.BoardIDs(enemy))
	case entity.TargetRandomEnemy:
		// the enemy hero is always a candidate, so this never comes back empty
		candidates := minionTargets(enemy, boards.BoardIDs(enemy))
		candidates = append(candidates, HeroTarget(enemy))
		return []Target{candidates[r.rng.Intn(len(candidates))]}
	case entity.TargetRandomMinion:
		candidates := minionTargets(entity.SidePlayer, boards.BoardIDs(entity.SidePlayer))
		candidates = append(candidates, minionTargets(entity.SideBot, boards.BoardIDs(entity.SideBot))...)
		if len(candidates) == 0 {
			return nil
		}
		return []Target{candidates[r.rng.Intn(len(candidates))]}
	default:
		return nil
	}
}

func minionTargets(side entity.Side, ids []int) []Target {
	out := make([]Target, 0, len(ids))
	for _, id := range ids {
		out = append(out, MinionTarget(side, id))
	}
	return out
}
