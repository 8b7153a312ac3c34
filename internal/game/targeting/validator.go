package targeting

import (
	"errors"
	"fmt"

	"github.com/hearthforge/hearthforge-go/internal/game/entity"
)

// ErrIllegalTarget is wrapped by every validation failure.
var ErrIllegalTarget = errors.New("illegal target")

// Validate checks that an explicit target exists and satisfies t from
// controller's perspective. Types without a single-target requirement accept
// any existing character, since an explicit choice overrides resolution.
func Validate(t entity.TargetingType, target Target, boards BoardAccessor, controller entity.Side) error {
	if !target.Side.Valid() {
		return fmt.Errorf("%w: unknown side %d", ErrIllegalTarget, int(target.Side))
	}

	switch target.Kind {
	case KindHero:
	case KindMinion:
		side, ok := boards.MinionSide(target.ID)
		if !ok {
			return fmt.Errorf("%w: minion #%d is not on the board", ErrIllegalTarget, target.ID)
		}
		if side != target.Side {
			return fmt.Errorf("%w: minion #%d is controlled by %s", ErrIllegalTarget, target.ID, side)
		}
	default:
		return fmt.Errorf("%w: unknown target kind %q", ErrIllegalTarget, target.Kind)
	}

	friendly := target.Side == controller
	switch t.Normalize() {
	case entity.TargetSingleMinion:
		if target.IsHero() {
			return fmt.Errorf("%w: %s requires a minion", ErrIllegalTarget, t)
		}
	case entity.TargetSingleFriendlyMinion:
		if target.IsHero() || !friendly {
			return fmt.Errorf("%w: %s requires a friendly minion", ErrIllegalTarget, t)
		}
	case entity.TargetSingleEnemyMinion:
		if target.IsHero() || friendly {
			return fmt.Errorf("%w: %s requires an enemy minion", ErrIllegalTarget, t)
		}
	}
	return nil
}
