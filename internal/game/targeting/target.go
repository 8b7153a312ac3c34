package targeting

import (
	"fmt"

	"github.com/hearthforge/hearthforge-go/internal/game/entity"
)

// Kind distinguishes minion targets from hero targets.
type Kind string

const (
	// KindMinion targets a minion on either board.
	KindMinion Kind = "MINION"
	// KindHero targets a side's hero.
	KindHero Kind = "HERO"
)

// Target references a character on the battlefield. Minions are referenced
// by their stable card id, heroes by side.
type Target struct {
	Kind Kind        `json:"kind"`
	Side entity.Side `json:"side"`
	ID   int         `json:"id,omitempty"`
}

// MinionTarget references a minion controlled by side.
func MinionTarget(side entity.Side, id int) Target {
	return Target{Kind: KindMinion, Side: side, ID: id}
}

// HeroTarget references the hero of side.
func HeroTarget(side entity.Side) Target {
	return Target{Kind: KindHero, Side: side}
}

// IsHero reports whether the target is a hero.
func (t Target) IsHero() bool {
	return t.Kind == KindHero
}

func (t Target) String() string {
	if t.IsHero() {
		return fmt.Sprintf("%s hero", t.Side)
	}
	return fmt.Sprintf("%s minion #%d", t.Side, t.ID)
}

// BoardAccessor exposes the board layout the resolver and validator need.
type BoardAccessor interface {
	// BoardIDs returns the ids of the minions on side's board, in board order.
	BoardIDs(side entity.Side) []int
	// MinionSide reports which board holds the minion with the given id.
	MinionSide(id int) (entity.Side, bool)
}

// StaticBoards is a BoardAccessor over fixed id lists, handy for planners
// and tests.
type StaticBoards map[entity.Side][]int

// BoardIDs implements BoardAccessor.
func (b StaticBoards) BoardIDs(side entity.Side) []int {
	return b[side]
}

// MinionSide implements BoardAccessor.
func (b StaticBoards) MinionSide(id int) (entity.Side, bool) {
	for side, ids := range b {
		for _, candidate := range ids {
			if candidate == id {
				return side, true
			}
		}
	}
	return 0, false
}
