// Package entity holds the value types a match is made of: cards, heroes,
// hero powers and the sides that own them.
package entity

import "fmt"

// Side identifies one of the two participants of a match.
type Side int

const (
	SidePlayer Side = iota
	SideBot
)

func (s Side) String() string {
	switch s {
	case SidePlayer:
		return "PLAYER"
	case SideBot:
		return "BOT"
	default:
		return fmt.Sprintf("SIDE_%d", int(s))
	}
}

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == SidePlayer {
		return SideBot
	}
	return SidePlayer
}

// Valid reports whether s is one of the two known sides.
func (s Side) Valid() bool {
	return s == SidePlayer || s == SideBot
}

// TargetingType describes which characters an effect may apply to.
type TargetingType string

const (
	TargetNone                 TargetingType = "NO_TARGET"
	TargetSingleMinion         TargetingType = "SINGLE_MINION"
	TargetSingleFriendlyMinion TargetingType = "SINGLE_FRIENDLY_MINION"
	TargetSingleEnemyMinion    TargetingType = "SINGLE_ENEMY_MINION"
	TargetSingleCharacter      TargetingType = "SINGLE_CHARACTER"
	TargetAllMinions           TargetingType = "ALL_MINIONS"
	TargetAllEnemyMinions      TargetingType = "ALL_ENEMY_MINIONS"
	TargetAllFriendlyMinions   TargetingType = "ALL_FRIENDLY_MINIONS"
	TargetRandomEnemy          TargetingType = "RANDOM_ENEMY"
	TargetRandomMinion         TargetingType = "RANDOM_MINION"
)

var targetingTypes = map[TargetingType]bool{
	TargetNone:                 true,
	TargetSingleMinion:         true,
	TargetSingleFriendlyMinion: true,
	TargetSingleEnemyMinion:    true,
	TargetSingleCharacter:      true,
	TargetAllMinions:           true,
	TargetAllEnemyMinions:      true,
	TargetAllFriendlyMinions:   true,
	TargetRandomEnemy:          true,
	TargetRandomMinion:         true,
}

// Valid reports whether t is a known targeting type. The empty string is
// treated as NO_TARGET by Normalize, not as valid here.
func (t TargetingType) Valid() bool {
	return targetingTypes[t]
}

// Normalize maps the zero value to TargetNone.
func (t TargetingType) Normalize() TargetingType {
	if t == "" {
		return TargetNone
	}
	return t
}

// IsSingle reports whether the type requires the caller to pick one target.
func (t TargetingType) IsSingle() bool {
	switch t {
	case TargetSingleMinion, TargetSingleFriendlyMinion, TargetSingleEnemyMinion, TargetSingleCharacter:
		return true
	default:
		return false
	}
}

// IsRandom reports whether the type picks its target at random.
func (t TargetingType) IsRandom() bool {
	return t == TargetRandomEnemy || t == TargetRandomMinion
}

// IsArea reports whether the type hits a whole board (or both).
func (t TargetingType) IsArea() bool {
	switch t {
	case TargetAllMinions, TargetAllEnemyMinions, TargetAllFriendlyMinions:
		return true
	default:
		return false
	}
}

const (
	// MaxBoardSize bounds the number of minions a side can control.
	MaxBoardSize = 7
	// MaxHandSize bounds the number of cards a side can hold.
	MaxHandSize = 10
)
