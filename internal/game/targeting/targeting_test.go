package targeting

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/hearthforge/hearthforge-go/internal/game/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBoards() StaticBoards {
	return StaticBoards{
		entity.SidePlayer: {1, 2},
		entity.SideBot:    {10, 11, 12},
	}
}

func TestResolveAreaTypes(t *testing.T) {
	r := NewResolver(rand.New(rand.NewSource(42)))
	boards := testBoards()

	all := r.Resolve(entity.TargetAllMinions, boards, entity.SidePlayer)
	assert.Len(t, all, 5)

	enemies := r.Resolve(entity.TargetAllEnemyMinions, boards, entity.SidePlayer)
	assert.Equal(t, []Target{
		MinionTarget(entity.SideBot, 10),
		MinionTarget(entity.SideBot, 11),
		MinionTarget(entity.SideBot, 12),
	}, enemies)

	friends := r.Resolve(entity.TargetAllFriendlyMinions, boards, entity.SideBot)
	assert.Equal(t, 3, len(friends))
	for _, tgt := range friends {
		assert.Equal(t, entity.SideBot, tgt.Side)
	}
}

func TestResolveNoTargetAndSingle(t *testing.T) {
	r := NewResolver(nil)
	boards := testBoards()
	assert.Empty(t, r.Resolve(entity.TargetNone, boards, entity.SidePlayer))
	assert.Empty(t, r.Resolve("", boards, entity.SidePlayer))
	assert.Empty(t, r.Resolve(entity.TargetSingleEnemyMinion, boards, entity.SidePlayer))
}

func TestRandomEnemyFallsBackToHero(t *testing.T) {
	r := NewResolver(rand.New(rand.NewSource(7)))
	boards := StaticBoards{entity.SidePlayer: {1}}

	for i := 0; i < 20; i++ {
		got := r.Resolve(entity.TargetRandomEnemy, boards, entity.SidePlayer)
		require.Len(t, got, 1)
		assert.Equal(t, HeroTarget(entity.SideBot), got[0])
	}
}

func TestRandomEnemyCoversMinionsAndHero(t *testing.T) {
	r := NewResolver(rand.New(rand.NewSource(3)))
	boards := testBoards()

	seen := map[Target]bool{}
	for i := 0; i < 200; i++ {
		got := r.Resolve(entity.TargetRandomEnemy, boards, entity.SideBot)
		require.Len(t, got, 1)
		assert.Equal(t, entity.SidePlayer, got[0].Side)
		seen[got[0]] = true
	}
	assert.Len(t, seen, 3, "two player minions plus the player hero")
}

func TestRandomMinionEmptyBoards(t *testing.T) {
	r := NewResolver(nil)
	assert.Empty(t, r.Resolve(entity.TargetRandomMinion, StaticBoards{}, entity.SidePlayer))

	got := r.Resolve(entity.TargetRandomMinion, StaticBoards{entity.SideBot: {5}}, entity.SidePlayer)
	assert.Equal(t, []Target{MinionTarget(entity.SideBot, 5)}, got)
}

func TestValidate(t *testing.T) {
	boards := testBoards()

	require.NoError(t, Validate(entity.TargetSingleEnemyMinion, MinionTarget(entity.SideBot, 10), boards, entity.SidePlayer))
	require.NoError(t, Validate(entity.TargetSingleCharacter, HeroTarget(entity.SideBot), boards, entity.SidePlayer))
	require.NoError(t, Validate(entity.TargetSingleFriendlyMinion, MinionTarget(entity.SidePlayer, 2), boards, entity.SidePlayer))

	cases := []struct {
		name   string
		t      entity.TargetingType
		target Target
	}{
		{"friendly minion for enemy spell", entity.TargetSingleEnemyMinion, MinionTarget(entity.SidePlayer, 1)},
		{"hero for minion spell", entity.TargetSingleMinion, HeroTarget(entity.SideBot)},
		{"enemy minion for friendly buff", entity.TargetSingleFriendlyMinion, MinionTarget(entity.SideBot, 10)},
		{"missing minion", entity.TargetSingleCharacter, MinionTarget(entity.SideBot, 99)},
		{"wrong side", entity.TargetSingleCharacter, MinionTarget(entity.SidePlayer, 10)},
		{"bad kind", entity.TargetSingleCharacter, Target{Kind: "SPELL", Side: entity.SideBot}},
	}
	for _, tc := range cases {
		err := Validate(tc.t, tc.target, boards, entity.SidePlayer)
		assert.True(t, errors.Is(err, ErrIllegalTarget), tc.name)
	}
}
