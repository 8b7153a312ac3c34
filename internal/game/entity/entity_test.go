package entity

import (
	"testing"

	"github.com/hearthforge/hearthforge-go/internal/game/effects"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivineShieldAbsorbsExactlyOneHit(t *testing.T) {
	m := NewMinion(1, "Argent Squire", 1, 1, 1)
	m.DivineShield = true

	assert.Equal(t, 0, m.TakeDamage(10))
	assert.False(t, m.DivineShield)
	assert.Equal(t, 1, m.Health)

	assert.Equal(t, 1, m.TakeDamage(1))
	assert.True(t, m.IsDead())
}

func TestZeroDamageKeepsShield(t *testing.T) {
	m := NewMinion(1, "Argent Squire", 1, 1, 1)
	m.DivineShield = true
	m.TakeDamage(0)
	assert.True(t, m.DivineShield)
}

func TestHeroArmorAbsorbsFirst(t *testing.T) {
	cases := []struct {
		armor, damage          int
		wantArmor, wantHealth int
	}{
		{armor: 0, damage: 4, wantArmor: 0, wantHealth: 26},
		{armor: 5, damage: 3, wantArmor: 2, wantHealth: 30},
		{armor: 2, damage: 7, wantArmor: 0, wantHealth: 25},
		{armor: 4, damage: 4, wantArmor: 0, wantHealth: 30},
	}
	for _, tc := range cases {
		h := NewHero("Jaina", 30, nil)
		h.Armor = tc.armor
		h.TakeDamage(tc.damage)
		assert.Equal(t, tc.wantArmor, h.Armor, "armor after %d damage on %d armor", tc.damage, tc.armor)
		assert.Equal(t, tc.wantHealth, h.Health, "health after %d damage on %d armor", tc.damage, tc.armor)
	}
}

func TestHeroHealCapped(t *testing.T) {
	h := NewHero("Anduin", 30, nil)
	h.TakeDamage(3)
	assert.Equal(t, 3, h.Heal(10))
	assert.Equal(t, 30, h.Health)
}

func TestMinionLifecycle(t *testing.T) {
	m := NewMinion(7, "Chillwind Yeti", 4, 4, 5)
	m.Summon()
	assert.Equal(t, MinionDormant, m.State())
	assert.False(t, m.CanAttack())

	m.ResetForTurn()
	assert.Equal(t, MinionReady, m.State())
	assert.True(t, m.CanAttack())

	m.HasAttackedThisTurn = true
	assert.Equal(t, MinionAttacked, m.State())
	assert.False(t, m.CanAttack())

	m.ResetForTurn()
	assert.Equal(t, MinionReady, m.State())

	m.TakeDamage(5)
	assert.Equal(t, MinionDead, m.State())
}

func TestZeroAttackMinionCannotAttack(t *testing.T) {
	m := NewMinion(2, "Target Dummy", 0, 0, 2)
	m.ResetForTurn()
	assert.False(t, m.CanAttack())
}

func TestCloneIsIndependent(t *testing.T) {
	m := NewMinion(3, "Loot Hoarder", 2, 2, 1)
	m.Deathrattle = effects.Draw(1)

	cpy, ok := m.Clone().(*Minion)
	require.True(t, ok)
	cpy.Health = 0
	cpy.Deathrattle.Amount = 2

	assert.Equal(t, 1, m.Health)
	assert.Equal(t, 1, m.Deathrattle.Amount)
	assert.Equal(t, m.CardID(), cpy.CardID())
}

func TestAreaDamageSpell(t *testing.T) {
	flamestrike := NewSpell(10, "Flamestrike", 7, TargetAllEnemyMinions, effects.Damage(4))
	assert.True(t, flamestrike.IsAreaDamage())
	assert.Equal(t, "Deal 4 damage.", flamestrike.Description)

	blessing := NewSpell(11, "Blessing of Kings", 4, TargetSingleFriendlyMinion, effects.Buff(4, 4))
	assert.False(t, blessing.IsAreaDamage())
}

func TestSideOpponent(t *testing.T) {
	assert.Equal(t, SideBot, SidePlayer.Opponent())
	assert.Equal(t, SidePlayer, SideBot.Opponent())
	assert.Equal(t, "BOT", SideBot.String())
}
