package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esolog/enclog-go/pkg/enclog/record"
)

func player(unitID, charID int64, name string) record.UnitAdded {
	return record.UnitAdded{
		UnitID:      unitID,
		Unit:        record.UnitPlayer,
		Name:        name,
		CharacterID: charID,
		Reaction:    record.ReactionPlayerAlly,
	}
}

func monster(unitID int64, name string, owner int64) record.UnitAdded {
	return record.UnitAdded{
		UnitID:      unitID,
		Unit:        record.UnitMonster,
		Name:        name,
		OwnerUnitID: owner,
		Reaction:    record.ReactionHostile,
	}
}

func TestResolveUnitAllocatesMonotonically(t *testing.T) {
	s := NewState(nil)

	assert.Equal(t, 0, s.ResolveUnit(player(1, 111111111, "Alice")))
	assert.Equal(t, 1, s.ResolveUnit(player(2, 222222222, "Bob")))
	assert.Equal(t, 2, s.ResolveUnit(monster(44, "Clannfear", 0)))
	assert.Len(t, s.Units(), 3)
}

func TestResolveUnitIdempotent(t *testing.T) {
	s := NewState(nil)

	first := s.ResolveUnit(player(1, 111111111, "Alice"))
	second := s.ResolveUnit(player(1, 111111111, "Alice"))
	assert.Equal(t, first, second)
	assert.Len(t, s.Units(), 1)
}

func TestResolveUnitRejoinKeepsIndex(t *testing.T) {
	// A character that leaves and rejoins arrives under a fresh session id
	// but the character id pins it to the original slot.
	s := NewState(nil)

	idx := s.ResolveUnit(player(1, 987654321012, "Alice"))
	s.RemoveSession(1)

	again := s.ResolveUnit(player(7, 987654321012, "Alice"))
	assert.Equal(t, idx, again)
	assert.Len(t, s.Units(), 1)

	got, ok := s.UnitBySession(7)
	require.True(t, ok)
	assert.Equal(t, idx, got)

	_, ok = s.UnitBySession(1)
	assert.False(t, ok)
}

func TestResolveUnitHostilePetOwnerRematch(t *testing.T) {
	// Hostile summons are re-announced with the same raw id and name but a
	// different owner; the unit keeps its index and adopts the new owner.
	s := NewState(nil)

	owner1 := s.ResolveUnit(monster(10, "Boss", 0))
	_ = owner1
	idx := s.ResolveUnit(monster(50, "Shade", 10))

	again := s.ResolveUnit(monster(50, "Shade", 99))
	assert.Equal(t, idx, again)
	assert.Equal(t, int64(99), s.Unit(idx).OwnerUnitID)
	assert.Len(t, s.Units(), 2)
}

func TestResolveUnitDistinctOwnersDistinctPets(t *testing.T) {
	// Friendly pets with the same ability-slot id but different owners are
	// different units.
	s := NewState(nil)

	s.ResolveUnit(player(1, 111111111, "Alice"))
	s.ResolveUnit(player(2, 222222222, "Bob"))

	pet := func(unitID, owner int64) record.UnitAdded {
		return record.UnitAdded{
			UnitID:      unitID,
			Unit:        record.UnitMonster,
			Name:        "Twilight Matriarch",
			OwnerUnitID: owner,
			Reaction:    record.ReactionPlayerAlly,
		}
	}
	a := s.ResolveUnit(pet(30, 1))
	b := s.ResolveUnit(pet(31, 2))
	assert.NotEqual(t, a, b)
}

func TestResolveObjectByName(t *testing.T) {
	obj := func(unitID int64) record.UnitAdded {
		return record.UnitAdded{
			UnitID:   unitID,
			Unit:     record.UnitObject,
			Name:     "Daedric Anchor",
			Reaction: record.ReactionNeutral,
		}
	}

	s := NewState(nil)
	first := s.ResolveUnit(obj(200))
	second := s.ResolveUnit(obj(201))
	assert.Equal(t, first, second)
	assert.Len(t, s.Units(), 1)

	// Both session ids now point at the one object.
	got, ok := s.UnitBySession(201)
	require.True(t, ok)
	assert.Equal(t, first, got)
}

func TestUpdateUnit(t *testing.T) {
	s := NewState(nil)
	idx := s.ResolveUnit(monster(44, "Watcher", 0))

	s.UpdateUnit(record.UnitChanged{UnitID: 44, Name: "Watcher Awakened", Reaction: record.ReactionHostile})
	assert.Equal(t, "Watcher Awakened", s.Unit(idx).Name)

	// Unknown session ids are ignored.
	s.UpdateUnit(record.UnitChanged{UnitID: 999, Name: "Nobody"})
	assert.Len(t, s.Units(), 1)
}

func TestSetEquipment(t *testing.T) {
	s := NewState(nil)
	idx := s.ResolveUnit(player(1, 111111111, "Alice"))

	first := record.PlayerInfo{UnitID: 1, FrontBar: []int64{40465}}
	require.True(t, s.SetEquipment(first))
	require.NotNil(t, s.Unit(idx).Equipment)
	assert.Equal(t, []int64{40465}, s.Unit(idx).Equipment.FrontBar)

	// The latest snapshot replaces the previous one.
	second := record.PlayerInfo{UnitID: 1, FrontBar: []int64{61902}}
	require.True(t, s.SetEquipment(second))
	assert.Equal(t, []int64{61902}, s.Unit(idx).Equipment.FrontBar)

	assert.False(t, s.SetEquipment(record.PlayerInfo{UnitID: 999}))
}

func TestRegisterBuffFirstSeenWins(t *testing.T) {
	s := NewState(nil)

	idx, added := s.RegisterBuff(record.AbilityInfo{
		AbilityID:     40465,
		Name:          "Scalding Rune",
		Icon:          "ability_mageguild_scalding_rune.dds",
		Interruptible: true,
	})
	assert.True(t, added)
	assert.Equal(t, 0, idx)

	again, added := s.RegisterBuff(record.AbilityInfo{AbilityID: 40465, Name: "Renamed"})
	assert.False(t, added)
	assert.Equal(t, idx, again)
	assert.Equal(t, "Scalding Rune", s.Buff(idx).Name)
	assert.Equal(t, "ability_mageguild_scalding_rune", s.Buff(idx).Icon)
	assert.Equal(t, "ability_mageguild_scalding_rune.png", s.Buff(idx).DisplayIcon())
}

func TestEnsureHealthRecovery(t *testing.T) {
	s := NewState(nil)

	idx := s.EnsureHealthRecovery()
	assert.Equal(t, idx, s.EnsureHealthRecovery())

	b := s.Buff(idx)
	require.NotNil(t, b)
	assert.Equal(t, int64(HealthRecoveryAbilityID), b.AbilityID)
	assert.Equal(t, HealthRecoveryName, b.Name)
}

func TestClassifyBuffBeforeAnnouncement(t *testing.T) {
	// EFFECT_INFO arriving before ABILITY_INFO default-constructs the buff.
	s := NewState(nil)

	idx := s.ClassifyBuff(record.EffectInfo{
		AbilityID:    61902,
		Effect:       record.EffectTypeBuff,
		StatusEffect: record.StatusNone,
	})
	b := s.Buff(idx)
	require.NotNil(t, b)
	assert.Equal(t, record.EffectTypeBuff, b.Effect)
	assert.Empty(t, b.Name)

	// The later announcement does not overwrite the slot.
	again, added := s.RegisterBuff(record.AbilityInfo{AbilityID: 61902, Name: "Minor Berserk"})
	assert.False(t, added)
	assert.Equal(t, idx, again)
}

func TestSetBuffDamageTypeFirstWins(t *testing.T) {
	s := NewState(nil)
	idx, _ := s.RegisterBuff(record.AbilityInfo{AbilityID: 1})

	s.SetBuffDamageType(idx, record.DamageFire)
	s.SetBuffDamageType(idx, record.DamageShock)
	assert.Equal(t, record.DamageFire, s.Buff(idx).DamageType)

	assert.NotPanics(t, func() { s.SetBuffDamageType(-1, record.DamageFire) })
}

func TestResolveBuffEventDeduplicates(t *testing.T) {
	s := NewState(nil)

	first := s.ResolveBuffEvent(0, 1, 5)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.ResolveBuffEvent(0, 1, 5))
	}
	assert.Len(t, s.BuffEvents(), 1)

	// Any component change is a new triple.
	assert.NotEqual(t, first, s.ResolveBuffEvent(1, 0, 5))
	assert.NotEqual(t, first, s.ResolveBuffEvent(0, 1, 6))
	assert.Len(t, s.BuffEvents(), 3)
}

func TestTruncateID(t *testing.T) {
	tests := []struct {
		in   int64
		want int64
	}{
		{123456789, 123456789},
		{1234567890123, 123456789},
		{42, 42},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, truncateID(tt.in))
	}
}
