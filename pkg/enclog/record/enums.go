package record

import "strconv"

// UnitKind distinguishes the three unit categories announced by UNIT_ADDED.
type UnitKind string

const (
	UnitPlayer  UnitKind = "PLAYER"
	UnitMonster UnitKind = "MONSTER"
	UnitObject  UnitKind = "OBJECT"
	UnitUnknown UnitKind = ""
)

// ParseUnitKind maps the raw tag to a UnitKind, UnitUnknown for anything else.
func ParseUnitKind(s string) UnitKind {
	switch s {
	case "PLAYER":
		return UnitPlayer
	case "MONSTER":
		return UnitMonster
	case "OBJECT":
		return UnitObject
	default:
		return UnitUnknown
	}
}

// ClassID is the numeric player class code.
type ClassID int

const (
	ClassNone         ClassID = 0
	ClassDragonknight ClassID = 1
	ClassSorcerer     ClassID = 2
	ClassNightblade   ClassID = 3
	ClassWarden       ClassID = 4
	ClassNecromancer  ClassID = 5
	ClassTemplar      ClassID = 6
	ClassArcanist     ClassID = 117
)

func (c ClassID) String() string {
	switch c {
	case ClassDragonknight:
		return "Dragonknight"
	case ClassSorcerer:
		return "Sorcerer"
	case ClassNightblade:
		return "Nightblade"
	case ClassWarden:
		return "Warden"
	case ClassNecromancer:
		return "Necromancer"
	case ClassTemplar:
		return "Templar"
	case ClassArcanist:
		return "Arcanist"
	default:
		return "Class(" + strconv.Itoa(int(c)) + ")"
	}
}

// RaceID is the numeric player race code.
type RaceID int

const (
	RaceNone     RaceID = 0
	RaceBreton   RaceID = 1
	RaceRedguard RaceID = 2
	RaceOrc      RaceID = 3
	RaceDarkElf  RaceID = 4
	RaceNord     RaceID = 5
	RaceArgonian RaceID = 6
	RaceHighElf  RaceID = 7
	RaceWoodElf  RaceID = 8
	RaceKhajiit  RaceID = 9
	RaceImperial RaceID = 10
)

func (r RaceID) String() string {
	switch r {
	case RaceBreton:
		return "Breton"
	case RaceRedguard:
		return "Redguard"
	case RaceOrc:
		return "Orc"
	case RaceDarkElf:
		return "Dark Elf"
	case RaceNord:
		return "Nord"
	case RaceArgonian:
		return "Argonian"
	case RaceHighElf:
		return "High Elf"
	case RaceWoodElf:
		return "Wood Elf"
	case RaceKhajiit:
		return "Khajiit"
	case RaceImperial:
		return "Imperial"
	default:
		return "Race(" + strconv.Itoa(int(r)) + ")"
	}
}

// Reaction is the allegiance category of a unit relative to the local player.
type Reaction int

const (
	ReactionUnknown Reaction = iota
	ReactionPlayerAlly
	ReactionFriendly
	ReactionCompanion
	ReactionNPCAlly
	ReactionNeutral
	ReactionHostile
)

var reactionNames = map[string]Reaction{
	"PLAYER_ALLY": ReactionPlayerAlly,
	"FRIENDLY":    ReactionFriendly,
	"COMPANION":   ReactionCompanion,
	"NPC_ALLY":    ReactionNPCAlly,
	"NEUTRAL":     ReactionNeutral,
	"HOSTILE":     ReactionHostile,
}

// ParseReaction maps the raw tag to a Reaction, ReactionUnknown otherwise.
func ParseReaction(s string) Reaction {
	return reactionNames[s]
}

func (r Reaction) String() string {
	switch r {
	case ReactionPlayerAlly:
		return "PLAYER_ALLY"
	case ReactionFriendly:
		return "FRIENDLY"
	case ReactionCompanion:
		return "COMPANION"
	case ReactionNPCAlly:
		return "NPC_ALLY"
	case ReactionNeutral:
		return "NEUTRAL"
	case ReactionHostile:
		return "HOSTILE"
	default:
		return "UNKNOWN"
	}
}

// Hostile reports whether the unit is an enemy of the player group.
func (r Reaction) Hostile() bool { return r == ReactionHostile }

// DamageType classifies a damaging ability.
type DamageType int

const (
	DamageNone DamageType = iota
	DamageGeneric
	DamagePhysical
	DamageFire
	DamageShock
	DamageOblivion
	DamageCold
	DamageEarth
	DamageMagic
	DamageDrown
	DamageDisease
	DamagePoison
	DamageBleed
)

var damageTypeNames = map[string]DamageType{
	"NONE":     DamageNone,
	"GENERIC":  DamageGeneric,
	"PHYSICAL": DamagePhysical,
	"FIRE":     DamageFire,
	"SHOCK":    DamageShock,
	"OBLIVION": DamageOblivion,
	"COLD":     DamageCold,
	"EARTH":    DamageEarth,
	"MAGIC":    DamageMagic,
	"DROWN":    DamageDrown,
	"DISEASE":  DamageDisease,
	"POISON":   DamagePoison,
	"BLEED":    DamageBleed,
}

// ParseDamageType maps the raw tag to a DamageType.
// Unrecognized tags map to DamageNone and report ok=false so callers can log.
func ParseDamageType(s string) (DamageType, bool) {
	d, ok := damageTypeNames[s]
	return d, ok
}

// PowerType identifies the resource pool a value applies to.
type PowerType int

const (
	PowerHealth PowerType = iota
	PowerMagicka
	PowerStamina
	PowerUltimate
	PowerWerewolf
	PowerMountStamina
)

// ParsePowerType maps the game's numeric power-type code to a PowerType.
// Unrecognized codes report ok=false; callers substitute PowerHealth and log.
func ParsePowerType(code int) (PowerType, bool) {
	switch code {
	case -2:
		return PowerHealth, true
	case 0:
		return PowerMagicka, true
	case 1:
		return PowerWerewolf, true
	case 2:
		return PowerMountStamina, true
	case 6:
		return PowerStamina, true
	case 10:
		return PowerUltimate, true
	default:
		return PowerHealth, false
	}
}

// EventResult is the outcome tag of a COMBAT_EVENT line.
type EventResult string

const (
	ResultDamage          EventResult = "DAMAGE"
	ResultCriticalDamage  EventResult = "CRITICAL_DAMAGE"
	ResultDotTick         EventResult = "DOT_TICK"
	ResultDotTickCritical EventResult = "DOT_TICK_CRITICAL"
	ResultHeal            EventResult = "HEAL"
	ResultCriticalHeal    EventResult = "CRITICAL_HEAL"
	ResultHotTick         EventResult = "HOT_TICK"
	ResultHotTickCritical EventResult = "HOT_TICK_CRITICAL"
	ResultBlockedDamage   EventResult = "BLOCKED_DAMAGE"
	ResultDamageShielded  EventResult = "DAMAGE_SHIELDED"
	ResultPowerEnergize   EventResult = "POWER_ENERGIZE"
	ResultPowerDrain      EventResult = "POWER_DRAIN"
	ResultDied            EventResult = "DIED"
	ResultDiedXP          EventResult = "DIED_XP"
	ResultKillingBlow     EventResult = "KILLING_BLOW"
	ResultInterrupt       EventResult = "INTERRUPT"
	ResultImmune          EventResult = "IMMUNE"
	ResultDodged          EventResult = "DODGED"
	ResultMiss            EventResult = "MISS"
	ResultParried         EventResult = "PARRIED"
	ResultReflected       EventResult = "REFLECTED"
	ResultAbsorbed        EventResult = "ABSORBED"
	ResultFallDamage      EventResult = "FALL_DAMAGE"
	ResultQueued          EventResult = "QUEUED"
	ResultSnared          EventResult = "SNARED"
	ResultStunned         EventResult = "STUNNED"
	ResultKnockback       EventResult = "KNOCKBACK"
	ResultHealthRegen     EventResult = "HEALTH_REGEN"
	ResultUnknown         EventResult = ""

	ResultSoulGemResurrectionAccepted EventResult = "SOUL_GEM_RESURRECTION_ACCEPTED"
)

// IsDamage reports whether the result carries a damage hit value.
func (r EventResult) IsDamage() bool {
	switch r {
	case ResultDamage, ResultCriticalDamage, ResultDotTick, ResultDotTickCritical,
		ResultBlockedDamage, ResultDamageShielded, ResultFallDamage:
		return true
	}
	return false
}

// IsHeal reports whether the result carries a heal hit value.
func (r EventResult) IsHeal() bool {
	switch r {
	case ResultHeal, ResultCriticalHeal, ResultHotTick, ResultHotTickCritical:
		return true
	}
	return false
}

// EffectChange is the transition tag of an EFFECT_CHANGED line.
type EffectChange int

const (
	EffectGained EffectChange = iota
	EffectFaded
	EffectUpdated
	EffectChangeUnknown
)

// ParseEffectChange maps the raw tag to an EffectChange.
func ParseEffectChange(s string) EffectChange {
	switch s {
	case "GAINED":
		return EffectGained
	case "FADED":
		return EffectFaded
	case "UPDATED":
		return EffectUpdated
	default:
		return EffectChangeUnknown
	}
}

// EffectType classifies an EFFECT_INFO ability as buff or debuff.
type EffectType int

const (
	EffectTypeUnknown EffectType = iota
	EffectTypeBuff
	EffectTypeDebuff
)

// ParseEffectType maps the raw tag to an EffectType.
func ParseEffectType(s string) EffectType {
	switch s {
	case "BUFF":
		return EffectTypeBuff
	case "DEBUFF":
		return EffectTypeDebuff
	default:
		return EffectTypeUnknown
	}
}

// StatusEffectKind is the secondary EFFECT_INFO classification.
type StatusEffectKind string

const (
	StatusNone    StatusEffectKind = "NONE"
	StatusBleed   StatusEffectKind = "BLEED"
	StatusBurn    StatusEffectKind = "BURN"
	StatusChill   StatusEffectKind = "CHILL"
	StatusConcuss StatusEffectKind = "CONCUSSION"
	StatusDisease StatusEffectKind = "DISEASE"
	StatusPoison  StatusEffectKind = "POISON"
	StatusOverch  StatusEffectKind = "OVERCHARGED"
	StatusSunder  StatusEffectKind = "SUNDERED"
	StatusHemorrh StatusEffectKind = "HEMORRHAGING"
)

// CastEndReason is the END_CAST completion tag.
type CastEndReason string

const (
	CastCompleted       CastEndReason = "COMPLETED"
	CastInterrupted     CastEndReason = "INTERRUPTED"
	CastPlayerCancelled CastEndReason = "PLAYER_CANCELLED"
	CastFailed          CastEndReason = "FAILED"
)
