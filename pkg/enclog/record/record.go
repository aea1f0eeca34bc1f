// Package record defines the typed records decoded from encounter log lines.
//
// This package is separated from the main enclog package to avoid import cycles
// between pkg/enclog and the internal decode/resolve/encode packages.
package record

// Kind is the record-type tag carried in field 1 of an encounter log line.
type Kind string

const (
	KindBeginLog      Kind = "BEGIN_LOG"
	KindEndLog        Kind = "END_LOG"
	KindBeginCombat   Kind = "BEGIN_COMBAT"
	KindEndCombat     Kind = "END_COMBAT"
	KindUnitAdded     Kind = "UNIT_ADDED"
	KindUnitChanged   Kind = "UNIT_CHANGED"
	KindUnitRemoved   Kind = "UNIT_REMOVED"
	KindAbilityInfo   Kind = "ABILITY_INFO"
	KindEffectInfo    Kind = "EFFECT_INFO"
	KindCombatEvent   Kind = "COMBAT_EVENT"
	KindBeginCast     Kind = "BEGIN_CAST"
	KindEndCast       Kind = "END_CAST"
	KindEffectChanged Kind = "EFFECT_CHANGED"
	KindHealthRegen   Kind = "HEALTH_REGEN"
	KindPlayerInfo    Kind = "PLAYER_INFO"
	KindMapChanged    Kind = "MAP_CHANGED"
	KindZoneChanged   Kind = "ZONE_CHANGED"
	KindTrialInit     Kind = "TRIAL_INIT"
	KindBeginTrial    Kind = "BEGIN_TRIAL"
	KindEndTrial      Kind = "END_TRIAL"
)

// Record is the closed union of all decoded line types.
// Unrecognized tags never produce a Record; the decoder reports them
// separately so callers can ignore or log them.
type Record interface {
	RecordKind() Kind
}

// UnitState is a point-in-time resource snapshot for one unit.
// Positions are normalized map coordinates as written by the game client.
type UnitState struct {
	UnitID      int64
	Health      int64
	MaxHealth   int64
	Magicka     int64
	MaxMagicka  int64
	Stamina     int64
	MaxStamina  int64
	Ultimate    int64
	MaxUltimate int64
	Werewolf    int64
	MaxWerewolf int64
	Shield      int64
	MapX        float32
	MapY        float32
	Heading     float32
}

// IsBlank reports whether the state is the canonical "no target" sentinel.
func (s UnitState) IsBlank() bool {
	return s == UnitState{}
}

// BeginLog opens a log file: epoch timestamp, format version, server info.
type BeginLog struct {
	Time        int64
	EpochMS     int64
	Version     int
	Server      string
	Language    string
	GameVersion string
}

func (BeginLog) RecordKind() Kind { return KindBeginLog }

// EndLog closes a log file.
type EndLog struct {
	Time int64
}

func (EndLog) RecordKind() Kind { return KindEndLog }

// BeginCombat marks the start of a fight.
type BeginCombat struct {
	Time int64
}

func (BeginCombat) RecordKind() Kind { return KindBeginCombat }

// EndCombat marks the end of a fight.
type EndCombat struct {
	Time int64
}

func (EndCombat) RecordKind() Kind { return KindEndCombat }

// UnitAdded announces a unit under a transient session unit id.
type UnitAdded struct {
	Time               int64
	UnitID             int64
	Unit               UnitKind
	IsLocalPlayer      bool
	PlayerPerSessionID int64
	MonsterID          int64
	IsBoss             bool
	Class              ClassID
	Race               RaceID
	Name               string
	DisplayName        string
	CharacterID        int64
	Level              int
	ChampionPoints     int
	OwnerUnitID        int64
	Reaction           Reaction
	IsGrouped          bool
}

func (UnitAdded) RecordKind() Kind { return KindUnitAdded }

// UnitChanged updates name/display/reaction of an announced unit.
type UnitChanged struct {
	Time        int64
	UnitID      int64
	Name        string
	DisplayName string
	Reaction    Reaction
}

func (UnitChanged) RecordKind() Kind { return KindUnitChanged }

// UnitRemoved retires a transient session unit id.
type UnitRemoved struct {
	Time   int64
	UnitID int64
}

func (UnitRemoved) RecordKind() Kind { return KindUnitRemoved }

// AbilityInfo registers an ability definition. First registration wins;
// later lines for the same id are ignored by the resolver.
type AbilityInfo struct {
	Time          int64
	AbilityID     int64
	Name          string
	Icon          string
	Interruptible bool
	Blockable     bool
	// Scribed abilities carry three script names (grimoire customization).
	Scribed bool
	Scripts [3]string
}

func (AbilityInfo) RecordKind() Kind { return KindAbilityInfo }

// EffectInfo classifies a previously announced ability as buff/debuff.
type EffectInfo struct {
	Time         int64
	AbilityID    int64
	Effect       EffectType
	StatusEffect StatusEffectKind
	NoEffect     bool
}

func (EffectInfo) RecordKind() Kind { return KindEffectInfo }

// CombatEvent is one damage/heal/energize/etc. occurrence.
type CombatEvent struct {
	Time        int64
	Result      EventResult
	DamageType  DamageType
	Power       PowerType
	HitValue    int64
	Overflow    int64
	CastTrackID int64
	AbilityID   int64
	Source      UnitState
	Target      UnitState
	// TargetSelf is set when the target block was the "*" sentinel.
	TargetSelf bool
}

func (CombatEvent) RecordKind() Kind { return KindCombatEvent }

// BeginCast opens a cast track.
type BeginCast struct {
	Time        int64
	DurationMS  int64
	Channeled   bool
	CastTrackID int64
	AbilityID   int64
	Source      UnitState
	Target      UnitState
	TargetSelf  bool
}

func (BeginCast) RecordKind() Kind { return KindBeginCast }

// EndCast closes a cast track.
type EndCast struct {
	Time        int64
	Reason      CastEndReason
	CastTrackID int64
	AbilityID   int64
}

func (EndCast) RecordKind() Kind { return KindEndCast }

// EffectChanged reports a buff/debuff gained, faded, or updated.
type EffectChanged struct {
	Time        int64
	Change      EffectChange
	StackCount  int
	CastTrackID int64
	AbilityID   int64
	Source      UnitState
	Target      UnitState
	TargetSelf  bool
}

func (EffectChanged) RecordKind() Kind { return KindEffectChanged }

// HealthRegen is a periodic health recovery tick for one unit.
type HealthRegen struct {
	Time           int64
	EffectiveRegen int64
	State          UnitState
}

func (HealthRegen) RecordKind() Kind { return KindHealthRegen }

// PlayerInfo is the full build snapshot for one player unit.
type PlayerInfo struct {
	Time       int64
	UnitID     int64
	BuffIDs    []int64
	BuffStacks []int
	Gear       []GearPiece
	FrontBar   []int64
	BackBar    []int64
}

func (PlayerInfo) RecordKind() Kind { return KindPlayerInfo }

// MapChanged is surfaced to collaborators but not modeled by the core.
type MapChanged struct {
	Time    int64
	MapID   int64
	Name    string
	Texture string
}

func (MapChanged) RecordKind() Kind { return KindMapChanged }

// ZoneChanged is surfaced to collaborators but not modeled by the core.
type ZoneChanged struct {
	Time       int64
	ZoneID     int64
	Name       string
	Difficulty string
}

func (ZoneChanged) RecordKind() Kind { return KindZoneChanged }

// TrialEvent covers TRIAL_INIT/BEGIN_TRIAL/END_TRIAL; no-op for the core.
type TrialEvent struct {
	Time int64
	Tag  Kind
	ID   int64
}

func (t TrialEvent) RecordKind() Kind { return t.Tag }
