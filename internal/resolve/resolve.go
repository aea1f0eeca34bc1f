// Package resolve maintains the identity tables for one encounter log file:
// canonical units behind transient session ids, first-seen-wins ability
// definitions, and deduplicated (source, target, buff) usage triples.
//
// All indices are allocated monotonically from zero and never reused; once an
// entity has an index it keeps it for the remainder of the file.
package resolve

import (
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/esolog/enclog-go/pkg/enclog/record"
)

// HealthRecoveryAbilityID is the fixed id of the synthetic buff that models
// passive health regeneration ticks. It does not occur in game data.
const HealthRecoveryAbilityID = 999999999

// HealthRecoveryName is the display name of the synthetic regen buff.
const HealthRecoveryName = "Health Recovery"

// noOwner is the owner-pair key used when a unit has no resolvable owner.
const noOwner = math.MaxUint64

// Unit is one canonical participant: player, monster/NPC, or world object.
type Unit struct {
	Index          int
	UnitID         int64 // session id of the first announcement
	Kind           record.UnitKind
	Name           string
	DisplayName    string
	Server         string
	CharacterID    int64
	MonsterID      int64
	PerSessionID   int64
	IsBoss         bool
	IsLocalPlayer  bool
	IsGrouped      bool
	Class          record.ClassID
	Race           record.RaceID
	Level          int
	ChampionPoints int
	OwnerUnitID    int64
	Reaction       record.Reaction
	// Icon is derived lazily from the first damaging ability the unit used.
	Icon string
	// Equipment is the latest PLAYER_INFO snapshot for the unit, nil until
	// one arrives. Later snapshots replace earlier ones.
	Equipment *record.PlayerInfo
}

// Clone returns a value copy, used for fight roster snapshots.
func (u *Unit) Clone() Unit { return *u }

// Buff is an ability definition keyed by its global ability id.
type Buff struct {
	Index         int
	AbilityID     int64
	Name          string
	Icon          string // icon token, file extension stripped
	DamageType    record.DamageType
	Flags         uint8 // bit0 interruptible, bit1 blockable
	Effect        record.EffectType
	StatusEffect  record.StatusEffectKind
	Scribed       bool
	Scripts       [3]string
}

// DisplayIcon returns the web-facing icon file name.
func (b *Buff) DisplayIcon() string { return b.Icon + ".png" }

const (
	flagInterruptible = 1 << 0
	flagBlockable     = 1 << 1
)

// BuffEvent is the deduplicated (source unit, target unit, buff) triple the
// output format addresses events through.
type BuffEvent struct {
	Index       int
	SourceIndex int
	TargetIndex int
	BuffIndex   int
}

type ownerPair struct {
	id    int64
	owner uint64
}

type idName struct {
	id   int64
	name string
}

type triple struct {
	source, target, buff int
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// State owns all identity tables for exactly one input file. It is not safe
// for concurrent use; shard by whole files if parallelism is needed.
type State struct {
	log *slog.Logger

	units      []*Unit
	buffs      []*Buff
	buffEvents []*BuffEvent

	bySession    map[int64]int
	byCharacter  map[int64]int
	byOwnerPair  map[ownerPair]int
	byIDName     map[idName]int
	byObjectName map[string]int

	buffByAbility map[int64]int
	eventByTriple map[triple]int

	server string
}

// NewState returns an empty resolver state. A nil logger disables logging.
func NewState(logger *slog.Logger) *State {
	if logger == nil {
		logger = discardLogger
	}
	return &State{
		log:           logger,
		bySession:     make(map[int64]int),
		byCharacter:   make(map[int64]int),
		byOwnerPair:   make(map[ownerPair]int),
		byIDName:      make(map[idName]int),
		byObjectName:  make(map[string]int),
		buffByAbility: make(map[int64]int),
		eventByTriple: make(map[triple]int),
	}
}

// SetServer records the realm name from BEGIN_LOG; new units inherit it.
func (s *State) SetServer(server string) { s.server = server }

// Units returns the unit table in index order.
func (s *State) Units() []*Unit { return s.units }

// Buffs returns the buff table in index order.
func (s *State) Buffs() []*Buff { return s.buffs }

// BuffEvents returns the buff-event table in index order.
func (s *State) BuffEvents() []*BuffEvent { return s.buffEvents }

// Unit returns the unit at index, nil when out of range.
func (s *State) Unit(idx int) *Unit {
	if idx < 0 || idx >= len(s.units) {
		return nil
	}
	return s.units[idx]
}

// UnitBySession maps a transient session unit id to its canonical index.
func (s *State) UnitBySession(unitID int64) (int, bool) {
	idx, ok := s.bySession[unitID]
	return idx, ok
}

// ResolveUnit folds a UNIT_ADDED announcement into the unit table and
// returns the canonical index. Resolution order matters: character-id match
// first, then the hostile owner-pair re-announcement path, then the
// composite-key table. Reversing it duplicates players that reconnect.
func (s *State) ResolveUnit(cand record.UnitAdded) int {
	if cand.Unit == record.UnitObject {
		return s.resolveObject(cand)
	}

	derivedID := cand.UnitID

	// 1. A nonzero character id is a persistent identity: a character that
	// left and rejoined arrives under a new session id but must keep its
	// original index.
	if cand.CharacterID != 0 {
		if idx, ok := s.byCharacter[cand.CharacterID]; ok {
			u := s.units[idx]
			u.Reaction = cand.Reaction
			s.bySession[cand.UnitID] = idx
			return idx
		}
		// Legacy index width fits nine digits; derive the fallback key used
		// by the owner-pair table from the character id's leading digits.
		derivedID = truncateID(cand.CharacterID)
	}

	// 2. Hostile pets/summons get re-announced under the same slot with a
	// different, possibly renamed owner. Same raw id + same name is the
	// same unit; adopt the new owner without allocating.
	if cand.Reaction.Hostile() && cand.OwnerUnitID != 0 {
		if idx, ok := s.byIDName[idName{cand.UnitID, cand.Name}]; ok {
			u := s.units[idx]
			if u.OwnerUnitID != cand.OwnerUnitID {
				u.OwnerUnitID = cand.OwnerUnitID
				u.Reaction = cand.Reaction
			}
			s.bySession[cand.UnitID] = idx
			return idx
		}
	}

	// 3. Composite (derived id, owner index) lookup, then allocation.
	key := ownerPair{derivedID, s.ownerIndex(cand.OwnerUnitID)}
	if idx, ok := s.byOwnerPair[key]; ok {
		s.units[idx].Reaction = cand.Reaction
		s.bySession[cand.UnitID] = idx
		return idx
	}

	idx := s.append(cand)
	s.byOwnerPair[key] = idx
	return idx
}

// resolveObject resolves world objects by name: they are re-announced with
// fresh transient ids while remaining the same object.
func (s *State) resolveObject(cand record.UnitAdded) int {
	if idx, ok := s.byObjectName[cand.Name]; ok {
		s.units[idx].Reaction = cand.Reaction
		s.bySession[cand.UnitID] = idx
		return idx
	}
	idx := s.append(cand)
	s.byObjectName[cand.Name] = idx
	return idx
}

// append allocates the next unit index and registers the session mapping.
func (s *State) append(cand record.UnitAdded) int {
	idx := len(s.units)
	s.units = append(s.units, &Unit{
		Index:          idx,
		UnitID:         cand.UnitID,
		Kind:           cand.Unit,
		Name:           cand.Name,
		DisplayName:    cand.DisplayName,
		Server:         s.server,
		CharacterID:    cand.CharacterID,
		MonsterID:      cand.MonsterID,
		PerSessionID:   cand.PlayerPerSessionID,
		IsBoss:         cand.IsBoss,
		IsLocalPlayer:  cand.IsLocalPlayer,
		IsGrouped:      cand.IsGrouped,
		Class:          cand.Class,
		Race:           cand.Race,
		Level:          cand.Level,
		ChampionPoints: cand.ChampionPoints,
		OwnerUnitID:    cand.OwnerUnitID,
		Reaction:       cand.Reaction,
	})
	s.bySession[cand.UnitID] = idx
	if cand.CharacterID != 0 {
		s.byCharacter[cand.CharacterID] = idx
	}
	s.byIDName[idName{cand.UnitID, cand.Name}] = idx
	return idx
}

// ownerIndex maps an owner session id to the owner's current unit index, or
// the sentinel when the owner is absent or unknown.
func (s *State) ownerIndex(ownerUnitID int64) uint64 {
	if ownerUnitID == 0 {
		return noOwner
	}
	if idx, ok := s.bySession[ownerUnitID]; ok {
		return uint64(idx)
	}
	return noOwner
}

// UpdateUnit applies a UNIT_CHANGED announcement in place.
func (s *State) UpdateUnit(chg record.UnitChanged) {
	idx, ok := s.bySession[chg.UnitID]
	if !ok {
		return
	}
	u := s.units[idx]
	if chg.Name != "" {
		u.Name = chg.Name
	}
	if chg.DisplayName != "" {
		u.DisplayName = chg.DisplayName
	}
	if chg.Reaction != record.ReactionUnknown {
		u.Reaction = chg.Reaction
	}
}

// RemoveSession drops a transient session mapping. The unit and its index
// survive; only the session id is retired.
func (s *State) RemoveSession(unitID int64) {
	delete(s.bySession, unitID)
}

// SetEquipment stores the latest gear/bar snapshot on the resolved unit.
// Reports false when the session id is unknown.
func (s *State) SetEquipment(info record.PlayerInfo) bool {
	idx, ok := s.bySession[info.UnitID]
	if !ok {
		return false
	}
	s.units[idx].Equipment = &info
	return true
}

// SetUnitIconIfEmpty records the unit's display icon on first damaging use.
func (s *State) SetUnitIconIfEmpty(idx int, icon string) {
	if u := s.Unit(idx); u != nil && u.Icon == "" && icon != "" {
		u.Icon = icon
	}
}

// RegisterBuff records an ability definition. First seen wins: re-registering
// a known id is a no-op reporting added=false.
func (s *State) RegisterBuff(info record.AbilityInfo) (idx int, added bool) {
	if idx, ok := s.buffByAbility[info.AbilityID]; ok {
		return idx, false
	}
	idx = len(s.buffs)
	s.buffs = append(s.buffs, &Buff{
		Index:     idx,
		AbilityID: info.AbilityID,
		Name:      info.Name,
		Icon:      stripExt(info.Icon),
		Flags:     buffFlags(info.Interruptible, info.Blockable),
		Scribed:   info.Scribed,
		Scripts:   info.Scripts,
	})
	s.buffByAbility[info.AbilityID] = idx
	return idx, true
}

// EnsureHealthRecovery injects the synthetic regen buff on first use.
func (s *State) EnsureHealthRecovery() int {
	idx, _ := s.RegisterBuff(record.AbilityInfo{
		AbilityID: HealthRecoveryAbilityID,
		Name:      HealthRecoveryName,
		Icon:      "ability_healer_018.dds",
	})
	return idx
}

// ClassifyBuff applies an EFFECT_INFO record to an already-registered buff.
// A never-announced ability is default-constructed first (ordering tolerance).
func (s *State) ClassifyBuff(info record.EffectInfo) int {
	idx, ok := s.buffByAbility[info.AbilityID]
	if !ok {
		s.log.Debug("EFFECT_INFO before ABILITY_INFO", "ability", info.AbilityID)
		idx, _ = s.RegisterBuff(record.AbilityInfo{AbilityID: info.AbilityID})
	}
	b := s.buffs[idx]
	b.Effect = info.Effect
	b.StatusEffect = info.StatusEffect
	return idx
}

// SetBuffDamageType records the damage classification observed in events.
func (s *State) SetBuffDamageType(idx int, dt record.DamageType) {
	if idx >= 0 && idx < len(s.buffs) && s.buffs[idx].DamageType == record.DamageNone {
		s.buffs[idx].DamageType = dt
	}
}

// BuffIndex maps an ability id to its buff index, if registered.
func (s *State) BuffIndex(abilityID int64) (int, bool) {
	idx, ok := s.buffByAbility[abilityID]
	return idx, ok
}

// Buff returns the buff at index, nil when out of range.
func (s *State) Buff(idx int) *Buff {
	if idx < 0 || idx >= len(s.buffs) {
		return nil
	}
	return s.buffs[idx]
}

// BuffIcon returns the icon token for an ability id, if registered.
func (s *State) BuffIcon(abilityID int64) (string, bool) {
	idx, ok := s.buffByAbility[abilityID]
	if !ok {
		return "", false
	}
	return s.buffs[idx].Icon, true
}

// ResolveBuffEvent returns the index of the (source, target, buff) triple,
// allocating on first sight. The key excludes timestamps on purpose: the
// same ability from the same source at the same target is one addressable
// entity across the whole file.
func (s *State) ResolveBuffEvent(sourceIdx, targetIdx, buffIdx int) int {
	key := triple{sourceIdx, targetIdx, buffIdx}
	if idx, ok := s.eventByTriple[key]; ok {
		return idx
	}
	idx := len(s.buffEvents)
	s.buffEvents = append(s.buffEvents, &BuffEvent{
		Index:       idx,
		SourceIndex: sourceIdx,
		TargetIndex: targetIdx,
		BuffIndex:   buffIdx,
	})
	s.eventByTriple[key] = idx
	return idx
}

func buffFlags(interruptible, blockable bool) uint8 {
	var f uint8
	if interruptible {
		f |= flagInterruptible
	}
	if blockable {
		f |= flagBlockable
	}
	return f
}

// truncateID keeps the first nine digits of a character id so derived keys
// fit the legacy index width of the consumer format.
func truncateID(characterID int64) int64 {
	str := strconv.FormatInt(characterID, 10)
	if len(str) > 9 {
		str = str[:9]
	}
	v, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return characterID
	}
	return v
}

func stripExt(icon string) string {
	if i := strings.LastIndexByte(icon, '.'); i >= 0 {
		return icon[:i]
	}
	return icon
}
