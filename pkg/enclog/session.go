package enclog

import (
	"io"
	"log/slog"

	"github.com/esolog/enclog-go/internal/decode"
	"github.com/esolog/enclog-go/internal/encode"
	"github.com/esolog/enclog-go/internal/fight"
	"github.com/esolog/enclog-go/internal/resolve"
	"github.com/esolog/enclog-go/pkg/enclog/record"
)

// LogEvent is one fully resolved output event. Use AddLogEvent to append
// events synthesized outside the normal line flow.
type LogEvent = encode.Event

// Meta carries the BEGIN_LOG header of the file being processed.
type Meta struct {
	EpochMS     int64
	Version     int
	Server      string
	Language    string
	GameVersion string
}

// Stats counts processing outcomes for one session.
type Stats struct {
	Lines     int // lines fed in
	Records   int // lines that produced a model update
	Malformed int // lines skipped with a parse diagnostic
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Session is the in-memory combat model for exactly one input file. It owns
// the identity tables for the lifetime of that file and must not be shared
// across files or goroutines.
type Session struct {
	cfg *config
	log *slog.Logger

	dec    *decode.Decoder
	res    *resolve.State
	fights *fight.Tracker

	events []encode.Event
	// pendingCasts maps a cast track id to its event slot so END_CAST can
	// retire it.
	pendingCasts map[int64]int
	// occurrences counts repeats per buff event, feeding the instance token
	// disambiguators.
	occurrences map[int]int64

	meta   Meta
	stats  Stats
	closed bool

	// flush cursors: registration lines are emitted once per newly seen
	// entity across incremental WriteEncoded calls.
	flushedUnits  int
	flushedBuffs  int
	flushedFights int
	flushedEvents int
}

// NewSession returns an empty session.
func NewSession(opts ...Option) *Session {
	cfg := applyOptions(opts)
	logger := cfg.logger
	if logger == nil {
		logger = discardLogger
	}
	s := &Session{
		cfg:          cfg,
		log:          logger,
		dec:          decode.New(logger),
		res:          resolve.NewState(logger),
		pendingCasts: make(map[int64]int),
		occurrences:  make(map[int]int64),
	}
	s.fights = fight.NewTracker(logger, func(unitID int64) (*resolve.Unit, bool) {
		idx, ok := s.res.UnitBySession(unitID)
		if !ok {
			return nil, false
		}
		return s.res.Unit(idx), true
	})
	return s
}

// Meta returns the BEGIN_LOG header seen so far.
func (s *Session) Meta() Meta { return s.meta }

// Stats returns processing counters.
func (s *Session) Stats() Stats { return s.stats }

// Fights returns all fights recorded so far, oldest first.
func (s *Session) Fights() []*fight.Fight { return s.fights.Fights() }

// Close marks the session complete; further lines are rejected. Previously
// resolved indices stay valid, so partial results can still be flushed.
func (s *Session) Close() {
	s.closed = true
}

// ParseLine tokenizes, decodes, and applies one raw line.
//
// Returns:
//   - (rec, nil): the line produced a model update
//   - (nil, nil): empty or unrecognized line (not an error)
//   - (nil, err): the line was skipped; the stream continues
func (s *Session) ParseLine(lineNo int, line string) (record.Record, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	s.stats.Lines++
	rec, err := s.dec.DecodeLine(lineNo, line)
	if err != nil {
		s.stats.Malformed++
		s.log.Warn("skipping malformed line", "error", err)
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	if err := s.apply(rec); err != nil {
		return nil, err
	}
	s.stats.Records++
	return rec, nil
}

// ParseFields applies one pre-tokenized line; collaborators that tokenize
// themselves feed the session through this.
func (s *Session) ParseFields(lineNo int, fields []string) (record.Record, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	s.stats.Lines++
	rec, err := s.dec.Decode(lineNo, fields)
	if err != nil {
		s.stats.Malformed++
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	if err := s.apply(rec); err != nil {
		return nil, err
	}
	s.stats.Records++
	return rec, nil
}

func (s *Session) apply(rec record.Record) error {
	switch r := rec.(type) {
	case record.BeginLog:
		s.meta = Meta{
			EpochMS:     r.EpochMS,
			Version:     r.Version,
			Server:      r.Server,
			Language:    r.Language,
			GameVersion: r.GameVersion,
		}
		s.res.SetServer(r.Server)
		if s.cfg.strictVersion && r.Version != 0 && r.Version != decode.SupportedLogVersion {
			return ErrVersionMismatch
		}
	case record.UnitAdded:
		s.res.ResolveUnit(r)
	case record.UnitChanged:
		s.res.UpdateUnit(r)
	case record.UnitRemoved:
		s.res.RemoveSession(r.UnitID)
	case record.PlayerInfo:
		if !s.res.SetEquipment(r) {
			s.log.Debug("PLAYER_INFO for unknown unit", "unit", r.UnitID)
		}
	case record.AbilityInfo:
		s.res.RegisterBuff(r)
	case record.EffectInfo:
		s.res.ClassifyBuff(r)
	case record.BeginCombat:
		s.fights.Begin(r.Time, s.res.Units())
	case record.EndCombat:
		s.fights.End(r.Time)
	case record.CombatEvent:
		s.applyCombatEvent(r)
	case record.BeginCast:
		s.applyBeginCast(r)
	case record.EndCast:
		s.applyEndCast(r)
	case record.EffectChanged:
		s.applyEffectChanged(r)
	case record.HealthRegen:
		s.applyHealthRegen(r)
	}
	return nil
}

func (s *Session) applyCombatEvent(r record.CombatEvent) {
	s.fights.AddCombatEvent(r)

	buffIdx := s.buffFor(r.AbilityID)
	src := s.unitRef(r.Source)
	tgt := s.unitRef(r.Target)

	if r.Result.IsDamage() {
		s.res.SetBuffDamageType(buffIdx, r.DamageType)
		// The unit's display icon is the icon of the first damaging ability
		// it used.
		if icon, ok := s.res.BuffIcon(r.AbilityID); ok && src.Index >= 0 {
			s.res.SetUnitIconIfEmpty(src.Index, icon)
		}
	}

	ev := encode.Event{
		Time:           r.Time,
		BuffEventIndex: s.res.ResolveBuffEvent(src.Index, tgt.Index, buffIdx),
		SelfTargeted:   r.TargetSelf,
		DamageType:     r.DamageType,
		Power:          r.Power,
		HitValue:       r.HitValue,
		Overflow:       r.Overflow,
		Blocked:        r.Result == record.ResultBlockedDamage,
		Source:         src,
		Target:         tgt,
	}

	switch {
	case r.Result.IsDamage():
		ev.Kind = encode.KindDamage
	case r.Result.IsHeal():
		ev.Kind = encode.KindHeal
	case r.Result == record.ResultPowerEnergize || r.Result == record.ResultPowerDrain:
		ev.Kind = encode.KindEnergize
	default:
		// Deaths, interrupts, dodges and the rest stay in the fight's event
		// list but have no dedicated output line.
		return
	}
	s.AddLogEvent(ev)
}

func (s *Session) applyBeginCast(r record.BeginCast) {
	s.fights.AddCast(r)

	buffIdx := s.buffFor(r.AbilityID)
	src := s.unitRef(r.Source)
	tgt := s.unitRef(r.Target)

	ev := encode.Event{
		Time:           r.Time,
		Kind:           encode.KindCast,
		BuffEventIndex: s.res.ResolveBuffEvent(src.Index, tgt.Index, buffIdx),
		SelfTargeted:   r.TargetSelf,
		DurationMS:     r.DurationMS,
		Source:         src,
		Target:         tgt,
	}
	s.AddLogEvent(ev)
	s.pendingCasts[r.CastTrackID] = len(s.events) - 1
}

// applyEndCast retires the pending cast. An interrupted or cancelled cast
// gets its encoded duration truncated to the time actually spent casting.
func (s *Session) applyEndCast(r record.EndCast) {
	idx, ok := s.pendingCasts[r.CastTrackID]
	if !ok {
		return
	}
	delete(s.pendingCasts, r.CastTrackID)
	if r.Reason == record.CastCompleted {
		return
	}
	if idx >= 0 && idx < len(s.events) {
		if elapsed := r.Time - s.events[idx].Time; elapsed >= 0 {
			s.events[idx].DurationMS = elapsed
		}
	}
}

func (s *Session) applyEffectChanged(r record.EffectChanged) {
	s.fights.AddEffect(r)

	buffIdx := s.buffFor(r.AbilityID)
	src := s.unitRef(r.Source)
	tgt := s.unitRef(r.Target)

	ev := encode.Event{
		Time:           r.Time,
		BuffEventIndex: s.res.ResolveBuffEvent(src.Index, tgt.Index, buffIdx),
		SelfTargeted:   r.TargetSelf,
		StackCount:     r.StackCount,
		Source:         src,
		Target:         tgt,
	}
	switch r.Change {
	case record.EffectFaded:
		ev.Kind = encode.KindBuffFaded
	default:
		// GAINED and UPDATED both render as gained-with-stacks.
		ev.Kind = encode.KindBuffGained
	}
	s.AddLogEvent(ev)
}

func (s *Session) applyHealthRegen(r record.HealthRegen) {
	buffIdx := s.res.EnsureHealthRecovery()
	src := s.unitRef(r.State)

	s.AddLogEvent(encode.Event{
		Time:           r.Time,
		Kind:           encode.KindHealthRegen,
		BuffEventIndex: s.res.ResolveBuffEvent(src.Index, src.Index, buffIdx),
		SelfTargeted:   true,
		EffectiveRegen: r.EffectiveRegen,
		Source:         src,
		Target:         src,
	})
}

// AddLogEvent appends one output event, assigning its instance-token
// disambiguators from the per-buff-event occurrence counter.
func (s *Session) AddLogEvent(ev LogEvent) {
	n := s.occurrences[ev.BuffEventIndex]
	s.occurrences[ev.BuffEventIndex] = n + 1
	if ev.CastA == 0 && ev.CastB == 0 && n > 0 {
		// First occurrence renders as the bare index; repeats carry the
		// occurrence counter, split into two sub-ids past 16 bits.
		ev.CastA = n & 0xFFFF
		ev.CastB = n >> 16
	}
	s.events = append(s.events, ev)
}

// buffFor maps an ability id to its buff index, default-constructing a buff
// (named from refdata when possible) if the ABILITY_INFO never arrived.
func (s *Session) buffFor(abilityID int64) int {
	if idx, ok := s.res.BuffIndex(abilityID); ok {
		return idx
	}
	s.log.Debug("event before ABILITY_INFO", "ability", abilityID)
	name, _ := s.cfg.ref.AbilityName(abilityID)
	idx, _ := s.res.RegisterBuff(record.AbilityInfo{AbilityID: abilityID, Name: name})
	return idx
}

// unitRef pairs a unit-state block with the canonical index of its unit.
func (s *Session) unitRef(st record.UnitState) encode.UnitRef {
	ref := encode.UnitRef{Index: -1, State: st}
	if idx, ok := s.res.UnitBySession(st.UnitID); ok {
		ref.Index = idx
	}
	return ref
}

// UnitIndex maps a raw session unit id to its canonical unit index.
func (s *Session) UnitIndex(unitID int64) (int, bool) {
	return s.res.UnitBySession(unitID)
}

// Equipment returns the latest PLAYER_INFO gear/bar snapshot for a raw
// session unit id, or false when none arrived.
func (s *Session) Equipment(unitID int64) (*record.PlayerInfo, bool) {
	idx, ok := s.res.UnitBySession(unitID)
	if !ok {
		return nil, false
	}
	u := s.res.Unit(idx)
	if u == nil || u.Equipment == nil {
		return nil, false
	}
	return u.Equipment, true
}

// BuffIndex maps a global ability id to its buff index, if registered.
func (s *Session) BuffIndex(abilityID int64) (int, bool) {
	return s.res.BuffIndex(abilityID)
}

// GetBuffIcon returns the icon token from the first registration of an
// ability; later ABILITY_INFO lines for the same id never change it.
func (s *Session) GetBuffIcon(abilityID int64) (string, bool) {
	return s.res.BuffIcon(abilityID)
}

// WriteEncoded flushes the model as output lines: registration lines for
// entities not yet flushed, then the logged event lines. Calling it again
// later emits only what accumulated since the previous flush, so a slow
// consumer can drain at its own pace.
func (s *Session) WriteEncoded(w io.Writer) error {
	units := s.res.Units()
	for ; s.flushedUnits < len(units); s.flushedUnits++ {
		if err := writeLine(w, encode.EncodeUnit(units[s.flushedUnits])); err != nil {
			return err
		}
	}
	buffs := s.res.Buffs()
	for ; s.flushedBuffs < len(buffs); s.flushedBuffs++ {
		if err := writeLine(w, encode.EncodeBuff(buffs[s.flushedBuffs])); err != nil {
			return err
		}
	}
	fights := s.fights.Fights()
	for ; s.flushedFights < len(fights); s.flushedFights++ {
		f := fights[s.flushedFights]
		if f.Active() {
			// Leave the open fight for the next flush.
			break
		}
		if err := writeLine(w, encode.EncodeFight(f)); err != nil {
			return err
		}
	}
	for ; s.flushedEvents < len(s.events); s.flushedEvents++ {
		if err := writeLine(w, encode.EncodeEvent(s.events[s.flushedEvents])); err != nil {
			return err
		}
	}
	return nil
}

func writeLine(w io.Writer, line string) error {
	if _, err := io.WriteString(w, line); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}
