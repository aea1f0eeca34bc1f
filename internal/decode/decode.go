// Package decode classifies tokenized encounter log lines and converts them
// into typed records. Field offsets are positional contracts fixed by the
// upstream log format (version 15) and must not drift.
package decode

import (
	"fmt"
	"io"
	"log/slog"
	"path"
	"strconv"
	"strings"

	"github.com/esolog/enclog-go/internal/tokenize"
	"github.com/esolog/enclog-go/pkg/enclog/record"
)

// SupportedLogVersion is the encounter log format version the positional
// offsets in this package are written against.
const SupportedLogVersion = 15

// selfTarget is the sentinel meaning "target state equals source state".
const selfTarget = "*"

// Offsets of the source unit-state block per record type.
const (
	combatEventSourceOffset = 9
	castSourceOffset        = 6
	unitStateFields         = 10
)

// ParseError reports a line that could not be decoded. Required-field
// failures abort the line, never the run.
type ParseError struct {
	Line  int
	Tag   record.Kind
	Field int
	Raw   string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s field %d: %v", e.Line, e.Tag, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Decoder turns tokenized fields into records.
type Decoder struct {
	log *slog.Logger
}

// New returns a Decoder. A nil logger disables logging.
func New(logger *slog.Logger) *Decoder {
	if logger == nil {
		logger = discardLogger
	}
	return &Decoder{log: logger}
}

// DecodeLine tokenizes and decodes one raw line. See Decode.
func (d *Decoder) DecodeLine(lineNo int, line string) (record.Record, error) {
	return d.Decode(lineNo, tokenize.Fields(strings.TrimRight(line, "\r")))
}

// Decode converts tokenized fields into a typed record.
//
// Returns:
//   - (rec, nil): successfully decoded
//   - (nil, nil): empty line or unrecognized record tag (not an error)
//   - (nil, *ParseError): malformed line; skip it and continue the stream
func (d *Decoder) Decode(lineNo int, fields []string) (record.Record, error) {
	if len(fields) < 2 {
		return nil, nil
	}

	ln := &lineReader{lineNo: lineNo, fields: fields, tag: record.Kind(fields[1])}
	ts := ln.reqInt(0)
	if ln.err != nil {
		return nil, ln.err
	}

	switch ln.tag {
	case record.KindBeginLog:
		return d.beginLog(ln, ts)
	case record.KindEndLog:
		return record.EndLog{Time: ts}, nil
	case record.KindBeginCombat:
		return record.BeginCombat{Time: ts}, nil
	case record.KindEndCombat:
		return record.EndCombat{Time: ts}, nil
	case record.KindUnitAdded:
		return d.unitAdded(ln, ts)
	case record.KindUnitChanged:
		return d.unitChanged(ln, ts)
	case record.KindUnitRemoved:
		rec := record.UnitRemoved{Time: ts, UnitID: ln.reqInt(2)}
		return ln.finish(rec)
	case record.KindAbilityInfo:
		return d.abilityInfo(ln, ts)
	case record.KindEffectInfo:
		return d.effectInfo(ln, ts)
	case record.KindCombatEvent:
		return d.combatEvent(ln, ts)
	case record.KindBeginCast:
		return d.beginCast(ln, ts)
	case record.KindEndCast:
		return d.endCast(ln, ts)
	case record.KindEffectChanged:
		return d.effectChanged(ln, ts)
	case record.KindHealthRegen:
		return d.healthRegen(ln, ts)
	case record.KindPlayerInfo:
		return d.playerInfo(ln, ts)
	case record.KindMapChanged:
		rec := record.MapChanged{Time: ts, MapID: ln.optInt(2), Name: ln.str(3), Texture: ln.str(4)}
		return rec, nil
	case record.KindZoneChanged:
		rec := record.ZoneChanged{Time: ts, ZoneID: ln.optInt(2), Name: ln.str(3), Difficulty: ln.str(4)}
		return rec, nil
	case record.KindTrialInit, record.KindBeginTrial, record.KindEndTrial:
		return record.TrialEvent{Time: ts, Tag: ln.tag, ID: ln.optInt(2)}, nil
	default:
		d.log.Debug("unrecognized record tag", "line", lineNo, "tag", string(ln.tag))
		return nil, nil
	}
}

func (d *Decoder) beginLog(ln *lineReader, ts int64) (record.Record, error) {
	rec := record.BeginLog{
		Time:        ts,
		EpochMS:     ln.reqInt(2),
		Version:     int(ln.optInt(3)),
		Server:      ln.str(4),
		Language:    ln.str(5),
		GameVersion: ln.str(6),
	}
	if rec.Version != 0 && rec.Version != SupportedLogVersion {
		d.log.Warn("encounter log version mismatch",
			"got", rec.Version, "supported", SupportedLogVersion)
	}
	return ln.finish(rec)
}

func (d *Decoder) unitAdded(ln *lineReader, ts int64) (record.Record, error) {
	rec := record.UnitAdded{
		Time:   ts,
		UnitID: ln.reqInt(2),
		Unit:   record.ParseUnitKind(ln.str(3)),
	}
	if ln.err != nil {
		return nil, ln.err
	}

	switch rec.Unit {
	case record.UnitPlayer:
		rec.IsLocalPlayer = ln.boolAt(4)
		rec.PlayerPerSessionID = ln.optInt(5)
		rec.IsBoss = ln.boolAt(7)
		rec.Class = record.ClassID(ln.optInt(8))
		rec.Race = record.RaceID(ln.optInt(9))
		rec.Name = ln.str(10)
		rec.DisplayName = ln.str(11)
		rec.CharacterID = ln.optInt(12)
		rec.Level = int(ln.optInt(13))
		rec.ChampionPoints = int(ln.optInt(14))
		rec.OwnerUnitID = ln.optInt(15)
		rec.Reaction = d.reaction(ln, 16, record.ReactionPlayerAlly)
		rec.IsGrouped = ln.boolAt(17)
	case record.UnitMonster:
		rec.MonsterID = ln.optInt(6)
		rec.IsBoss = ln.boolAt(7)
		rec.Name = ln.str(10)
		rec.Level = int(ln.optInt(13))
		rec.ChampionPoints = int(ln.optInt(14))
		rec.OwnerUnitID = ln.optInt(15)
		rec.Reaction = d.reaction(ln, 16, record.ReactionHostile)
	case record.UnitObject:
		rec.MonsterID = ln.optInt(6)
		rec.Name = ln.str(10)
		rec.OwnerUnitID = ln.optInt(15)
		rec.Reaction = d.reaction(ln, 16, record.ReactionNeutral)
	default:
		d.log.Warn("unknown unit kind", "line", ln.lineNo, "kind", ln.str(3))
		rec.Name = ln.str(10)
		rec.Reaction = d.reaction(ln, 16, record.ReactionUnknown)
	}
	return rec, nil
}

func (d *Decoder) unitChanged(ln *lineReader, ts int64) (record.Record, error) {
	rec := record.UnitChanged{
		Time:        ts,
		UnitID:      ln.reqInt(2),
		Name:        ln.str(10),
		DisplayName: ln.str(11),
		Reaction:    d.reaction(ln, 16, record.ReactionUnknown),
	}
	return ln.finish(rec)
}

func (d *Decoder) abilityInfo(ln *lineReader, ts int64) (record.Record, error) {
	rec := record.AbilityInfo{
		Time:          ts,
		AbilityID:     ln.reqInt(2),
		Name:          ln.str(3),
		Icon:          normalizeIcon(ln.str(4)),
		Interruptible: ln.boolAt(5),
		Blockable:     ln.boolAt(6),
	}
	// A scribed (crafted) ability variant carries exactly three trailing
	// quoted script names.
	if len(ln.fields) == 10 {
		rec.Scribed = true
		rec.Scripts = [3]string{ln.str(7), ln.str(8), ln.str(9)}
	}
	return ln.finish(rec)
}

func (d *Decoder) effectInfo(ln *lineReader, ts int64) (record.Record, error) {
	rec := record.EffectInfo{
		Time:         ts,
		AbilityID:    ln.reqInt(2),
		Effect:       record.ParseEffectType(ln.str(3)),
		StatusEffect: record.StatusEffectKind(ln.str(4)),
		NoEffect:     ln.boolAt(5),
	}
	return ln.finish(rec)
}

func (d *Decoder) combatEvent(ln *lineReader, ts int64) (record.Record, error) {
	rec := record.CombatEvent{
		Time:        ts,
		Result:      record.EventResult(ln.str(2)),
		CastTrackID: ln.optInt(7),
		AbilityID:   ln.reqInt(8),
		HitValue:    ln.optInt(5),
		Overflow:    ln.optInt(6),
	}
	var ok bool
	if rec.DamageType, ok = record.ParseDamageType(ln.str(3)); !ok {
		d.log.Warn("unknown damage type", "line", ln.lineNo, "tag", ln.str(3))
	}
	if rec.Power, ok = record.ParsePowerType(int(ln.optInt(4))); !ok {
		d.log.Warn("unknown power type", "line", ln.lineNo, "code", ln.str(4))
	}
	rec.Source = ln.unitState(combatEventSourceOffset)
	rec.Target, rec.TargetSelf = ln.targetState(combatEventSourceOffset+unitStateFields, rec.Source)
	return ln.finish(rec)
}

func (d *Decoder) beginCast(ln *lineReader, ts int64) (record.Record, error) {
	rec := record.BeginCast{
		Time:        ts,
		DurationMS:  ln.optInt(2),
		Channeled:   ln.boolAt(3),
		CastTrackID: ln.optInt(4),
		AbilityID:   ln.reqInt(5),
	}
	rec.Source = ln.unitState(castSourceOffset)
	rec.Target, rec.TargetSelf = ln.targetState(castSourceOffset+unitStateFields, rec.Source)
	return ln.finish(rec)
}

func (d *Decoder) endCast(ln *lineReader, ts int64) (record.Record, error) {
	rec := record.EndCast{
		Time:        ts,
		Reason:      record.CastEndReason(ln.str(2)),
		CastTrackID: ln.optInt(3),
		AbilityID:   ln.reqInt(4),
	}
	return ln.finish(rec)
}

func (d *Decoder) effectChanged(ln *lineReader, ts int64) (record.Record, error) {
	rec := record.EffectChanged{
		Time:        ts,
		Change:      record.ParseEffectChange(ln.str(2)),
		StackCount:  int(ln.optInt(3)),
		CastTrackID: ln.optInt(4),
		AbilityID:   ln.reqInt(5),
	}
	rec.Source = ln.unitState(castSourceOffset)
	rec.Target, rec.TargetSelf = ln.targetState(castSourceOffset+unitStateFields, rec.Source)
	return ln.finish(rec)
}

func (d *Decoder) healthRegen(ln *lineReader, ts int64) (record.Record, error) {
	rec := record.HealthRegen{
		Time:           ts,
		EffectiveRegen: ln.optInt(2),
		State:          ln.unitState(3),
	}
	return ln.finish(rec)
}

func (d *Decoder) playerInfo(ln *lineReader, ts int64) (record.Record, error) {
	rec := record.PlayerInfo{
		Time:   ts,
		UnitID: ln.reqInt(2),
	}
	if ln.err != nil {
		return nil, ln.err
	}
	for _, s := range tokenize.Array(ln.str(3)) {
		rec.BuffIDs = append(rec.BuffIDs, bestInt(s))
	}
	for _, s := range tokenize.Array(ln.str(4)) {
		rec.BuffStacks = append(rec.BuffStacks, int(bestInt(s)))
	}
	for _, piece := range tokenize.Array(ln.str(5)) {
		if piece == "" {
			continue
		}
		rec.Gear = append(rec.Gear, d.gearPiece(piece))
	}
	for _, s := range tokenize.Array(ln.str(6)) {
		rec.FrontBar = append(rec.FrontBar, bestInt(s))
	}
	for _, s := range tokenize.Array(ln.str(7)) {
		rec.BackBar = append(rec.BackBar, bestInt(s))
	}
	return rec, nil
}

func (d *Decoder) reaction(ln *lineReader, i int, fallback record.Reaction) record.Reaction {
	s := ln.str(i)
	if s == "" {
		return fallback
	}
	r := record.ParseReaction(s)
	if r == record.ReactionUnknown {
		d.log.Warn("unknown reaction", "line", ln.lineNo, "tag", s)
		return fallback
	}
	return r
}

// normalizeIcon reduces an icon path to its basename. The .dds extension is
// kept here; display-oriented consumers swap it for .png.
func normalizeIcon(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return path.Base(p)
}

// bestInt parses an integer best-effort, zero on failure.
func bestInt(s string) int64 {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
