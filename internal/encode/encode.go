// Package encode serializes the accumulated model into the pipe-delimited
// line format consumed by the analytics website. Every function here is pure:
// all inputs have already been validated upstream and encoding never fails.
package encode

import (
	"math"
	"strconv"
	"strings"

	"github.com/esolog/enclog-go/internal/fight"
	"github.com/esolog/enclog-go/internal/resolve"
	"github.com/esolog/enclog-go/pkg/enclog/record"
)

// Line type codes. Self-targeted variants are code+10 and omit the duplicate
// target block; cast-on-self keeps code 1.
const (
	codeCastSelf    = 1
	codeCastOthers  = 2
	codeDamage      = 3
	codeHeal        = 4
	codeEnergize    = 5
	codeBuffGained  = 6
	codeBuffFaded   = 7
	codeHealthRegen = 8

	selfVariantOffset = 10
)

// blockedSentinel replaces the hit value fields on fully blocked hits.
// The consumer format expects this exact triple.
const blockedSentinel = "1|0|1"

// EventKind selects the output line layout for one logged event.
type EventKind int

const (
	KindCast EventKind = iota
	KindDamage
	KindHeal
	KindEnergize
	KindBuffGained
	KindBuffFaded
	KindHealthRegen
)

// UnitRef pairs a resolver unit index with the point-in-time state carried
// by the source line. Index is -1 when the unit was never announced.
type UnitRef struct {
	Index int
	State record.UnitState
}

// Event is one fully resolved output event, ready to serialize.
type Event struct {
	Time           int64
	Kind           EventKind
	BuffEventIndex int
	// CastA/CastB disambiguate repeat occurrences of the same buff event
	// inside the unit-instance token.
	CastA, CastB   int64
	SelfTargeted   bool
	DurationMS     int64
	DamageType     record.DamageType
	Power          record.PowerType
	HitValue       int64
	Overflow       int64
	Blocked        bool
	StackCount     int
	EffectiveRegen int64
	Source         UnitRef
	Target         UnitRef
}

// ToDisplayIndex converts a stored 0-based index to the 1-based 16-bit form
// the output format uses. Overflow wraps rather than erroring; the consumer
// format is 16-bit oriented and expects exactly that.
func ToDisplayIndex(idx int) uint16 {
	return uint16(idx + 1)
}

// InstanceToken renders the compact unit-instance token: N, N.a, or N.a.b
// depending on which disambiguating sub-ids are nonzero.
func InstanceToken(index int, a, b int64) string {
	n := strconv.FormatUint(uint64(ToDisplayIndex(index)), 10)
	if b != 0 {
		return n + "." + strconv.FormatInt(a, 10) + "." + strconv.FormatInt(b, 10)
	}
	if a != 0 {
		return n + "." + strconv.FormatInt(a, 10)
	}
	return n
}

// EncodeEvent serializes one logged event into its output line.
func EncodeEvent(ev Event) string {
	var w lineWriter
	w.int64(ev.Time)
	w.int(typeCode(ev))
	w.raw(InstanceToken(ev.BuffEventIndex, ev.CastA, ev.CastB))

	switch ev.Kind {
	case KindCast:
		w.int64(ev.DurationMS)
		w.state(ev.Source)
		if !ev.SelfTargeted && !ev.Target.State.IsBlank() {
			w.state(ev.Target)
		}
	case KindDamage:
		w.int(int(ev.DamageType))
		w.hits(ev)
		w.state(ev.Source)
		if !ev.SelfTargeted {
			w.state(ev.Target)
		}
	case KindHeal:
		w.hits(ev)
		w.state(ev.Source)
		if !ev.SelfTargeted {
			w.state(ev.Target)
		}
	case KindEnergize:
		w.int(int(ev.Power))
		w.int64(ev.HitValue)
		w.int64(maxCapacity(ev.Target.State, ev.Power))
		w.state(ev.Source)
		if !ev.SelfTargeted {
			w.state(ev.Target)
		}
	case KindBuffGained:
		w.int(ev.StackCount)
		w.state(ev.Source)
		if !ev.SelfTargeted {
			w.state(ev.Target)
		}
	case KindBuffFaded:
		w.state(ev.Source)
		if !ev.SelfTargeted {
			w.state(ev.Target)
		}
	case KindHealthRegen:
		w.int64(ev.EffectiveRegen)
		w.state(ev.Source)
	}
	return w.String()
}

func typeCode(ev Event) int {
	var base int
	switch ev.Kind {
	case KindCast:
		if ev.SelfTargeted || ev.Target.State.IsBlank() {
			return codeCastSelf
		}
		return codeCastOthers
	case KindDamage:
		base = codeDamage
	case KindHeal:
		base = codeHeal
	case KindEnergize:
		base = codeEnergize
	case KindBuffGained:
		base = codeBuffGained
	case KindBuffFaded:
		base = codeBuffFaded
	case KindHealthRegen:
		return codeHealthRegen
	}
	if ev.SelfTargeted {
		return base + selfVariantOffset
	}
	return base
}

// maxCapacity picks the resource pool maximum matching the power type.
// Unknown codes were already mapped to health by the decoder.
func maxCapacity(st record.UnitState, p record.PowerType) int64 {
	switch p {
	case record.PowerMagicka:
		return st.MaxMagicka
	case record.PowerStamina, record.PowerMountStamina:
		return st.MaxStamina
	case record.PowerUltimate:
		return st.MaxUltimate
	case record.PowerWerewolf:
		return st.MaxWerewolf
	default:
		return st.MaxHealth
	}
}

// EncodeUnit serializes one unit registration side-table line.
func EncodeUnit(u *resolve.Unit) string {
	var w lineWriter
	w.raw("U")
	w.int(int(ToDisplayIndex(u.Index)))
	w.int(unitKindCode(u.Kind))
	w.quoted(u.Name)
	w.quoted(u.DisplayName)
	w.quoted(u.Server)
	w.int(int(u.Class))
	w.int(int(u.Race))
	w.int(u.ChampionPoints)
	w.int(int(u.Reaction))
	w.int(ownerDisplay(u.OwnerUnitID))
	w.bool(u.IsBoss)
	w.quoted(u.Icon)
	return w.String()
}

// EncodeBuff serializes one buff registration side-table line.
func EncodeBuff(b *resolve.Buff) string {
	var w lineWriter
	w.raw("B")
	w.int(int(ToDisplayIndex(b.Index)))
	w.int64(b.AbilityID)
	w.quoted(b.Name)
	w.quoted(b.Icon)
	w.int(int(b.DamageType))
	w.int(int(b.Flags))
	return w.String()
}

// EncodeFight serializes one fight side-table line.
func EncodeFight(f *fight.Fight) string {
	var w lineWriter
	w.raw("F")
	w.int(int(ToDisplayIndex(f.Index)))
	w.quoted(f.Name)
	w.int64(f.StartTime)
	w.int64(f.EndTime)
	return w.String()
}

func unitKindCode(k record.UnitKind) int {
	switch k {
	case record.UnitPlayer:
		return 1
	case record.UnitMonster:
		return 2
	case record.UnitObject:
		return 3
	default:
		return 0
	}
}

// ownerDisplay renders the owner session id; zero means no owner.
func ownerDisplay(ownerUnitID int64) int {
	return int(uint16(ownerUnitID))
}

// QuantizePosition converts a normalized map coordinate pair and heading to
// the output's integer encoding: x scaled by 10000, y flipped on its axis,
// heading scaled by 100, all rounded half away from zero.
func QuantizePosition(x, y, heading float32) (qx, qy, qh int64) {
	qx = roundAway(float64(x) * 10000)
	qy = 10000 - roundAway(float64(y)*10000)
	qh = roundAway(float64(heading) * 100)
	return
}

func roundAway(v float64) int64 {
	if v >= 0 {
		return int64(math.Floor(v + 0.5))
	}
	return int64(math.Ceil(v - 0.5))
}

// lineWriter accumulates pipe-separated fields.
type lineWriter struct {
	b strings.Builder
}

func (w *lineWriter) sep() {
	if w.b.Len() > 0 {
		w.b.WriteByte('|')
	}
}

func (w *lineWriter) String() string { return w.b.String() }

func (w *lineWriter) raw(s string) {
	w.sep()
	w.b.WriteString(s)
}

func (w *lineWriter) int(v int) { w.raw(strconv.Itoa(v)) }

func (w *lineWriter) int64(v int64) { w.raw(strconv.FormatInt(v, 10)) }

func (w *lineWriter) bool(v bool) {
	if v {
		w.raw("1")
	} else {
		w.raw("0")
	}
}

func (w *lineWriter) quoted(s string) {
	w.raw(`"` + strings.ReplaceAll(s, `"`, `""`) + `"`)
}

// hits writes the hit-value/overflow fields under the collapsing rules:
// a zero hit with overflow collapses to the overflow, a plain hit stands
// alone unless blocked (sentinel triple), anything else emits the sum plus
// the raw overflow.
func (w *lineWriter) hits(ev Event) {
	switch {
	case ev.HitValue == 0 && ev.Overflow != 0:
		// The overflow collapses into the single hit slot; the consumer
		// reads it as the hit value.
		w.int64(ev.Overflow)
	case ev.HitValue != 0 && ev.Overflow == 0:
		if ev.Blocked {
			w.raw(blockedSentinel)
		} else {
			w.int64(ev.HitValue)
		}
	default:
		w.int64(ev.HitValue + ev.Overflow)
		w.int64(ev.Overflow)
	}
}

// state writes the encoded unit-state block: display index, resource pools,
// shield, and the quantized position.
func (w *lineWriter) state(ref UnitRef) {
	st := ref.State
	w.int(int(ToDisplayIndex(ref.Index)))
	w.int64(st.Health)
	w.int64(st.MaxHealth)
	w.int64(st.Magicka)
	w.int64(st.MaxMagicka)
	w.int64(st.Stamina)
	w.int64(st.MaxStamina)
	w.int64(st.Ultimate)
	w.int64(st.MaxUltimate)
	w.int64(st.Shield)
	qx, qy, qh := QuantizePosition(st.MapX, st.MapY, st.Heading)
	w.int64(qx)
	w.int64(qy)
	w.int64(qh)
}
