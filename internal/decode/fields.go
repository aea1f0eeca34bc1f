package decode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/esolog/enclog-go/pkg/enclog/record"
)

// lineReader carries positional access over one tokenized line.
// Required-field failures latch into err; the first one wins.
type lineReader struct {
	lineNo int
	tag    record.Kind
	fields []string
	err    *ParseError
}

func (ln *lineReader) fail(i int, err error) {
	if ln.err == nil {
		ln.err = &ParseError{
			Line:  ln.lineNo,
			Tag:   ln.tag,
			Field: i,
			Raw:   strings.Join(ln.fields, ","),
			Err:   err,
		}
	}
}

// finish returns the record unless a required field failed.
func (ln *lineReader) finish(rec record.Record) (record.Record, error) {
	if ln.err != nil {
		return nil, ln.err
	}
	return rec, nil
}

// str returns field i, empty when the line is short.
func (ln *lineReader) str(i int) string {
	if i >= len(ln.fields) {
		return ""
	}
	return ln.fields[i]
}

// reqInt parses a mandatory integer field. Failure aborts the line.
func (ln *lineReader) reqInt(i int) int64 {
	if i >= len(ln.fields) {
		ln.fail(i, fmt.Errorf("missing field (have %d)", len(ln.fields)))
		return 0
	}
	v, err := strconv.ParseInt(ln.fields[i], 10, 64)
	if err != nil {
		ln.fail(i, fmt.Errorf("not a number: %q", ln.fields[i]))
		return 0
	}
	return v
}

// optInt parses a best-effort integer field, zero on failure.
func (ln *lineReader) optInt(i int) int64 {
	return bestInt(ln.str(i))
}

// boolAt decodes the game's T/F flags; "1" is also accepted.
func (ln *lineReader) boolAt(i int) bool {
	switch ln.str(i) {
	case "T", "1":
		return true
	default:
		return false
	}
}

// pair splits a "current/max" field. Best effort: a lone value is treated as
// current with zero max, garbage yields zeroes.
func (ln *lineReader) pair(i int) (cur, max int64) {
	s := ln.str(i)
	slash := strings.IndexByte(s, '/')
	if slash < 0 {
		return bestInt(s), 0
	}
	return bestInt(s[:slash]), bestInt(s[slash+1:])
}

// unitState reads the ten-field unit-state block starting at offset.
func (ln *lineReader) unitState(off int) record.UnitState {
	var st record.UnitState
	st.UnitID = ln.optInt(off)
	st.Health, st.MaxHealth = ln.pair(off + 1)
	st.Magicka, st.MaxMagicka = ln.pair(off + 2)
	st.Stamina, st.MaxStamina = ln.pair(off + 3)
	st.Ultimate, st.MaxUltimate = ln.pair(off + 4)
	st.Werewolf, st.MaxWerewolf = ln.pair(off + 5)
	st.Shield = ln.optInt(off + 6)
	st.MapX = ln.float(off + 7)
	st.MapY = ln.float(off + 8)
	st.Heading = ln.float(off + 9)
	return st
}

// targetState reads the target block at offset, honoring the "*" sentinel
// which means the target state equals the source state by value.
func (ln *lineReader) targetState(off int, source record.UnitState) (record.UnitState, bool) {
	if ln.str(off) == selfTarget {
		return source, true
	}
	return ln.unitState(off), false
}

// float parses a best-effort 32-bit float field, zero on failure.
func (ln *lineReader) float(i int) float32 {
	v, err := strconv.ParseFloat(ln.str(i), 32)
	if err != nil {
		return 0
	}
	return float32(v)
}
