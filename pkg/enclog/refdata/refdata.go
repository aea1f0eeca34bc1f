// Package refdata provides the static reference lookups consulted by the
// decoder and re-encoder: ability, zone, and gear-set display names keyed by
// numeric id. Tables are read-only; the core never mutates them.
//
// A bundled subset ships embedded in the binary. Users can layer additional
// names over it from a YAML override file, in the same spirit as custom
// pattern files: explicit versioning, size caps, and regular-file checks.
package refdata

import (
	_ "embed"
	"strconv"
	"strings"
)

//go:embed data/names.csv
var embedded string

// Table holds id-to-name lookups for one category set.
type Table struct {
	abilities map[int64]string
	zones     map[int64]string
	sets      map[int64]string
}

// Default returns the bundled table.
func Default() *Table {
	t := empty()
	for _, line := range strings.Split(embedded, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, ";", 3)
		if len(parts) != 3 {
			continue
		}
		id, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			continue
		}
		switch parts[0] {
		case "ability":
			t.abilities[id] = parts[2]
		case "zone":
			t.zones[id] = parts[2]
		case "set":
			t.sets[id] = parts[2]
		}
	}
	return t
}

func empty() *Table {
	return &Table{
		abilities: make(map[int64]string),
		zones:     make(map[int64]string),
		sets:      make(map[int64]string),
	}
}

// AbilityName returns the display name for an ability id.
func (t *Table) AbilityName(id int64) (string, bool) {
	s, ok := t.abilities[id]
	return s, ok
}

// ZoneName returns the display name for a zone id.
func (t *Table) ZoneName(id int64) (string, bool) {
	s, ok := t.zones[id]
	return s, ok
}

// SetName returns the display name for a gear set id.
func (t *Table) SetName(id int64) (string, bool) {
	s, ok := t.sets[id]
	return s, ok
}

// merge layers src over t in place.
func (t *Table) merge(abilities, zones, sets map[int64]string) {
	for id, name := range abilities {
		t.abilities[id] = name
	}
	for id, name := range zones {
		t.zones[id] = name
	}
	for id, name := range sets {
		t.sets[id] = name
	}
}
