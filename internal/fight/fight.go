// Package fight groups combat records between BEGIN_COMBAT and END_COMBAT
// markers into discrete encounters.
package fight

import (
	"io"
	"log/slog"

	"github.com/esolog/enclog-go/internal/resolve"
	"github.com/esolog/enclog-go/pkg/enclog/record"
)

// UnknownName is the fight name when no target could be identified.
const UnknownName = "Unknown"

// Fight is one continuous combat encounter. EndTime stays zero while the
// fight is active; exactly one fight can be active at a time.
type Fight struct {
	Index     int
	Name      string
	StartTime int64
	EndTime   int64

	// Players is a snapshot of the roster at BEGIN_COMBAT. Mutations to the
	// global roster after that point do not reach a closed fight.
	Players []resolve.Unit

	// Monsters are the monster units that appeared in any event during the
	// fight, append-only, first seen wins, keyed by raw session unit id.
	Monsters  []resolve.Unit
	monsterID map[int64]int // raw session id -> index into Monsters

	Events  []record.CombatEvent
	Casts   []record.BeginCast
	Effects []record.EffectChanged
}

// Active reports whether the fight has not been closed yet.
func (f *Fight) Active() bool { return f.EndTime == 0 }

// DurationMS returns the fight length in milliseconds, zero while active.
func (f *Fight) DurationMS() int64 {
	if f.Active() || f.EndTime < f.StartTime {
		return 0
	}
	return f.EndTime - f.StartTime
}

// noteMonster adds a monster to the fight roster on first sight.
func (f *Fight) noteMonster(u *resolve.Unit, rawID int64) {
	if u == nil || u.Kind != record.UnitMonster {
		return
	}
	if _, seen := f.monsterID[rawID]; seen {
		return
	}
	f.monsterID[rawID] = len(f.Monsters)
	f.Monsters = append(f.Monsters, u.Clone())
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Tracker owns the fight list for one input file.
type Tracker struct {
	log    *slog.Logger
	fights []*Fight
	lookup func(unitID int64) (*resolve.Unit, bool)
}

// NewTracker returns an empty tracker. lookup maps a raw session unit id to
// its canonical unit and is used for monster attribution and fight naming.
func NewTracker(logger *slog.Logger, lookup func(unitID int64) (*resolve.Unit, bool)) *Tracker {
	if logger == nil {
		logger = discardLogger
	}
	if lookup == nil {
		lookup = func(int64) (*resolve.Unit, bool) { return nil, false }
	}
	return &Tracker{log: logger, lookup: lookup}
}

// Fights returns all fights pushed so far, oldest first.
func (t *Tracker) Fights() []*Fight { return t.fights }

// Active returns the currently open fight: the last pushed fight whose end
// time is still the zero sentinel. Nil when no fight is open.
func (t *Tracker) Active() *Fight {
	if len(t.fights) == 0 {
		return nil
	}
	if f := t.fights[len(t.fights)-1]; f.Active() {
		return f
	}
	return nil
}

// Begin opens a new fight with a snapshot clone of the current player roster.
func (t *Tracker) Begin(time int64, roster []*resolve.Unit) *Fight {
	f := &Fight{
		Index:     len(t.fights),
		StartTime: time,
		monsterID: make(map[int64]int),
	}
	for _, u := range roster {
		if u.Kind == record.UnitPlayer {
			f.Players = append(f.Players, u.Clone())
		}
	}
	t.fights = append(t.fights, f)
	return f
}

// End closes the active fight, computing its display name. An END_COMBAT
// with no active fight is a no-op, not an error.
func (t *Tracker) End(time int64) *Fight {
	f := t.Active()
	if f == nil {
		t.log.Debug("END_COMBAT without active fight", "time", time)
		return nil
	}
	f.Name = t.fightName(f)
	f.EndTime = time
	return f
}

// AddCombatEvent appends a combat event to the active fight, if any, and
// attributes monster participants.
func (t *Tracker) AddCombatEvent(ev record.CombatEvent) {
	f := t.Active()
	if f == nil {
		return
	}
	f.Events = append(f.Events, ev)
	t.noteParticipants(f, ev.Source, ev.Target)
}

// AddCast appends a cast to the active fight, if any.
func (t *Tracker) AddCast(ev record.BeginCast) {
	f := t.Active()
	if f == nil {
		return
	}
	f.Casts = append(f.Casts, ev)
	t.noteParticipants(f, ev.Source, ev.Target)
}

// AddEffect appends an effect change to the active fight, if any.
func (t *Tracker) AddEffect(ev record.EffectChanged) {
	f := t.Active()
	if f == nil {
		return
	}
	f.Effects = append(f.Effects, ev)
	t.noteParticipants(f, ev.Source, ev.Target)
}

func (t *Tracker) noteParticipants(f *Fight, states ...record.UnitState) {
	for _, st := range states {
		if st.UnitID == 0 {
			continue
		}
		if u, ok := t.lookup(st.UnitID); ok {
			f.noteMonster(u, st.UnitID)
		}
	}
}

// fightName derives the display name: a boss among the event targets wins,
// else the target with the highest observed max health, else "Unknown".
//
// Targets are resolved through the fight's own cloned roster first, so a
// unit despawning between its last event and END_COMBAT keeps its name.
func (t *Tracker) fightName(f *Fight) string {
	unitFor := func(id int64) (*resolve.Unit, bool) {
		if i, ok := f.monsterID[id]; ok {
			return &f.Monsters[i], true
		}
		return t.lookup(id)
	}

	var (
		bossName    string
		topName     string
		topHealth   int64
		seenTargets = make(map[int64]struct{})
	)
	for _, ev := range f.Events {
		id := ev.Target.UnitID
		if id == 0 {
			continue
		}
		if _, dup := seenTargets[id]; !dup {
			seenTargets[id] = struct{}{}
			if u, ok := unitFor(id); ok && u.IsBoss && bossName == "" {
				bossName = u.Name
			}
		}
		if ev.Target.MaxHealth > topHealth {
			topHealth = ev.Target.MaxHealth
			if u, ok := unitFor(id); ok {
				topName = u.Name
			}
		}
	}
	if bossName != "" {
		return bossName
	}
	if topName != "" {
		return topName
	}
	return UnknownName
}
