package enclog

import "github.com/esolog/enclog-go/internal/fight"

// FightSummary is the compact view of one closed fight, for CLI output and
// the live feed.
type FightSummary struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	StartMS    int64  `json:"start_ms"`
	EndMS      int64  `json:"end_ms"`
	DurationMS int64  `json:"duration_ms"`
	Players    int    `json:"players"`
	Monsters   int    `json:"monsters"`
	Events     int    `json:"events"`
	Casts      int    `json:"casts"`
	Effects    int    `json:"effects"`
}

// Summaries returns one summary per recorded fight, oldest first. An open
// fight reports a zero end time and duration.
func (s *Session) Summaries() []FightSummary {
	fights := s.fights.Fights()
	out := make([]FightSummary, 0, len(fights))
	for _, f := range fights {
		out = append(out, summarize(f))
	}
	return out
}

func summarize(f *fight.Fight) FightSummary {
	return FightSummary{
		Index:      f.Index,
		Name:       f.Name,
		StartMS:    f.StartTime,
		EndMS:      f.EndTime,
		DurationMS: f.DurationMS(),
		Players:    len(f.Players),
		Monsters:   len(f.Monsters),
		Events:     len(f.Events),
		Casts:      len(f.Casts),
		Effects:    len(f.Effects),
	}
}
