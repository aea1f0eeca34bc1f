package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/esolog/enclog-go/pkg/enclog"
)

// ValidFormats lists all valid output formats.
var ValidFormats = map[string]bool{
	"jsonl":  true,
	"pretty": true,
}

// OutputSummary writes a fight summary in the specified format.
func OutputSummary(format string, s enclog.FightSummary, out io.Writer) error {
	switch format {
	case "jsonl":
		return outputJSON(s, out)
	case "pretty":
		return outputPretty(s, out)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func outputJSON(s enclog.FightSummary, out io.Writer) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func outputPretty(s enclog.FightSummary, out io.Writer) error {
	dur := time.Duration(s.DurationMS) * time.Millisecond
	_, err := fmt.Fprintf(out, "#%d %s  %s  %d players, %d monsters, %d events\n",
		s.Index+1, s.Name, dur.Round(time.Second), s.Players, s.Monsters, s.Events)
	return err
}
