package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/esolog/enclog-go/pkg/enclog"
)

func TestOutputJSON(t *testing.T) {
	sum := enclog.FightSummary{
		Index:      0,
		Name:       "Lord Warden Dusk",
		StartMS:    4255,
		EndMS:      12803,
		DurationMS: 8548,
		Players:    4,
		Monsters:   1,
		Events:     120,
	}

	var buf bytes.Buffer
	if err := outputJSON(sum, &buf); err != nil {
		t.Fatalf("outputJSON() error = %v", err)
	}

	var decoded enclog.FightSummary
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("outputJSON() produced invalid JSON: %v", err)
	}
	if decoded.Name != "Lord Warden Dusk" {
		t.Errorf("decoded.Name = %q, want %q", decoded.Name, "Lord Warden Dusk")
	}
	if decoded.DurationMS != 8548 {
		t.Errorf("decoded.DurationMS = %d, want 8548", decoded.DurationMS)
	}
}

func TestOutputPretty(t *testing.T) {
	sum := enclog.FightSummary{
		Index:      2,
		Name:       "Watcher",
		DurationMS: 61500,
		Players:    12,
		Monsters:   3,
		Events:     4567,
	}

	var buf bytes.Buffer
	if err := outputPretty(sum, &buf); err != nil {
		t.Fatalf("outputPretty() error = %v", err)
	}

	got := buf.String()
	for _, want := range []string{"#3", "Watcher", "1m2s", "12 players", "3 monsters", "4567 events"} {
		if !strings.Contains(got, want) {
			t.Errorf("outputPretty() = %q, want to contain %q", got, want)
		}
	}
}

func TestOutputSummary(t *testing.T) {
	sum := enclog.FightSummary{Name: "Boss"}

	tests := []struct {
		format  string
		wantErr bool
	}{
		{"jsonl", false},
		{"pretty", false},
		{"unknown", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			err := OutputSummary(tt.format, sum, &buf)
			if (err != nil) != tt.wantErr {
				t.Errorf("OutputSummary(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if !tt.wantErr && buf.Len() == 0 {
				t.Errorf("OutputSummary(%q) produced no output", tt.format)
			}
		})
	}
}

func TestValidFormats(t *testing.T) {
	for _, f := range []string{"jsonl", "pretty"} {
		if !ValidFormats[f] {
			t.Errorf("ValidFormats[%q] = false, want true", f)
		}
	}
	if ValidFormats["xml"] {
		t.Error(`ValidFormats["xml"] = true, want false`)
	}
}
