package refdata

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/esolog/enclog-go/internal/safefile"
)

const (
	// MaxOverrideFileSize caps an override file at 4MB; the full game data
	// tables fit comfortably below that.
	MaxOverrideFileSize = 4 * 1024 * 1024

	// SupportedVersion is the override file format version.
	SupportedVersion = 1
)

// overrideFile is the YAML override document.
//
// Example:
//
//	version: 1
//	abilities:
//	  12345: "Blazing Shield"
//	zones:
//	  1051: "Cloudrest"
//	sets:
//	  369: "False God's Devotion"
type overrideFile struct {
	Version   int              `yaml:"version"`
	Abilities map[int64]string `yaml:"abilities"`
	Zones     map[int64]string `yaml:"zones"`
	Sets      map[int64]string `yaml:"sets"`
}

// Load returns the bundled table with the named YAML override layered on top.
func Load(path string) (*Table, error) {
	data, err := safefile.ReadLimited(path, MaxOverrideFileSize)
	if err != nil {
		return nil, fmt.Errorf("refdata override: %w", err)
	}

	var of overrideFile
	if err := yaml.Unmarshal(data, &of); err != nil {
		return nil, fmt.Errorf("refdata override: invalid YAML: %w", err)
	}
	if of.Version != SupportedVersion {
		return nil, fmt.Errorf("refdata override: unsupported version %d (want %d)",
			of.Version, SupportedVersion)
	}
	if len(of.Abilities) == 0 && len(of.Zones) == 0 && len(of.Sets) == 0 {
		return nil, errors.New("refdata override: no entries")
	}

	t := Default()
	t.merge(of.Abilities, of.Zones, of.Sets)
	return t, nil
}
