// Package script parses dialogue scripts into ordered line sequences.
//
// A script is a JSON array of objects with string fields "speaker" and
// "line". The whole script is materialized before synthesis starts: total
// entry count drives progress reporting and pause placement, so lazy loading
// would not help. Speaker identities are not checked here; resolution against
// the voice registry happens at render time.
package script

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"podforge/internal/services"
)

// Line is one dialogue entry. Index is the 0-based position in the source
// script and defines playback order.
type Line struct {
	Index   int
	Speaker string
	Text    string
}

type rawEntry struct {
	Speaker string `json:"speaker"`
	Text    string `json:"line"`
}

// Load reads and validates the script at path.
func Load(path string) ([]Line, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrValidation, "script", "load", "path required", nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "script", "load", fmt.Sprintf("script file %s does not exist", path), nil)
		}
		return nil, services.Wrap(services.ErrValidation, "script", "load", "read script", err)
	}

	var entries []rawEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, services.Wrap(services.ErrValidation, "script", "parse", fmt.Sprintf("invalid JSON in %s", path), err)
	}
	if len(entries) == 0 {
		return nil, services.Wrap(services.ErrValidation, "script", "parse", "script contains no entries", nil)
	}

	lines := make([]Line, 0, len(entries))
	for i, entry := range entries {
		speaker := strings.TrimSpace(entry.Speaker)
		text := strings.TrimSpace(entry.Text)
		if speaker == "" {
			return nil, services.Wrap(services.ErrValidation, "script", "parse", fmt.Sprintf("entry %d is missing the speaker field", i), nil)
		}
		if text == "" {
			return nil, services.Wrap(services.ErrValidation, "script", "parse", fmt.Sprintf("entry %d is missing the line field", i), nil)
		}
		lines = append(lines, Line{Index: i, Speaker: speaker, Text: text})
	}

	return lines, nil
}

// WordCount returns the number of whitespace-separated words in the line text.
func (l Line) WordCount() int {
	return len(strings.Fields(l.Text))
}
