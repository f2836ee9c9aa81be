// Package presets shares rule lists. A preset is either a bare JSON array of
// rules, the form copied to and pasted from the clipboard, or a named object
// carrying rules and an optional fallback.
package presets

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"chosenoffset.com/targetlines/internal/config"
	"chosenoffset.com/targetlines/internal/logging"
	"chosenoffset.com/targetlines/internal/style"
)

// ErrMalformed is wrapped when preset data cannot be decoded.
var ErrMalformed = errors.New("malformed preset")

// Preset is a named rule list.
type Preset struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Fallback    *style.Rule   `json:"fallback,omitempty"`
	Rules       []*style.Rule `json:"rules"`
}

// Entry describes a preset file found by ScanDirectory.
type Entry struct {
	Name  string // Preset name, or the file name without extension
	Path  string
	Rules int
}

// Export renders rules as the JSON array accepted by Import.
func Export(rules []*style.Rule) (string, error) {
	if rules == nil {
		rules = []*style.Rule{}
	}
	data, err := json.MarshalIndent(rules, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to export rules: %w", err)
	}
	return string(data), nil
}

// Import decodes pasted preset text, either a rule array or a preset object.
// Nil rules are dropped and duplicate ids are replaced so the result can be
// added to one rule set.
func Import(text string) (*Preset, error) {
	data := bytes.TrimSpace([]byte(text))
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformed)
	}

	var p Preset
	if data[0] == '[' {
		if err := json.Unmarshal(data, &p.Rules); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	} else {
		if err := json.Unmarshal(data, &p); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		if p.Rules == nil {
			return nil, fmt.Errorf("%w: no rules", ErrMalformed)
		}
	}

	p.Rules = slices.DeleteFunc(p.Rules, func(r *style.Rule) bool { return r == nil })
	seen := make(map[uuid.UUID]bool, len(p.Rules))
	for _, r := range p.Rules {
		if seen[r.ID] {
			r.ID = uuid.New()
		}
		seen[r.ID] = true
	}
	return &p, nil
}

// Load reads a preset file. A file holding a bare rule array is named after
// the file.
func Load(path string) (*Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset: %w", err)
	}
	p, err := Import(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to load preset %s: %w", path, err)
	}
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p, nil
}

// Save writes p as an indented preset object.
func Save(path string, p *Preset) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode preset: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save preset: %w", err)
	}
	return nil
}

// ScanDirectory lists the preset files in dir, sorted by name. Unreadable or
// malformed files are skipped.
func ScanDirectory(dir string) ([]Entry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read preset directory: %w", err)
	}

	var presets []Entry
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(name), ".json") {
			continue
		}

		path := filepath.Join(dir, name)
		p, err := Load(path)
		if err != nil {
			logging.Logger().Warn("skipping preset", "path", path, "err", err)
			continue
		}
		presets = append(presets, Entry{Name: p.Name, Path: path, Rules: len(p.Rules)})
	}

	slices.SortFunc(presets, func(a, b Entry) int { return strings.Compare(a.Name, b.Name) })
	logging.Logger().Info("presets scanned", "dir", dir, "count", len(presets))
	return presets, nil
}

// Apply replaces cfg's rules with the preset's, overwriting the existing
// list. The fallback is replaced only when the preset carries one.
func Apply(cfg *config.Config, p *Preset) {
	cfg.Rules = slices.Clone(p.Rules)
	if p.Fallback != nil {
		cfg.Fallback = p.Fallback
	}
	cfg.Normalize()
}
