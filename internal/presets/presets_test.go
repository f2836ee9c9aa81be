package presets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"chosenoffset.com/targetlines/internal/config"
	"chosenoffset.com/targetlines/internal/style"
)

func TestExportImportKeepsRules(t *testing.T) {
	rules := style.DefaultRules()
	text, err := Export(rules)
	if err != nil {
		t.Fatalf("Expected export to succeed, got %v", err)
	}

	p, err := Import(text)
	if err != nil {
		t.Fatalf("Expected import to succeed, got %v", err)
	}
	if len(p.Rules) != len(rules) {
		t.Fatalf("Expected %d rules, got %d", len(rules), len(p.Rules))
	}
	for i := range rules {
		if p.Rules[i].ID != rules[i].ID {
			t.Errorf("Expected rule %d to keep its id", i)
		}
		if p.Rules[i].Color != rules[i].Color || p.Rules[i].From != rules[i].From {
			t.Errorf("Expected rule %d to keep its look, got %+v", i, p.Rules[i])
		}
	}
}

func TestExportNilIsEmptyArray(t *testing.T) {
	text, err := Export(nil)
	if err != nil {
		t.Fatalf("Expected export to succeed, got %v", err)
	}
	if text != "[]" {
		t.Errorf("Expected [], got %q", text)
	}
}

func TestImportPresetObject(t *testing.T) {
	text := `{
		"name": "raid",
		"fallback": {"color": "#ffffff80", "outline_color": "black"},
		"rules": [
			{"from": {"flags": ["enemy"]}, "to": {"flags": ["tank"]}, "color": "orange", "outline_color": "#000000"},
			null
		]
	}`
	p, err := Import(text)
	if err != nil {
		t.Fatalf("Expected import to succeed, got %v", err)
	}
	if p.Name != "raid" {
		t.Errorf("Expected name raid, got %q", p.Name)
	}
	if len(p.Rules) != 1 {
		t.Fatalf("Expected the null rule dropped, got %d rules", len(p.Rules))
	}
	if !p.Rules[0].Visible || p.Rules[0].Priority != style.AutoPriority {
		t.Errorf("Expected a visible auto priority rule, got %+v", p.Rules[0])
	}
	if p.Fallback == nil || p.Fallback.Color.A != 0x80 {
		t.Errorf("Expected the fallback to decode, got %+v", p.Fallback)
	}
}

func TestImportReplacesDuplicateIDs(t *testing.T) {
	r := style.DefaultRules()[0]
	text, err := Export([]*style.Rule{r, r})
	if err != nil {
		t.Fatalf("Expected export to succeed, got %v", err)
	}
	p, err := Import(text)
	if err != nil {
		t.Fatalf("Expected import to succeed, got %v", err)
	}
	if p.Rules[0].ID == p.Rules[1].ID {
		t.Error("Expected the duplicate id to be replaced")
	}
}

func TestImportMalformed(t *testing.T) {
	for _, text := range []string{"", "   ", "not json", `{"name": "x"}`, `[{"color": 5}]`} {
		if _, err := Import(text); !errors.Is(err, ErrMalformed) {
			t.Errorf("Expected ErrMalformed for %q, got %v", text, err)
		}
	}
}

func TestScanDirectory(t *testing.T) {
	dir := t.TempDir()

	text, err := Export(style.DefaultRules())
	if err != nil {
		t.Fatalf("Expected export to succeed, got %v", err)
	}
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	write("zeta.json", text)
	write("broken.json", "{")
	write("notes.txt", "ignored")
	write(".hidden.json", text)
	if err := Save(filepath.Join(dir, "alpha.json"), &Preset{Name: "alpha", Rules: style.DefaultRules()[:2]}); err != nil {
		t.Fatalf("Expected save to succeed, got %v", err)
	}

	entries, err := ScanDirectory(dir)
	if err != nil {
		t.Fatalf("Expected scan to succeed, got %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 presets, got %d: %+v", len(entries), entries)
	}
	if entries[0].Name != "alpha" || entries[0].Rules != 2 {
		t.Errorf("Expected alpha with 2 rules first, got %+v", entries[0])
	}
	if entries[1].Name != "zeta" || entries[1].Rules != len(style.DefaultRules()) {
		t.Errorf("Expected zeta named after its file, got %+v", entries[1])
	}

	if _, err := ScanDirectory(filepath.Join(dir, "missing")); err == nil {
		t.Error("Expected an error for a missing directory")
	}
}

func TestApply(t *testing.T) {
	cfg := config.DefaultConfig()
	fallback := cfg.Fallback

	Apply(cfg, &Preset{Rules: style.DefaultRules()[:1]})
	if len(cfg.Rules) != 1 {
		t.Errorf("Expected 1 rule, got %d", len(cfg.Rules))
	}
	if cfg.Fallback != fallback {
		t.Error("Expected the fallback to stay when the preset has none")
	}

	replacement := style.DefaultFallback()
	Apply(cfg, &Preset{Fallback: replacement})
	if len(cfg.Rules) != 0 {
		t.Errorf("Expected an empty rule list, got %d", len(cfg.Rules))
	}
	if cfg.Fallback != replacement {
		t.Error("Expected the preset fallback to replace the old one")
	}
}
