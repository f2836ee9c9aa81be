package style

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// AutoPriority asks the rule set to derive a rule's priority from the
// specificity of its filters.
const AutoPriority = -1

// Rule maps a (source, target) filter pair to line appearance.
type Rule struct {
	ID           uuid.UUID `json:"id"`
	From         Filter    `json:"from"`
	To           Filter    `json:"to"`
	Color        Color     `json:"color"`
	OutlineColor Color     `json:"outline_color"`
	UseQuadratic bool      `json:"use_quadratic"`
	Visible      bool      `json:"visible"`
	Priority     int       `json:"priority"`
}

// NewRule returns a visible rule with a fresh id and automatic priority.
func NewRule(from, to Filter, line, outline Color) *Rule {
	return &Rule{
		ID:           uuid.New(),
		From:         from,
		To:           to,
		Color:        line,
		OutlineColor: outline,
		Visible:      true,
		Priority:     AutoPriority,
	}
}

// UnmarshalJSON decodes a rule. Omitted fields default to a visible rule with
// automatic priority, and a missing id is generated.
func (r *Rule) UnmarshalJSON(data []byte) error {
	type plain Rule
	decoded := plain{Visible: true, Priority: AutoPriority}
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	if decoded.ID == uuid.Nil {
		decoded.ID = uuid.New()
	}
	*r = Rule(decoded)
	return nil
}

// EffectivePriority returns the explicit priority, or the summed filter
// specificity when the priority is AutoPriority.
func (r *Rule) EffectivePriority() int {
	if r.Priority != AutoPriority {
		return r.Priority
	}
	return r.From.Specificity() + r.To.Specificity()
}

// Matches reports whether the rule applies to a line from src to dst.
func (r *Rule) Matches(src, dst Attributes) bool {
	return r.From.Matches(src) && r.To.Matches(dst)
}

// Label renders the rule as "from -> to (priority)".
func (r *Rule) Label() string {
	return fmt.Sprintf("%s -> %s (%d)", r.From.Flags, r.To.Flags, r.EffectivePriority())
}

// RuleSet keeps rules ordered by effective priority, highest first. Rules
// with equal priority keep their insertion order.
type RuleSet struct {
	rules []*Rule
}

// NewRuleSet returns a sorted set holding the non-nil rules.
func NewRuleSet(rules ...*Rule) *RuleSet {
	s := &RuleSet{rules: make([]*Rule, 0, len(rules))}
	for _, r := range rules {
		if r != nil {
			s.rules = append(s.rules, r)
		}
	}
	s.Sort()
	return s
}

// Sort restores priority order. Call it after editing a rule in place.
func (s *RuleSet) Sort() {
	slices.SortStableFunc(s.rules, func(a, b *Rule) int {
		return cmp.Compare(b.EffectivePriority(), a.EffectivePriority())
	})
}

// Add inserts r and re-sorts.
func (s *RuleSet) Add(r *Rule) {
	if r == nil {
		return
	}
	s.rules = append(s.rules, r)
	s.Sort()
}

// Remove deletes the rule with the given id.
func (s *RuleSet) Remove(id uuid.UUID) bool {
	for i, r := range s.rules {
		if r.ID == id {
			s.rules = slices.Delete(s.rules, i, i+1)
			return true
		}
	}
	return false
}

// Find returns the rule with the given id.
func (s *RuleSet) Find(id uuid.UUID) (*Rule, bool) {
	for _, r := range s.rules {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// Len returns the number of rules.
func (s *RuleSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// Rules returns the rules in priority order. The slice is a copy; the rules
// are shared.
func (s *RuleSet) Rules() []*Rule {
	if s == nil {
		return nil
	}
	return slices.Clone(s.rules)
}

// Resolve returns the highest-priority rule matching the pair. A nil or empty
// set never matches.
func (s *RuleSet) Resolve(src, dst Attributes) (*Rule, bool) {
	if s == nil {
		return nil, false
	}
	for _, r := range s.rules {
		if r.Matches(src, dst) {
			return r, true
		}
	}
	return nil, false
}
