// Package style decides how a target line looks: which rule applies to a
// (source, target) pair and what colours that rule carries.
package style

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"strings"
)

// Flags is a bitmask of entity attributes used by rule filters.
type Flags uint32

// Attribute flags. The order is part of the preset format.
const (
	FlagSelf Flags = 1 << iota
	FlagPlayer
	FlagPartyMember
	FlagAllianceMember
	FlagEnemy
	FlagNPC
	FlagTank
	FlagHealer
	FlagDPS
	FlagCrafter
	FlagGatherer
	FlagPet
)

// FlagCount is the number of defined attribute flags.
const FlagCount = 12

var flagNames = [FlagCount]string{
	"self",
	"player",
	"party_member",
	"alliance_member",
	"enemy",
	"npc",
	"tank",
	"healer",
	"dps",
	"crafter",
	"gatherer",
	"pet",
}

// ParseFlag returns the flag with the given preset name.
func ParseFlag(name string) (Flags, error) {
	for i, n := range flagNames {
		if strings.EqualFold(n, name) {
			return 1 << i, nil
		}
	}
	return 0, fmt.Errorf("unknown flag %q", name)
}

// Names returns the preset names of the set flags in bit order.
func (f Flags) Names() []string {
	names := make([]string, 0, bits.OnesCount32(uint32(f)))
	for i, n := range flagNames {
		if f&(1<<i) != 0 {
			names = append(names, n)
		}
	}
	return names
}

// String joins the flag names with '|', or "any" for an empty mask.
func (f Flags) String() string {
	if f == 0 {
		return "any"
	}
	return strings.Join(f.Names(), "|")
}

// MarshalJSON encodes the mask as a list of flag names.
func (f Flags) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Names())
}

// UnmarshalJSON accepts a list of flag names or a raw integer mask.
func (f *Flags) UnmarshalJSON(data []byte) error {
	var raw uint32
	if err := json.Unmarshal(data, &raw); err == nil {
		*f = Flags(raw)
		return nil
	}

	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return fmt.Errorf("flags must be a list of names or an integer: %w", err)
	}
	var out Flags
	for _, n := range names {
		flag, err := ParseFlag(n)
		if err != nil {
			return err
		}
		out |= flag
	}
	*f = out
	return nil
}

// Job identifies a player class. JobNone marks entities without one.
type Job int

// JobNone is the job of entities that have no class.
const JobNone Job = -1

// MaxJobs is the number of jobs a JobMask can address.
const MaxJobs = 64

// JobMask is a set of jobs, bit i standing for Job(i).
type JobMask uint64

// Bit returns the mask bit for j, or 0 when j is out of range.
func (j Job) Bit() JobMask {
	if j < 0 || j >= MaxJobs {
		return 0
	}
	return 1 << uint(j)
}

// JobsOf builds a mask from a list of jobs.
func JobsOf(jobs ...Job) JobMask {
	var m JobMask
	for _, j := range jobs {
		m |= j.Bit()
	}
	return m
}

// Attributes describe one end of a line for rule matching.
type Attributes struct {
	Flags Flags
	Job   Job
}

// Filter restricts one end of a rule.
type Filter struct {
	Flags Flags   `json:"flags"`
	Jobs  JobMask `json:"jobs,omitempty"`
}

// Matches reports whether a satisfies the filter. A zero flag mask matches
// everything; a non-empty job mask additionally requires a's job to be
// listed.
func (f Filter) Matches(a Attributes) bool {
	if f.Flags != 0 && f.Flags&a.Flags == 0 {
		return false
	}
	if f.Jobs != 0 && f.Jobs&a.Job.Bit() == 0 {
		return false
	}
	return true
}

// Specificity ranks how narrow the filter is. An empty mask scores 0, a
// single flag scores FlagCount and each extra flag lowers the score by one.
// A job restriction counts like a single flag.
func (f Filter) Specificity() int {
	score := 0
	if f.Flags != 0 {
		score += FlagCount + 1 - bits.OnesCount32(uint32(f.Flags))
	}
	if f.Jobs != 0 {
		score += FlagCount
	}
	return score
}
