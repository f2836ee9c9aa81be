package style

// DefaultFallback is the rule used when nothing else matches.
func DefaultFallback() *Rule {
	r := NewRule(Filter{}, Filter{}, RGBA(255, 255, 255, 192), RGBA(0, 0, 0, 128))
	r.Priority = 0
	return r
}

// DefaultRules is the rule list installed by a fresh configuration.
func DefaultRules() []*Rule {
	return []*Rule{
		NewRule(Filter{Flags: FlagEnemy}, Filter{Flags: FlagSelf},
			RGBA(255, 64, 64, 255), RGBA(96, 0, 0, 192)),
		NewRule(Filter{Flags: FlagEnemy}, Filter{Flags: FlagTank},
			RGBA(255, 170, 60, 255), RGBA(90, 50, 0, 192)),
		NewRule(Filter{Flags: FlagEnemy}, Filter{Flags: FlagPlayer},
			RGBA(255, 120, 40, 255), RGBA(80, 30, 0, 192)),
		NewRule(Filter{Flags: FlagSelf}, Filter{},
			RGBA(90, 200, 255, 255), RGBA(0, 40, 80, 192)),
		NewRule(Filter{Flags: FlagPartyMember | FlagAllianceMember}, Filter{Flags: FlagEnemy},
			RGBA(120, 255, 140, 255), RGBA(0, 70, 20, 192)),
		NewRule(Filter{Flags: FlagPlayer}, Filter{Flags: FlagPlayer},
			RGBA(220, 160, 255, 255), RGBA(60, 20, 80, 192)),
	}
}
