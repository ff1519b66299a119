package cli

import "flintmc/internal/config"

// Flags holds command-line flags.
type Flags struct {
	Server          string
	Recursive       bool
	NameFilter      string
	BreakAfterSetup bool
	BreakMode       string
	OpenFaills      bool
	Timeline        bool
}

// ToConfigFlags converts CLI flags to config flags.
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Server:          f.Server,
		Recursive:       f.Recursive,
		NameFilter:      f.NameFilter,
		BreakAfterSetup: f.BreakAfterSetup,
		BreakMode:       f.BreakMode,
		OpenFaills:      f.OpenFaills,
		Timeline:        f.Timeline,
	}
}
