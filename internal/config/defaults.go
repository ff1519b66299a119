package config

import "time"

const (
	// DefaultConnectTimeout bounds the wait for the joined handshake.
	DefaultConnectTimeout = 15 * time.Second
	// DefaultSettleSetup is the grace period after clearing test areas.
	DefaultSettleSetup = 200 * time.Millisecond
	// DefaultSettleFreeze is the grace period after freezing the clock.
	DefaultSettleFreeze = 100 * time.Millisecond
	// DefaultSettleTick is the grace period after each tick step.
	DefaultSettleTick = 50 * time.Millisecond
	// DefaultPlaceStagger is the delay between placeEach placements.
	DefaultPlaceStagger = 10 * time.Millisecond
	// DefaultPollAttempts is the assertion retry budget.
	DefaultPollAttempts = 10
	// DefaultPollInterval is the wait between assertion retries.
	DefaultPollInterval = 50 * time.Millisecond
	// DefaultOutputJSONFile is the default results file name.
	DefaultOutputJSONFile = "run-results.json"
	// DefaultOutputJSONDir is the default results directory.
	DefaultOutputJSONDir = ".flintmc"
)

// DefaultPathsToIgnore are directories skipped when scanning for spec files.
var DefaultPathsToIgnore = []string{
	"node_modules",
	"target",
	"build",
	".flintmc",
}
