package domain

// RunResult is one test's tally at the end of a run.
type RunResult struct {
	TestName string `json:"test_name"`
	Passed   int    `json:"passed"`
	Failed   int    `json:"failed"`
	Success  bool   `json:"success"`
}

// AssertionFailure records one assertion mismatch for the summary, the
// failure viewer and the run history.
type AssertionFailure struct {
	TestName string `json:"test_name"`
	Tick     int    `json:"tick"`
	Pos      Vec3   `json:"pos"`
	Expected string `json:"expected"`
	Observed string `json:"observed"`
	Message  string `json:"message"`
	Resolved bool   `json:"resolved,omitempty"` // marked in the faills viewer
}

// RunMeta is metadata about one run.
type RunMeta struct {
	TotalTests       int     `json:"total_tests"`
	PassedTests      int     `json:"passed_tests"`
	FailedTests      int     `json:"failed_tests"`
	FailedAssertions int     `json:"failed_assertions"`
	Duration         string  `json:"duration"`
	DurationSeconds  float64 `json:"duration_seconds"`
	Server           string  `json:"server"`
	Timestamp        string  `json:"timestamp"`
}

// RunOutput is the complete persisted result of one run.
type RunOutput struct {
	Meta    RunMeta            `json:"meta"`
	Results []RunResult        `json:"results"`
	Details []AssertionFailure `json:"details"`
}
