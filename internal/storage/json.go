package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"flintmc/internal/domain"
)

// Save writes run results and failures to the configured JSON output file.
func (s *JSONStorage) Save(results []domain.RunResult, failures []domain.AssertionFailure, duration time.Duration, server string) error {
	return s.SaveOutput(BuildOutput(results, failures, duration, server))
}

// Load reads the last run results from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.RunOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.RunOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file.
func (s *JSONStorage) SaveOutput(output *domain.RunOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}

// BuildOutput assembles the persisted form of one run.
func BuildOutput(results []domain.RunResult, failures []domain.AssertionFailure, duration time.Duration, server string) *domain.RunOutput {
	passed := 0
	failed := 0
	for _, r := range results {
		if r.Success {
			passed++
		} else {
			failed++
		}
	}
	return &domain.RunOutput{
		Meta: domain.RunMeta{
			TotalTests:       len(results),
			PassedTests:      passed,
			FailedTests:      failed,
			FailedAssertions: len(failures),
			Duration:         duration.String(),
			DurationSeconds:  duration.Seconds(),
			Server:           server,
			Timestamp:        time.Now().Format(time.RFC3339),
		},
		Results: results,
		Details: failures,
	}
}
