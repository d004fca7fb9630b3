package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Cucumber JSON result format, as written by the cucumber JSON formatter.
// Only the fields reportctl reads are modelled; the raw document is kept
// separately when it has to be preserved.

// StepStatus is the result status of a single step
type StepStatus string

const (
	StepStatusPassed    StepStatus = "passed"
	StepStatusFailed    StepStatus = "failed"
	StepStatusSkipped   StepStatus = "skipped"
	StepStatusPending   StepStatus = "pending"
	StepStatusUndefined StepStatus = "undefined"
)

// Feature is one .feature file
type Feature struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	URI      string    `json:"uri"`
	Keyword  string    `json:"keyword"`
	Elements []Element `json:"elements"`
}

// Element is a scenario (or background) inside a feature
type Element struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Keyword string `json:"keyword"`
	Steps   []Step `json:"steps"`
}

// Step is a single Given/When/Then step
type Step struct {
	Name    string `json:"name"`
	Keyword string `json:"keyword"`
	Result  Result `json:"result"`
}

// Result holds a step outcome
type Result struct {
	Status StepStatus `json:"status"`
	// Duration in nanoseconds
	Duration     Nanoseconds `json:"duration,omitempty"`
	ErrorMessage string      `json:"error_message,omitempty"`
}

// Nanoseconds is a step duration. Formatters disagree on integer vs
// fractional values, so both are accepted and truncated.
type Nanoseconds int64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Nanoseconds) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("invalid duration %s: %w", data, err)
	}
	if i, err := num.Int64(); err == nil {
		*n = Nanoseconds(i)
		return nil
	}
	f, err := num.Float64()
	if err != nil {
		return fmt.Errorf("invalid duration %s: %w", data, err)
	}
	*n = Nanoseconds(f)
	return nil
}

// Stats holds aggregated counts for a set of features
type Stats struct {
	Features  int
	Scenarios int
	Steps     int
	Passed    int
	Failed    int
	Skipped   int
	// Sum of step durations in nanoseconds
	Duration int64
}

// Add accumulates other into s.
func (s *Stats) Add(other Stats) {
	s.Features += other.Features
	s.Scenarios += other.Scenarios
	s.Steps += other.Steps
	s.Passed += other.Passed
	s.Failed += other.Failed
	s.Skipped += other.Skipped
	s.Duration += other.Duration
}
