package cucumber

// parser.go reads cucumber JSON result files and aggregates step results.

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/perfgo/reportctl/model"
)

// ErrNotArray is returned when the document is valid JSON but not a list of features.
var ErrNotArray = errors.New("cucumber report is not a JSON array of features")

// ErrTrailingData is returned when anything follows the feature list.
var ErrTrailingData = errors.New("failed to decode report: trailing data after feature list")

// Report is a parsed result file together with its raw bytes.
type Report struct {
	Features []model.Feature
	Raw      json.RawMessage
}

// Parser decodes cucumber JSON reports.
// Fields outside the modelled subset (tags, hooks, embeddings) are ignored.
type Parser struct{}

// New creates a parser.
func New() *Parser {
	return &Parser{}
}

// Parse reads a whole report from r.
func (p *Parser) Parse(r io.Reader) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty report: %w", ErrNotArray)
	}
	if trimmed[0] != '[' {
		return nil, ErrNotArray
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))

	var features []model.Feature
	if err := dec.Decode(&features); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrTrailingData
	}

	return &Report{
		Features: features,
		Raw:      json.RawMessage(trimmed),
	}, nil
}

// ParseFile parses the report at path.
func (p *Parser) ParseFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return p.Parse(f)
}

// Count walks feature -> scenario -> step and tallies step statuses.
// Each element counts as one scenario; statuses other than passed, failed
// and skipped are counted as steps only.
func Count(features []model.Feature) model.Stats {
	var stats model.Stats
	for _, feature := range features {
		stats.Add(CountFeature(feature))
	}
	return stats
}

// CountFeature tallies a single feature.
func CountFeature(feature model.Feature) model.Stats {
	stats := model.Stats{Features: 1}
	for _, element := range feature.Elements {
		stats.Scenarios++
		for _, step := range element.Steps {
			stats.Steps++
			stats.Duration += int64(step.Result.Duration)
			switch step.Result.Status {
			case model.StepStatusPassed:
				stats.Passed++
			case model.StepStatusFailed:
				stats.Failed++
			case model.StepStatusSkipped:
				stats.Skipped++
			}
		}
	}
	return stats
}
