package report

// combine.go aggregates the cucumber results of several runs into one document.

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/perfgo/reportctl/cucumber"
	"github.com/perfgo/reportctl/model"
)

// CombineRecentRuns combines the newest count runs. A count below one uses
// the configured default.
func (m *Manager) CombineRecentRuns(count int) (*model.CombinedReport, error) {
	if count < 1 {
		count = m.cfg.CombineCount
	}

	runs, err := m.ListRuns()
	if err != nil {
		return nil, err
	}
	if count < len(runs) {
		runs = runs[:count]
	}

	names := make([]string, 0, len(runs))
	for _, run := range runs {
		names = append(names, run.Name)
	}

	return m.CombineRuns(names)
}

// CombineRuns reads the result file of each named run, aggregates step
// counts and writes the combined report. Runs without a result file are
// skipped; unreadable or malformed result files are logged and contribute
// nothing.
func (m *Manager) CombineRuns(names []string) (*model.CombinedReport, error) {
	for _, name := range names {
		if err := checkPathElement(name); err != nil {
			return nil, err
		}
	}

	combined := &model.CombinedReport{
		Summary: model.CombinedSummary{TotalRuns: len(names)},
		Runs:    []model.CombinedRun{},
	}

	var total model.Stats
	included := 0
	for _, name := range names {
		source := m.readRunResults(name)
		combined.Sources = append(combined.Sources, source.CombineSource)
		if source.State != model.CombineSourceIncluded {
			continue
		}

		included++
		total.Add(source.Stats)
		combined.Runs = append(combined.Runs, model.CombinedRun{
			Timestamp: name,
			Data:      source.raw,
		})
	}

	combined.Summary.TotalTests = total.Scenarios
	combined.Summary.PassedTests = total.Passed
	combined.Summary.FailedTests = total.Failed
	combined.Summary.SkippedTests = total.Skipped
	if included > 0 {
		combined.Summary.AverageDuration = float64(total.Duration) / float64(included) / 1e6
	}

	path := m.cfg.CombinedReportPath()
	if err := writeJSON(path, combined); err != nil {
		return nil, err
	}

	m.logger.Info().
		Str("path", path).
		Int("runs", included).
		Msg("Combined report generated")

	return combined, nil
}

type runResults struct {
	model.CombineSource
	raw json.RawMessage
}

func (m *Manager) readRunResults(name string) runResults {
	path := filepath.Join(m.cfg.NewDir(), name, ResultFile)
	source := runResults{CombineSource: model.CombineSource{Run: name}}

	parsed, err := m.parser.ParseFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		m.logger.Debug().Str("run", name).Msg("No result file, skipping")
		source.State = model.CombineSourceMissing
		return source
	case err != nil:
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			source.Err = &IOError{Op: "read", Path: path, Err: err}
		} else {
			source.Err = &MalformedReportError{Path: path, Err: err}
		}
		m.logger.Warn().Err(source.Err).Str("run", name).Msg("Error reading report")
		source.State = model.CombineSourceFailed
		return source
	}

	source.State = model.CombineSourceIncluded
	source.Stats = cucumber.Count(parsed.Features)
	source.raw = parsed.Raw
	return source
}

// writeJSON writes v as indented JSON, creating the parent directory.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &IOError{Op: "create", Path: filepath.Dir(path), Err: err}
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &IOError{Op: "encode", Path: path, Err: err}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &IOError{Op: "write", Path: path, Err: err}
	}

	return nil
}
