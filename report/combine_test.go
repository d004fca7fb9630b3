package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/perfgo/reportctl/model"
	"github.com/stretchr/testify/require"
)

func TestCombineRecentRuns(t *testing.T) {
	m := newTestManager(t)
	runA := runNameDaysAgo(1)
	runB := runNameDaysAgo(2)
	runOld := runNameDaysAgo(3)
	makeRun(t, m, runA, cucumberResults(t, 3, 1, 0))
	makeRun(t, m, runB, cucumberResults(t, 2, 0, 0))
	makeRun(t, m, runOld, cucumberResults(t, 10, 10, 10))

	combined, err := m.CombineRecentRuns(2)
	require.NoError(t, err)

	require.Equal(t, 2, combined.Summary.TotalRuns)
	require.Equal(t, 2, combined.Summary.TotalTests)
	require.Equal(t, 5, combined.Summary.PassedTests)
	require.Equal(t, 1, combined.Summary.FailedTests)
	require.Equal(t, 0, combined.Summary.SkippedTests)
	// 4 and 2 steps of 1ms each
	require.InDelta(t, 3.0, combined.Summary.AverageDuration, 0.0001)

	require.Len(t, combined.Runs, 2)
	require.Equal(t, runA, combined.Runs[0].Timestamp)
	require.Equal(t, runB, combined.Runs[1].Timestamp)

	data, err := os.ReadFile(m.cfg.CombinedReportPath())
	require.NoError(t, err)

	var onDisk struct {
		Summary model.CombinedSummary `json:"summary"`
		Runs    []struct {
			Timestamp string          `json:"timestamp"`
			Data      []model.Feature `json:"data"`
		} `json:"runs"`
	}
	require.NoError(t, json.Unmarshal(data, &onDisk))
	require.Equal(t, combined.Summary, onDisk.Summary)
	require.Len(t, onDisk.Runs, 2)
	require.Equal(t, "Inventory", onDisk.Runs[0].Data[0].Name)
	require.Len(t, onDisk.Runs[0].Data[0].Elements[0].Steps, 4)
}

func TestCombineRecentRuns_DefaultCount(t *testing.T) {
	m := newTestManager(t)
	for i := 1; i <= 7; i++ {
		makeRun(t, m, runNameDaysAgo(i), cucumberResults(t, 1, 0, 0))
	}

	combined, err := m.CombineRecentRuns(0)
	require.NoError(t, err)
	require.Equal(t, 5, combined.Summary.TotalRuns)
	require.Equal(t, 5, combined.Summary.PassedTests)
}

func TestCombineRecentRuns_SkipsMissingAndMalformed(t *testing.T) {
	m := newTestManager(t)
	good := runNameDaysAgo(1)
	missing := runNameDaysAgo(2)
	malformed := runNameDaysAgo(3)
	trailing := runNameDaysAgo(4)
	makeRun(t, m, good, cucumberResults(t, 2, 1, 1))
	makeRun(t, m, missing, "")
	makeRun(t, m, malformed, `[{"name": "Broken", "elements": [`)
	makeRun(t, m, trailing, `[{"name": "Extra bracket", "elements": []}] ]`)

	combined, err := m.CombineRecentRuns(5)
	require.NoError(t, err)

	require.Equal(t, 4, combined.Summary.TotalRuns)
	require.Equal(t, 2, combined.Summary.PassedTests)
	require.Equal(t, 1, combined.Summary.FailedTests)
	require.Equal(t, 1, combined.Summary.SkippedTests)
	require.Len(t, combined.Runs, 1)

	require.Len(t, combined.Sources, 4)
	states := map[string]model.CombineSourceState{}
	for _, source := range combined.Sources {
		states[source.Run] = source.State
	}
	require.Equal(t, model.CombineSourceIncluded, states[good])
	require.Equal(t, model.CombineSourceMissing, states[missing])
	require.Equal(t, model.CombineSourceFailed, states[malformed])
	require.Equal(t, model.CombineSourceFailed, states[trailing])

	var malformedErr *MalformedReportError
	require.ErrorAs(t, combined.Sources[2].Err, &malformedErr)
	require.Equal(t, filepath.Join(m.cfg.NewDir(), malformed, ResultFile), malformedErr.Path)
	require.ErrorAs(t, combined.Sources[3].Err, &malformedErr)

	// the report is still written with only the good run embedded
	data, err := os.ReadFile(m.cfg.CombinedReportPath())
	require.NoError(t, err)
	var written model.CombinedReport
	require.NoError(t, json.Unmarshal(data, &written))
	require.Len(t, written.Runs, 1)
	require.Equal(t, good, written.Runs[0].Timestamp)
}

func TestCombineRecentRuns_NoRuns(t *testing.T) {
	m := newTestManager(t)

	combined, err := m.CombineRecentRuns(5)
	require.NoError(t, err)
	require.Equal(t, 0, combined.Summary.TotalRuns)
	require.Zero(t, combined.Summary.AverageDuration)

	data, err := os.ReadFile(m.cfg.CombinedReportPath())
	require.NoError(t, err)
	require.Contains(t, string(data), `"runs": []`)
}

func TestCombineRuns_RejectsBadNames(t *testing.T) {
	m := newTestManager(t)

	_, err := m.CombineRuns([]string{"../../etc"})
	var nameErr *InvalidNameError
	require.ErrorAs(t, err, &nameErr)
}
