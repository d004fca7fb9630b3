package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/perfgo/reportctl/config"
	"github.com/perfgo/reportctl/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	cfg := config.Default().WithReportsDir(t.TempDir())
	m := New(zerolog.Nop(), cfg)
	m.now = func() time.Time { return testNow }
	return m
}

// makeRun creates a run directory with the standard layout. A non-empty
// results document is written to json/cucumber-report.json.
func makeRun(t *testing.T, m *Manager, name string, results string) string {
	t.Helper()

	runDir := filepath.Join(m.cfg.NewDir(), name)
	for _, sub := range []string{"html", "json", "screenshots", "videos"} {
		require.NoError(t, os.MkdirAll(filepath.Join(runDir, sub), 0755))
	}
	if results != "" {
		require.NoError(t, os.WriteFile(filepath.Join(runDir, ResultFile), []byte(results), 0644))
	}
	return runDir
}

func runNameDaysAgo(days int) string {
	return RunName(testNow.AddDate(0, 0, -days))
}

// cucumberResults builds a single-feature, single-scenario report with the
// given number of steps per status.
func cucumberResults(t *testing.T, passed, failed, skipped int) string {
	t.Helper()

	var steps []model.Step
	add := func(n int, status model.StepStatus) {
		for i := 0; i < n; i++ {
			steps = append(steps, model.Step{
				Keyword: "Given ",
				Name:    "a step",
				Result:  model.Result{Status: status, Duration: 1000000},
			})
		}
	}
	add(passed, model.StepStatusPassed)
	add(failed, model.StepStatusFailed)
	add(skipped, model.StepStatusSkipped)

	features := []model.Feature{{
		Name: "Inventory",
		URI:  "cypress/e2e/ui/inventory.feature",
		Elements: []model.Element{{
			Name:  "Sort products",
			Type:  "scenario",
			Steps: steps,
		}},
	}}

	data, err := json.Marshal(features)
	require.NoError(t, err)
	return string(data)
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
}
