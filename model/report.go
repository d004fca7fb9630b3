package model

import (
	"encoding/json"
	"strings"
	"time"
)

// RunTimestampLayout is the layout of run directory names, e.g. 2024-01-15_14-30-00.
const RunTimestampLayout = "2006-01-02_15-04-05"

// Run represents a single test-suite execution on disk
type Run struct {
	// Directory name (a RunTimestampLayout timestamp)
	Name string `json:"name"`
	// Timestamp parsed from Name
	Timestamp time.Time `json:"timestamp"`
	// Absolute path of the run directory
	Path string `json:"path"`
	// Modification time of the run directory
	ModTime time.Time `json:"mod_time"`
}

// Archive represents a compressed run bundle
type Archive struct {
	// File name, <run>.zip
	Name string `json:"name"`
	// Absolute path of the zip file
	Path string `json:"path"`
	// Size in bytes
	Size int64 `json:"size"`
	// Modification time of the zip file
	ModTime time.Time `json:"mod_time"`
}

// RunName returns the name of the run the archive was created from.
func (a Archive) RunName() string {
	return strings.TrimSuffix(a.Name, ArchiveExt)
}

// ArchiveExt is the file extension of archives.
const ArchiveExt = ".zip"

// ArchiveResult is the outcome of archiving one run in a batch
type ArchiveResult struct {
	Run     Run
	Archive *Archive
	// Set when the source directory was removed after archiving
	Removed bool
	Err     error
}

// OK reports whether the run was archived and removed.
func (r ArchiveResult) OK() bool {
	return r.Err == nil
}

// CombinedReport aggregates the raw results of several runs
type CombinedReport struct {
	Summary CombinedSummary `json:"summary"`
	Runs    []CombinedRun   `json:"runs"`

	// Per-run outcome of reading result files, not persisted
	Sources []CombineSource `json:"-"`
}

// CombinedSummary holds rolled-up counts across all combined runs
type CombinedSummary struct {
	TotalRuns int `json:"totalRuns"`
	// Number of scenarios
	TotalTests int `json:"totalTests"`
	// Step counts by status
	PassedTests  int `json:"passedTests"`
	FailedTests  int `json:"failedTests"`
	SkippedTests int `json:"skippedTests"`
	// Mean total step duration per run, in milliseconds
	AverageDuration float64 `json:"averageDuration"`
}

// CombinedRun embeds one run's result file verbatim
type CombinedRun struct {
	Timestamp string          `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// CombineSourceState describes what happened to one run during combine
type CombineSourceState string

const (
	CombineSourceIncluded CombineSourceState = "included"
	CombineSourceMissing  CombineSourceState = "missing"
	CombineSourceFailed   CombineSourceState = "failed"
)

// CombineSource records whether a run contributed to a combined report
type CombineSource struct {
	Run   string
	State CombineSourceState
	Stats Stats
	Err   error
}

// Summary is a snapshot of the reports inventory
type Summary struct {
	GeneratedAt     time.Time       `json:"generatedAt"`
	NewReports      SummaryNew      `json:"newReports"`
	ArchivedReports SummaryArchived `json:"archivedReports"`
	TotalSize       SummarySize     `json:"totalSize"`
}

type SummaryNew struct {
	Count       int      `json:"count"`
	Directories []string `json:"directories"`
}

type SummaryArchived struct {
	Count int      `json:"count"`
	Files []string `json:"files"`
}

// SummarySize holds byte totals
type SummarySize struct {
	NewReports      int64 `json:"newReports"`
	ArchivedReports int64 `json:"archivedReports"`
}

// RunDetail is a per-run breakdown used by the view command
type RunDetail struct {
	Run Run
	// Whether json/cucumber-report.json exists
	HasResults  bool
	Features    []FeatureStats
	Stats       Stats
	Screenshots int
	Videos      int
	Size        int64
}

// FeatureStats holds counts for a single feature
type FeatureStats struct {
	Name  string
	URI   string
	Stats Stats
}
