package report

// manager.go locates run directories and archives under the reports root.

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/perfgo/reportctl/config"
	"github.com/perfgo/reportctl/cucumber"
	"github.com/perfgo/reportctl/model"
	"github.com/rs/zerolog"
)

// ResultFile is the cucumber JSON report inside a run directory.
var ResultFile = filepath.Join("json", "cucumber-report.json")

// Manager manages the lifecycle of report runs on disk. It assumes exclusive
// access to the reports tree.
type Manager struct {
	logger zerolog.Logger
	cfg    config.Config
	parser *cucumber.Parser
	now    func() time.Time
}

// New creates a Manager for the reports root in cfg.
func New(logger zerolog.Logger, cfg config.Config) *Manager {
	return &Manager{
		logger: logger,
		cfg:    cfg,
		parser: cucumber.New(),
		now:    time.Now,
	}
}

// Config returns the configuration the manager was created with.
func (m *Manager) Config() config.Config {
	return m.cfg
}

// ParseRunName parses a run directory name strictly with model.RunTimestampLayout.
func ParseRunName(name string) (time.Time, error) {
	if err := checkPathElement(name); err != nil {
		return time.Time{}, err
	}
	ts, err := time.ParseInLocation(model.RunTimestampLayout, name, time.Local)
	if err != nil {
		return time.Time{}, &InvalidNameError{
			Name: name,
			Err:  fmt.Errorf("expected layout %s", model.RunTimestampLayout),
		}
	}
	return ts, nil
}

// RunName formats t as a run directory name.
func RunName(t time.Time) string {
	return t.Format(model.RunTimestampLayout)
}

func checkPathElement(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return &InvalidNameError{Name: name}
	}
	return nil
}

// ListRuns returns the run directories, newest first. A missing runs root
// yields an empty list. Directories whose names are not run timestamps are
// skipped with a warning.
func (m *Manager) ListRuns() ([]model.Run, error) {
	root := m.cfg.NewDir()
	entries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &IOError{Op: "read", Path: root, Err: err}
	}

	var runs []model.Run
	for _, entry := range entries {
		path := filepath.Join(root, entry.Name())

		// archiving walks and then removes the run, neither of which goes
		// through a link, so linked runs are left alone
		if entry.Type()&fs.ModeSymlink != 0 {
			m.logger.Warn().Str("path", path).Msg("Skipping symlinked run directory")
			continue
		}
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			m.logger.Warn().Err(err).Str("path", path).Msg("Failed to stat run directory")
			continue
		}

		ts, err := ParseRunName(entry.Name())
		if err != nil {
			m.logger.Warn().Err(err).Str("path", path).Msg("Skipping directory with malformed run name")
			continue
		}

		runs = append(runs, model.Run{
			Name:      entry.Name(),
			Timestamp: ts,
			Path:      path,
			ModTime:   info.ModTime(),
		})
	}

	// Sort by timestamp (newest first)
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})

	return runs, nil
}

// FindRun returns the run with the given name.
func (m *Manager) FindRun(name string) (model.Run, error) {
	if err := checkPathElement(name); err != nil {
		return model.Run{}, err
	}

	path := filepath.Join(m.cfg.NewDir(), name)
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir()) {
		return model.Run{}, &NotFoundError{Kind: "run", Name: name}
	}
	if err != nil {
		return model.Run{}, &IOError{Op: "stat", Path: path, Err: err}
	}

	ts, err := ParseRunName(name)
	if err != nil {
		return model.Run{}, err
	}

	return model.Run{
		Name:      name,
		Timestamp: ts,
		Path:      path,
		ModTime:   info.ModTime(),
	}, nil
}

// ListArchives returns the *.zip files in the archive root, newest name first.
// A missing archive root yields an empty list.
func (m *Manager) ListArchives() ([]model.Archive, error) {
	root := m.cfg.ArchivedDir()
	entries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &IOError{Op: "read", Path: root, Err: err}
	}

	var archives []model.Archive
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), model.ArchiveExt) {
			continue
		}

		path := filepath.Join(root, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			m.logger.Warn().Err(err).Str("path", path).Msg("Failed to stat archive")
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}

		archives = append(archives, model.Archive{
			Name:    entry.Name(),
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(archives, func(i, j int) bool {
		return archives[i].Name > archives[j].Name
	})

	return archives, nil
}

// cutoff returns the instant `days` calendar days before now.
func (m *Manager) cutoff(days int) time.Time {
	return m.now().AddDate(0, 0, -days)
}
