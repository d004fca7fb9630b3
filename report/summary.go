package report

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/perfgo/reportctl/model"
)

// Summarize writes an inventory of runs and archives to summary.json and
// returns it.
func (m *Manager) Summarize() (*model.Summary, error) {
	runs, err := m.ListRuns()
	if err != nil {
		return nil, err
	}
	archives, err := m.ListArchives()
	if err != nil {
		return nil, err
	}

	newSize, err := DirectorySize(m.cfg.NewDir())
	if err != nil {
		return nil, err
	}
	archivedSize, err := DirectorySize(m.cfg.ArchivedDir())
	if err != nil {
		return nil, err
	}

	summary := &model.Summary{
		GeneratedAt: m.now().UTC(),
		NewReports: model.SummaryNew{
			Count:       len(runs),
			Directories: make([]string, 0, len(runs)),
		},
		ArchivedReports: model.SummaryArchived{
			Count: len(archives),
			Files: make([]string, 0, len(archives)),
		},
		TotalSize: model.SummarySize{
			NewReports:      newSize,
			ArchivedReports: archivedSize,
		},
	}
	for _, run := range runs {
		summary.NewReports.Directories = append(summary.NewReports.Directories, run.Name)
	}
	for _, archive := range archives {
		summary.ArchivedReports.Files = append(summary.ArchivedReports.Files, archive.Name)
	}

	path := m.cfg.SummaryPath()
	if err := writeJSON(path, summary); err != nil {
		return nil, err
	}

	m.logger.Info().Str("path", path).Msg("Summary report generated")
	return summary, nil
}

// DirectorySize returns the total size of all regular files below path.
// A path that does not exist, or disappears while walking, counts as zero.
func DirectorySize(path string) (int64, error) {
	var total int64
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			total += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, &IOError{Op: "measure", Path: path, Err: err}
	}

	return total, nil
}
