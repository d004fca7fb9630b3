package report

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/perfgo/reportctl/cucumber"
	"github.com/perfgo/reportctl/model"
)

// Inspect returns a per-feature breakdown of one run together with its
// artifact counts.
func (m *Manager) Inspect(name string) (*model.RunDetail, error) {
	run, err := m.FindRun(name)
	if err != nil {
		return nil, err
	}

	size, err := DirectorySize(run.Path)
	if err != nil {
		return nil, err
	}

	detail := &model.RunDetail{
		Run:  run,
		Size: size,
	}

	if detail.Screenshots, err = countFiles(filepath.Join(run.Path, "screenshots")); err != nil {
		return nil, err
	}
	if detail.Videos, err = countFiles(filepath.Join(run.Path, "videos")); err != nil {
		return nil, err
	}

	path := filepath.Join(run.Path, ResultFile)
	parsed, err := m.parser.ParseFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return detail, nil
	}
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, &IOError{Op: "read", Path: path, Err: err}
		}
		return nil, &MalformedReportError{Path: path, Err: err}
	}

	detail.HasResults = true
	for _, feature := range parsed.Features {
		stats := cucumber.CountFeature(feature)
		detail.Stats.Add(stats)
		detail.Features = append(detail.Features, model.FeatureStats{
			Name:  feature.Name,
			URI:   feature.URI,
			Stats: stats,
		})
	}

	return detail, nil
}

// countFiles counts regular files below dir; a missing dir has none.
func countFiles(dir string) (int, error) {
	count := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.Type().IsRegular() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, &IOError{Op: "read", Path: dir, Err: err}
	}
	return count, nil
}
