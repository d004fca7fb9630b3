package report

// archive.go compresses run directories into zip bundles and prunes old bundles.

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
	"github.com/perfgo/reportctl/model"
)

// ArchiveRun compresses the named run into <archived>/<name>.zip. The source
// directory is left in place. No archive file is left behind on failure.
func (m *Manager) ArchiveRun(name string) (model.Archive, error) {
	run, err := m.FindRun(name)
	if err != nil {
		return model.Archive{}, err
	}

	archiveRoot := m.cfg.ArchivedDir()
	if err := os.MkdirAll(archiveRoot, 0755); err != nil {
		return model.Archive{}, &IOError{Op: "create", Path: archiveRoot, Err: err}
	}

	archivePath := filepath.Join(archiveRoot, run.Name+model.ArchiveExt)

	// Write to a temporary file first so a failed run never leaves a
	// truncated <name>.zip behind.
	tmp, err := os.CreateTemp(archiveRoot, "."+run.Name+"-*.zip.tmp")
	if err != nil {
		return model.Archive{}, &IOError{Op: "create", Path: archiveRoot, Err: err}
	}
	tmpPath := tmp.Name()

	if err := writeZip(tmp, run.Path, run.Name, m.cfg.CompressionLevel); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return model.Archive{}, &IOError{Op: "archive", Path: run.Path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return model.Archive{}, &IOError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := os.Rename(tmpPath, archivePath); err != nil {
		os.Remove(tmpPath)
		return model.Archive{}, &IOError{Op: "rename", Path: archivePath, Err: err}
	}

	info, err := os.Stat(archivePath)
	if err != nil {
		return model.Archive{}, &IOError{Op: "stat", Path: archivePath, Err: err}
	}

	archive := model.Archive{
		Name:    filepath.Base(archivePath),
		Path:    archivePath,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}

	m.logger.Info().
		Str("archive", archivePath).
		Int64("size", archive.Size).
		Msg("Report archived")

	return archive, nil
}

// writeZip writes every file and directory below src into w, with entry
// names prefixed by prefix.
func writeZip(w io.Writer, src, prefix string, level int) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, level)
	})

	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		name := prefix
		if rel != "." {
			name = prefix + "/" + filepath.ToSlash(rel)
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return fmt.Errorf("failed to build header for %s: %w", path, err)
		}

		if d.IsDir() {
			header.Name = name + "/"
			header.Method = zip.Store
			_, err := zw.CreateHeader(header)
			return err
		}

		// Sockets, devices and symlinks are not report content
		if !info.Mode().IsRegular() {
			return nil
		}

		header.Name = name
		header.Method = zip.Deflate
		fw, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(fw, f)
		return err
	})
	if err != nil {
		zw.Close()
		return err
	}

	return zw.Close()
}

// ArchiveRunsOlderThan archives and removes every run older than days.
// A failure for one run is logged and recorded in its result; the remaining
// runs are still processed.
func (m *Manager) ArchiveRunsOlderThan(days int) ([]model.ArchiveResult, error) {
	runs, err := m.ListRuns()
	if err != nil {
		return nil, err
	}

	cutoff := m.cutoff(days)
	var candidates []model.Run
	for _, run := range runs {
		if run.Timestamp.Before(cutoff) {
			candidates = append(candidates, run)
		}
	}

	m.logger.Info().
		Int("count", len(candidates)).
		Time("cutoff", cutoff).
		Msg("Found reports to archive")

	results := make([]model.ArchiveResult, 0, len(candidates))
	for _, run := range candidates {
		result := model.ArchiveResult{Run: run}

		archive, err := m.ArchiveRun(run.Name)
		if err != nil {
			m.logger.Warn().Err(err).Str("run", run.Name).Msg("Failed to archive report")
			result.Err = err
			results = append(results, result)
			continue
		}
		result.Archive = &archive

		if err := os.RemoveAll(run.Path); err != nil {
			result.Err = &IOError{Op: "remove", Path: run.Path, Err: err}
			m.logger.Warn().Err(err).Str("run", run.Name).Msg("Failed to remove archived report directory")
			results = append(results, result)
			continue
		}
		result.Removed = true

		m.logger.Debug().Str("path", run.Path).Msg("Removed original directory")
		results = append(results, result)
	}

	return results, nil
}

// PruneArchivesOlderThan deletes archives whose modification time is before
// now minus days. A missing archive root is a no-op.
func (m *Manager) PruneArchivesOlderThan(days int) ([]model.Archive, error) {
	archives, err := m.ListArchives()
	if err != nil {
		return nil, err
	}

	cutoff := m.cutoff(days)
	var removed []model.Archive
	for _, archive := range archives {
		if !archive.ModTime.Before(cutoff) {
			continue
		}

		if err := os.Remove(archive.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, &IOError{Op: "remove", Path: archive.Path, Err: err}
		}

		m.logger.Info().Str("archive", archive.Name).Msg("Removed old archive")
		removed = append(removed, archive)
	}

	return removed, nil
}

// resolveArchive maps an archive name, with or without the .zip extension,
// to its path.
func (m *Manager) resolveArchive(name string) (string, string, error) {
	if !strings.HasSuffix(name, model.ArchiveExt) {
		name += model.ArchiveExt
	}
	if err := checkPathElement(name); err != nil {
		return "", "", err
	}

	path := filepath.Join(m.cfg.ArchivedDir(), name)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
		return "", "", &NotFoundError{Kind: "archive", Name: name}
	}
	if err != nil {
		return "", "", &IOError{Op: "stat", Path: path, Err: err}
	}

	return name, path, nil
}
