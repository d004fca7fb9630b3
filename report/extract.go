package report

// extract.go restores archived runs into the extracted/ directory.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/perfgo/reportctl/model"
)

// Extract unpacks the named archive (with or without .zip) below
// <reports>/extracted and returns the directory of the restored run.
func (m *Manager) Extract(name string) (string, error) {
	archiveName, archivePath, err := m.resolveArchive(name)
	if err != nil {
		return "", err
	}

	dest := m.cfg.ExtractedDir()
	if err := os.MkdirAll(dest, 0755); err != nil {
		return "", &IOError{Op: "create", Path: dest, Err: err}
	}

	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", &IOError{Op: "open", Path: archivePath, Err: err}
	}
	defer zr.Close()

	for _, f := range zr.File {
		if err := extractFile(f, dest); err != nil {
			return "", &IOError{Op: "extract", Path: archivePath, Err: err}
		}
	}

	runDir := filepath.Join(dest, strings.TrimSuffix(archiveName, model.ArchiveExt))
	m.logger.Info().
		Str("archive", archiveName).
		Str("dest", runDir).
		Int("entries", len(zr.File)).
		Msg("Archive extracted")

	return runDir, nil
}

func extractFile(f *zip.File, dest string) error {
	target, err := safeJoin(dest, f.Name)
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0644
	}

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("failed to write entry %s: %w", f.Name, err)
	}

	return out.Close()
}

// safeJoin joins an archive entry name onto dest and rejects names that
// would land outside dest.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("illegal entry path %q", name)
	}
	return target, nil
}
