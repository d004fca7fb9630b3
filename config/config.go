package config

// config.go holds the settings shared by every reportctl command.

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultReportsDir       = "cypress/reports"
	DefaultArchiveDays      = 7
	DefaultCleanDays        = 30
	DefaultCombineCount     = 5
	DefaultCompressionLevel = 9

	// DefaultFile is looked up in the working directory when no --config is given.
	DefaultFile = ".reportctl.yaml"
)

// Config is passed by value; nothing mutates it after Load.
type Config struct {
	// Root of the reports tree (contains new/, archived/, combined/)
	ReportsDir string `yaml:"reports_dir"`
	// Runs older than this many days are archived by the archive command
	ArchiveDays int `yaml:"archive_days"`
	// Archives older than this many days are deleted by the clean command
	CleanDays int `yaml:"clean_days"`
	// Number of recent runs the combine command aggregates
	CombineCount int `yaml:"combine_count"`
	// Deflate level used for new archives (1-9)
	CompressionLevel int `yaml:"compression_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		ReportsDir:       DefaultReportsDir,
		ArchiveDays:      DefaultArchiveDays,
		CleanDays:        DefaultCleanDays,
		CombineCount:     DefaultCombineCount,
		CompressionLevel: DefaultCompressionLevel,
	}
}

// Load reads a YAML config file on top of the defaults. A missing file is not
// an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ReportsDir) == "" {
		return errors.New("reports_dir must not be empty")
	}
	if c.ArchiveDays < 0 {
		return fmt.Errorf("archive_days must not be negative, got %d", c.ArchiveDays)
	}
	if c.CleanDays < 0 {
		return fmt.Errorf("clean_days must not be negative, got %d", c.CleanDays)
	}
	if c.CombineCount < 1 {
		return fmt.Errorf("combine_count must be at least 1, got %d", c.CombineCount)
	}
	if c.CompressionLevel < 1 || c.CompressionLevel > 9 {
		return fmt.Errorf("compression_level must be between 1 and 9, got %d", c.CompressionLevel)
	}
	return nil
}

// WithReportsDir returns a copy with a different reports root.
func (c Config) WithReportsDir(dir string) Config {
	c.ReportsDir = dir
	return c
}

// Resolve makes ReportsDir absolute. Relative paths are anchored at the git
// repository root when run inside a work tree, otherwise at the working
// directory.
func (c Config) Resolve() (Config, error) {
	if filepath.IsAbs(c.ReportsDir) {
		return c, nil
	}

	base, err := repoRoot()
	if err != nil {
		base, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("failed to determine working directory: %w", err)
		}
	}

	c.ReportsDir = filepath.Join(base, c.ReportsDir)
	return c, nil
}

func repoRoot() (string, error) {
	cmd := exec.Command("git", "rev-parse", "--show-toplevel")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// NewDir holds one directory per test run.
func (c Config) NewDir() string {
	return filepath.Join(c.ReportsDir, "new")
}

// ArchivedDir holds <run>.zip bundles.
func (c Config) ArchivedDir() string {
	return filepath.Join(c.ReportsDir, "archived")
}

func (c Config) CombinedDir() string {
	return filepath.Join(c.ReportsDir, "combined")
}

func (c Config) ExtractedDir() string {
	return filepath.Join(c.ReportsDir, "extracted")
}

func (c Config) CombinedReportPath() string {
	return filepath.Join(c.CombinedDir(), "combined-report.json")
}

func (c Config) SummaryPath() string {
	return filepath.Join(c.ReportsDir, "summary.json")
}
