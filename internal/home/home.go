package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the hungie home directory.
	DefaultDirName = ".hungie"

	// RulesetsDirName is the subdirectory for cookbook ruleset files.
	RulesetsDirName = "rulesets"

	// InboxDirName is the subdirectory watched for dropped-in PDFs.
	InboxDirName = "inbox"

	// DatabaseFileName is the SQLite database file name.
	DatabaseFileName = "hungie.db"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the hungie home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.hungie).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// RulesetsPath returns the directory holding cookbook ruleset YAML files.
func (d *Dir) RulesetsPath() string {
	return filepath.Join(d.path, RulesetsDirName)
}

// InboxPath returns the directory watched for incoming PDFs.
func (d *Dir) InboxPath() string {
	return filepath.Join(d.path, InboxDirName)
}

// InboxDonePath returns the directory processed inbox PDFs are moved to.
func (d *Dir) InboxDonePath() string {
	return filepath.Join(d.InboxPath(), "done")
}

// InboxFailedPath returns the directory failed inbox PDFs are moved to.
func (d *Dir) InboxFailedPath() string {
	return filepath.Join(d.InboxPath(), "failed")
}

// DatabasePath returns the path to the SQLite database file.
func (d *Dir) DatabasePath() string {
	return filepath.Join(d.path, DatabaseFileName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	for _, dir := range []string{
		d.RulesetsPath(),
		d.InboxDonePath(),
		d.InboxFailedPath(),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
