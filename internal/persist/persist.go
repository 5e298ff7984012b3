// Package persist owns every mutation of the real configuration file:
// validation, timestamped backups, and the write-to-temp-then-rename pattern
// that guarantees the target is never left truncated or half-written.
package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/lint-studio/lint-studio/internal/ruleconfig"
	scerrors "github.com/lint-studio/lint-studio/pkg/shared/errors"
	"github.com/lint-studio/lint-studio/pkg/shared/files"
)

const (
	backupSuffix = ".backup"
	tempSuffix   = ".tmp"
)

// Backup is one timestamped copy of the configuration file, taken immediately
// before a mutating save. Backups for the same source file are strictly
// increasing by timestamp in creation order.
type Backup struct {
	Timestamp        int64
	Path             string
	SourceConfigPath string
}

// Store serializes all mutating operations against a single configuration
// file. The internal mutex preserves the backup-then-atomic-write ordering
// when callers race.
type Store struct {
	path   string
	logger hclog.Logger

	mu sync.Mutex
}

// NewStore creates a store bound to the configuration file at path.
func NewStore(path string, logger hclog.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Path returns the configuration file path the store is bound to.
func (s *Store) Path() string { return s.path }

// Load reads and parses the current configuration file.
func (s *Store) Load() (*ruleconfig.Document, error) {
	return ruleconfig.ParseFile(s.path)
}

// Save validates the document, optionally snapshots the current file content
// into a timestamped backup, and atomically replaces the file with the new
// serialized form. A failing validation aborts with zero side effects: no
// backup, no write. The created backup is returned when one was taken.
func (s *Store) Save(doc *ruleconfig.Document, createBackup bool) (*Backup, error) {
	if err := ruleconfig.Validate(doc); err != nil {
		return nil, err
	}
	return s.write(ruleconfig.Serialize(doc), createBackup)
}

// WriteRaw runs the same backup-then-atomic-write pipeline with pre-serialized
// content. Restores use it to put historical bytes back untouched.
func (s *Store) WriteRaw(content []byte, createBackup bool) (*Backup, error) {
	return s.write(content, createBackup)
}

func (s *Store) write(content []byte, createBackup bool) (*Backup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var backup *Backup
	if createBackup {
		b, err := s.backupCurrent()
		if err != nil {
			return nil, err
		}
		backup = b
	}

	if err := s.atomicWrite(content); err != nil {
		return backup, err
	}
	return backup, nil
}

// backupCurrent copies the existing file to {name}.{unix-ts}.backup alongside
// it. A missing target means a first-time save; nothing to back up.
func (s *Store) backupCurrent() (*Backup, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, scerrors.NewIOError("stat target", s.path, err)
	}

	ts := s.nextBackupTimestamp()
	backupPath := BackupPath(s.path, ts)
	if err := files.CopyFile(s.path, backupPath); err != nil {
		return nil, scerrors.NewIOError("create backup", backupPath, err)
	}
	s.logger.Debug("created backup", "path", backupPath, "timestamp", ts)
	return &Backup{Timestamp: ts, Path: backupPath, SourceConfigPath: s.path}, nil
}

// nextBackupTimestamp returns the current unix time, bumped past the newest
// existing backup when two saves land within the same second. Backups stay
// strictly ordered and names stay unique.
func (s *Store) nextBackupTimestamp() int64 {
	ts := time.Now().Unix()
	backups := ListBackups(s.path)
	if len(backups) > 0 && backups[0].Timestamp >= ts {
		ts = backups[0].Timestamp + 1
	}
	return ts
}

// atomicWrite serializes content to a colocated uniquely-named temp file and
// renames it over the target. Before the rename completes the target still
// holds its prior complete content. An existing target keeps its permissions
// across the rename.
func (s *Store) atomicWrite(content []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}

	tempPath := fmt.Sprintf("%s.%s%s", s.path, uuid.NewString(), tempSuffix)
	if err := os.WriteFile(tempPath, content, mode); err != nil {
		return scerrors.NewIOError("write temp file", tempPath, err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		if rmErr := os.Remove(tempPath); rmErr != nil {
			s.logger.Warn("failed to remove temp file after rename failure", "path", tempPath, "error", rmErr)
		}
		return scerrors.NewRenameFailedError(tempPath, s.path, err)
	}
	return nil
}

// BackupPath builds the backup file name for a source path and timestamp:
// {original-filename}.{unix-timestamp}.backup in the same directory.
func BackupPath(sourcePath string, timestamp int64) string {
	return fmt.Sprintf("%s.%d%s", sourcePath, timestamp, backupSuffix)
}

// ListBackups enumerates the backups for sourcePath, newest first. Backups of
// other files in the same directory are ignored.
func ListBackups(sourcePath string) []Backup {
	dir := filepath.Dir(sourcePath)
	prefix := filepath.Base(sourcePath) + "."

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var backups []Backup
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, backupSuffix) {
			continue
		}
		middle := strings.TrimSuffix(strings.TrimPrefix(name, prefix), backupSuffix)
		ts, err := strconv.ParseInt(middle, 10, 64)
		if err != nil {
			continue
		}
		backups = append(backups, Backup{
			Timestamp:        ts,
			Path:             filepath.Join(dir, name),
			SourceConfigPath: sourcePath,
		})
	}

	sort.Slice(backups, func(i, j int) bool { return backups[i].Timestamp > backups[j].Timestamp })
	return backups
}
