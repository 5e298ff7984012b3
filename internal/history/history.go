// Package history manages the timestamped backups a store leaves behind:
// listing, restoring, and pruning them.
package history

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/lint-studio/lint-studio/internal/persist"
	scerrors "github.com/lint-studio/lint-studio/pkg/shared/errors"
)

// Manager enumerates and restores the backups of one configuration file. It
// reuses the store's atomic-write pipeline so a restore can never corrupt the
// target either.
type Manager struct {
	store  *persist.Store
	logger hclog.Logger
}

// NewManager creates a history manager over the given store.
func NewManager(store *persist.Store, logger hclog.Logger) *Manager {
	return &Manager{store: store, logger: logger}
}

// List returns the backups for the bound configuration file, newest first.
func (m *Manager) List() []persist.Backup {
	return persist.ListBackups(m.store.Path())
}

// Find returns the backup with the given timestamp.
func (m *Manager) Find(timestamp int64) (persist.Backup, error) {
	for _, b := range m.List() {
		if b.Timestamp == timestamp {
			return b, nil
		}
	}
	return persist.Backup{}, fmt.Errorf("no backup with timestamp %d for %q", timestamp, m.store.Path())
}

// Restore overwrites the configuration file with the backup's content. A
// fresh safety backup of the current content is taken first, so every restore
// is itself reversible.
func (m *Manager) Restore(b persist.Backup) error {
	if b.SourceConfigPath != m.store.Path() {
		return fmt.Errorf("backup %q belongs to %q, not %q", b.Path, b.SourceConfigPath, m.store.Path())
	}

	content, err := os.ReadFile(b.Path)
	if err != nil {
		return scerrors.NewIOError("read backup", b.Path, err)
	}

	safety, err := m.store.WriteRaw(content, true)
	if err != nil {
		return err
	}
	if safety != nil {
		m.logger.Info("restored backup", "backup", b.Path, "safety_backup", safety.Path)
	}
	return nil
}

// Prune deletes all but the keepCount most recent backups of the bound file.
// Backups belonging to other source files are never touched. Individual delete
// failures are non-critical: logged and skipped, never aborting the prune.
func (m *Manager) Prune(keepCount int) int {
	if keepCount < 0 {
		keepCount = 0
	}
	backups := m.List()
	if len(backups) <= keepCount {
		return 0
	}

	removed := 0
	for _, b := range backups[keepCount:] {
		if err := os.Remove(b.Path); err != nil {
			nonCritical := scerrors.NewNonCriticalError("backup prune", err)
			m.logger.Warn("failed to remove backup", "path", b.Path, "error", nonCritical)
			continue
		}
		removed++
	}
	return removed
}
