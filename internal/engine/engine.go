// Package engine is the facade UI collaborators talk to. Each Engine instance
// is bound to a single configuration-file path and composes the parser, diff,
// persistence, history, and simulation subsystems behind direct calls with
// typed errors. There is no hidden global state.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/lint-studio/lint-studio/internal/diff"
	"github.com/lint-studio/lint-studio/internal/history"
	"github.com/lint-studio/lint-studio/internal/persist"
	"github.com/lint-studio/lint-studio/internal/ruleconfig"
	"github.com/lint-studio/lint-studio/internal/simulate"
	"github.com/lint-studio/lint-studio/pkg/shared"
)

// ChangeEvent is emitted after every successful save. Interested collaborators
// subscribe to it instead of listening on any process-wide observer registry.
type ChangeEvent struct {
	Path      string
	Timestamp time.Time
	Diff      diff.Diff
}

// Engine binds the configuration subsystems to one file.
type Engine struct {
	store     *persist.Store
	history   *history.Manager
	simulator *simulate.Simulator
	logger    hclog.Logger

	mu       sync.Mutex
	document *ruleconfig.Document

	subMu       sync.Mutex
	subscribers []chan ChangeEvent
}

// New creates an engine for the configuration file at path. runner may be nil
// when simulations are not needed.
func New(path string, runner shared.LintRunner, scratchRoot string, logger hclog.Logger, simOpts simulate.Options) *Engine {
	store := persist.NewStore(path, logger)
	e := &Engine{
		store:   store,
		history: history.NewManager(store, logger),
		logger:  logger,
	}
	if runner != nil {
		e.simulator = simulate.New(runner, scratchRoot, logger, simOpts)
	}
	return e
}

// Path returns the configuration file path the engine is bound to.
func (e *Engine) Path() string { return e.store.Path() }

// Load parses the bound file and caches the document.
func (e *Engine) Load() (*ruleconfig.Document, error) {
	doc, err := e.store.Load()
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.document = doc
	e.mu.Unlock()
	return doc.Clone(), nil
}

// Document returns a deep copy of the loaded document, loading it on first
// use. Callers mutate the copy and hand it back through Save.
func (e *Engine) Document() (*ruleconfig.Document, error) {
	e.mu.Lock()
	cached := e.document
	e.mu.Unlock()
	if cached != nil {
		return cached.Clone(), nil
	}
	return e.Load()
}

// Validate runs semantic validation without writing anything.
func (e *Engine) Validate(doc *ruleconfig.Document) error {
	return ruleconfig.Validate(doc)
}

// GenerateDiff compares the currently persisted document against proposed.
func (e *Engine) GenerateDiff(proposed *ruleconfig.Document) (diff.Diff, error) {
	current, err := e.Document()
	if err != nil {
		return diff.Diff{}, err
	}
	return diff.Compute(current, proposed), nil
}

// Save validates, backs up, and atomically writes the proposed document, then
// refreshes the cache and notifies subscribers.
func (e *Engine) Save(proposed *ruleconfig.Document, createBackup bool) (*persist.Backup, error) {
	d, err := e.GenerateDiff(proposed)
	if err != nil {
		return nil, err
	}

	backup, err := e.store.Save(proposed, createBackup)
	if err != nil {
		return backup, err
	}

	e.mu.Lock()
	e.document = proposed.Clone()
	e.mu.Unlock()

	e.notify(ChangeEvent{Path: e.store.Path(), Timestamp: time.Now(), Diff: d})
	return backup, nil
}

// EnableRule enables a rule in a copy of the current document, previews the
// diff, and saves. The disabled-rules list is cleaned up per the document's
// enable semantics.
func (e *Engine) EnableRule(id string, severity *ruleconfig.Severity, optIn bool) (diff.Diff, error) {
	doc, err := e.Document()
	if err != nil {
		return diff.Diff{}, err
	}
	doc.EnableRule(id, severity, optIn)
	d, err := e.GenerateDiff(doc)
	if err != nil {
		return diff.Diff{}, err
	}
	if _, err := e.Save(doc, true); err != nil {
		return d, err
	}
	return d, nil
}

// DisableRule disables a rule and saves.
func (e *Engine) DisableRule(id string) (diff.Diff, error) {
	doc, err := e.Document()
	if err != nil {
		return diff.Diff{}, err
	}
	doc.DisableRule(id)
	d, err := e.GenerateDiff(doc)
	if err != nil {
		return diff.Diff{}, err
	}
	if _, err := e.Save(doc, true); err != nil {
		return d, err
	}
	return d, nil
}

// ListBackups returns the backups for the bound file, newest first.
func (e *Engine) ListBackups() []persist.Backup {
	return e.history.List()
}

// RestoreBackup puts a backup's content back and reloads the cache. The
// pre-restore state is captured in a fresh safety backup first.
func (e *Engine) RestoreBackup(b persist.Backup) error {
	before, err := e.Document()
	if err != nil {
		return err
	}
	if err := e.history.Restore(b); err != nil {
		return err
	}
	restored, err := e.Load()
	if err != nil {
		return err
	}
	e.notify(ChangeEvent{Path: e.store.Path(), Timestamp: time.Now(), Diff: diff.Compute(before, restored)})
	return nil
}

// FindBackup resolves a backup by its timestamp.
func (e *Engine) FindBackup(timestamp int64) (persist.Backup, error) {
	return e.history.Find(timestamp)
}

// PruneBackups deletes all but the keepCount most recent backups.
func (e *Engine) PruneBackups(keepCount int) int {
	return e.history.Prune(keepCount)
}

// SimulateRule runs an impact simulation for one rule against workspaceRoot.
func (e *Engine) SimulateRule(ctx context.Context, ruleID, workspaceRoot string, isOptIn bool) (*simulate.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("no lint runner configured")
	}
	doc, err := e.Document()
	if err != nil {
		return nil, err
	}
	return e.simulator.SimulateRule(ctx, ruleID, doc, workspaceRoot, isOptIn)
}

// FindSafeRules reports every currently-disabled rule from allRuleIDs whose
// simulation produced zero violations.
func (e *Engine) FindSafeRules(ctx context.Context, allRuleIDs []string, workspaceRoot string) ([]string, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("no lint runner configured")
	}
	doc, err := e.Document()
	if err != nil {
		return nil, err
	}
	return e.simulator.FindSafeRules(ctx, doc, allRuleIDs, workspaceRoot), nil
}

// Subscribe returns a channel that receives a ChangeEvent after every
// successful save. Slow subscribers drop events rather than block saves.
func (e *Engine) Subscribe() <-chan ChangeEvent {
	ch := make(chan ChangeEvent, 8)
	e.subMu.Lock()
	e.subscribers = append(e.subscribers, ch)
	e.subMu.Unlock()
	return ch
}

func (e *Engine) notify(event ChangeEvent) {
	e.subMu.Lock()
	defer e.subMu.Unlock()
	for _, ch := range e.subscribers {
		select {
		case ch <- event:
		default:
			e.logger.Warn("dropping change event for slow subscriber", "path", event.Path)
		}
	}
}
