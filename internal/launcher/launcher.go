// Package launcher ties discovery, ranking, resolution and launching together
// behind the calls a presentation layer needs.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"mylauncher/internal/command"
	"mylauncher/internal/config"
	"mylauncher/internal/customapps"
	"mylauncher/internal/history"
	"mylauncher/internal/models"
	"mylauncher/internal/ranker"
	"mylauncher/internal/runner"
	"mylauncher/internal/scanner"
)

// DebugMode enables debug logging
var DebugMode = false

func debugLog(format string, args ...interface{}) {
	if DebugMode {
		fmt.Fprintf(os.Stderr, "[LAUNCHER] "+format+"\n", args...)
	}
}

// ErrNothingToLaunch is returned when a record's exec line resolves to no command
var ErrNothingToLaunch = errors.New("nothing to launch")

// History is the recency list used to order the initial view
type History interface {
	Items() []string
	Record(name string)
}

// Starter starts resolved commands
type Starter interface {
	Launch(cmd command.Command) (runner.Result, error)
}

// Launcher owns the catalog, the history and the session visibility
type Launcher struct {
	catalog    []*models.Shortcut
	history    History
	starter    Starter
	visibility Visibility
}

// Option customizes a Launcher
type Option func(*Launcher)

// WithCatalog uses a prebuilt catalog instead of scanning
func WithCatalog(catalog []*models.Shortcut) Option {
	return func(l *Launcher) { l.catalog = catalog }
}

// WithHistory replaces the history tracker
func WithHistory(h History) Option {
	return func(l *Launcher) { l.history = h }
}

// WithStarter replaces the process starter
func WithStarter(s Starter) Option {
	return func(l *Launcher) { l.starter = s }
}

// New builds a launcher from cfg. Unless overridden by options the catalog is
// discovered from the configured search paths plus the custom shortcuts file,
// and the history is loaded from disk.
func New(cfg *config.Config, opts ...Option) (*Launcher, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	l := &Launcher{
		visibility: Hidden,
	}
	for _, opt := range opts {
		opt(l)
	}

	if l.starter == nil {
		r, err := runner.ForMode(cfg.Launch.Strategy, cfg.Launch.ScopeCommand)
		if err != nil {
			return nil, err
		}
		debugLog("Launch strategies: %s", strings.Join(r.Strategies(), " -> "))
		l.starter = r
	}
	if l.history == nil {
		l.history = history.New(cfg.GetHistoryPath())
	}
	if l.catalog == nil {
		l.catalog = discover(cfg)
	}
	return l, nil
}

// discover scans the search paths and merges the custom shortcuts, which win
// over scanned entries of the same name
func discover(cfg *config.Config) []*models.Shortcut {
	s := scanner.New(cfg.SearchPaths)
	catalog := s.Scan()
	for dir, n := range scanner.CountByDir(catalog, s.SearchPaths()) {
		debugLog("%d entries from %s", n, dir)
	}

	custom, err := customapps.New(cfg.GetShortcutsPath()).Shortcuts()
	if err != nil {
		debugLog("Ignoring custom shortcuts: %v", err)
		return catalog
	}
	if len(custom) == 0 {
		return catalog
	}
	debugLog("%d custom shortcuts from %s", len(custom), cfg.GetShortcutsPath())
	return scanner.SortAndDedup(append(catalog, custom...))
}

// Catalog returns the full sorted catalog. Callers must not modify it.
func (l *Launcher) Catalog() []*models.Shortcut {
	return l.catalog
}

// History returns the recency list, most recent first
func (l *Launcher) History() []string {
	return l.history.Items()
}

// Rank returns the display list for query
func (l *Launcher) Rank(query string) []*models.Shortcut {
	return ranker.Rank(l.catalog, l.history.Items(), query)
}

// Activate picks the target for a typed query and resolves it. ok is false
// when nothing matches or the match has nothing to launch.
func (l *Launcher) Activate(query string) (*models.Shortcut, command.Command, bool) {
	target := ranker.Target(l.catalog, query)
	if target == nil {
		debugLog("No activation target for %q", query)
		return nil, command.Command{}, false
	}
	cmd, ok := l.ActivateRecord(target)
	return target, cmd, ok
}

// ActivateRecord resolves a selected record's exec template
func (l *Launcher) ActivateRecord(sc *models.Shortcut) (command.Command, bool) {
	if sc == nil {
		return command.Command{}, false
	}
	cmd, ok := command.Resolve(sc.Exec)
	if !ok {
		debugLog("%q has nothing to launch (exec %q)", sc.Name, sc.Exec)
	}
	return cmd, ok
}

// Launch resolves and starts sc, recording it in the history on success
func (l *Launcher) Launch(sc *models.Shortcut) (runner.Result, error) {
	cmd, ok := l.ActivateRecord(sc)
	if !ok {
		return runner.Result{}, ErrNothingToLaunch
	}

	res, err := l.starter.Launch(cmd)
	if err != nil {
		return res, err
	}
	l.NotifyLaunched(sc.Name)
	return res, nil
}

// NotifyLaunched records a successful launch of name
func (l *Launcher) NotifyLaunched(name string) {
	l.history.Record(name)
}
