// Package history keeps the list of recently launched applications.
package history

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// MaxEntries is the number of names kept, most recent first
const MaxEntries = 4

// DebugMode enables debug logging
var DebugMode = false

func debugLog(format string, args ...interface{}) {
	if DebugMode {
		fmt.Fprintf(os.Stderr, "[HISTORY] "+format+"\n", args...)
	}
}

// Tracker persists recently launched application names in a plain text file,
// one name per line.
type Tracker struct {
	path  string
	mu    sync.Mutex
	items []string
}

// New creates a tracker backed by path and loads the persisted list
func New(path string) *Tracker {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	t := &Tracker{path: path}
	t.items = t.Load()
	return t
}

// DefaultPath returns <user config dir>/mylauncher/history
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "mylauncher", "history")
}

// Path returns the file backing the tracker
func (t *Tracker) Path() string {
	return t.path
}

// Load reads the persisted list. A missing or unreadable file is an empty history.
func (t *Tracker) Load() []string {
	data, err := os.ReadFile(t.path)
	if err != nil {
		if !os.IsNotExist(err) {
			debugLog("Ignoring unreadable history %s: %v", t.path, err)
		}
		return []string{}
	}
	return parse(data)
}

// Items returns a copy of the current list, most recent first
func (t *Tracker) Items() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.items))
	copy(out, t.items)
	return out
}

// Record moves name to the front of the list and rewrites the file. A failed
// write is ignored; the in-memory list is updated regardless.
func (t *Tracker) Record(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.items = Push(t.items, name)
	if err := t.save(t.items); err != nil {
		debugLog("Failed to persist history: %v", err)
	}
}

// Clear empties the list and the file
func (t *Tracker) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.items = []string{}
	return t.save(t.items)
}

// Push returns items with name moved (or inserted) at the front, bounded to MaxEntries
func Push(items []string, name string) []string {
	out := make([]string, 0, MaxEntries)
	out = append(out, name)
	for _, item := range items {
		if len(out) == MaxEntries {
			break
		}
		if item != name {
			out = append(out, item)
		}
	}
	return out
}

func (t *Tracker) save(items []string) error {
	if err := os.MkdirAll(filepath.Dir(t.path), 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, item := range items {
		buf.WriteString(item)
		buf.WriteByte('\n')
	}
	return os.WriteFile(t.path, buf.Bytes(), 0644)
}

// parse reads names from file content, dropping blanks and duplicates
func parse(data []byte) []string {
	items := []string{}
	seen := make(map[string]bool)

	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		items = append(items, name)
		if len(items) == MaxEntries {
			break
		}
	}
	return items
}
