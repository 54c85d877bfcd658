package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"mylauncher/internal/models"

	"github.com/rkoesters/xdg/desktop"
)

// Extension is the file extension of application shortcuts
const Extension = ".desktop"

// DebugMode enables debug logging
var DebugMode = false

// debugLog logs a message if debug mode is enabled
func debugLog(format string, args ...interface{}) {
	if DebugMode {
		fmt.Fprintf(os.Stderr, "[SCANNER] "+format+"\n", args...)
	}
}

// DefaultSearchPaths returns the application directories in priority order:
// system-wide, system-local, flatpak exports, user-local.
func DefaultSearchPaths() []string {
	paths := []string{
		"/usr/share/applications",
		"/usr/local/share/applications",
		"/var/lib/flatpak/exports/share/applications",
	}
	if homeDir, err := os.UserHomeDir(); err == nil && homeDir != "" {
		paths = append(paths, filepath.Join(homeDir, ".local", "share", "applications"))
	}
	return paths
}

// Scanner discovers application shortcuts in a set of directories
type Scanner struct {
	searchPaths []string
}

// New creates a new Scanner. An empty path list means DefaultSearchPaths.
func New(searchPaths []string) *Scanner {
	paths := trimmedNonEmpty(searchPaths)
	if len(paths) == 0 {
		paths = DefaultSearchPaths()
	}
	for i, p := range paths {
		paths[i] = expandPath(p)
	}
	return &Scanner{searchPaths: paths}
}

// SearchPaths returns the directories scanned, in order
func (s *Scanner) SearchPaths() []string {
	return s.searchPaths
}

// Discover scans the given directories and returns the catalog
func Discover(searchPaths []string) []*models.Shortcut {
	return New(searchPaths).Scan()
}

// job is one .desktop file to parse
type job struct {
	path string
	dir  int
}

// Scan walks every search path and returns the sorted, deduplicated catalog
func (s *Scanner) Scan() []*models.Shortcut {
	start := time.Now()
	debugLog("Starting scan of %d directories...", len(s.searchPaths))

	jobs := s.collectJobs()
	debugLog("Found %d shortcut files in %v", len(jobs), time.Since(start))

	parseStart := time.Now()
	shortcuts := s.parseParallel(jobs)
	debugLog("Parsed %d visible shortcuts in %v", len(shortcuts), time.Since(parseStart))

	catalog := SortAndDedup(shortcuts)
	debugLog("Catalog has %d entries, scan completed in %v", len(catalog), time.Since(start))
	return catalog
}

// collectJobs lists the regular .desktop files directly inside each search path
func (s *Scanner) collectJobs() []job {
	var jobs []job
	for i, dir := range s.searchPaths {
		entries, err := os.ReadDir(dir)
		if err != nil {
			debugLog("Skipping %s: %v", dir, err)
			continue
		}
		for _, entry := range entries {
			if !isShortcutFile(dir, entry) {
				continue
			}
			jobs = append(jobs, job{path: filepath.Join(dir, entry.Name()), dir: i})
		}
	}
	return jobs
}

// isShortcutFile reports whether entry is a regular file (or a link to one)
// with the shortcut extension
func isShortcutFile(dir string, entry os.DirEntry) bool {
	if filepath.Ext(entry.Name()) != Extension {
		return false
	}
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

// parseParallel parses shortcut files using a worker pool
func (s *Scanner) parseParallel(jobs []job) []*models.Shortcut {
	if len(jobs) == 0 {
		return nil
	}

	numWorkers := runtime.NumCPU() * 2 // IO-bound, so use more workers
	if numWorkers > 16 {
		numWorkers = 16
	}
	if numWorkers > len(jobs) {
		numWorkers = len(jobs)
	}

	queue := make(chan job, len(jobs))
	results := make(chan *models.Shortcut, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range queue {
				if sc := s.parseFile(j); sc != nil {
					results <- sc
				}
			}
		}()
	}

	for _, j := range jobs {
		queue <- j
	}
	close(queue)

	go func() {
		wg.Wait()
		close(results)
	}()

	var shortcuts []*models.Shortcut
	for sc := range results {
		shortcuts = append(shortcuts, sc)
	}
	return shortcuts
}

// parseFile turns one file into a shortcut, or nil if it must be skipped
func (s *Scanner) parseFile(j job) *models.Shortcut {
	entry, err := readEntry(j.path)
	if err != nil {
		debugLog("Skipping unparsable %s: %v", j.path, err)
		return nil
	}

	sc := FromEntry(entry)
	sc.Path = j.path
	sc.Dir = j.dir
	if !sc.Visible() {
		debugLog("Skipping %s (name=%q hidden=%v terminal=%v)", j.path, sc.Name, sc.Hidden, sc.Terminal)
		return nil
	}
	return sc
}

func readEntry(path string) (*desktop.Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return desktop.New(f)
}

// FromEntry converts a parsed desktop entry into a shortcut with defaults
// applied. Name and Comment are already localized for the current locale.
// Hidden=true means the entry was deleted and is treated like NoDisplay.
func FromEntry(entry *desktop.Entry) *models.Shortcut {
	sc := models.NewShortcut(entry.Name, entry.Exec, entry.Icon, entry.Comment)
	sc.Hidden = entry.NoDisplay || entry.Hidden
	sc.Terminal = entry.Terminal
	return sc
}

// SortAndDedup orders shortcuts by name and keeps one entry per name.
// Among duplicates the one from the earliest search path wins, then the
// smallest file name.
func SortAndDedup(shortcuts []*models.Shortcut) []*models.Shortcut {
	sorted := make([]*models.Shortcut, len(shortcuts))
	copy(sorted, shortcuts)

	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if a.Dir != b.Dir {
			return a.Dir < b.Dir
		}
		return filepath.Base(a.Path) < filepath.Base(b.Path)
	})

	catalog := make([]*models.Shortcut, 0, len(sorted))
	for _, sc := range sorted {
		if n := len(catalog); n > 0 && catalog[n-1].Name == sc.Name {
			debugLog("Dropping duplicate %q from %s", sc.Name, sc.Path)
			continue
		}
		catalog = append(catalog, sc)
	}
	return catalog
}

// CountByDir returns how many catalog entries came from each search path
func CountByDir(catalog []*models.Shortcut, searchPaths []string) map[string]int {
	counts := make(map[string]int, len(searchPaths))
	for _, sc := range catalog {
		if sc.Dir >= 0 && sc.Dir < len(searchPaths) {
			counts[searchPaths[sc.Dir]]++
		}
	}
	return counts
}

// trimmedNonEmpty drops blank entries from a path list
func trimmedNonEmpty(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, path[1:])
}
