// Package ranker orders the catalog for display and picks activation targets.
package ranker

import (
	"strings"

	"mylauncher/internal/models"
)

// InitialLimit caps the unfiltered view
const InitialLimit = 8

// Rank returns the records to display for query. An empty query shows recently
// launched applications first, then the rest of the catalog, capped to
// InitialLimit. A non-empty query returns every record whose name or
// description contains it, ignoring case, in catalog order. The query is
// used as typed, so whitespace is significant.
func Rank(catalog []*models.Shortcut, history []string, query string) []*models.Shortcut {
	if query == "" {
		return initial(catalog, history)
	}
	return Filter(catalog, query)
}

// Filter returns catalog records matching query, ignoring case
func Filter(catalog []*models.Shortcut, query string) []*models.Shortcut {
	lower := strings.ToLower(query)
	matches := make([]*models.Shortcut, 0)
	for _, sc := range catalog {
		if sc.Matches(lower) {
			matches = append(matches, sc)
		}
	}
	return matches
}

// initial builds the history-first view
func initial(catalog []*models.Shortcut, history []string) []*models.Shortcut {
	byName := make(map[string]*models.Shortcut, len(catalog))
	for _, sc := range catalog {
		byName[sc.Name] = sc
	}

	view := make([]*models.Shortcut, 0, InitialLimit)
	used := make(map[string]bool, len(history))
	for _, name := range history {
		if len(view) == InitialLimit {
			return view
		}
		sc, ok := byName[name]
		if !ok || used[name] {
			continue
		}
		used[name] = true
		view = append(view, sc)
	}

	for _, sc := range catalog {
		if len(view) == InitialLimit {
			break
		}
		if used[sc.Name] {
			continue
		}
		view = append(view, sc)
	}
	return view
}

// Target picks the record to launch for a typed query: an exact name match
// (ignoring case) wins, otherwise the first record whose name contains the
// query. Returns nil when nothing matches.
func Target(catalog []*models.Shortcut, query string) *models.Shortcut {
	if query == "" {
		return nil
	}

	lower := strings.ToLower(query)
	for _, sc := range catalog {
		if strings.EqualFold(sc.Name, query) {
			return sc
		}
	}
	for _, sc := range catalog {
		if strings.Contains(strings.ToLower(sc.Name), lower) {
			return sc
		}
	}
	return nil
}
