package models

import "strings"

const (
	// DefaultDescription is shown when a shortcut has no Comment
	DefaultDescription = "Application"
	// DefaultIcon is used when a shortcut has no Icon
	DefaultIcon = "application-x-executable"
)

// Shortcut represents one discovered application shortcut
type Shortcut struct {
	Name        string // Display name, unique within a catalog
	Exec        string // Raw exec template (field codes not substituted)
	Icon        string // Icon name or absolute path, not interpreted
	Description string // Subtitle shown under the name
	Hidden      bool   // NoDisplay/Hidden entries never reach the catalog
	Terminal    bool   // Terminal entries never reach the catalog
	Path        string // Source .desktop file
	Dir         int    // Index of the search path the file was found in
}

// NewShortcut creates a shortcut with the default icon and description filled in
func NewShortcut(name, exec, icon, description string) *Shortcut {
	s := &Shortcut{
		Name:        strings.TrimSpace(name),
		Exec:        strings.TrimSpace(exec),
		Icon:        strings.TrimSpace(icon),
		Description: strings.TrimSpace(description),
	}
	if s.Icon == "" {
		s.Icon = DefaultIcon
	}
	if s.Description == "" {
		s.Description = DefaultDescription
	}
	return s
}

// IsValid reports whether the shortcut has the minimum fields to be launched
func (s *Shortcut) IsValid() bool {
	return s != nil && s.Name != "" && s.Exec != ""
}

// Visible reports whether the shortcut belongs in the catalog
func (s *Shortcut) Visible() bool {
	return s.IsValid() && !s.Hidden && !s.Terminal
}

// Matches reports whether name or description contains the already lowercased query
func (s *Shortcut) Matches(lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(s.Description), lowerQuery)
}

// Names returns the display names of the given shortcuts in order
func Names(shortcuts []*Shortcut) []string {
	names := make([]string, len(shortcuts))
	for i, s := range shortcuts {
		names[i] = s.Name
	}
	return names
}
