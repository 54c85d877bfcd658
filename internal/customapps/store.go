// Package customapps keeps user-defined shortcuts that are not backed by a
// .desktop file.
package customapps

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mylauncher/internal/models"

	"gopkg.in/yaml.v3"
)

// SourceDir is the directory index given to custom shortcuts so they sort
// ahead of every search path when names collide.
const SourceDir = -1

// Definition is one user-defined shortcut as stored on disk
type Definition struct {
	Name    string `yaml:"name"`
	Exec    string `yaml:"exec"`
	Icon    string `yaml:"icon,omitempty"`
	Comment string `yaml:"comment,omitempty"`
}

// File is the on-disk layout of the store
type File struct {
	Shortcuts []Definition `yaml:"shortcuts"`
}

// Store persists custom shortcut definitions in a YAML file.
type Store struct {
	path string
}

// New creates a new custom shortcut store.
func New(path string) *Store {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}
	return &Store{path: path}
}

// DefaultPath returns the default custom shortcuts path.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil || configDir == "" {
		home, _ := os.UserHomeDir()
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "mylauncher", "shortcuts.yaml")
}

// Path returns the store file location
func (s *Store) Path() string {
	return s.path
}

// Load returns all custom definitions.
func (s *Store) Load() ([]Definition, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Definition{}, nil
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	if f.Shortcuts == nil {
		return []Definition{}, nil
	}
	return f.Shortcuts, nil
}

// Shortcuts loads the definitions as catalog records. Invalid definitions
// are skipped.
func (s *Store) Shortcuts() ([]*models.Shortcut, error) {
	defs, err := s.Load()
	if err != nil {
		return nil, err
	}

	out := make([]*models.Shortcut, 0, len(defs))
	for _, def := range defs {
		sc := def.Shortcut()
		if !sc.IsValid() {
			continue
		}
		sc.Path = s.path
		sc.Dir = SourceDir
		out = append(out, sc)
	}
	return out, nil
}

// Shortcut converts the definition into a catalog record with defaults applied
func (d Definition) Shortcut() *models.Shortcut {
	return models.NewShortcut(d.Name, d.Exec, d.Icon, d.Comment)
}

// Add appends a definition to the store.
func (s *Store) Add(def Definition) error {
	def, err := sanitizeDefinition(def)
	if err != nil {
		return err
	}

	existing, err := s.Load()
	if err != nil {
		return err
	}

	for _, d := range existing {
		if strings.EqualFold(d.Name, def.Name) {
			return fmt.Errorf("custom shortcut %q already exists", def.Name)
		}
	}

	existing = append(existing, def)
	return s.save(existing)
}

// Remove deletes the definition with the given name (case-insensitive).
// Returns false if no such definition exists.
func (s *Store) Remove(name string) (bool, error) {
	existing, err := s.Load()
	if err != nil {
		return false, err
	}

	kept := make([]Definition, 0, len(existing))
	for _, d := range existing {
		if !strings.EqualFold(d.Name, strings.TrimSpace(name)) {
			kept = append(kept, d)
		}
	}
	if len(kept) == len(existing) {
		return false, nil
	}
	return true, s.save(kept)
}

func (s *Store) save(defs []Definition) error {
	data, err := yaml.Marshal(File{Shortcuts: defs})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

func sanitizeDefinition(def Definition) (Definition, error) {
	def.Name = strings.TrimSpace(def.Name)
	def.Exec = strings.TrimSpace(def.Exec)
	def.Icon = strings.TrimSpace(def.Icon)
	def.Comment = strings.TrimSpace(def.Comment)

	if def.Name == "" {
		return def, fmt.Errorf("name is required")
	}
	if def.Exec == "" {
		return def, fmt.Errorf("exec is required")
	}
	return def, nil
}
