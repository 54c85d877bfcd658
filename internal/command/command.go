// Package command turns desktop entry exec templates into runnable commands.
package command

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// Command is a program with its arguments, ready to be started
type Command struct {
	Program string
	Args    []string
}

// String renders the command line for display
func (c Command) String() string {
	return strings.Join(append([]string{c.Program}, c.Args...), " ")
}

// IsEmpty reports whether there is nothing to launch
func (c Command) IsEmpty() bool {
	return c.Program == ""
}

// ErrUndefined is returned by Expand when a variable has no value
var ErrUndefined = errors.New("undefined variable")

// Resolve converts an exec template into a command. Field codes (%f, %U, ...)
// are dropped, environment variables and a leading ~ are expanded. ok is false
// when no tokens remain.
func Resolve(execTemplate string) (Command, bool) {
	return NewResolver(os.LookupEnv, os.UserHomeDir).Resolve(execTemplate)
}

// Resolver resolves exec templates against an environment
type Resolver struct {
	lookupEnv func(string) (string, bool)
	homeDir   func() (string, error)
}

// NewResolver creates a resolver using the given environment lookups
func NewResolver(lookupEnv func(string) (string, bool), homeDir func() (string, error)) *Resolver {
	return &Resolver{lookupEnv: lookupEnv, homeDir: homeDir}
}

// Resolve converts an exec template into a command
func (r *Resolver) Resolve(execTemplate string) (Command, bool) {
	tokens := StripFieldCodes(strings.Fields(execTemplate))
	if len(tokens) == 0 {
		return Command{}, false
	}

	joined := strings.Join(tokens, " ")
	expanded, err := r.Expand(joined)
	if err != nil {
		expanded = joined
	}

	parts := strings.Fields(expanded)
	if len(parts) == 0 {
		return Command{}, false
	}
	return Command{Program: parts[0], Args: parts[1:]}, true
}

// StripFieldCodes drops every token starting with %
func StripFieldCodes(tokens []string) []string {
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "%") {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}

// Expand performs shell-style expansion of a leading ~ and of $VAR / ${VAR}
// references. Any undefined variable makes the whole expansion fail.
func (r *Resolver) Expand(s string) (string, error) {
	s, err := r.expandTilde(s)
	if err != nil {
		return "", err
	}

	var missing error
	out := os.Expand(s, func(name string) string {
		if name == "$" {
			return "$"
		}
		v, ok := r.lookupEnv(name)
		if !ok {
			if missing == nil {
				missing = fmt.Errorf("%w: %s", ErrUndefined, name)
			}
			return ""
		}
		return v
	})
	if missing != nil {
		return "", missing
	}
	return out, nil
}

// expandTilde replaces a leading ~ or ~/ with the home directory
func (r *Resolver) expandTilde(s string) (string, error) {
	if s != "~" && !strings.HasPrefix(s, "~/") {
		return s, nil
	}
	home, err := r.homeDir()
	if err != nil {
		return "", err
	}
	if home == "" {
		return "", errors.New("home directory is not set")
	}
	return home + s[1:], nil
}
