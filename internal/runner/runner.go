// Package runner starts resolved commands as detached processes.
package runner

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"mylauncher/internal/command"
)

// DebugMode enables debug logging
var DebugMode = false

func debugLog(format string, args ...interface{}) {
	if DebugMode {
		fmt.Fprintf(os.Stderr, "[RUNNER] "+format+"\n", args...)
	}
}

var (
	// ErrNoStrategy is returned when a runner has no strategies configured
	ErrNoStrategy = errors.New("no launch strategy configured")
	// ErrEmptyCommand is returned for a command without a program
	ErrEmptyCommand = errors.New("empty command")
)

// Strategy is one way of starting a process
type Strategy interface {
	// Name returns a short identifier used in logs and config
	Name() string

	// Start starts program without waiting for it to exit
	Start(program string, args []string) error
}

// Strategy names accepted in config
const (
	StrategyAuto   = "auto"
	StrategyScope  = "scope"
	StrategyDirect = "direct"
)

// DefaultScopeCommand runs the program in its own transient scope under the
// user's service manager
var DefaultScopeCommand = []string{"systemd-run", "--user", "--scope"}

// Result describes a successful launch
type Result struct {
	Strategy string
	Command  command.Command
}

// Runner tries its strategies in order until one starts the process
type Runner struct {
	strategies []Strategy
}

// New creates a runner with the given strategies, tried in order
func New(strategies ...Strategy) *Runner {
	return &Runner{strategies: strategies}
}

// ForMode builds a runner from a config strategy name. scopeCommand
// overrides DefaultScopeCommand when non-empty.
func ForMode(mode string, scopeCommand []string) (*Runner, error) {
	scope := NewScope(scopeCommand)
	direct := NewDirect()

	switch mode {
	case "", StrategyAuto:
		return New(scope, direct), nil
	case StrategyScope:
		return New(scope), nil
	case StrategyDirect:
		return New(direct), nil
	}
	return nil, fmt.Errorf("unknown launch strategy: %s", mode)
}

// Strategies returns the names of the configured strategies in order
func (r *Runner) Strategies() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.Name()
	}
	return names
}

// Launch starts cmd with the first strategy that succeeds. Only when every
// strategy fails is an error returned.
func (r *Runner) Launch(cmd command.Command) (Result, error) {
	if cmd.IsEmpty() {
		return Result{}, ErrEmptyCommand
	}
	if len(r.strategies) == 0 {
		return Result{}, ErrNoStrategy
	}

	var lastErr error
	for _, s := range r.strategies {
		err := s.Start(cmd.Program, cmd.Args)
		if err == nil {
			debugLog("Launched %q via %s", cmd.String(), s.Name())
			return Result{Strategy: s.Name(), Command: cmd}, nil
		}
		debugLog("Strategy %s failed for %q: %v", s.Name(), cmd.String(), err)
		lastErr = err
	}
	return Result{}, fmt.Errorf("failed to launch %s: %w", cmd.String(), lastErr)
}

// baseStrategy starts processes detached from the launcher
type baseStrategy struct {
	name   string
	prefix []string
}

func (s *baseStrategy) Name() string {
	return s.name
}

func (s *baseStrategy) Start(program string, args []string) error {
	argv := append(append(append([]string{}, s.prefix...), program), args...)
	cmd := exec.Command(argv[0], argv[1:]...)
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child in the background; its exit status is not reported.
	go func() { _ = cmd.Wait() }()
	return nil
}

// NewScope creates the transient-scope strategy
func NewScope(scopeCommand []string) Strategy {
	if len(scopeCommand) == 0 {
		scopeCommand = DefaultScopeCommand
	}
	return &baseStrategy{name: StrategyScope, prefix: scopeCommand}
}

// NewDirect creates the strategy that starts the program as a plain child process
func NewDirect() Strategy {
	return &baseStrategy{name: StrategyDirect}
}
