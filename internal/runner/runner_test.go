package runner

import (
	"errors"
	"os/exec"
	"reflect"
	"testing"

	"mylauncher/internal/command"
)

// fakeStrategy records calls and returns a fixed error
type fakeStrategy struct {
	name  string
	err   error
	calls [][]string
}

func (f *fakeStrategy) Name() string { return f.name }

func (f *fakeStrategy) Start(program string, args []string) error {
	f.calls = append(f.calls, append([]string{program}, args...))
	return f.err
}

var firefox = command.Command{Program: "firefox", Args: []string{"--new-window"}}

func TestLaunch_PrimarySucceeds(t *testing.T) {
	primary := &fakeStrategy{name: "scope"}
	fallback := &fakeStrategy{name: "direct"}

	res, err := New(primary, fallback).Launch(firefox)
	if err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if res.Strategy != "scope" {
		t.Errorf("Expected scope strategy, got %s", res.Strategy)
	}
	if len(fallback.calls) != 0 {
		t.Error("Fallback should not be tried when primary starts")
	}
	if !reflect.DeepEqual(primary.calls[0], []string{"firefox", "--new-window"}) {
		t.Errorf("Program and args should be passed unmodified, got %v", primary.calls[0])
	}
}

func TestLaunch_FallsBack(t *testing.T) {
	primary := &fakeStrategy{name: "scope", err: errors.New("systemd-run: not found")}
	fallback := &fakeStrategy{name: "direct"}

	res, err := New(primary, fallback).Launch(firefox)
	if err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if res.Strategy != "direct" {
		t.Errorf("Expected direct strategy, got %s", res.Strategy)
	}
	if len(fallback.calls) != 1 {
		t.Errorf("Expected one fallback call, got %d", len(fallback.calls))
	}
}

func TestLaunch_AllFail(t *testing.T) {
	last := errors.New("exec: firefox: not found")
	r := New(&fakeStrategy{name: "scope", err: errors.New("no scope")}, &fakeStrategy{name: "direct", err: last})

	_, err := r.Launch(firefox)
	if err == nil {
		t.Fatal("Expected error when every strategy fails")
	}
	if !errors.Is(err, last) {
		t.Errorf("Expected error to wrap the last failure, got %v", err)
	}
}

func TestLaunch_EmptyCommand(t *testing.T) {
	s := &fakeStrategy{name: "direct"}
	if _, err := New(s).Launch(command.Command{}); !errors.Is(err, ErrEmptyCommand) {
		t.Errorf("Expected ErrEmptyCommand, got %v", err)
	}
	if len(s.calls) != 0 {
		t.Error("Strategy should not be called for an empty command")
	}
}

func TestLaunch_NoStrategy(t *testing.T) {
	if _, err := New().Launch(firefox); !errors.Is(err, ErrNoStrategy) {
		t.Errorf("Expected ErrNoStrategy, got %v", err)
	}
}

func TestForMode(t *testing.T) {
	tests := []struct {
		mode string
		want []string
	}{
		{"", []string{"scope", "direct"}},
		{"auto", []string{"scope", "direct"}},
		{"scope", []string{"scope"}},
		{"direct", []string{"direct"}},
	}

	for _, tt := range tests {
		r, err := ForMode(tt.mode, nil)
		if err != nil {
			t.Fatalf("ForMode(%q) error = %v", tt.mode, err)
		}
		if got := r.Strategies(); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ForMode(%q) = %v, want %v", tt.mode, got, tt.want)
		}
	}

	if _, err := ForMode("bogus", nil); err == nil {
		t.Error("Expected error for unknown mode")
	}
}

func TestNewScope_DefaultPrefix(t *testing.T) {
	s := NewScope(nil).(*baseStrategy)
	if !reflect.DeepEqual(s.prefix, []string{"systemd-run", "--user", "--scope"}) {
		t.Errorf("Unexpected scope prefix %v", s.prefix)
	}

	custom := NewScope([]string{"runner-wrapper"}).(*baseStrategy)
	if !reflect.DeepEqual(custom.prefix, []string{"runner-wrapper"}) {
		t.Errorf("Expected custom prefix, got %v", custom.prefix)
	}
}

func TestDirect_StartsRealProcess(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	if err := NewDirect().Start("true", nil); err != nil {
		t.Errorf("Start() error = %v", err)
	}
	if err := NewDirect().Start("/definitely/not/a/program", nil); err == nil {
		t.Error("Expected error for missing program")
	}
}

func TestScope_MissingSupervisorFallsBackToDirect(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	r := New(NewScope([]string{"/definitely/not/systemd-run", "--user", "--scope"}), NewDirect())

	res, err := r.Launch(command.Command{Program: "true"})
	if err != nil {
		t.Fatalf("Launch() error = %v", err)
	}
	if res.Strategy != StrategyDirect {
		t.Errorf("Expected direct fallback, got %s", res.Strategy)
	}
}
