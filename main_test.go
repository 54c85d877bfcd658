package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv is a config file pointing at a private applications dir and history
type testEnv struct {
	dir        string
	apps       string
	history    string
	shortcuts  string
	configPath string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	env := &testEnv{
		dir:        dir,
		apps:       filepath.Join(dir, "applications"),
		history:    filepath.Join(dir, "history"),
		shortcuts:  filepath.Join(dir, "shortcuts.yaml"),
		configPath: filepath.Join(dir, "config.yaml"),
	}
	if err := os.MkdirAll(env.apps, 0755); err != nil {
		t.Fatalf("mkdir error = %v", err)
	}

	cfg := fmt.Sprintf("search_paths:\n  - %s\nhistory_path: %s\nshortcuts_path: %s\nlaunch:\n  strategy: direct\n",
		env.apps, env.history, env.shortcuts)
	if err := os.WriteFile(env.configPath, []byte(cfg), 0644); err != nil {
		t.Fatalf("write config error = %v", err)
	}

	env.addApp(t, "firefox.desktop", "Firefox", "firefox %u", "Web Browser")
	env.addApp(t, "gimp.desktop", "GIMP", "gimp-2.10 %U", "Image editor")
	env.addApp(t, "gimp-single.desktop", "GIMP Single-Window", "gimp --single", "Image editor")
	env.addApp(t, "files.desktop", "Files", "nautilus --new-window", "File manager")
	env.addApp(t, "broken.desktop", "Broken", "%f", "")
	return env
}

func (e *testEnv) addApp(t *testing.T, file, name, exec, comment string) {
	t.Helper()
	content := "[Desktop Entry]\nType=Application\nName=" + name + "\nExec=" + exec + "\n"
	if comment != "" {
		content += "Comment=" + comment + "\n"
	}
	if err := os.WriteFile(filepath.Join(e.apps, file), []byte(content), 0644); err != nil {
		t.Fatalf("write app error = %v", err)
	}
}

func (e *testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", e.configPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestListCommand_Initial(t *testing.T) {
	env := newTestEnv(t)
	os.WriteFile(env.history, []byte("GIMP\nFiles\n"), 0644)

	out, err := env.run(t, "list")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	want := []string{
		"GIMP\tImage editor",
		"Files\tFile manager",
		"Broken\tApplication",
		"Firefox\tWeb Browser",
		"GIMP Single-Window\tImage editor",
	}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d:\n%s", len(want), len(lines), out)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestListCommand_Query(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "list", "IMAGE")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if out != "GIMP\tImage editor\nGIMP Single-Window\tImage editor\n" {
		t.Errorf("Unexpected output:\n%s", out)
	}
}

func TestListCommand_AllVerbose(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "list", "--all", "--verbose")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out, "Firefox\tWeb Browser\tfirefox %u\t"+filepath.Join(env.apps, "firefox.desktop")) {
		t.Errorf("Expected verbose Firefox line, got:\n%s", out)
	}
	if strings.Count(out, "\n") != 5 {
		t.Errorf("Expected 5 entries, got:\n%s", out)
	}
}

func TestRunCommand_DryRun(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		query string
		want  string
	}{
		{"gimp", "gimp-2.10"},
		{"single", "gimp --single"},
		{"fire", "firefox"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			out, err := env.run(t, "run", "--dry-run", tt.query)
			if err != nil {
				t.Fatalf("run error = %v", err)
			}
			if strings.TrimSpace(out) != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, out)
			}
		})
	}

	if data, _ := os.ReadFile(env.history); len(data) != 0 {
		t.Errorf("Dry run should not record history, got %q", data)
	}
}

func TestRunCommand_JoinsArgs(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "run", "--dry-run", "gimp", "single-window")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if strings.TrimSpace(out) != "gimp --single" {
		t.Errorf("Expected gimp --single, got %q", out)
	}
}

func TestRunCommand_NoMatch(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.run(t, "run", "--dry-run", "zzz"); err == nil {
		t.Error("Expected error for unmatched query")
	}
}

func TestRunCommand_NothingToLaunch(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "run", "broken")
	if err == nil || !strings.Contains(err.Error(), "nothing to launch") {
		t.Errorf("Expected nothing to launch error, got %v", err)
	}
}

func TestRunCommand_LaunchesAndRecords(t *testing.T) {
	env := newTestEnv(t)
	env.addApp(t, "true.desktop", "True", "true", "Does nothing")

	out, err := env.run(t, "run", "true")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if !strings.Contains(out, "Launched (direct): true") {
		t.Errorf("Unexpected output %q", out)
	}

	out, err = env.run(t, "history")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if out != "True\n" {
		t.Errorf("Expected True in history, got %q", out)
	}
}

func TestHistoryCommand_Clear(t *testing.T) {
	env := newTestEnv(t)
	os.WriteFile(env.history, []byte("GIMP\nFiles\n"), 0644)

	out, err := env.run(t, "history")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if out != "GIMP\nFiles\n" {
		t.Errorf("Unexpected history %q", out)
	}

	if _, err := env.run(t, "history", "--clear"); err != nil {
		t.Fatalf("history --clear error = %v", err)
	}
	out, _ = env.run(t, "history")
	if out != "" {
		t.Errorf("Expected empty history, got %q", out)
	}
}

func TestConfigCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "config")
	if err != nil {
		t.Fatalf("config error = %v", err)
	}
	if !strings.Contains(out, "strategy: direct") {
		t.Errorf("Expected strategy in output, got:\n%s", out)
	}
	if !strings.Contains(out, env.apps) {
		t.Errorf("Expected search path in output, got:\n%s", out)
	}

	if _, err := env.run(t, "config", "--init"); err == nil {
		t.Error("Expected --init to refuse overwriting an existing config")
	}
}

func TestConfigCommand_Init(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new", "config.yaml")

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--config", path, "config", "--init"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("config --init error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if !strings.Contains(string(data), "strategy: auto") {
		t.Errorf("Expected default strategy, got:\n%s", data)
	}
}

func TestConfigCommand_InvalidFile(t *testing.T) {
	env := newTestEnv(t)
	os.WriteFile(env.configPath, []byte("launch:\n  strategy: teleport\n"), 0644)

	if _, err := env.run(t, "list"); err == nil {
		t.Error("Expected error for invalid config")
	}
}

func TestAddRemoveCommands(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "add", "--name", "Scratchpad", "--exec", "alacritty --class scratch", "--comment", "Floating terminal")
	if err != nil {
		t.Fatalf("add error = %v", err)
	}
	if !strings.Contains(out, "Added Scratchpad") {
		t.Errorf("Unexpected output %q", out)
	}

	out, err = env.run(t, "list", "scratch")
	if err != nil {
		t.Fatalf("list error = %v", err)
	}
	if out != "Scratchpad\tFloating terminal\n" {
		t.Errorf("Expected custom shortcut in list, got %q", out)
	}

	out, _ = env.run(t, "run", "--dry-run", "scratchpad")
	if strings.TrimSpace(out) != "alacritty --class scratch" {
		t.Errorf("Unexpected resolved command %q", out)
	}

	if _, err := env.run(t, "add", "--name", "scratchpad", "--exec", "other"); err == nil {
		t.Error("Expected duplicate error")
	}

	if _, err := env.run(t, "remove", "Scratchpad"); err != nil {
		t.Fatalf("remove error = %v", err)
	}
	if _, err := env.run(t, "remove", "Scratchpad"); err == nil {
		t.Error("Expected error removing a missing shortcut")
	}
	if out, _ := env.run(t, "list", "scratch"); out != "" {
		t.Errorf("Expected no match after remove, got %q", out)
	}
}

func TestAddCommand_RequiresFlags(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.run(t, "add", "--name", "OnlyName"); err == nil {
		t.Error("Expected error without --exec")
	}
	if _, err := env.run(t, "add", "--name", "Codes", "--exec", "%f"); err == nil {
		t.Error("Expected error for exec with nothing to launch")
	}
}

func TestVersionCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "mylauncher "+version) {
		t.Errorf("Unexpected version output %q", out)
	}
}
