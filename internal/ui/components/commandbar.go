package components

import (
	"strings"

	"mylauncher/internal/ui"

	"github.com/charmbracelet/x/ansi"
)

// StatusType classifies the message shown in the command bar
type StatusType string

const (
	StatusNone    StatusType = ""
	StatusSuccess StatusType = "success"
	StatusError   StatusType = "error"
	StatusWarning StatusType = "warning"
	StatusInfo    StatusType = "info"
)

// CommandBar shows the resolved command for the highlighted entry and the
// latest status message
type CommandBar struct {
	Command     string
	Status      string
	StatusType  StatusType
	Width       int
	highlighter *ui.Highlighter
}

// NewCommandBar creates a new command bar
func NewCommandBar() *CommandBar {
	return &CommandBar{
		Width:       80,
		highlighter: ui.NewHighlighter(),
	}
}

// SetCommand updates the resolved command line. Empty hides the line.
func (c *CommandBar) SetCommand(cmd string) {
	c.Command = cmd
}

// SetStatus shows a status message
func (c *CommandBar) SetStatus(statusType StatusType, msg string) {
	c.StatusType = statusType
	c.Status = msg
}

// ClearStatus removes the status message
func (c *CommandBar) ClearStatus() {
	c.StatusType = StatusNone
	c.Status = ""
}

// SetWidth sets the width of the bar
func (c *CommandBar) SetWidth(width int) {
	c.Width = width
}

// View renders the bar
func (c *CommandBar) View() string {
	var lines []string

	if c.Command != "" {
		cmd := c.Command
		if c.Width > 10 {
			cmd = ansi.Truncate(cmd, c.Width-8, "…")
		}
		lines = append(lines, ui.MutedStyle.Render("$ ")+c.highlighter.HighlightCommand(cmd))
	}

	if c.Status != "" {
		lines = append(lines, ui.RenderNotification(string(c.StatusType), c.Status))
	}

	if len(lines) == 0 {
		return ""
	}
	return ui.CommandStyle.Width(max(0, c.Width-2)).Render(strings.Join(lines, "\n"))
}

// Height returns the number of terminal lines the bar uses
func (c *CommandBar) Height() int {
	n := 0
	if c.Command != "" {
		n++
	}
	if c.Status != "" {
		n++
	}
	if n == 0 {
		return 0
	}
	return n + 1 // Top border
}
