package ui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter provides syntax highlighting for commands and config text
type Highlighter struct {
	style *chroma.Style
}

// NewHighlighter creates a new syntax highlighter
func NewHighlighter() *Highlighter {
	return &Highlighter{
		style: styles.Get("catppuccin-mocha"),
	}
}

// HighlightCommand highlights a resolved command line as shell
func (h *Highlighter) HighlightCommand(cmd string) string {
	return h.HighlightLine(cmd, "bash")
}

// HighlightLine highlights a single line with the named lexer. Unknown
// languages return the line unchanged.
func (h *Highlighter) HighlightLine(line, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		return line
	}

	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}

	// Some lexers append a newline to their input
	singleLine := !strings.Contains(line, "\n")

	var result strings.Builder
	for token := iterator(); token != chroma.EOF; token = iterator() {
		style := h.style.Get(token.Type)
		text := token.Value
		if singleLine {
			text = strings.ReplaceAll(text, "\n", "")
			if text == "" {
				continue
			}
		}

		if style.Colour.IsSet() {
			color := style.Colour.String()
			styled := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			if style.Bold == chroma.Yes {
				styled = styled.Bold(true)
			}
			if style.Italic == chroma.Yes {
				styled = styled.Italic(true)
			}
			result.WriteString(styled.Render(text))
		} else {
			result.WriteString(text)
		}
	}

	return result.String()
}

// HighlightText highlights multi-line text line by line, e.g. a rendered config file
func (h *Highlighter) HighlightText(text, language string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = h.HighlightLine(line, language)
	}
	return strings.Join(lines, "\n")
}
