package components

import (
	"fmt"
	"strings"

	"mylauncher/internal/models"
	"mylauncher/internal/ui"

	"github.com/mattn/go-runewidth"
)

// ResultList is the ranked list of shortcuts under the query input
type ResultList struct {
	Items   []*models.Shortcut
	Recent  map[string]bool // Names to mark as recently launched
	Cursor  int
	Width   int
	Height  int
	Focused bool
}

// NewResultList creates a new result list
func NewResultList(items []*models.Shortcut) *ResultList {
	return &ResultList{
		Items:   items,
		Recent:  map[string]bool{},
		Cursor:  0,
		Width:   60,
		Height:  10,
		Focused: true,
	}
}

// SetItems replaces the list content and moves the cursor back to the top
func (l *ResultList) SetItems(items []*models.Shortcut) {
	l.Items = items
	l.Cursor = 0
}

// SetRecent marks names from the history
func (l *ResultList) SetRecent(names []string) {
	l.Recent = make(map[string]bool, len(names))
	for _, name := range names {
		l.Recent[name] = true
	}
}

// MoveUp moves cursor up
func (l *ResultList) MoveUp() {
	if l.Cursor > 0 {
		l.Cursor--
	}
}

// MoveDown moves cursor down
func (l *ResultList) MoveDown() {
	if l.Cursor < len(l.Items)-1 {
		l.Cursor++
	}
}

// PageUp moves cursor up by a page
func (l *ResultList) PageUp() {
	l.Cursor -= l.pageSize()
	if l.Cursor < 0 {
		l.Cursor = 0
	}
}

// PageDown moves cursor down by a page
func (l *ResultList) PageDown() {
	l.Cursor += l.pageSize()
	if l.Cursor >= len(l.Items) {
		l.Cursor = max(0, len(l.Items)-1)
	}
}

func (l *ResultList) pageSize() int {
	if l.Height < 1 {
		return 10
	}
	return l.Height
}

// Current returns the highlighted shortcut
func (l *ResultList) Current() *models.Shortcut {
	if len(l.Items) > 0 && l.Cursor < len(l.Items) {
		return l.Items[l.Cursor]
	}
	return nil
}

// View renders the list
func (l *ResultList) View() string {
	if len(l.Items) == 0 {
		return ui.MutedStyle.Render("  No matching applications")
	}

	var b strings.Builder

	visibleHeight := l.pageSize()
	startIdx := 0
	if l.Cursor >= visibleHeight {
		startIdx = l.Cursor - visibleHeight + 1
	}
	endIdx := min(startIdx+visibleHeight, len(l.Items))

	for i := startIdx; i < endIdx; i++ {
		b.WriteString(l.renderItem(l.Items[i], i == l.Cursor))
		if i < endIdx-1 {
			b.WriteString("\n")
		}
	}

	if len(l.Items) > visibleHeight {
		b.WriteString("\n")
		b.WriteString(ui.MutedStyle.Render(fmt.Sprintf("  %d/%d", l.Cursor+1, len(l.Items))))
	}

	return b.String()
}

// renderItem renders one line: cursor, name, recent mark and description
func (l *ResultList) renderItem(sc *models.Shortcut, isCursor bool) string {
	cursor := "  "
	if isCursor {
		cursor = ui.CursorStyle.Render("> ")
	}

	// Name gets up to half the width, the description takes the rest
	nameWidth := max(10, (l.Width-6)/2)
	name := runewidth.FillRight(runewidth.Truncate(sc.Name, nameWidth, "…"), nameWidth)

	mark := " "
	if l.Recent[sc.Name] {
		mark = ui.RecentStyle.Render("*")
	}

	descWidth := max(0, l.Width-nameWidth-6)
	desc := runewidth.Truncate(sc.Description, descWidth, "…")

	content := fmt.Sprintf("%s%s %s", ui.NameStyle.Render(name), mark, ui.DescriptionStyle.Render(desc))

	if isCursor && l.Focused {
		return cursor + ui.SelectedItemStyle.Render(content)
	}
	return cursor + ui.ItemStyle.Render(content)
}
