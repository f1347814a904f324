package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rkapur/pathwise/internal/ui/theme"
)

// Checklist is a multi-select list: arrows to move, space to toggle.
type Checklist struct {
	Items   []string
	Checked []bool
	Cursor  int
}

// NewChecklist creates a checklist with nothing checked.
func NewChecklist(items []string) Checklist {
	return Checklist{
		Items:   items,
		Checked: make([]bool, len(items)),
	}
}

// Update handles keyboard navigation and toggling.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if c.Cursor > 0 {
			c.Cursor--
		}
	case "down", "j":
		if c.Cursor < len(c.Items)-1 {
			c.Cursor++
		}
	case "space", " ":
		if c.Cursor >= 0 && c.Cursor < len(c.Checked) {
			c.Checked[c.Cursor] = !c.Checked[c.Cursor]
		}
	case "a":
		all := true
		for _, checked := range c.Checked {
			if !checked {
				all = false
				break
			}
		}
		for i := range c.Checked {
			c.Checked[i] = !all
		}
	}

	return c, nil
}

// Selected returns the checked item labels in list order.
func (c Checklist) Selected() []string {
	var out []string
	for i, checked := range c.Checked {
		if checked {
			out = append(out, c.Items[i])
		}
	}
	return out
}

// View renders the checklist.
func (c Checklist) View() string {
	var s string
	for i, item := range c.Items {
		box := "[ ]"
		if c.Checked[i] {
			box = "[✓]"
		}

		prefix := "  "
		if i == c.Cursor {
			prefix = "▸ "
		}

		line := prefix + box + " " + item
		switch {
		case i == c.Cursor:
			s += lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line) + "\n"
		case c.Checked[i]:
			s += lipgloss.NewStyle().Foreground(theme.Success).Render(line) + "\n"
		default:
			s += lipgloss.NewStyle().Foreground(theme.Text).Render(line) + "\n"
		}
	}
	return s
}
