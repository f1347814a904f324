package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rkapur/pathwise/internal/ui/theme"
)

// RatingPicker assigns one of a fixed set of levels to each item:
// up/down moves between items, left/right cycles the level.
type RatingPicker struct {
	Items   []string
	Levels  []string
	Ratings []int // index into Levels per item
	Cursor  int
}

// NewRatingPicker creates a picker with every item at the first level.
func NewRatingPicker(items, levels []string) RatingPicker {
	return RatingPicker{
		Items:   items,
		Levels:  levels,
		Ratings: make([]int, len(items)),
	}
}

// Update handles keyboard navigation and level cycling.
func (p RatingPicker) Update(msg tea.Msg) (RatingPicker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if p.Cursor > 0 {
			p.Cursor--
		}
	case "down", "j":
		if p.Cursor < len(p.Items)-1 {
			p.Cursor++
		}
	case "left", "h":
		if p.Ratings[p.Cursor] > 0 {
			p.Ratings[p.Cursor]--
		}
	case "right", "l":
		if p.Ratings[p.Cursor] < len(p.Levels)-1 {
			p.Ratings[p.Cursor]++
		}
	}

	return p, nil
}

// Rating returns the chosen level label for each item.
func (p RatingPicker) Rating() map[string]string {
	out := make(map[string]string, len(p.Items))
	for i, item := range p.Items {
		out[item] = p.Levels[p.Ratings[i]]
	}
	return out
}

// View renders the picker: one row per item with the level selector inline.
func (p RatingPicker) View() string {
	var s string
	for i, item := range p.Items {
		var levels string
		for j, level := range p.Levels {
			if j == p.Ratings[i] {
				levels += lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("●" + level)
			} else {
				levels += lipgloss.NewStyle().Foreground(theme.TextDim).Render("○" + level)
			}
			if j < len(p.Levels)-1 {
				levels += "  "
			}
		}

		prefix := "  "
		nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
		if i == p.Cursor {
			prefix = "▸ "
			nameStyle = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
		}

		s += fmt.Sprintf("%s%s\n      %s\n", prefix, nameStyle.Render(item), levels)
	}
	return s
}
