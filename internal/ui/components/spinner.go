package components

import (
	"charm.land/lipgloss/v2"

	"github.com/rkapur/pathwise/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is a frame-cycling loading indicator. The owning screen
// drives it by calling Tick on its own timer message.
type Spinner struct {
	frame int
}

// Tick advances to the next frame.
func (s *Spinner) Tick() {
	s.frame = (s.frame + 1) % len(spinnerFrames)
}

// View renders the current frame with a label.
func (s Spinner) View(label string) string {
	return lipgloss.NewStyle().Foreground(theme.Primary).Render(spinnerFrames[s.frame]) +
		" " +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
}
