package welcome

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rkapur/pathwise/internal/router"
	"github.com/rkapur/pathwise/internal/screen"
	"github.com/rkapur/pathwise/internal/ui/components"
	"github.com/rkapur/pathwise/internal/ui/layout"
	"github.com/rkapur/pathwise/internal/ui/theme"
)

// WelcomeScreen asks for the topic to study and starts a journey.
type WelcomeScreen struct {
	input          components.TextInput
	journeyFactory func(topic string) (screen.Screen, error)
	historyFactory func() screen.Screen
	errMsg         string
}

var _ screen.Screen = (*WelcomeScreen)(nil)
var _ screen.KeyHintProvider = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. journeyFactory starts the journey for
// the entered topic and returns the screen that drives it; an error
// (blank topic, session in a bad state) keeps the user here.
func New(journeyFactory func(topic string) (screen.Screen, error), historyFactory func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{
		input:          components.NewTextInput("e.g. Linear Algebra", 80),
		journeyFactory: journeyFactory,
		historyFactory: historyFactory,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return w.input.Init()
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Start"},
		{Key: "Ctrl+H", Description: "History"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			return w, w.startJourney()
		case "ctrl+h":
			if w.historyFactory != nil {
				hist := w.historyFactory()
				return w, func() tea.Msg {
					return router.PushScreenMsg{Screen: hist}
				}
			}
			return w, nil
		}
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(msg)
	return w, cmd
}

func (w *WelcomeScreen) startJourney() tea.Cmd {
	topic := strings.TrimSpace(w.input.Value())
	if topic == "" {
		w.errMsg = "Enter a topic to get started."
		return nil
	}

	s, err := w.journeyFactory(topic)
	if err != nil {
		w.errMsg = err.Error()
		return nil
	}
	w.errMsg = ""
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, RenderBanner(width))
	sections = append(sections, "")

	tagline := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("Plan a learning path for any topic")
	sections = append(sections, tagline)
	sections = append(sections, "")
	sections = append(sections, "")

	prompt := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("What do you want to learn?")
	sections = append(sections, prompt)
	sections = append(sections, "")
	sections = append(sections, w.input.View())

	if w.errMsg != "" {
		sections = append(sections, "")
		sections = append(sections, theme.ErrorText.Render(w.errMsg))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
