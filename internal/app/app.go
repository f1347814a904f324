package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rkapur/pathwise/internal/journey"
	"github.com/rkapur/pathwise/internal/llm"
	"github.com/rkapur/pathwise/internal/router"
	"github.com/rkapur/pathwise/internal/screen"
	"github.com/rkapur/pathwise/internal/screens/chat"
	"github.com/rkapur/pathwise/internal/screens/history"
	"github.com/rkapur/pathwise/internal/screens/journeyui"
	"github.com/rkapur/pathwise/internal/screens/welcome"
	"github.com/rkapur/pathwise/internal/store"
	"github.com/rkapur/pathwise/internal/ui/layout"
)

// Options carry the app's dependencies from the composition root.
type Options struct {
	Provider  llm.Provider
	EventRepo store.EventRepo
	Config    journey.Config
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	ctrl   *journey.Controller
	width  int
	height int
}

// newAppModel wires one controller for the whole program run and
// builds the screen graph around it.
func newAppModel(opts Options) AppModel {
	ctrl := journey.New(opts.Provider, opts.Config, opts.EventRepo)

	journeyFactory := func(topic string) (screen.Screen, error) {
		// Abandon whatever came before; one journey at a time.
		ctrl.Reset()
		if err := ctrl.Start(topic); err != nil {
			return nil, err
		}
		chatFactory := func() screen.Screen { return chat.New(ctrl) }
		return journeyui.New(ctrl, chatFactory), nil
	}
	historyFactory := func() screen.Screen { return history.New(opts.EventRepo) }

	welcomeScreen := welcome.New(journeyFactory, historyFactory)
	return AppModel{
		router: router.New(welcomeScreen),
		ctrl:   ctrl,
	}
}

func (m AppModel) Init() tea.Cmd {
	active := m.router.Active()
	if active == nil {
		return nil
	}
	return active.Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	topic := m.ctrl.Context().Topic
	header := layout.RenderHeader(title, topic, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if footerHints == nil {
		footerHints = []layout.KeyHint{
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
