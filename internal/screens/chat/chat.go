package chat

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/rkapur/pathwise/internal/journey"
	"github.com/rkapur/pathwise/internal/router"
	"github.com/rkapur/pathwise/internal/screen"
	"github.com/rkapur/pathwise/internal/ui/components"
	"github.com/rkapur/pathwise/internal/ui/layout"
	"github.com/rkapur/pathwise/internal/ui/theme"
)

const spinnerInterval = 100 * time.Millisecond

// replyMsg is sent when the mentor's answer arrives.
type replyMsg struct {
	Err error
}

// spinnerTickMsg animates the waiting indicator.
type spinnerTickMsg time.Time

// ChatScreen is the open-ended conversation after the staged pipeline:
// ask anything about the topic, grounded in the journey's context.
type ChatScreen struct {
	ctrl    *journey.Controller
	input   components.TextInput
	spinner components.Spinner
	waiting bool
	errMsg  string
	fatal   bool
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

// New creates a ChatScreen for a controller in the chat state.
func New(ctrl *journey.Controller) *ChatScreen {
	return &ChatScreen{
		ctrl:  ctrl,
		input: components.NewTextInput("Ask about "+ctrl.Context().Topic+"...", 400),
	}
}

func (c *ChatScreen) Title() string {
	return "Chat"
}

func (c *ChatScreen) Init() tea.Cmd {
	return c.input.Init()
}

func (c *ChatScreen) KeyHints() []layout.KeyHint {
	if c.waiting {
		return []layout.KeyHint{
			{Key: "...", Description: "Waiting for answer"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "New topic"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if !c.waiting {
			return c, nil
		}
		c.spinner.Tick()
		return c, c.spinnerTick()

	case replyMsg:
		c.waiting = false
		if msg.Err != nil {
			if errors.Is(msg.Err, journey.ErrSessionFailed) || c.ctrl.Fatal() {
				c.fatal = true
			}
			c.errMsg = msg.Err.Error()
			return c, nil
		}
		c.errMsg = ""
		c.input.Reset()
		return c, nil

	case tea.KeyMsg:
		return c.handleKey(msg)
	}

	if !c.waiting {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}
	return c, nil
}

func (c *ChatScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if c.waiting {
		return c, nil
	}

	switch msg.String() {
	case "esc":
		return c, func() tea.Msg { return router.PopScreenMsg{} }
	case "enter":
		return c, c.send()
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c *ChatScreen) send() tea.Cmd {
	question := strings.TrimSpace(c.input.Value())
	if question == "" || c.fatal {
		return nil
	}

	c.waiting = true
	ask := func() tea.Msg {
		_, err := c.ctrl.Chat(context.Background(), question)
		return replyMsg{Err: err}
	}
	return tea.Batch(ask, c.spinnerTick())
}

func (c *ChatScreen) spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (c *ChatScreen) View(width, height int) string {
	wrapWidth := width - 10
	if wrapWidth < 20 {
		wrapWidth = 20
	}

	// Render the newest turns that fit above the input line.
	log := c.ctrl.ChatLog()
	var lines []string
	for _, turn := range log {
		label := theme.UserTurn.Render("You")
		body := theme.Body
		if turn.Role != "user" {
			label = theme.Selected.Render("Mentor")
			body = theme.AssistantTurn
		}
		wrapped := lipgloss.NewStyle().Width(wrapWidth).Render(body.Render(turn.Content))
		lines = append(lines, label)
		lines = append(lines, strings.Split(wrapped, "\n")...)
		lines = append(lines, "")
	}

	footer := c.renderInputArea(wrapWidth)
	footerHeight := lipgloss.Height(footer)

	avail := height - footerHeight - 1
	if avail < 0 {
		avail = 0
	}
	if len(lines) > avail {
		lines = lines[len(lines)-avail:]
	}

	history := strings.Join(lines, "\n")
	if len(log) == 0 {
		history = theme.Hint.Render("Your path is ready. Ask anything about " + c.ctrl.Context().Topic + ".")
	}

	content := lipgloss.NewStyle().Width(width - 6).Height(avail).Render(history) +
		"\n" + footer

	return lipgloss.NewStyle().Padding(0, 3).Render(content)
}

func (c *ChatScreen) renderInputArea(width int) string {
	if c.fatal {
		return theme.ErrorText.Render("The provider rejected the API key. Fix it and restart pathwise.")
	}
	if c.waiting {
		return c.spinner.View("Thinking...")
	}
	area := c.input.View()
	if c.errMsg != "" {
		area = theme.ErrorText.Render(c.errMsg) + "\n" + area
	}
	return area
}
