package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/rkapur/pathwise/internal/router"
	"github.com/rkapur/pathwise/internal/screen"
	"github.com/rkapur/pathwise/internal/store"
	"github.com/rkapur/pathwise/internal/ui/layout"
	"github.com/rkapur/pathwise/internal/ui/theme"
)

type historyLoadedMsg struct {
	Journeys []store.JourneySummary
	Chats    map[string][]store.ChatEventRecord // journeyID → turns
	Err      error
}

// HistoryScreen lists past journeys, expandable to show the chat log.
type HistoryScreen struct {
	eventRepo store.EventRepo
	journeys  []store.JourneySummary
	chats     map[string][]store.ChatEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
		chats:     make(map[string][]store.ChatEventRecord),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		journeys, err := s.eventRepo.QueryJourneySummaries(ctx, store.QueryOpts{Limit: 50})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Journeys: journeys, Chats: make(map[string][]store.ChatEventRecord)}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Chat log"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.journeys = msg.Journeys
			s.chats = msg.Chats
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.journeys)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			return s, s.toggleChat()
		}
	}
	return s, nil
}

// toggleChat expands or collapses the selected journey's chat log,
// loading it lazily on first expand.
func (s *HistoryScreen) toggleChat() tea.Cmd {
	if s.selected >= len(s.journeys) {
		return nil
	}
	s.expanded[s.selected] = !s.expanded[s.selected]

	id := s.journeys[s.selected].JourneyID
	if _, ok := s.chats[id]; ok || !s.expanded[s.selected] {
		return nil
	}

	return func() tea.Msg {
		turns, err := s.eventRepo.QueryChatTurns(context.Background(), id, store.QueryOpts{})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		chats := make(map[string][]store.ChatEventRecord, len(s.chats)+1)
		for k, v := range s.chats {
			chats[k] = v
		}
		chats[id] = turns
		return historyLoadedMsg{Journeys: s.journeys, Chats: chats}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.journeys) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No journeys yet. Pick a topic to start one!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, jny := range s.journeys {
		dateStr := jny.StartedAt.Format("Jan 02, 2006")

		status := jny.LastStage
		switch {
		case jny.ChatActive:
			status = "completed"
		case jny.Failed:
			status = "failed at " + jny.LastStage
		case status == "":
			status = "started"
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %-30s  %s", prefix, dateStr, truncate(jny.Topic, 30), status)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		if jny.Failed && i != s.selected {
			style = style.Foreground(theme.Error)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			turns := s.chats[jny.JourneyID]
			if len(turns) == 0 {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
						Render("    No chat for this journey")))
				b.WriteString("\n")
			}
			for _, turn := range turns {
				who := "You"
				style := lipgloss.NewStyle().Foreground(theme.Accent)
				if turn.Role != "user" {
					who = "Mentor"
					style = lipgloss.NewStyle().Foreground(theme.TextDim)
				}
				chatLine := fmt.Sprintf("    %s: %s", who, truncate(turn.Content, width-20))
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(chatLine)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
