package journeyui

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/rkapur/pathwise/internal/journey"
	"github.com/rkapur/pathwise/internal/router"
	"github.com/rkapur/pathwise/internal/screen"
	"github.com/rkapur/pathwise/internal/ui/components"
	"github.com/rkapur/pathwise/internal/ui/layout"
)

const spinnerInterval = 100 * time.Millisecond

// JourneyScreen drives one learning journey through its stages: it runs
// the pending stage in the background, collects the learner's
// confirmations and selections between stages, and hands off to the
// chat screen once resources are confirmed.
type JourneyScreen struct {
	ctrl        *journey.Controller
	chatFactory func() screen.Screen

	running bool
	cancel  context.CancelFunc
	spinner components.Spinner

	// Active between stages, depending on the controller state.
	picker    components.RatingPicker
	checklist components.Checklist

	errMsg    string
	fatal     bool
	cancelled bool
}

var _ screen.Screen = (*JourneyScreen)(nil)
var _ screen.KeyHintProvider = (*JourneyScreen)(nil)

// New creates a JourneyScreen for an already-started controller.
func New(ctrl *journey.Controller, chatFactory func() screen.Screen) *JourneyScreen {
	return &JourneyScreen{
		ctrl:        ctrl,
		chatFactory: chatFactory,
	}
}

func (j *JourneyScreen) Title() string {
	if stage, ok := j.ctrl.State().PendingStage(); ok {
		return "Planning: " + stage.String()
	}
	return "Your path"
}

func (j *JourneyScreen) Init() tea.Cmd {
	return j.runStage()
}

func (j *JourneyScreen) KeyHints() []layout.KeyHint {
	if j.fatal {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	if j.running {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if j.errMsg != "" {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "Back"},
		}
	}
	switch j.ctrl.State() {
	case journey.StatePrereqConfirmed:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Prerequisite"},
			{Key: "←→", Description: "Level"},
			{Key: "Enter", Description: "Continue"},
		}
	case journey.StateSubtopicConfirmed:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Move"},
			{Key: "Space", Description: "Toggle"},
			{Key: "A", Description: "All"},
			{Key: "Enter", Description: "Continue"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

// runStage runs the pending stage in the background and reports back.
func (j *JourneyScreen) runStage() tea.Cmd {
	if _, ok := j.ctrl.State().PendingStage(); !ok {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	j.cancel = cancel
	j.running = true
	j.errMsg = ""
	j.cancelled = false

	run := func() tea.Msg {
		defer cancel()
		result, err := j.ctrl.Run(ctx)
		if err != nil {
			return stageFailedMsg{Err: err}
		}
		return stageDoneMsg{Result: result}
	}
	return tea.Batch(run, j.spinnerTick())
}

func (j *JourneyScreen) spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (j *JourneyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinnerTickMsg:
		if !j.running {
			return j, nil
		}
		j.spinner.Tick()
		return j, j.spinnerTick()

	case stageDoneMsg:
		j.running = false
		j.syncFromState()
		return j, nil

	case stageFailedMsg:
		j.running = false
		if errors.Is(msg.Err, context.Canceled) {
			j.cancelled = true
			j.syncFromState()
			return j, nil
		}
		if errors.Is(msg.Err, journey.ErrSessionFailed) || j.ctrl.Fatal() {
			j.fatal = true
		}
		j.errMsg = msg.Err.Error()
		return j, nil

	case tea.KeyMsg:
		return j.handleKey(msg)
	}

	return j, nil
}

func (j *JourneyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if j.running {
		if key == "esc" && j.cancel != nil {
			j.cancel()
		}
		return j, nil
	}

	if key == "esc" {
		// Abandon the journey and return to the topic form.
		return j, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if j.fatal {
		return j, nil
	}

	if j.errMsg != "" {
		if key == "r" {
			return j, j.runStage()
		}
		return j, nil
	}

	switch j.ctrl.State() {
	case journey.StatePrereqConfirmed:
		if key == "enter" {
			return j, j.confirmProficiency()
		}
		var cmd tea.Cmd
		j.picker, cmd = j.picker.Update(msg)
		return j, cmd

	case journey.StateSubtopicConfirmed:
		if key == "enter" {
			return j, j.confirmSelection()
		}
		var cmd tea.Cmd
		j.checklist, cmd = j.checklist.Update(msg)
		return j, cmd

	case journey.StateRoadmapReady, journey.StateSummaryReady:
		if key == "enter" {
			if err := j.ctrl.Confirm(); err != nil {
				j.errMsg = err.Error()
				return j, nil
			}
			return j, j.runStage()
		}

	case journey.StateResourcesReady:
		if key == "enter" {
			if err := j.ctrl.Confirm(); err != nil {
				j.errMsg = err.Error()
				return j, nil
			}
			chat := j.chatFactory()
			return j, func() tea.Msg {
				return router.ReplaceScreenMsg{Screen: chat}
			}
		}
	}

	return j, nil
}

func (j *JourneyScreen) confirmProficiency() tea.Cmd {
	levels := make(map[string]journey.Proficiency)
	for item, level := range j.picker.Rating() {
		levels[item] = journey.Proficiency(level)
	}
	if err := j.ctrl.SetProficiency(levels); err != nil {
		j.errMsg = err.Error()
		return nil
	}
	if err := j.ctrl.Confirm(); err != nil {
		j.errMsg = err.Error()
		return nil
	}
	return j.runStage()
}

func (j *JourneyScreen) confirmSelection() tea.Cmd {
	selected := j.checklist.Selected()
	if err := j.ctrl.SelectSubtopics(selected); err != nil {
		j.errMsg = err.Error()
		return nil
	}
	if err := j.ctrl.Confirm(); err != nil {
		j.errMsg = err.Error()
		return nil
	}
	return j.runStage()
}

// syncFromState rebuilds the between-stage input components for the
// controller's current position. Called after a stage completes and
// after a cancelled run reverts.
func (j *JourneyScreen) syncFromState() {
	sc := j.ctrl.Context()

	switch j.ctrl.State() {
	case journey.StatePrereqConfirmed:
		levels := make([]string, len(journey.Proficiencies))
		for i, p := range journey.Proficiencies {
			levels[i] = string(p)
		}
		j.picker = components.NewRatingPicker(sc.Prerequisites, levels)

	case journey.StateSubtopicConfirmed:
		j.checklist = components.NewChecklist(sc.Subtopics)
		for i, item := range sc.Subtopics {
			for _, sel := range sc.Selected {
				if item == sel {
					j.checklist.Checked[i] = true
				}
			}
		}
	}
}
