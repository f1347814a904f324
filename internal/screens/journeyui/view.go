package journeyui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/rkapur/pathwise/internal/journey"
	"github.com/rkapur/pathwise/internal/ui/theme"
)

var stageLabels = map[journey.StageKind]string{
	journey.StagePrerequisites: "Finding prerequisites...",
	journey.StageSubtopics:     "Breaking the topic down...",
	journey.StageRoadmap:       "Drafting your roadmap...",
	journey.StageSummary:       "Writing the summary...",
	journey.StageResources:     "Picking resources...",
}

func (j *JourneyScreen) View(width, height int) string {
	var content string

	switch {
	case j.running:
		label := "Working..."
		if stage, ok := j.ctrl.State().PendingStage(); ok {
			label = stageLabels[stage]
		}
		content = "\n\n" + j.spinner.View(label)

	case j.fatal:
		content = theme.ErrorText.Render("The provider rejected the API key.") + "\n\n" +
			theme.Body.Render("Fix the key in your environment and restart pathwise.\n") +
			theme.Hint.Render("No request will succeed until then, so this journey has stopped.")

	case j.errMsg != "":
		content = theme.ErrorText.Render("Something went wrong") + "\n\n" +
			theme.Body.Render(wrap(j.errMsg, width-8)) + "\n\n" +
			theme.Hint.Render("Press R to try this step again.")

	default:
		content = j.viewStage(width)
	}

	if j.cancelled {
		note := theme.Hint.Render("Cancelled. Press Enter to pick up where you left off.")
		content = note + "\n\n" + content
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (j *JourneyScreen) viewStage(width int) string {
	sc := j.ctrl.Context()

	switch j.ctrl.State() {
	case journey.StatePrereqConfirmed:
		return theme.SectionHeading.Render("Before you start, how well do you know these?") +
			"\n\n" + j.picker.View()

	case journey.StateSubtopicConfirmed:
		return theme.SectionHeading.Render("Which parts do you want to cover?") +
			"\n\n" + j.checklist.View()

	case journey.StateRoadmapReady:
		return renderRoadmap(sc.Roadmap, width)

	case journey.StateSummaryReady:
		return renderSummary(sc.Summary, width)

	case journey.StateResourcesReady:
		return renderResources(sc.Resources, width)

	case journey.StateIdle:
		return theme.Hint.Render("Journey abandoned. Press Esc to go back.")
	}

	return ""
}

func renderRoadmap(rm *journey.Roadmap, width int) string {
	if rm == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(theme.SectionHeading.Render("Your roadmap"))
	b.WriteString("\n\n")

	for _, week := range rm.Weeks {
		b.WriteString(theme.Selected.Render(fmt.Sprintf("Week %d: %s", week.Week, week.Focus)))
		b.WriteString("\n")
		for _, task := range week.Tasks {
			b.WriteString(theme.Body.Render("  • " + task))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(rm.Pitfalls) > 0 {
		b.WriteString(theme.SectionHeading.Render("Watch out for"))
		b.WriteString("\n")
		for _, p := range rm.Pitfalls {
			b.WriteString(theme.Body.Render("  • " + p))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if rm.TimeEstimate != "" {
		b.WriteString(theme.Hint.Render("Estimated effort: " + rm.TimeEstimate))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Press Enter to get the summary."))
	return b.String()
}

func renderSummary(sum *journey.Summary, width int) string {
	if sum == nil {
		return ""
	}
	wrapWidth := width - 12
	var b strings.Builder

	b.WriteString(theme.SectionHeading.Render("Concepts"))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(wrap(sum.Concepts, wrapWidth)))
	b.WriteString("\n\n")

	b.WriteString(theme.SectionHeading.Render("Examples"))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(wrap(sum.Examples, wrapWidth)))
	b.WriteString("\n\n")

	b.WriteString(theme.SectionHeading.Render("Pitfalls"))
	b.WriteString("\n")
	b.WriteString(theme.Body.Render(wrap(sum.Pitfalls, wrapWidth)))
	b.WriteString("\n\n")

	b.WriteString(theme.Hint.Render("Press Enter to get resource recommendations."))
	return b.String()
}

func renderResources(resources []journey.Resource, width int) string {
	var b strings.Builder
	b.WriteString(theme.SectionHeading.Render("Where to study"))
	b.WriteString("\n\n")

	for _, r := range resources {
		b.WriteString(theme.Selected.Render(r.Title))
		if r.Kind != "" {
			b.WriteString(theme.Hint.Render("  (" + r.Kind + ")"))
		}
		b.WriteString("\n")
		if r.Detail != "" {
			b.WriteString(theme.Body.Render("  " + wrap(r.Detail, width-16)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(theme.Hint.Render("Press Enter to ask follow-up questions."))
	return b.String()
}

// wrap breaks text into lines no wider than limit, on word boundaries.
func wrap(text string, limit int) string {
	if limit < 20 {
		limit = 20
	}
	var b strings.Builder
	lineLen := 0
	for _, word := range strings.Fields(text) {
		if lineLen > 0 && lineLen+1+len(word) > limit {
			b.WriteString("\n")
			lineLen = 0
		} else if lineLen > 0 {
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(word)
		lineLen += len(word)
	}
	return b.String()
}
