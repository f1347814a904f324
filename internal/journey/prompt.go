package journey

import (
	"fmt"
	"strings"

	"github.com/rkapur/pathwise/internal/llm"
)

const mentorSystemPrompt = `You are a patient, practical learning mentor. A learner has named a topic they want to study, and you are helping them plan the path: what to know first, what the topic breaks into, how to schedule the work, and where to read further. Be concrete and concise; never pad lists with filler entries.`

const chatSystemPrompt = `You are a patient, practical learning mentor answering follow-up questions about a topic the learner is studying. Ground your answers in the learner's stated proficiency and chosen subtopics. Keep answers focused; prefer a short worked example over an abstract explanation.`

// BuildPrompt renders the instruction for a stage from the accumulated
// context. A missing required upstream field yields *TemplateError: the
// state machine should have made the call impossible, so the error marks
// a sequencing defect rather than a user-facing condition.
func BuildPrompt(stage StageKind, sc *StageContext) (llm.Request, error) {
	if sc.Topic == "" {
		return llm.Request{}, &TemplateError{Stage: stage, Missing: "topic"}
	}

	var userMsg string
	switch stage {
	case StagePrerequisites:
		userMsg = buildPrerequisitesMessage(sc)
	case StageSubtopics:
		if len(sc.Prerequisites) == 0 {
			return llm.Request{}, &TemplateError{Stage: stage, Missing: "confirmed prerequisites"}
		}
		userMsg = buildSubtopicsMessage(sc)
	case StageRoadmap:
		if len(sc.Selected) == 0 {
			return llm.Request{}, &TemplateError{Stage: stage, Missing: "selected subtopics"}
		}
		userMsg = buildRoadmapMessage(sc)
	case StageSummary:
		if sc.Roadmap == nil {
			return llm.Request{}, &TemplateError{Stage: stage, Missing: "roadmap"}
		}
		userMsg = buildSummaryMessage(sc)
	case StageResources:
		if len(sc.Selected) == 0 {
			return llm.Request{}, &TemplateError{Stage: stage, Missing: "selected subtopics"}
		}
		userMsg = buildResourcesMessage(sc)
	default:
		return llm.Request{}, &TemplateError{Stage: stage, Missing: "a staged template (chat uses BuildChatRequest)"}
	}

	return llm.Request{
		System:   mentorSystemPrompt,
		Messages: []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		Schema:   stageSchema(stage),
	}, nil
}

// BuildChatRequest renders the free-form chat prompt: stage context as
// grounding, then the conversation log, then the new question.
func BuildChatRequest(sc *StageContext, log []ChatTurn, input string) (llm.Request, error) {
	if sc.Topic == "" {
		return llm.Request{}, &TemplateError{Stage: StageChat, Missing: "topic"}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("The learner is studying: %s\n", sc.Topic))
	writeProficiency(&b, sc)
	if len(sc.Selected) > 0 {
		b.WriteString(fmt.Sprintf("Chosen subtopics: %s\n", strings.Join(sc.Selected, ", ")))
	}

	messages := []llm.Message{{Role: llm.RoleUser, Content: b.String()}}
	messages = append(messages, llm.Message{
		Role:    llm.RoleAssistant,
		Content: "Understood. I'll answer with that context in mind. What would you like to know?",
	})
	for _, turn := range log {
		messages = append(messages, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: input})

	return llm.Request{
		System:   chatSystemPrompt,
		Messages: messages,
	}, nil
}

func buildPrerequisitesMessage(sc *StageContext) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Topic: %s\n", sc.Topic))
	b.WriteString(`
Instructions:
List the essential prerequisites a learner should already know before studying this topic.
1. Give 3-7 prerequisites, each a short noun phrase (e.g. "Basic Arithmetic", not a sentence).
2. Order them from most to least fundamental.
3. Only include genuine prerequisites; skip anything that is part of the topic itself.
Return JSON with a "prerequisites" array of strings.`)
	return b.String()
}

func buildSubtopicsMessage(sc *StageContext) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Topic: %s\n", sc.Topic))
	writeProficiency(&b, sc)
	b.WriteString(`
Instructions:
Break the topic into subtopics the learner can choose between.
1. Give 4-8 subtopics, each a short noun phrase.
2. Match the depth to the learner's proficiency: lean introductory where they rated themselves Beginner, deeper where Advanced.
3. Subtopics must be parts of the topic, not prerequisites.
Return JSON with a "subtopics" array of strings.`)
	return b.String()
}

func buildRoadmapMessage(sc *StageContext) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Topic: %s\n", sc.Topic))
	b.WriteString(fmt.Sprintf("Chosen subtopics: %s\n", strings.Join(sc.Selected, ", ")))
	writeProficiency(&b, sc)
	b.WriteString(`
Instructions:
Create an ordered weekly study plan covering ONLY the chosen subtopics.
1. 3-6 weeks, each with a focus and 2-4 concrete tasks.
2. Sequence weeks so earlier ones prepare for later ones.
3. List common pitfalls to avoid, and an overall time estimate.
Return JSON with "weeks" (array of {week, focus, tasks}), "pitfalls" (array of strings) and "time_estimate" (string).`)
	return b.String()
}

func buildSummaryMessage(sc *StageContext) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Topic: %s\n", sc.Topic))
	b.WriteString(fmt.Sprintf("Chosen subtopics: %s\n", strings.Join(sc.Selected, ", ")))
	b.WriteString(`
Instructions:
Summarize the topic for the learner in exactly three labeled sections.
1. Concepts: the core ideas, a few short paragraphs.
2. Examples: worked or illustrative examples tied to the chosen subtopics.
3. Pitfalls: misunderstandings learners commonly run into.
Return JSON with "concepts", "examples" and "pitfalls" string fields. Every section must be non-empty.`)
	return b.String()
}

func buildResourcesMessage(sc *StageContext) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Topic: %s\n", sc.Topic))
	b.WriteString(fmt.Sprintf("Chosen subtopics: %s\n", strings.Join(sc.Selected, ", ")))
	writeProficiency(&b, sc)
	b.WriteString(`
Instructions:
Recommend study resources for the chosen subtopics.
1. Give 3-6 recommendations, mixing kinds (book, course, video, article, practice).
2. Prefer widely available, well-regarded resources; never invent titles.
3. For each, one sentence on what it covers and why it fits this learner.
Return JSON with a "resources" array of {title, kind, detail} objects.`)
	return b.String()
}

// writeProficiency appends the learner's prerequisite self-ratings, or a
// note that none were given.
func writeProficiency(b *strings.Builder, sc *StageContext) {
	if len(sc.Proficiency) == 0 {
		return
	}
	b.WriteString("Prerequisite proficiency (self-rated):\n")
	for _, prereq := range sc.Prerequisites {
		if level, ok := sc.Proficiency[prereq]; ok {
			b.WriteString(fmt.Sprintf("- %s: %s\n", prereq, level))
		}
	}
}
