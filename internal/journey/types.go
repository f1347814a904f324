package journey

import (
	"time"

	"github.com/rkapur/pathwise/internal/llm"
)

// Proficiency is the learner's self-rated level on one prerequisite.
type Proficiency string

const (
	ProficiencyBeginner     Proficiency = "Beginner"
	ProficiencyIntermediate Proficiency = "Intermediate"
	ProficiencyAdvanced     Proficiency = "Advanced"
)

// Proficiencies lists the selectable levels in rating order.
var Proficiencies = []Proficiency{
	ProficiencyBeginner,
	ProficiencyIntermediate,
	ProficiencyAdvanced,
}

// RoadmapWeek is one entry of the ordered weekly study plan.
type RoadmapWeek struct {
	Week  int      `json:"week"`
	Focus string   `json:"focus"`
	Tasks []string `json:"tasks"`
}

// Roadmap is the structured study plan for the selected subtopics.
type Roadmap struct {
	Weeks        []RoadmapWeek `json:"weeks"`
	Pitfalls     []string      `json:"pitfalls"`
	TimeEstimate string        `json:"time_estimate"`
}

// Summary holds the three fixed labeled sections of the topic summary.
type Summary struct {
	Concepts string `json:"concepts"`
	Examples string `json:"examples"`
	Pitfalls string `json:"pitfalls"`
}

// Resource is one labeled study recommendation.
type Resource struct {
	Title  string `json:"title"`
	Kind   string `json:"kind"` // book, course, video, article, practice
	Detail string `json:"detail"`
}

// StageResult is the structured output of one completed stage. Exactly
// one of the payload fields is set, matching Stage. A stored result is
// never empty: the parser rejects zero-item responses.
type StageResult struct {
	Stage     StageKind
	Items     []string // prerequisites, subtopics
	Roadmap   *Roadmap
	Summary   *Summary
	Resources []Resource
}

// Empty reports whether the result carries no payload for its stage.
func (r *StageResult) Empty() bool {
	switch r.Stage {
	case StagePrerequisites, StageSubtopics:
		return len(r.Items) == 0
	case StageRoadmap:
		return r.Roadmap == nil || len(r.Roadmap.Weeks) == 0
	case StageSummary:
		return r.Summary == nil ||
			(r.Summary.Concepts == "" && r.Summary.Examples == "" && r.Summary.Pitfalls == "")
	case StageResources:
		return len(r.Resources) == 0
	default:
		return true
	}
}

// ChatTurn is one role-tagged message of the open-ended chat log.
// Turns are appended and never mutated or removed except by session reset.
type ChatTurn struct {
	Role    llm.Role
	Content string
	At      time.Time
}

// StageContext accumulates confirmed stage results for one topic session.
// It grows monotonically as stages complete; revision of a selection
// prunes only downstream results. Owned exclusively by the Controller.
type StageContext struct {
	Topic         string
	Prerequisites []string
	Proficiency   map[string]Proficiency
	Subtopics     []string
	Selected      []string
	Roadmap       *Roadmap
	Summary       *Summary
	Resources     []Resource
}

// invalidateAfter drops every result computed downstream of the given
// stage. Upstream results are untouched.
func (sc *StageContext) invalidateAfter(stage StageKind) {
	switch stage {
	case StagePrerequisites:
		sc.Subtopics = nil
		sc.Selected = nil
		fallthrough
	case StageSubtopics:
		sc.Roadmap = nil
		fallthrough
	case StageRoadmap:
		sc.Summary = nil
		fallthrough
	case StageSummary:
		sc.Resources = nil
	}
}
