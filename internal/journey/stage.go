package journey

// StageKind identifies one step in the fixed learning-journey sequence.
// It is a closed enumeration: prompt building, parsing and the state
// machine all switch over it exhaustively, so adding a stage is a
// compile-time extension rather than ad hoc string branching.
type StageKind int

const (
	StagePrerequisites StageKind = iota
	StageSubtopics
	StageRoadmap
	StageSummary
	StageResources
	StageChat
)

func (s StageKind) String() string {
	switch s {
	case StagePrerequisites:
		return "prerequisites"
	case StageSubtopics:
		return "subtopics"
	case StageRoadmap:
		return "roadmap"
	case StageSummary:
		return "summary"
	case StageResources:
		return "resources"
	case StageChat:
		return "chat"
	default:
		return "unknown"
	}
}

// State is the controller's position in the staged progression.
// Every *Pending state is entered by user confirmation of the previous
// stage and left only by a successful pipeline run (to the matching
// Confirmed/Ready state) or by a reset.
type State int

const (
	StateIdle State = iota
	StatePrereqPending
	StatePrereqConfirmed
	StateSubtopicPending
	StateSubtopicConfirmed
	StateRoadmapPending
	StateRoadmapReady
	StateSummaryPending
	StateSummaryReady
	StateResourcesPending
	StateResourcesReady
	StateChatActive
)

var stateNames = map[State]string{
	StateIdle:              "idle",
	StatePrereqPending:     "prereq-pending",
	StatePrereqConfirmed:   "prereq-confirmed",
	StateSubtopicPending:   "subtopic-pending",
	StateSubtopicConfirmed: "subtopic-confirmed",
	StateRoadmapPending:    "roadmap-pending",
	StateRoadmapReady:      "roadmap-ready",
	StateSummaryPending:    "summary-pending",
	StateSummaryReady:      "summary-ready",
	StateResourcesPending:  "resources-pending",
	StateResourcesReady:    "resources-ready",
	StateChatActive:        "chat-active",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return "unknown"
}

// PendingStage returns the stage a *Pending state is waiting on.
func (s State) PendingStage() (StageKind, bool) {
	switch s {
	case StatePrereqPending:
		return StagePrerequisites, true
	case StateSubtopicPending:
		return StageSubtopics, true
	case StateRoadmapPending:
		return StageRoadmap, true
	case StateSummaryPending:
		return StageSummary, true
	case StateResourcesPending:
		return StageResources, true
	default:
		return 0, false
	}
}

// ReadyStage returns the stage whose result a Confirmed/Ready state holds.
func (s State) ReadyStage() (StageKind, bool) {
	switch s {
	case StatePrereqConfirmed:
		return StagePrerequisites, true
	case StateSubtopicConfirmed:
		return StageSubtopics, true
	case StateRoadmapReady:
		return StageRoadmap, true
	case StateSummaryReady:
		return StageSummary, true
	case StateResourcesReady:
		return StageResources, true
	default:
		return 0, false
	}
}

// readyState maps a stage to the state reached when its result is stored.
func readyState(stage StageKind) State {
	switch stage {
	case StagePrerequisites:
		return StatePrereqConfirmed
	case StageSubtopics:
		return StateSubtopicConfirmed
	case StageRoadmap:
		return StateRoadmapReady
	case StageSummary:
		return StateSummaryReady
	case StageResources:
		return StateResourcesReady
	default:
		return StateIdle
	}
}

// lastConfirmed maps a *Pending state to the state a cancelled run
// reverts to. A cancellation must never leave the controller in a
// transitional position.
func lastConfirmed(s State) State {
	switch s {
	case StatePrereqPending:
		return StateIdle
	case StateSubtopicPending:
		return StatePrereqConfirmed
	case StateRoadmapPending:
		return StateSubtopicConfirmed
	case StateSummaryPending:
		return StateRoadmapReady
	case StateResourcesPending:
		return StateSummaryReady
	default:
		return s
	}
}

// nextPending maps a Confirmed/Ready state to the following stage's
// Pending state. ResourcesReady advances to the terminal ChatActive.
func nextPending(s State) (State, bool) {
	switch s {
	case StatePrereqConfirmed:
		return StateSubtopicPending, true
	case StateSubtopicConfirmed:
		return StateRoadmapPending, true
	case StateRoadmapReady:
		return StateSummaryPending, true
	case StateSummaryReady:
		return StateResourcesPending, true
	case StateResourcesReady:
		return StateChatActive, true
	default:
		return s, false
	}
}
