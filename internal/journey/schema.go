package journey

import "github.com/rkapur/pathwise/internal/llm"

// PrerequisitesSchema defines the JSON schema for prerequisite generation.
var PrerequisitesSchema = &llm.Schema{
	Name:        "topic-prerequisites",
	Description: "Essential prerequisites a learner should know before studying a topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"prerequisites": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "3-7 prerequisite names, short noun phrases",
			},
		},
		"required":             []any{"prerequisites"},
		"additionalProperties": false,
	},
}

// SubtopicsSchema defines the JSON schema for subtopic generation.
var SubtopicsSchema = &llm.Schema{
	Name:        "topic-subtopics",
	Description: "Subtopics of the study topic matched to the learner's prerequisite proficiency",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"subtopics": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "4-8 subtopic names the learner can choose from",
			},
		},
		"required":             []any{"subtopics"},
		"additionalProperties": false,
	},
}

// RoadmapSchema defines the JSON schema for the weekly study plan.
var RoadmapSchema = &llm.Schema{
	Name:        "topic-roadmap",
	Description: "Ordered weekly study plan covering the selected subtopics",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"weeks": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"week": map[string]any{
							"type":        "integer",
							"description": "1-based week number",
						},
						"focus": map[string]any{
							"type":        "string",
							"description": "What the week concentrates on",
						},
						"tasks": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Concrete study tasks for the week",
						},
					},
					"required":             []any{"week", "focus", "tasks"},
					"additionalProperties": false,
				},
			},
			"pitfalls": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Common mistakes to avoid",
			},
			"time_estimate": map[string]any{
				"type":        "string",
				"description": "Overall time estimate, e.g. '4 weeks at 5 hours/week'",
			},
		},
		"required":             []any{"weeks", "pitfalls", "time_estimate"},
		"additionalProperties": false,
	},
}

// SummarySchema defines the JSON schema for the labeled topic summary.
var SummarySchema = &llm.Schema{
	Name:        "topic-summary",
	Description: "Topic summary in exactly three labeled sections: concepts, examples, pitfalls",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"concepts": map[string]any{
				"type":        "string",
				"description": "Core concepts explained in a few short paragraphs",
			},
			"examples": map[string]any{
				"type":        "string",
				"description": "Worked or illustrative examples",
			},
			"pitfalls": map[string]any{
				"type":        "string",
				"description": "Misunderstandings learners commonly run into",
			},
		},
		"required":             []any{"concepts", "examples", "pitfalls"},
		"additionalProperties": false,
	},
}

// ResourcesSchema defines the JSON schema for study recommendations.
var ResourcesSchema = &llm.Schema{
	Name:        "topic-resources",
	Description: "Labeled study resource recommendations for the topic",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"resources": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Resource name",
						},
						"kind": map[string]any{
							"type":        "string",
							"enum":        []any{"book", "course", "video", "article", "practice"},
							"description": "Resource category",
						},
						"detail": map[string]any{
							"type":        "string",
							"description": "One sentence on what it covers and why it fits",
						},
					},
					"required":             []any{"title", "kind", "detail"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"resources"},
		"additionalProperties": false,
	},
}

// stageSchema returns the structured-output schema for a stage, or nil
// for chat, which is free-form text.
func stageSchema(stage StageKind) *llm.Schema {
	switch stage {
	case StagePrerequisites:
		return PrerequisitesSchema
	case StageSubtopics:
		return SubtopicsSchema
	case StageRoadmap:
		return RoadmapSchema
	case StageSummary:
		return SummarySchema
	case StageResources:
		return ResourcesSchema
	default:
		return nil
	}
}
