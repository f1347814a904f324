// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/rkapur/pathwise/ent/chatevent"
	"github.com/rkapur/pathwise/ent/journeyevent"
	"github.com/rkapur/pathwise/ent/llmrequestevent"
	"github.com/rkapur/pathwise/ent/schema"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
	chateventMixin := schema.ChatEvent{}.Mixin()
	chateventMixinFields0 := chateventMixin[0].Fields()
	_ = chateventMixinFields0
	chateventFields := schema.ChatEvent{}.Fields()
	_ = chateventFields
	// chateventDescTimestamp is the schema descriptor for timestamp field.
	chateventDescTimestamp := chateventMixinFields0[1].Descriptor()
	// chatevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	chatevent.DefaultTimestamp = chateventDescTimestamp.Default.(func() time.Time)
	// chateventDescJourneyID is the schema descriptor for journey_id field.
	chateventDescJourneyID := chateventFields[0].Descriptor()
	// chatevent.JourneyIDValidator is a validator for the "journey_id" field. It is called by the builders before save.
	chatevent.JourneyIDValidator = chateventDescJourneyID.Validators[0].(func(string) error)
	// chateventDescRole is the schema descriptor for role field.
	chateventDescRole := chateventFields[1].Descriptor()
	// chatevent.RoleValidator is a validator for the "role" field. It is called by the builders before save.
	chatevent.RoleValidator = chateventDescRole.Validators[0].(func(string) error)
	// chateventDescContent is the schema descriptor for content field.
	chateventDescContent := chateventFields[2].Descriptor()
	// chatevent.ContentValidator is a validator for the "content" field. It is called by the builders before save.
	chatevent.ContentValidator = chateventDescContent.Validators[0].(func(string) error)
	journeyeventMixin := schema.JourneyEvent{}.Mixin()
	journeyeventMixinFields0 := journeyeventMixin[0].Fields()
	_ = journeyeventMixinFields0
	journeyeventFields := schema.JourneyEvent{}.Fields()
	_ = journeyeventFields
	// journeyeventDescTimestamp is the schema descriptor for timestamp field.
	journeyeventDescTimestamp := journeyeventMixinFields0[1].Descriptor()
	// journeyevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	journeyevent.DefaultTimestamp = journeyeventDescTimestamp.Default.(func() time.Time)
	// journeyeventDescJourneyID is the schema descriptor for journey_id field.
	journeyeventDescJourneyID := journeyeventFields[0].Descriptor()
	// journeyevent.JourneyIDValidator is a validator for the "journey_id" field. It is called by the builders before save.
	journeyevent.JourneyIDValidator = journeyeventDescJourneyID.Validators[0].(func(string) error)
	// journeyeventDescTopic is the schema descriptor for topic field.
	journeyeventDescTopic := journeyeventFields[1].Descriptor()
	// journeyevent.TopicValidator is a validator for the "topic" field. It is called by the builders before save.
	journeyevent.TopicValidator = journeyeventDescTopic.Validators[0].(func(string) error)
	// journeyeventDescAction is the schema descriptor for action field.
	journeyeventDescAction := journeyeventFields[3].Descriptor()
	// journeyevent.ActionValidator is a validator for the "action" field. It is called by the builders before save.
	journeyevent.ActionValidator = journeyeventDescAction.Validators[0].(func(string) error)
	// journeyeventDescPayload is the schema descriptor for payload field.
	journeyeventDescPayload := journeyeventFields[4].Descriptor()
	// journeyevent.DefaultPayload holds the default value on creation for the payload field.
	journeyevent.DefaultPayload = journeyeventDescPayload.Default.(string)
	llmrequesteventMixin := schema.LLMRequestEvent{}.Mixin()
	llmrequesteventMixinFields0 := llmrequesteventMixin[0].Fields()
	_ = llmrequesteventMixinFields0
	llmrequesteventFields := schema.LLMRequestEvent{}.Fields()
	_ = llmrequesteventFields
	// llmrequesteventDescTimestamp is the schema descriptor for timestamp field.
	llmrequesteventDescTimestamp := llmrequesteventMixinFields0[1].Descriptor()
	// llmrequestevent.DefaultTimestamp holds the default value on creation for the timestamp field.
	llmrequestevent.DefaultTimestamp = llmrequesteventDescTimestamp.Default.(func() time.Time)
	// llmrequesteventDescInputTokens is the schema descriptor for input_tokens field.
	llmrequesteventDescInputTokens := llmrequesteventFields[3].Descriptor()
	// llmrequestevent.DefaultInputTokens holds the default value on creation for the input_tokens field.
	llmrequestevent.DefaultInputTokens = llmrequesteventDescInputTokens.Default.(int)
	// llmrequesteventDescOutputTokens is the schema descriptor for output_tokens field.
	llmrequesteventDescOutputTokens := llmrequesteventFields[4].Descriptor()
	// llmrequestevent.DefaultOutputTokens holds the default value on creation for the output_tokens field.
	llmrequestevent.DefaultOutputTokens = llmrequesteventDescOutputTokens.Default.(int)
	// llmrequesteventDescLatencyMs is the schema descriptor for latency_ms field.
	llmrequesteventDescLatencyMs := llmrequesteventFields[5].Descriptor()
	// llmrequestevent.DefaultLatencyMs holds the default value on creation for the latency_ms field.
	llmrequestevent.DefaultLatencyMs = llmrequesteventDescLatencyMs.Default.(int64)
	// llmrequesteventDescErrorMessage is the schema descriptor for error_message field.
	llmrequesteventDescErrorMessage := llmrequesteventFields[7].Descriptor()
	// llmrequestevent.DefaultErrorMessage holds the default value on creation for the error_message field.
	llmrequestevent.DefaultErrorMessage = llmrequesteventDescErrorMessage.Default.(string)
	// llmrequesteventDescRequestBody is the schema descriptor for request_body field.
	llmrequesteventDescRequestBody := llmrequesteventFields[8].Descriptor()
	// llmrequestevent.DefaultRequestBody holds the default value on creation for the request_body field.
	llmrequestevent.DefaultRequestBody = llmrequesteventDescRequestBody.Default.(string)
	// llmrequesteventDescResponseBody is the schema descriptor for response_body field.
	llmrequesteventDescResponseBody := llmrequesteventFields[9].Descriptor()
	// llmrequestevent.DefaultResponseBody holds the default value on creation for the response_body field.
	llmrequestevent.DefaultResponseBody = llmrequesteventDescResponseBody.Default.(string)
}
