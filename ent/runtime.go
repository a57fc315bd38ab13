// Code generated by ent, DO NOT EDIT.

package ent

import (
	"time"

	"github.com/studybuddyai/studybuddy/ent/llmrequestevent"
	"github.com/studybuddyai/studybuddy/ent/schema"
	"github.com/studybuddyai/studybuddy/ent/sessionrecord"
	"github.com/studybuddyai/studybuddy/ent/studentprofile"
)

// The init function reads all schema descriptors with runtime code
// (default values, validators, hooks and policies) and stitches it
// to their package variables.
func init() {
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
	sessionrecordFields := schema.SessionRecord{}.Fields()
	_ = sessionrecordFields
	// sessionrecordDescDurationMinutes is the schema descriptor for duration_minutes field.
	sessionrecordDescDurationMinutes := sessionrecordFields[4].Descriptor()
	// sessionrecord.DefaultDurationMinutes holds the default value on creation for the duration_minutes field.
	sessionrecord.DefaultDurationMinutes = sessionrecordDescDurationMinutes.Default.(float64)
	// sessionrecordDescQuestionsAsked is the schema descriptor for questions_asked field.
	sessionrecordDescQuestionsAsked := sessionrecordFields[6].Descriptor()
	// sessionrecord.DefaultQuestionsAsked holds the default value on creation for the questions_asked field.
	sessionrecord.DefaultQuestionsAsked = sessionrecordDescQuestionsAsked.Default.(int)
	// sessionrecordDescQuestionsCorrect is the schema descriptor for questions_correct field.
	sessionrecordDescQuestionsCorrect := sessionrecordFields[7].Descriptor()
	// sessionrecord.DefaultQuestionsCorrect holds the default value on creation for the questions_correct field.
	sessionrecord.DefaultQuestionsCorrect = sessionrecordDescQuestionsCorrect.Default.(int)
	// sessionrecordDescEngagementScore is the schema descriptor for engagement_score field.
	sessionrecordDescEngagementScore := sessionrecordFields[8].Descriptor()
	// sessionrecord.DefaultEngagementScore holds the default value on creation for the engagement_score field.
	sessionrecord.DefaultEngagementScore = sessionrecordDescEngagementScore.Default.(float64)
	// sessionrecordDescSummary is the schema descriptor for summary field.
	sessionrecordDescSummary := sessionrecordFields[9].Descriptor()
	// sessionrecord.DefaultSummary holds the default value on creation for the summary field.
	sessionrecord.DefaultSummary = sessionrecordDescSummary.Default.(string)
	// sessionrecordDescCreatedAt is the schema descriptor for created_at field.
	sessionrecordDescCreatedAt := sessionrecordFields[10].Descriptor()
	// sessionrecord.DefaultCreatedAt holds the default value on creation for the created_at field.
	sessionrecord.DefaultCreatedAt = sessionrecordDescCreatedAt.Default.(func() time.Time)
	studentprofileFields := schema.StudentProfile{}.Fields()
	_ = studentprofileFields
	// studentprofileDescCreatedAt is the schema descriptor for created_at field.
	studentprofileDescCreatedAt := studentprofileFields[2].Descriptor()
	// studentprofile.DefaultCreatedAt holds the default value on creation for the created_at field.
	studentprofile.DefaultCreatedAt = studentprofileDescCreatedAt.Default.(func() time.Time)
	// studentprofileDescUpdatedAt is the schema descriptor for updated_at field.
	studentprofileDescUpdatedAt := studentprofileFields[3].Descriptor()
	// studentprofile.DefaultUpdatedAt holds the default value on creation for the updated_at field.
	studentprofile.DefaultUpdatedAt = studentprofileDescUpdatedAt.Default.(func() time.Time)
	// studentprofile.UpdateDefaultUpdatedAt holds the default value on update for the updated_at field.
	studentprofile.UpdateDefaultUpdatedAt = studentprofileDescUpdatedAt.UpdateDefault.(func() time.Time)
}
