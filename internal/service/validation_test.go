package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDraft() SubmitAnnouncementRequest {
	return SubmitAnnouncementRequest{
		Topic:    "Exam Schedule",
		Message:  "Finals moved to Dec 10, check portal for room assignments.",
		Audience: "all",
		Priority: "high",
	}
}

func TestValidateAcceptsValidDraft(t *testing.T) {
	v := NewDraftValidator(nil)
	result := v.Validate(validDraft())
	require.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateTopicBoundaries(t *testing.T) {
	v := NewDraftValidator(nil)

	draft := validDraft()
	draft.Topic = strings.Repeat("a", 100)
	assert.True(t, v.Validate(draft).Valid)

	draft.Topic = strings.Repeat("a", 101)
	result := v.Validate(draft)
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "topic")

	draft.Topic = ""
	result = v.Validate(draft)
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "topic")
}

func TestValidateMessageBoundaries(t *testing.T) {
	v := NewDraftValidator(nil)

	draft := validDraft()
	draft.Message = strings.Repeat("m", 10)
	assert.True(t, v.Validate(draft).Valid)

	draft.Message = strings.Repeat("m", 2000)
	assert.True(t, v.Validate(draft).Valid)

	draft.Message = strings.Repeat("m", 9)
	result := v.Validate(draft)
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "message")

	draft.Message = strings.Repeat("m", 2001)
	result = v.Validate(draft)
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "message")
}

func TestValidateEnumFields(t *testing.T) {
	v := NewDraftValidator(nil)

	draft := validDraft()
	draft.Audience = "teachers"
	result := v.Validate(draft)
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "audience")

	draft = validDraft()
	draft.Priority = "urgent"
	result = v.Validate(draft)
	require.False(t, result.Valid)
	assert.Contains(t, result.Errors, "priority")
}

func TestValidateReportsAllViolationsTogether(t *testing.T) {
	v := NewDraftValidator(nil)
	result := v.Validate(SubmitAnnouncementRequest{})
	require.False(t, result.Valid)
	assert.Len(t, result.Errors, 4)
	assert.Contains(t, result.Errors, "topic")
	assert.Contains(t, result.Errors, "message")
	assert.Contains(t, result.Errors, "audience")
	assert.Contains(t, result.Errors, "priority")
}
