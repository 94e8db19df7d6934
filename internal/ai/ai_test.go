package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSummary(t *testing.T) {
	got, err := parseSummary(`{"summary": ["  Enflasyon %3,2 oldu ", "", "Politika faizi %50"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"Enflasyon %3,2 oldu", "Politika faizi %50"}, got)
}

func TestParseSummary_CapsPoints(t *testing.T) {
	got, err := parseSummary(`{"summary": ["1", "2", "3", "4", "5", "6", "7"]}`)
	require.NoError(t, err)
	assert.Len(t, got, maxSummaryPoints)
}

func TestParseSummary_InvalidJSON(t *testing.T) {
	_, err := parseSummary("not json")
	assert.Error(t, err)
}

func TestSummarize_Disabled(t *testing.T) {
	s := NewSummarizer("", "gemini-2.5-flash")

	assert.False(t, s.Enabled())
	_, err := s.Summarize(context.Background(), "title", []byte("%PDF"))
	assert.True(t, errors.Is(err, ErrDisabled))
}

func TestResponseSchema(t *testing.T) {
	schema := getResponseSchema()
	require.Contains(t, schema.Properties, "summary")
	assert.Equal(t, []string{"summary"}, schema.Required)
}
