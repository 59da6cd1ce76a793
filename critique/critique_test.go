// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package critique

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/danielhkuo/fitlog/models"
	"github.com/danielhkuo/fitlog/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

const reply = `Here is my review.

**SUMMARY:** Solid training day.
Sleep was a little short.

POSITIVES:
- Heavy squats done
* Good protein intake

NEGATIVES:
1. Only 6 hours of sleep

## RECOMMENDATIONS:
- Go to bed 30 minutes earlier
- Drink more water

SCORE: 7/10`

func TestParse(t *testing.T) {
	c := Parse(reply)

	assert.Equal(t, "Solid training day. Sleep was a little short.", c.Summary)
	assert.Equal(t, []string{"Heavy squats done", "Good protein intake"}, c.Positives)
	assert.Equal(t, []string{"Only 6 hours of sleep"}, c.Negatives)
	assert.Equal(t, []string{"Go to bed 30 minutes earlier", "Drink more water"}, c.Recommendations)
	require.NotNil(t, c.Score)
	assert.Equal(t, 7, *c.Score)
	assert.Equal(t, reply, c.Raw)
}

func TestParseScore(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *int
	}{
		{"fraction", "SCORE: 8/10", intPtr(8)},
		{"bare number", "SCORE: 6", intPtr(6)},
		{"spaced fraction", "score: 9 / 10", intPtr(9)},
		{"above range", "SCORE: 14/10", intPtr(10)},
		{"decimal rounds", "SCORE: 6.6/10", intPtr(7)},
		{"on next line", "SCORE:\n5/10", intPtr(5)},
		{"missing", "SUMMARY: fine", nil},
		{"no digits", "SCORE: n/a", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.in).Score)
		})
	}
}

func TestParseWithoutMarkers(t *testing.T) {
	c := Parse("The model ignored the format entirely.")

	assert.Empty(t, c.Summary)
	assert.NotNil(t, c.Positives)
	assert.Empty(t, c.Positives)
	assert.Nil(t, c.Score)
	assert.Equal(t, "The model ignored the format entirely.", c.Raw)
}

type stubGenerator struct {
	reply  string
	err    error
	system string
	prompt string
}

func (s *stubGenerator) Generate(_ context.Context, system, prompt string) (string, error) {
	s.system, s.prompt = system, prompt
	return s.reply, s.err
}

func sampleDay() summary.Export {
	return summary.Export{
		Date: "2024-03-15",
		Routines: []summary.ExportRoutine{{
			Type: models.RoutineSteps,
			Data: models.StepsData{Steps: 12000},
		}},
	}
}

func TestServiceCritique(t *testing.T) {
	gen := &stubGenerator{reply: reply}
	svc := NewService(gen, zaptest.NewLogger(t))

	c, err := svc.Critique(context.Background(), sampleDay())
	require.NoError(t, err)

	assert.Equal(t, 7, *c.Score)
	assert.Contains(t, gen.system, "RECOMMENDATIONS:")
	assert.Contains(t, gen.prompt, "2024-03-15")
	assert.Contains(t, gen.prompt, `"steps": 12000`)
}

func TestServiceRejectsEmptyDay(t *testing.T) {
	gen := &stubGenerator{reply: reply}
	svc := NewService(gen, zaptest.NewLogger(t))

	_, err := svc.Critique(context.Background(), summary.Export{Date: "2024-03-15"})
	assert.ErrorIs(t, err, ErrEmptyDay)
	assert.Empty(t, gen.prompt, "no upstream call for an empty day")
}

func TestServiceUpstreamFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	svc := NewService(&stubGenerator{err: errors.New("quota exceeded")}, zap.New(core))

	_, err := svc.Critique(context.Background(), sampleDay())
	assert.ErrorIs(t, err, ErrUnavailable)

	entries := logs.FilterMessage("critique generation failed").All()
	require.Len(t, entries, 1)
	assert.True(t, strings.Contains(entries[0].ContextMap()["error"].(string), "quota exceeded"))
}

func TestServiceWithoutGenerator(t *testing.T) {
	svc := NewService(nil, zaptest.NewLogger(t))

	_, err := svc.Critique(context.Background(), sampleDay())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNewGeminiRequiresKey(t *testing.T) {
	_, err := NewGemini(context.Background(), "", "gemini-2.0-flash")
	assert.Error(t, err)
}

func intPtr(n int) *int { return &n }
