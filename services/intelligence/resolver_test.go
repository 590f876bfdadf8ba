package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"belissimo/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResolvedIntent(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		wantOK bool
		want   models.ResolvedIntent
	}{
		{
			name:   "plain object",
			raw:    `{"reply":"Booked!","action":"CREATE_BOOKING_AND_PAYMENT","data":{"serviceId":"haircut","clientName":"Ayşe","clientPhone":"+905551112233","startAt":"2025-11-20T14:00:00Z"}}`,
			wantOK: true,
			want: models.ResolvedIntent{
				Reply:  "Booked!",
				Action: models.ActionCreateBooking,
				Data: models.IntentData{
					ServiceID:   "haircut",
					ClientName:  "Ayşe",
					ClientPhone: "+905551112233",
					StartAt:     "2025-11-20T14:00:00Z",
				},
			},
		},
		{
			name:   "code-fenced object",
			raw:    "```json\n{\"reply\":\"Cancelled.\",\"action\":\"CANCEL_BOOKING\",\"data\":{\"bookingId\":\"abc-123\"}}\n```",
			wantOK: true,
			want: models.ResolvedIntent{
				Reply:  "Cancelled.",
				Action: models.ActionCancelBooking,
				Data:   models.IntentData{BookingID: "abc-123"},
			},
		},
		{
			name:   "surrounding prose",
			raw:    `Sure, here is the JSON you asked for: {"reply":"Hi!","action":"NONE","data":{}} Hope that helps!`,
			wantOK: true,
			want:   models.ResolvedIntent{Reply: "Hi!", Action: models.ActionNone},
		},
		{
			name:   "null data fields become empty strings",
			raw:    `{"reply":"Noted.","action":"NONE","data":{"serviceId":null,"clientName":null}}`,
			wantOK: true,
			want:   models.ResolvedIntent{Reply: "Noted.", Action: models.ActionNone},
		},
		{
			name:   "unknown action downgrades to NONE",
			raw:    `{"reply":"Hmm.","action":"DELETE_EVERYTHING","data":{}}`,
			wantOK: true,
			want:   models.ResolvedIntent{Reply: "Hmm.", Action: models.ActionNone},
		},
		{
			name:   "plain prose is malformed",
			raw:    "I'm sorry, I can't produce JSON right now.",
			wantOK: false,
		},
		{
			name:   "truncated JSON is malformed",
			raw:    `{"reply":"Book`,
			wantOK: false,
		},
		{
			name:   "empty string is malformed",
			raw:    "",
			wantOK: false,
		},
		{
			name:   "bare array is malformed",
			raw:    `[{"reply":"hi"}]`,
			wantOK: true, // the inner object is extracted
			want:   models.ResolvedIntent{Reply: "hi", Action: models.ActionNone},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseResolvedIntent(tt.raw)
			require.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

// scriptedLLM returns canned output, or an error.
type scriptedLLM struct {
	output string
	err    error
}

func (s *scriptedLLM) Complete(_ context.Context, _ string, _ string) (string, error) {
	return s.output, s.err
}

func TestResolve_FallsBackOnError(t *testing.T) {
	r := NewIntentResolver(&scriptedLLM{err: errors.New("upstream timeout")}, time.Second, "Test Studio")

	intent := r.Resolve(context.Background(), nil, models.MemoryState{}, "book me a haircut")
	assert.Equal(t, models.ActionNone, intent.Action)
	assert.Equal(t, genericFallbackReply, intent.Reply)
}

func TestResolve_FallsBackOnGarbage(t *testing.T) {
	r := NewIntentResolver(&scriptedLLM{output: "total nonsense, no json here"}, time.Second, "Test Studio")

	intent := r.Resolve(context.Background(), nil, models.MemoryState{}, "book me a haircut")
	assert.Equal(t, models.ActionNone, intent.Action)
	assert.Equal(t, genericFallbackReply, intent.Reply)
}

func TestResolve_ParsesModelOutput(t *testing.T) {
	r := NewIntentResolver(&scriptedLLM{
		output: `{"reply":"When would you like to come in?","action":"NONE","data":{"serviceId":"haircut"}}`,
	}, time.Second, "Test Studio")

	intent := r.Resolve(context.Background(), nil, models.MemoryState{}, "I want a haircut")
	assert.Equal(t, models.ActionNone, intent.Action)
	assert.Equal(t, "When would you like to come in?", intent.Reply)
	assert.Equal(t, "haircut", intent.Data.ServiceID)
}

func TestSystemPrompt_IncludesCatalogAndMemory(t *testing.T) {
	r := NewIntentResolver(&scriptedLLM{}, time.Second, "Bellissimo Hair Studio")

	services := []models.Service{
		{ID: "haircut", Name: "Haircut", PriceCents: 50000, DepositPercentage: 30, DurationMinutes: 60},
	}
	memory := models.MemoryState{LastClientName: "Ayşe"}

	prompt := r.systemPrompt(services, memory)
	assert.Contains(t, prompt, "Bellissimo Hair Studio")
	assert.Contains(t, prompt, `"id":"haircut"`)
	assert.Contains(t, prompt, `"lastClientName":"Ayşe"`)
	assert.Contains(t, prompt, "CREATE_BOOKING_AND_PAYMENT")
}
