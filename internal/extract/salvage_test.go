package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/executivedriving/concierge/internal/transcript"
)

func turnsFromPairs(pairs ...[2]string) []transcript.Turn {
	var turns []transcript.Turn
	for _, p := range pairs {
		turns = append(turns, transcript.Turn{Role: p[0], Content: p[1]})
	}
	return turns
}

func TestSalvageQuestionAnswerCursor(t *testing.T) {
	turns := turnsFromPairs(
		[2]string{transcript.RoleAssistant, "Great — what's your full name?"},
		[2]string{transcript.RoleUser, "Ada Lovelace"},
		[2]string{transcript.RoleAssistant, "What's the best phone number for you?"},
		[2]string{transcript.RoleUser, "780-222-2222"},
		[2]string{transcript.RoleAssistant, "What's the pickup address?"},
		[2]string{transcript.RoleUser, "10060 Jasper Ave, Edmonton"},
		[2]string{transcript.RoleAssistant, "How many passengers?"},
		[2]string{transcript.RoleUser, "just the two of us"},
		[2]string{transcript.RoleAssistant, "Any luggage?"},
		[2]string{transcript.RoleUser, "no"},
	)

	f, err := NewSalvage().Extract(context.Background(), turns)
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", f.Name)
	assert.Equal(t, "780-222-2222", f.Phone)
	assert.Equal(t, "10060 Jasper Ave, Edmonton", f.Pickup)
	require.NotNil(t, f.Passengers)
	assert.Equal(t, 2, *f.Passengers)
	require.NotNil(t, f.Luggage)
	assert.False(t, *f.Luggage)
}

func TestSalvageHarvestsContactAnywhere(t *testing.T) {
	// Email and phone are picked up even when nothing asked for them.
	turns := turnsFromPairs(
		[2]string{transcript.RoleUser, "hi, I'm at ada@example.com or 780 222 2222 if that helps"},
	)

	f, err := NewSalvage().Extract(context.Background(), turns)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", f.Email)
	assert.Equal(t, "780 222 2222", f.Phone)
}

func TestSalvageRejectsBadShapes(t *testing.T) {
	turns := turnsFromPairs(
		[2]string{transcript.RoleAssistant, "What's your full name?"},
		[2]string{transcript.RoleUser, "it's 42!!"},
		[2]string{transcript.RoleAssistant, "What date do you need the ride?"},
		[2]string{transcript.RoleUser, "whenever honestly"},
	)

	f, err := NewSalvage().Extract(context.Background(), turns)
	require.NoError(t, err)
	assert.Empty(t, f.Name)
	assert.Empty(t, f.Date)
}

func TestSalvageExplicitNoNotes(t *testing.T) {
	turns := turnsFromPairs(
		[2]string{transcript.RoleAssistant, "Any notes or a flight number for the driver?"},
		[2]string{transcript.RoleUser, "none"},
	)

	f, err := NewSalvage().Extract(context.Background(), turns)
	require.NoError(t, err)
	require.NotNil(t, f.Notes, "explicit no-notes answer still fills the slot")
	assert.Equal(t, "", *f.Notes)
}

func TestSalvageCorrectionWins(t *testing.T) {
	turns := turnsFromPairs(
		[2]string{transcript.RoleAssistant, "What time should we pick you up?"},
		[2]string{transcript.RoleUser, "4:30 PM"},
		[2]string{transcript.RoleAssistant, "What time should we pick you up?"},
		[2]string{transcript.RoleUser, "actually make it 5:00 PM"},
	)

	f, err := NewSalvage().Extract(context.Background(), turns)
	require.NoError(t, err)
	assert.Equal(t, "actually make it 5:00 PM", f.Time)
}

func TestSalvageCursorSurvivesUnrelatedAssistantTurn(t *testing.T) {
	turns := turnsFromPairs(
		[2]string{transcript.RoleAssistant, "What's your full name?"},
		[2]string{transcript.RoleAssistant, "We also do corporate accounts, by the way."},
		[2]string{transcript.RoleUser, "Ada Lovelace"},
	)

	f, err := NewSalvage().Extract(context.Background(), turns)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", f.Name, "an aside does not close the open question")
}
