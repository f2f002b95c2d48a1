package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int       { return &n }
func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }

func TestMergeModelWins(t *testing.T) {
	model := Fields{Name: "Ada Lovelace", Phone: "7802222222"}
	salvage := Fields{Name: "wrong", Email: "ada@example.com"}

	got := Merge(model, salvage)
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.Equal(t, "7802222222", got.Phone)
	assert.Equal(t, "ada@example.com", got.Email, "salvage fills gaps")
}

func TestMergeKeepsExplicitEmptyNotes(t *testing.T) {
	// An explicit "no notes" answer arrives as a pointer to "" and must
	// survive the merge so the slot reads as answered.
	got := Merge(Fields{}, Fields{Notes: strPtr("")})
	assert.NotNil(t, got.Notes)
	assert.Equal(t, "", *got.Notes)

	got = Merge(Fields{Notes: strPtr("flight AC123")}, Fields{Notes: strPtr("")})
	assert.Equal(t, "flight AC123", *got.Notes)
}

func TestMergePointerSlots(t *testing.T) {
	got := Merge(Fields{}, Fields{Passengers: intPtr(3), Luggage: boolPtr(false)})
	assert.Equal(t, 3, *got.Passengers)
	assert.False(t, *got.Luggage)

	got = Merge(Fields{Passengers: intPtr(2)}, Fields{Passengers: intPtr(5)})
	assert.Equal(t, 2, *got.Passengers)
}

func TestMissingFieldsOrder(t *testing.T) {
	f := Fields{Email: "a@b.co", Date: "2025-10-26"}
	assert.Equal(t,
		[]string{"name", "phone", "pickup", "dropoff", "time", "passengers", "luggage"},
		f.MissingFields())
	assert.Equal(t, "name", f.NextMissing())
	assert.False(t, f.Complete())
}

func TestCompleteIgnoresNotes(t *testing.T) {
	f := Fields{
		Name: "Ada", Phone: "7802222222", Email: "a@b.co",
		Pickup: "YEG", Dropoff: "Rogers Place",
		Date: "2025-10-26", Time: "4:30 PM",
		Passengers: intPtr(2), Luggage: boolPtr(true),
	}
	assert.True(t, f.Complete(), "notes are optional")
	assert.Empty(t, f.MissingFields())
}
