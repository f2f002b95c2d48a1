package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

func TestValidateCascadeOrder(t *testing.T) {
	// Several problems at once: the phone check always fires first.
	f := Fields{Phone: "123", Email: "not-an-email", Time: "4:30"}
	msg := Validate(&f, testNow)
	assert.Contains(t, msg, "phone number")
	assert.Empty(t, f.Phone, "offending slot cleared for re-ask")
	assert.Equal(t, "not-an-email", f.Email, "later problems untouched this turn")

	msg = Validate(&f, testNow)
	assert.Contains(t, msg, "email")
	assert.Empty(t, f.Email)

	msg = Validate(&f, testNow)
	assert.Contains(t, msg, "AM or PM")
	assert.Empty(t, f.Time)

	assert.Empty(t, Validate(&f, testNow))
}

func TestValidateVaguePickup(t *testing.T) {
	f := Fields{Pickup: "downtown"}
	msg := Validate(&f, testNow)
	assert.Contains(t, msg, "pickup")
	assert.Empty(t, f.Pickup)
}

func TestValidateTerminalHint(t *testing.T) {
	f := Fields{Pickup: "terminal 2 arrivals"}
	msg := Validate(&f, testNow)
	assert.Contains(t, msg, "confirm the airport")
	assert.Empty(t, f.Pickup)

	f = Fields{Pickup: "YEG terminal 2"}
	assert.Empty(t, Validate(&f, testNow), "airport named, terminal is fine")
}

func TestValidateDateNormalizedSilently(t *testing.T) {
	f := Fields{Date: "26th October"}
	msg := Validate(&f, testNow)
	assert.Empty(t, msg, "fuzzy date is not an error")
	assert.Equal(t, "2025-10-26", f.Date)
	assert.Contains(t, f.DateNote, "2025-10-26")
}

func TestValidateDateStrictShapesPassThrough(t *testing.T) {
	for _, in := range []string{"2025-10-26", "10/26", "10/26/2025"} {
		f := Fields{Date: in}
		assert.Empty(t, Validate(&f, testNow), in)
		assert.Equal(t, in, f.Date, "strict shapes are kept verbatim")
		assert.Empty(t, f.DateNote)
	}
}

func TestValidateUnparseableDate(t *testing.T) {
	f := Fields{Date: "whenever works"}
	msg := Validate(&f, testNow)
	assert.Contains(t, msg, "date")
	assert.Empty(t, f.Date)
}
