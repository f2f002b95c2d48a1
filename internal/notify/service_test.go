package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/executivedriving/concierge/internal/booking"
	"github.com/executivedriving/concierge/pkg/logging"
)

type recordingSender struct {
	sent    []EmailMessage
	failFor string // fail sends addressed to this recipient
}

func (r *recordingSender) Send(_ context.Context, msg EmailMessage) error {
	if r.failFor != "" && msg.To == r.failFor {
		return errors.New("delivery refused")
	}
	r.sent = append(r.sent, msg)
	return nil
}

func newTestService(sender EmailSender) *Service {
	s := NewService(sender, "dispatch@executivedriving.ca", logging.New("error"))
	s.now = func() time.Time { return time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func completeFields() booking.Fields {
	n := 2
	l := true
	notes := "flight AC123"
	return booking.Fields{
		Name: "Ada Lovelace", Phone: "+1 (780) 222-2222", Email: "ada@example.com",
		Pickup: "10060 Jasper Ave, Edmonton", Dropoff: "YEG",
		Date: "2025-10-26", Time: "4:30 PM",
		Passengers: &n, Luggage: &l, Notes: &notes,
	}
}

func TestSubmitBookingSendsBothEmails(t *testing.T) {
	sender := &recordingSender{}
	svc := newTestService(sender)

	require.NoError(t, svc.SubmitBooking(context.Background(), completeFields()))
	require.Len(t, sender.sent, 2)

	operator := sender.sent[0]
	assert.Equal(t, "dispatch@executivedriving.ca", operator.To)
	assert.Contains(t, operator.Subject, "10060 Jasper Ave, Edmonton → YEG")
	assert.Contains(t, operator.HTML, "New Reservation Request")
	assert.Contains(t, operator.HTML, "flight AC123")

	customer := sender.sent[1]
	assert.Equal(t, "ada@example.com", customer.To)
	assert.Contains(t, customer.Subject, "2025-10-26 4:30 PM")
	assert.Contains(t, customer.HTML, "Thank you, Ada Lovelace")
}

func TestSubmitBookingConfirmationFailureIsSwallowed(t *testing.T) {
	sender := &recordingSender{failFor: "ada@example.com"}
	svc := newTestService(sender)

	err := svc.SubmitBooking(context.Background(), completeFields())
	assert.NoError(t, err, "customer confirmation is best-effort")
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "dispatch@executivedriving.ca", sender.sent[0].To)
}

func TestSubmitBookingOperatorFailure(t *testing.T) {
	sender := &recordingSender{failFor: "dispatch@executivedriving.ca"}
	svc := newTestService(sender)

	err := svc.SubmitBooking(context.Background(), completeFields())
	assert.Error(t, err, "operator email is load-bearing")
}

func TestSubmitBookingEscalationNote(t *testing.T) {
	sender := &recordingSender{}
	svc := newTestService(sender)

	f := completeFields()
	f.EscalationNote = "Drop-off may be outside Alberta; please confirm with the client."
	require.NoError(t, svc.SubmitBooking(context.Background(), f))

	assert.Contains(t, sender.sent[0].HTML, "Agent Escalation")
	assert.NotContains(t, sender.sent[1].HTML, "Agent Escalation", "customer never sees escalations")
}

func TestSubmitBookingUnconfigured(t *testing.T) {
	svc := NewService(&recordingSender{}, "", logging.New("error"))
	assert.Error(t, svc.SubmitBooking(context.Background(), completeFields()))
}

func TestSubmitConcierge(t *testing.T) {
	sender := &recordingSender{}
	svc := newTestService(sender)

	require.NoError(t, svc.SubmitConcierge(context.Background(), booking.ConciergeRequest{
		Name: "Ada", Phone: "+1 (780) 222-2222", Email: "ada@example.com",
		Date: "2025-11-03", Details: "monthly account inquiry",
	}))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Client Care Request — Ada", sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].HTML, "monthly account inquiry")
	assert.Contains(t, sender.sent[0].HTML, "Requested Date")
	assert.Contains(t, sender.sent[0].HTML, "2025-11-03")
}
