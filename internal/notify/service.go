package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/executivedriving/concierge/internal/booking"
	"github.com/executivedriving/concierge/pkg/logging"
)

// Service turns accepted submissions into operator and customer emails.
// It implements booking.Notifier.
type Service struct {
	sender     EmailSender
	operatorTo string
	logger     *logging.Logger
	now        func() time.Time
}

func NewService(sender EmailSender, operatorTo string, logger *logging.Logger) *Service {
	return &Service{sender: sender, operatorTo: operatorTo, logger: logger, now: time.Now}
}

// SubmitBooking emails the reservation to the operator, then sends the
// customer a confirmation. Only the operator email is load-bearing: a
// confirmation failure is logged and swallowed, the reservation already
// went through.
func (s *Service) SubmitBooking(ctx context.Context, f booking.Fields) error {
	if s.operatorTo == "" {
		return errors.New("notify: operator booking email not configured")
	}

	html, err := renderBookingEmail(f, f.EscalationNote, s.now())
	if err != nil {
		return err
	}
	subject := fmt.Sprintf("🚘 Booking: %s → %s • %s %s • %s",
		f.Pickup, f.Dropoff, f.Date, f.Time, orDefault(f.Name, "Client"))

	if err := s.sender.Send(ctx, EmailMessage{
		To:      s.operatorTo,
		Subject: subject,
		HTML:    html,
	}); err != nil {
		return fmt.Errorf("notify: operator booking email: %w", err)
	}

	s.sendCustomerConfirmation(ctx, f)
	return nil
}

func (s *Service) sendCustomerConfirmation(ctx context.Context, f booking.Fields) {
	if f.Email == "" || !booking.ValidEmail(f.Email) {
		return
	}
	html, err := renderConfirmationEmail(f, s.now())
	if err != nil {
		s.logger.Warn("customer confirmation render failed", "error", err)
		return
	}
	msg := EmailMessage{
		To:      f.Email,
		ToName:  f.Name,
		Subject: fmt.Sprintf("Your Executive Driving booking request — %s %s", f.Date, f.Time),
		HTML:    html,
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		s.logger.Warn("customer confirmation email failed", "error", err, "to", f.Email)
	}
}

// SubmitConcierge emails a client-care request to the operator.
func (s *Service) SubmitConcierge(ctx context.Context, req booking.ConciergeRequest) error {
	if s.operatorTo == "" {
		return errors.New("notify: operator booking email not configured")
	}

	html, err := renderConciergeEmail(req, s.now())
	if err != nil {
		return err
	}
	if err := s.sender.Send(ctx, EmailMessage{
		To:      s.operatorTo,
		Subject: "Client Care Request — " + orDefault(req.Name, "Client"),
		HTML:    html,
	}); err != nil {
		return fmt.Errorf("notify: concierge email: %w", err)
	}
	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
