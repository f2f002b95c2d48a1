package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/executivedriving/concierge/internal/booking"
)

// Shared branded frame: dark header and footer around a white body.
const emailFrame = `
<div style="font-family:Inter,Arial,sans-serif; max-width:640px; margin:0 auto; border:1px solid #eee; border-radius:12px; overflow:hidden;">
  <div style="background:#0a0b0d; padding:20px; text-align:center; color:#fff; font-size:18px; letter-spacing:1px;">EXECUTIVE DRIVING</div>
  <div style="padding:24px; background:#fff; color:#111; line-height:1.6;">
    {{template "body" .}}
    <hr style="margin:24px 0; border:none; border-top:1px solid #eee">
    <p style="font-size:13px; color:#555; text-align:center;">
      Executive Driving — Edmonton &amp; Grande Prairie<br>
      📞 825-973-9800 &nbsp; | &nbsp; ✉️ info@executivedriving.ca
    </p>
  </div>
  <div style="background:#0a0b0d; padding:14px; text-align:center; font-size:12px; color:#aaa;">© {{.Year}} Executive Driving. All rights reserved.</div>
</div>`

const bookingBody = `{{define "body"}}
<h2 style="margin:0 0 16px; font-size:20px;">🚘 New Reservation Request</h2>
<table style="width:100%; border-collapse:collapse; font-size:14px;">
  <tr><td style="padding:6px 0;"><b>Name:</b></td><td>{{.Fields.Name}}</td></tr>
  <tr><td style="padding:6px 0;"><b>Phone:</b></td><td>{{.Fields.Phone}}</td></tr>
  <tr><td style="padding:6px 0;"><b>Email:</b></td><td>{{.Fields.Email}}</td></tr>
  <tr><td style="padding:6px 0;"><b>Pickup:</b></td><td>{{.Fields.Pickup}}</td></tr>
  <tr><td style="padding:6px 0;"><b>Drop-off:</b></td><td>{{.Fields.Dropoff}}</td></tr>
  <tr><td style="padding:6px 0;"><b>Date:</b></td><td>{{.Fields.Date}}</td></tr>
  <tr><td style="padding:6px 0;"><b>Time:</b></td><td>{{.Fields.Time}}</td></tr>
  <tr><td style="padding:6px 0;"><b>Passengers:</b></td><td>{{.Passengers}}</td></tr>
  <tr><td style="padding:6px 0;"><b>Luggage:</b></td><td>{{.Luggage}}</td></tr>
</table>
{{if .Notes}}<p style="margin:24px 0 0; line-height:1.6;"><b>Notes:</b><br>{{.Notes}}</p>{{end}}
{{if .EscalationNote}}<p style="margin:16px 0 0; color:#7a5;"><b>Agent Escalation:</b> {{.EscalationNote}}</p>{{end}}
{{end}}`

const confirmationBody = `{{define "body"}}
<h2 style="margin:0 0 10px; font-size:20px;">Thank you{{if .Fields.Name}}, {{.Fields.Name}}{{end}}!</h2>
<p style="margin:0 0 14px;"><strong>Your booking request with <b>Executive Driving</b> has been received.
We’ll review availability and send a final confirmation shortly.</strong></p>
<table style="width:100%; border-collapse:collapse; font-size:14px;">
  <tr><td style="padding:6px 0;"><b>Pickup:</b></td><td>{{.Fields.Pickup}}</td></tr>
  <tr><td style="padding:6px 0;"><b>Drop-off:</b></td><td>{{.Fields.Dropoff}}</td></tr>
  <tr><td style="padding:6px 0;"><b>Date:</b></td><td>{{.Fields.Date}}</td></tr>
  <tr><td style="padding:6px 0;"><b>Time:</b></td><td>{{.Fields.Time}}</td></tr>
  <tr><td style="padding:6px 0;"><b>Passengers:</b></td><td>{{.Passengers}}</td></tr>
</table>
<p style="margin:18px 0 0; font-size:15px; font-weight:600;">We wish you a pleasant ride with Executive Driving.</p>
{{end}}`

const conciergeBody = `{{define "body"}}
<h2 style="margin:0 0 16px; font-size:20px;">New Client Care Request</h2>
<table style="width:100%; border-collapse:collapse; font-size:14px;">
  <tr><td style="padding:6px 0;"><b>Name:</b></td><td>{{.Request.Name}}</td></tr>
  <tr><td style="padding:6px 0;"><b>Phone:</b></td><td>{{.Request.Phone}}</td></tr>
  <tr><td style="padding:6px 0;"><b>Email:</b></td><td>{{.Request.Email}}</td></tr>
  <tr><td style="padding:6px 0;"><b>Requested Date:</b></td><td>{{.Request.Date}}</td></tr>
</table>
{{if .Request.Details}}<p style="margin:16px 0 0;"><b>Details:</b><br>{{.Request.Details}}</p>{{end}}
{{end}}`

var (
	bookingTmpl      = template.Must(template.Must(template.New("booking").Parse(emailFrame)).Parse(bookingBody))
	confirmationTmpl = template.Must(template.Must(template.New("confirmation").Parse(emailFrame)).Parse(confirmationBody))
	conciergeTmpl    = template.Must(template.Must(template.New("concierge").Parse(emailFrame)).Parse(conciergeBody))
)

type bookingEmailData struct {
	Fields         booking.Fields
	Passengers     string
	Luggage        string
	Notes          string
	EscalationNote string
	Year           int
}

type conciergeEmailData struct {
	Request booking.ConciergeRequest
	Year    int
}

func newBookingEmailData(f booking.Fields, escalationNote string, now time.Time) bookingEmailData {
	data := bookingEmailData{
		Fields:         f,
		Passengers:     "-",
		Luggage:        "-",
		EscalationNote: escalationNote,
		Year:           now.Year(),
	}
	if f.Passengers != nil {
		data.Passengers = fmt.Sprintf("%d", *f.Passengers)
	}
	if f.Luggage != nil {
		if *f.Luggage {
			data.Luggage = "Yes"
		} else {
			data.Luggage = "No"
		}
	}
	if f.Notes != nil {
		data.Notes = *f.Notes
	}
	return data
}

func renderBookingEmail(f booking.Fields, escalationNote string, now time.Time) (string, error) {
	var buf bytes.Buffer
	if err := bookingTmpl.Execute(&buf, newBookingEmailData(f, escalationNote, now)); err != nil {
		return "", fmt.Errorf("notify: render booking email: %w", err)
	}
	return buf.String(), nil
}

func renderConfirmationEmail(f booking.Fields, now time.Time) (string, error) {
	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, newBookingEmailData(f, "", now)); err != nil {
		return "", fmt.Errorf("notify: render confirmation email: %w", err)
	}
	return buf.String(), nil
}

func renderConciergeEmail(req booking.ConciergeRequest, now time.Time) (string, error) {
	var buf bytes.Buffer
	if err := conciergeTmpl.Execute(&buf, conciergeEmailData{Request: req, Year: now.Year()}); err != nil {
		return "", fmt.Errorf("notify: render concierge email: %w", err)
	}
	return buf.String(), nil
}
