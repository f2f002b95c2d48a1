package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/executivedriving/concierge/internal/booking"
	"github.com/executivedriving/concierge/internal/dates"
	"github.com/executivedriving/concierge/internal/geo"
	"github.com/executivedriving/concierge/internal/transcript"
)

// askPatterns maps an assistant prompt to the slot it was asking for.
// First match wins, so the more specific phrasings sit above the
// catch-all ones.
var askPatterns = []struct {
	field string
	re    *regexp.Regexp
}{
	{"name", regexp.MustCompile(`(?i)\bfull\s+name\b`)},
	{"passengers", regexp.MustCompile(`(?i)\bhow many passengers\b`)},
	{"luggage", regexp.MustCompile(`(?i)\bluggage\b`)},
	{"pickup", regexp.MustCompile(`(?i)(\bpickup address\b|what['’]?s the pickup|where.*pickup)`)},
	{"dropoff", regexp.MustCompile(`(?i)(where are we dropping you off|\bthe destination\b|\bdrop-?off\b)`)},
	{"date", regexp.MustCompile(`(?i)(\bwhat date\b|\bservice date\b)`)},
	{"time", regexp.MustCompile(`(?i)(\bwhat time\b|\bpickup time\b)`)},
	{"phone", regexp.MustCompile(`(?i)\bphone\b`)},
	{"email", regexp.MustCompile(`(?i)\bemail\b`)},
	{"notes", regexp.MustCompile(`(?i)(\bnotes\b|\bflight number\b)`)},
}

var (
	nameShapeRE   = regexp.MustCompile(`(?i)^\s*[a-z][a-z\s.'’-]{1,40}$`)
	emailFindRE   = regexp.MustCompile(`[^\s@,;]+@[^\s@,;]+\.[^\s@,;]+`)
	phoneFindRE   = regexp.MustCompile(`(\+?1[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)
	timeMentionRE = regexp.MustCompile(`(?i)(\d{1,2}(:\d{2})?\s*(am|pm)?|\bnoon\b|\bmidnight\b)`)
)

// Salvage is the deterministic fallback extractor. It replays the
// transcript as a question/answer cursor: each assistant prompt marks
// which slot the next user turn answers, and email and phone shapes are
// harvested from every user turn regardless of what was asked.
type Salvage struct{}

func NewSalvage() *Salvage { return &Salvage{} }

func (s *Salvage) Extract(_ context.Context, turns []transcript.Turn) (booking.Fields, error) {
	var f booking.Fields
	awaiting := ""

	for _, t := range turns {
		switch t.Role {
		case transcript.RoleAssistant:
			// An assistant turn that asks for nothing keeps the previous
			// question open; only a new question moves the cursor.
			if field := askedField(t.Content); field != "" {
				awaiting = field
			}
		case transcript.RoleUser:
			text := strings.TrimSpace(t.Content)
			if f.Email == "" {
				if m := emailFindRE.FindString(text); m != "" {
					f.Email = m
				}
			}
			if f.Phone == "" {
				if m := phoneFindRE.FindString(text); m != "" && booking.ValidPhone(m) {
					f.Phone = m
				}
			}
			if awaiting != "" {
				applyAnswer(&f, awaiting, text)
			}
		}
	}
	return f, nil
}

func askedField(prompt string) string {
	for _, p := range askPatterns {
		if p.re.MatchString(prompt) {
			return p.field
		}
	}
	return ""
}

// applyAnswer fills one slot from the user's reply to a direct question,
// with just enough shape checking to avoid storing garbage. Later answers
// win over earlier ones: a correction replaces the original.
func applyAnswer(f *booking.Fields, field, answer string) {
	if answer == "" {
		return
	}
	switch field {
	case "name":
		if nameShapeRE.MatchString(answer) {
			f.Name = answer
		}
	case "phone":
		// Already harvested unconditionally above.
	case "email":
		// Already harvested unconditionally above.
	case "pickup":
		if geo.IsNamedPlaceLoose(answer) || !geo.TooVague(answer) {
			f.Pickup = answer
		}
	case "dropoff":
		if geo.IsNamedPlaceLoose(answer) || !geo.TooVague(answer) {
			f.Dropoff = answer
		}
	case "date":
		if dates.Mentions(answer) {
			f.Date = answer
		}
	case "time":
		if timeMentionRE.MatchString(answer) {
			f.Time = answer
		}
	case "passengers":
		if n, ok := booking.CoercePassengers(answer); ok {
			f.Passengers = &n
		}
	case "luggage":
		if b, ok := booking.CoerceLuggage(answer); ok {
			f.Luggage = &b
		}
	case "notes":
		normalized := booking.NormalizeNotes(answer)
		f.Notes = &normalized
	}
}
