package booking

import (
	"regexp"
	"time"

	"github.com/executivedriving/concierge/internal/dates"
	"github.com/executivedriving/concierge/internal/geo"
)

// strictDateRE covers the date shapes accepted without renormalization.
var strictDateRE = regexp.MustCompile(`^(?:\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}(?:/\d{2,4})?)$`)

// validator is one step in the revalidation cascade. Field names the slot
// that gets cleared and re-asked when check returns a problem message.
type validator struct {
	field string
	check func(f *Fields, now time.Time) string
}

// validators runs in a fixed order so a record with several problems
// always surfaces the same one first.
var validators = []validator{
	{"phone", func(f *Fields, _ time.Time) string {
		if f.Phone != "" && !ValidPhone(f.Phone) {
			return "That phone number doesn't look quite right. Could you double-check it? A 10-digit number like 780-222-2222 works best."
		}
		return ""
	}},
	{"email", func(f *Fields, _ time.Time) string {
		if f.Email != "" && !ValidEmail(f.Email) {
			return "That email doesn't look quite right. Could you re-enter it (e.g., name@example.com)?"
		}
		return ""
	}},
	{"time", func(f *Fields, _ time.Time) string {
		if f.Time != "" && TimeNeedsAMPM(f.Time) {
			return "Just to confirm — is that AM or PM? (e.g., 4:30 PM)"
		}
		return ""
	}},
	{"pickup", func(f *Fields, _ time.Time) string {
		if f.Pickup != "" && geo.TooVague(f.Pickup) {
			return "Could you give me a more specific pickup — a street address with city, a hotel name, or a landmark like **YEG** or **West Edmonton Mall**?"
		}
		return ""
	}},
	{"dropoff", func(f *Fields, _ time.Time) string {
		if f.Dropoff != "" && geo.TooVague(f.Dropoff) {
			return "Could you give me a more specific drop-off — a street address with city, a hotel name, or a landmark?"
		}
		return ""
	}},
	{"pickup", func(f *Fields, _ time.Time) string {
		if f.Pickup != "" {
			return geo.TerminalHint(f.Pickup)
		}
		return ""
	}},
	{"dropoff", func(f *Fields, _ time.Time) string {
		if f.Dropoff != "" {
			return geo.TerminalHint(f.Dropoff)
		}
		return ""
	}},
	{"date", func(f *Fields, now time.Time) string {
		if f.Date == "" || strictDateRE.MatchString(f.Date) {
			return ""
		}
		// Natural-language dates are normalized in place rather than
		// re-asked; the note surfaces once alongside the next prompt.
		if res, ok := dates.Parse(f.Date, now); ok {
			f.Date = res.ISO
			f.DateNote = res.Note
			return ""
		}
		return "I couldn't quite catch that date. Could you give it like **2025-10-26**, **10/26**, or **26th October**?"
	}},
}

// Validate re-checks every filled slot in cascade order. On the first
// problem it clears the offending slot so the sequencer re-asks it, and
// returns the clarification message. An empty return means the record is
// internally consistent (though possibly incomplete).
func Validate(f *Fields, now time.Time) string {
	for _, v := range validators {
		msg := v.check(f, now)
		if msg == "" {
			continue
		}
		f.clear(v.field)
		return msg
	}
	return ""
}

func (f *Fields) clear(name string) {
	switch name {
	case "phone":
		f.Phone = ""
	case "email":
		f.Email = ""
	case "time":
		f.Time = ""
	case "pickup":
		f.Pickup = ""
	case "dropoff":
		f.Dropoff = ""
	case "date":
		f.Date = ""
	}
}
