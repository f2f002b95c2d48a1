package conversation

import (
	"fmt"
	"strings"

	"github.com/executivedriving/concierge/internal/booking"
)

// Canned assistant copy. The brand voice lives here and nowhere else.
const (
	replyGreeting = "Hi, I’m NAVI. Welcome to Executive Driving. How can I help you today?"

	replyNotBooking = "All good no booking. I’m here for info too: pricing, routes, service area, vehicles, or policies. What would you like to know?"

	replyWrapUp = "Thanks, I’m here if you need anything else."

	replyWrapUpAfterBooking = "All set, Your booking is confirmed. Thank You, I’ll stay here if you need anything else."

	replyAlreadySubmitted = "You’re all set — your reservation is already submitted. Anything else I can arrange?"

	replyHuman = "No problem! I can loop in a team member. Fastest options: call 825-973-9800 or email info@executivedriving.ca. " +
		"If you’d like, share your name and number and I’ll have someone reach out. Meanwhile, what’s the pickup and destination?"

	replyAckAfterBooking = "You’re welcome! If you need any further assistance, I’m here to help."

	replyCompanyBlurb = "We’re a premium SUV chauffeur service for airport and executive travel in Edmonton & Grande Prairie — discreet, professional, on time. " +
		"If you’d like a quote, share your pickup, destination, date & time and I’ll set it up."

	replyRedirect = "Executive Driving is a premium SUV chauffeur service for airport and executive travel in Edmonton & Grande Prairie. " +
		"If you’re ready, share pickup, destination, date & time and I’ll get you a quote."

	replyBookingOpener = "Absolutely happy to arrange that. What’s your full name?"

	replySubmitFailed = "I’ve captured your details. There was a hiccup submitting just now, but **your request is safe**. " +
		"I’ll escalate this to an agent to finalize and email you the confirmation shortly."

	replyPanic = "Sorry, something went wrong on my side. Could you try again?"

	replyVaguePickup = "Could you share the **exact pickup address** (number + street) or a precise place like " +
		"“Days Inn by Wyndham Edmonton Downtown – Front Entrance” or “YEG – Arrivals”?"

	dropoffEscalationLine = "Drop-off noted. This appears to be **outside Alberta** — we’ll proceed with your booking and inform the team since it’s long-distance. " +
		"They’ll confirm final details and pricing shortly."
)

// fieldPrompts names each slot the way the confirm flow asks for it.
var fieldPrompts = map[string]string{
	"name":       "your full name",
	"phone":      "your phone number",
	"email":      "your email address",
	"pickup":     "the pickup address",
	"dropoff":    "the destination",
	"date":       "the service date",
	"time":       "the pickup time",
	"passengers": "how many passengers will travel",
	"luggage":    "whether you’ll have luggage",
}

// nextFieldPrompt is the slot-filling question for the first missing field.
func nextFieldPrompt(field, firstName string) string {
	withName := func(s string) string {
		if firstName == "" {
			return s
		}
		return s + ", " + firstName
	}
	switch field {
	case "name":
		return "May I have your full name, please?"
	case "phone":
		return withName("Great") + ". What’s the best phone number for confirmation?"
	case "email":
		return withName("Thanks") + ". What’s the best email for your confirmation, please?"
	case "pickup":
		return "Got it. What’s the pickup address?"
	case "dropoff":
		return "Thanks. Where are we dropping you off?"
	case "date":
		return "What date do you need the service?"
	case "time":
		return "What time should we pick you up? Please include AM/PM."
	case "passengers":
		return "How many passengers will be traveling?"
	case "luggage":
		return "Will you have luggage? (Yes/No is perfect.)"
	default:
		return fmt.Sprintf("Could you share %s?", fieldPrompts[field])
	}
}

func finalizePrompt(field, firstName string) string {
	name := ""
	if firstName != "" {
		name = ", " + firstName
	}
	return fmt.Sprintf("No problem%s — just need %s to finalize.", name, fieldPrompts[field])
}

func pickupHardStop(place string) string {
	where := ""
	if place != "" {
		where = fmt.Sprintf(" (“%s”)", place)
	}
	return "Thanks for the details. We currently operate **within Alberta** only (Edmonton & Grande Prairie). " +
		fmt.Sprintf("Your pickup appears to be outside Alberta%s. ", where) +
		"At the moment we can’t originate there—**we’re expanding soon**. If your trip can start in Edmonton or Grande Prairie, I can quote it right away."
}

func pickupPoliteDecline(place string) string {
	where := ""
	if place != "" {
		where = fmt.Sprintf(" (“%s”)", place)
	}
	return "Appreciate it. We currently originate service in **Edmonton (T5/T6)** and **Grande Prairie (T8V/T8W/T8X)**. " +
		fmt.Sprintf("That pickup looks outside our core area%s. ", where) +
		"If you can start in Edmonton or Grande Prairie, I can arrange it; otherwise I’m happy to refer a local provider."
}

func submittedSummary(f booking.Fields) string {
	name := ""
	if f.Name != "" {
		name = ", " + f.Name
	}
	passengers := "-"
	if f.Passengers != nil {
		passengers = fmt.Sprintf("%d", *f.Passengers)
	}
	luggage := ""
	if f.Luggage != nil && *f.Luggage {
		luggage = " • Luggage noted"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Thank you%s! I’ve submitted your reservation.\n", name)
	fmt.Fprintf(&b, "Pickup: %s → %s\n", f.Pickup, f.Dropoff)
	fmt.Fprintf(&b, "Date/Time: %s %s\n", f.Date, f.Time)
	fmt.Fprintf(&b, "Passengers: %s%s.", passengers, luggage)
	if f.EscalationNote != "" {
		b.WriteString("\n\n" + f.EscalationNote)
	}
	b.WriteString("\nYou’ll receive a confirmation shortly. Anything else I can arrange?")
	return b.String()
}

func kbFollowUp(answer string) string {
	return answer + "\n\nWould you like me to set up a booking? If so, what’s your pickup and destination?"
}

func kbFallbackFollowUp(answer string) string {
	return answer + "\n\nIf you’re ready, share pickup, destination, date & time."
}

func firstNameOf(full string) string {
	fields := strings.Fields(strings.TrimSpace(full))
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
