package booking

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	digitsOnlyRE = regexp.MustCompile(`\D`)
	emailRE      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	countRE      = regexp.MustCompile(`\b(\d{1,2})\b`)
	timePartRE   = regexp.MustCompile(`\b(\d{1,2})(?::(\d{2}))?\b`)
	meridiemRE   = regexp.MustCompile(`(?i)\b(am|pm|a\.m\.|p\.m\.|noon|midnight)\b`)
	noNotesRE    = regexp.MustCompile(`(?i)^(no|none|n/a|na|nothing)[.!]?$`)
)

// numberWords covers the spelled-out counts customers actually type.
var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5, "six": 6,
	"seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11, "twelve": 12,
}

// CoercePassengers turns a free-form passenger answer into a count.
// Accepts bare or embedded digits 1-99 and spelled-out words up to
// twelve. Returns ok=false when no usable count is present.
func CoercePassengers(raw string) (int, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return 0, false
	}
	for _, tok := range strings.FieldsFunc(s, func(r rune) bool { return r < 'a' || r > 'z' }) {
		if n, ok := numberWords[tok]; ok {
			return n, true
		}
	}
	if m := countRE.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n >= 1 && n <= 99 {
			return n, true
		}
	}
	return 0, false
}

// CoerceLuggage turns a free-form luggage answer into yes/no. A positive
// bag count reads as yes; zero reads as no.
func CoerceLuggage(raw string) (bool, bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "yes", "yeah", "yep", "yup", "y", "true", "sure":
		return true, true
	case "no", "nope", "none", "nah", "n", "false":
		return false, true
	}
	if m := countRE.FindStringSubmatch(s); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n > 0, true
	}
	if strings.Contains(s, "no luggage") || strings.Contains(s, "no bags") {
		return false, true
	}
	if strings.Contains(s, "luggage") || strings.Contains(s, "bag") || strings.Contains(s, "suitcase") {
		return true, true
	}
	return false, false
}

// ValidPhone accepts ten digits, or eleven digits with a leading
// country code 1, ignoring formatting characters.
func ValidPhone(raw string) bool {
	digits := digitsOnlyRE.ReplaceAllString(raw, "")
	return len(digits) == 10 || (len(digits) == 11 && digits[0] == '1')
}

// FormatPhone renders a valid phone number as "+1 (780) 222-2222".
// Invalid input is returned untouched.
func FormatPhone(raw string) string {
	digits := digitsOnlyRE.ReplaceAllString(raw, "")
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return raw
	}
	return "+1 (" + digits[:3] + ") " + digits[3:6] + "-" + digits[6:]
}

// ValidEmail is a deliberately loose shape check; deliverability is the
// mail provider's problem.
func ValidEmail(raw string) bool {
	return emailRE.MatchString(strings.TrimSpace(raw))
}

// TimeNeedsAMPM reports whether a stated time is ambiguous: a 12-hour
// clock reading with no meridiem. 24-hour readings (hour 13-23, or
// minute-bearing 0 o'clock) pass without one.
func TimeNeedsAMPM(raw string) bool {
	s := strings.TrimSpace(raw)
	if s == "" {
		return false
	}
	if meridiemRE.MatchString(s) {
		return false
	}
	m := timePartRE.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	hour, _ := strconv.Atoi(m[1])
	return hour >= 1 && hour <= 12
}

// NormalizeNotes maps a bare negation ("no", "none", "n/a") to the
// explicit empty string so the slot reads as answered.
func NormalizeNotes(raw string) string {
	if noNotesRE.MatchString(strings.TrimSpace(raw)) {
		return ""
	}
	return strings.TrimSpace(raw)
}
