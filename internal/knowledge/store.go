package knowledge

import (
	"context"
	"strings"
)

// Entry is one learned or seeded question/answer pair.
type Entry struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

// maxLearnedAnswerLen keeps essay-length model output out of the store;
// those answers are one-offs, not FAQs.
const maxLearnedAnswerLen = 600

// Seed is the baseline FAQ set every store starts from.
var Seed = []Entry{
	{"what is this company", "Executive Driving is a private chauffeur service providing premium SUV transfers in Edmonton & Grande Prairie, with a focus on airport and executive travel."},
	{"what services do you provide", "Airport transfers, executive point-to-point, hourly/as-directed, and discreet VIP transport in premium SUVs."},
	{"which areas do you cover", "Edmonton and Grande Prairie (and nearby communities on request)."},
	{"how do i book", "You can book right here in chat or via the Reserve form—share your name, phone, email, pickup, destination, date, time, and passengers."},
	{"contact", "Phone 825-973-9800 • Email info@executivedriving.ca."},
	{"fleet", "Premium, modern SUVs quiet cabins, climate control, and ample luggage space."},
	{"pricing", "Rates vary by route, time, and availability. Share pickup, destination, date & time and I’ll quote and reserve."},
}

// Store is the question/answer knowledge base the chat flow reads and
// grows. Learn must be append-if-absent: a question already present,
// compared case-insensitively, keeps its original answer even under
// concurrent learners.
type Store interface {
	// Lookup returns the best stored answer for the text, if any entry
	// scores high enough.
	Lookup(ctx context.Context, text string) (string, bool, error)
	// Learn stores a new pair unless the question already exists or the
	// answer is too long to be worth keeping.
	Learn(ctx context.Context, question, answer string) error
}

// Admin is the operator's view of the store.
type Admin interface {
	List(ctx context.Context) ([]Entry, error)
	// Reset discards learned entries and restores the seed set.
	Reset(ctx context.Context) error
}

// tokenize lowercases and splits on non-word runs.
func tokenize(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		isWord := r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		return !isWord
	})
}

// scoreQuestion rates how well a stored question matches the user's
// text: containment either way is a hit (3), sharing two or more tokens
// is close (2), one token is a weak echo (1).
func scoreQuestion(text string, tokens []string, question string) int {
	t := strings.ToLower(text)
	q := strings.ToLower(question)
	if strings.Contains(t, q) || strings.Contains(q, t) {
		return 3
	}
	overlap := 0
	for _, qt := range tokenize(q) {
		for _, tt := range tokens {
			if qt == tt {
				overlap++
				break
			}
		}
	}
	switch {
	case overlap >= 2:
		return 2
	case overlap == 1:
		return 1
	default:
		return 0
	}
}

// bestAnswer scans the entries and answers only on a solid match.
func bestAnswer(text string, entries []Entry) (string, bool) {
	tokens := tokenize(text)
	best, bestScore := "", 0
	for _, e := range entries {
		if s := scoreQuestion(text, tokens, e.Question); s > bestScore {
			best, bestScore = e.Answer, s
		}
	}
	return best, bestScore >= 3
}

// learnable applies the shared guards before any store writes a pair.
func learnable(question, answer string) bool {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)
	if question == "" || answer == "" {
		return false
	}
	return len(answer) <= maxLearnedAnswerLen
}
