package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Result is a normalized calendar date. Note, when set, is a short
// confirmation line the assistant can surface before the next prompt.
type Result struct {
	ISO  string
	Note string
}

// ---------- package-level compiled regexes ----------

var (
	isoRE         = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	numericRE     = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?$`)
	tomorrowRE1   = regexp.MustCompile(`^tom+?or+?ow$`)
	tomorrowRE2   = regexp.MustCompile(`^tomm?or?ro?w$`)
	tomorrowRE3   = regexp.MustCompile(`^tmrw$`)
	ordFirstRE    = regexp.MustCompile(`(?i)^(?:on\s+)?(?:the\s+)?(\d{1,2})(?:st|nd|rd|th)?(?:\s+of)?\s+([a-z]+)[ ,.-]*(\d{2,4})?$`)
	monthFirstRE  = regexp.MustCompile(`(?i)^(?:on\s+)?([a-z]+)[ ,.-]*(\d{1,2})(?:st|nd|rd|th)?[ ,.-]*(\d{2,4})?$`)
	fuzzyRE       = regexp.MustCompile(`(?i).*?\b(\d{1,2})(?:st|nd|rd|th)?\b.*?\b([a-z]{3,})\b(?:.*?\b(\d{2,4})\b)?`)
	bareOrdinalRE = regexp.MustCompile(`^(?:on\s+the\s+)?(\d{1,2})(?:st|nd|rd|th)$`)
	trailingPunct = regexp.MustCompile(`[.,!?'"”’)\]]+$`)
	spacesRE      = regexp.MustCompile(`\s+`)
	nonLetterRE   = regexp.MustCompile(`[^a-z]`)
)

// monthAliases maps month tokens, including common misspellings seen in
// real transcripts, to month numbers.
var monthAliases = map[string]int{
	"jan": 1, "january": 1, "januray": 1,
	"feb": 2, "february": 2, "febuary": 2,
	"mar": 3, "march": 3,
	"apr": 4, "april": 4,
	"may": 5,
	"jun": 6, "june": 6,
	"jul": 7, "july": 7,
	"aug": 8, "august": 8, "agust": 8,
	"sep": 9, "sept": 9, "september": 9, "septembar": 9,
	"oct": 10, "octo": 10, "october": 10, "octobre": 10, "octuber": 10, "otober": 10, "ocober": 10, "octber": 10,
	"nov": 11, "november": 11,
	"dec": 12, "december": 12,
}

// monthNames is the fuzzy-match candidate list: full names before
// abbreviations, so a prefix match prefers the full spelling.
var monthNames = []struct {
	name string
	num  int
}{
	{"january", 1}, {"february", 2}, {"march", 3}, {"april", 4}, {"may", 5}, {"june", 6},
	{"july", 7}, {"august", 8}, {"september", 9}, {"october", 10}, {"november", 11}, {"december", 12},
	{"jan", 1}, {"feb", 2}, {"mar", 3}, {"apr", 4}, {"jun", 6}, {"jul", 7}, {"aug", 8},
	{"sep", 9}, {"sept", 9}, {"oct", 10}, {"nov", 11}, {"dec", 12},
}

// editDistance is a plain Levenshtein distance over bytes; month tokens
// are ASCII by the time they reach it.
func editDistance(a, b string) int {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	dp := make([][]int, len(a)+1)
	for i := range dp {
		dp[i] = make([]int, len(b)+1)
		dp[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		dp[0][j] = j
	}
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			dp[i][j] = min(dp[i-1][j]+1, min(dp[i][j-1]+1, dp[i-1][j-1]+cost))
		}
	}
	return dp[len(a)][len(b)]
}

// MonthFromToken resolves a month-like token to a month number.
// Exact aliases win; otherwise a prefix match in either direction
// short-circuits, falling back to the closest name within edit
// distance 2. Returns 0 when nothing matches.
func MonthFromToken(tok string) int {
	raw := nonLetterRE.ReplaceAllString(strings.ToLower(tok), "")
	if raw == "" {
		return 0
	}
	if m, ok := monthAliases[raw]; ok {
		return m
	}
	best, bestDist := 0, 0
	for _, cand := range monthNames {
		d := editDistance(raw, cand.name)
		if d <= 2 && (best == 0 || d < bestDist) {
			best, bestDist = cand.num, d
		}
		if strings.HasPrefix(raw, cand.name) || strings.HasPrefix(cand.name, raw) {
			return cand.num
		}
	}
	return best
}

func toISO(year, month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// resolveYear picks the nearest non-past occurrence of month/day.
func resolveYear(month, day int, now time.Time) int {
	year := now.Year()
	candidate := time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if candidate.Before(today) {
		return year + 1
	}
	return year
}

// parseYearToken interprets an optional year token: two-digit years are
// 2000-based, a leading apostrophe is stripped, and absence falls back
// to the nearest non-past year for month/day.
func parseYearToken(tok string, month, day int, now time.Time) int {
	if tok == "" {
		return resolveYear(month, day, now)
	}
	tok = strings.TrimLeft(tok, "'’")
	year, err := strconv.Atoi(tok)
	if err != nil {
		return resolveYear(month, day, now)
	}
	if year < 100 {
		year += 2000
	}
	return year
}

// ConfirmationNote is the standard phrasing for a silently normalized
// date, surfaced once before the next prompt.
func ConfirmationNote(iso string) string {
	return fmt.Sprintf("Got it. I’ll set your date to %s.", iso)
}

// Parse normalizes a natural-language date utterance relative to now.
// Accepted forms, tried in order: ISO, numeric m/d or d/m, today and
// tomorrow (with typo tolerance), ordinal-day-then-month, month-then-day,
// a fuzzy day+month extraction anywhere in the string, and a bare
// ordinal that assumes the current month. Returns ok=false for anything
// else, including out-of-range days and unrecognized months.
func Parse(input string, now time.Time) (Result, bool) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return Result{}, false
	}
	s = strings.NewReplacer("–", "-", "—", "-").Replace(s)
	s = spacesRE.ReplaceAllString(s, " ")
	s = trailingPunct.ReplaceAllString(s, "")

	if isoRE.MatchString(s) {
		return Result{ISO: s}, true
	}

	if m := numericRE.FindStringSubmatch(s); m != nil {
		a, _ := strconv.Atoi(m[1])
		b, _ := strconv.Atoi(m[2])
		var month, day int
		if a >= 1 && a <= 12 {
			month, day = a, b
		} else {
			month, day = b, a
		}
		if month < 1 || month > 12 || day < 1 || day > 31 {
			return Result{}, false
		}
		year := 0
		if m[3] != "" {
			year, _ = strconv.Atoi(m[3])
			if year < 100 {
				year += 2000
			}
		} else {
			year = resolveYear(month, day, now)
		}
		return Result{ISO: toISO(year, month, day)}, true
	}

	if s == "tomorrow" || tomorrowRE1.MatchString(s) || tomorrowRE2.MatchString(s) || tomorrowRE3.MatchString(s) {
		t := now.AddDate(0, 0, 1)
		return Result{ISO: toISO(t.Year(), int(t.Month()), t.Day())}, true
	}
	if s == "today" {
		return Result{ISO: toISO(now.Year(), int(now.Month()), now.Day())}, true
	}

	// Bare ordinal ("on the 7th") has to run before the month-name forms:
	// those would capture "the" as a month token and fail the whole parse.
	if m := bareOrdinalRE.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		if day < 1 || day > 31 {
			return Result{}, false
		}
		month := int(now.Month())
		year := resolveYear(month, day, now)
		iso := toISO(year, month, day)
		return Result{ISO: iso, Note: ConfirmationNote(iso)}, true
	}

	if m := ordFirstRE.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month := MonthFromToken(m[2])
		if month == 0 || day < 1 || day > 31 {
			return Result{}, false
		}
		year := parseYearToken(m[3], month, day, now)
		iso := toISO(year, month, day)
		return Result{ISO: iso, Note: ConfirmationNote(iso)}, true
	}

	if m := monthFirstRE.FindStringSubmatch(s); m != nil {
		month := MonthFromToken(m[1])
		day, _ := strconv.Atoi(m[2])
		if month == 0 || day < 1 || day > 31 {
			return Result{}, false
		}
		year := parseYearToken(m[3], month, day, now)
		iso := toISO(year, month, day)
		return Result{ISO: iso, Note: ConfirmationNote(iso)}, true
	}

	if m := fuzzyRE.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month := MonthFromToken(m[2])
		if month == 0 || day < 1 || day > 31 {
			return Result{}, false
		}
		year := parseYearToken(m[3], month, day, now)
		iso := toISO(year, month, day)
		return Result{ISO: iso, Note: ConfirmationNote(iso)}, true
	}

	return Result{}, false
}

// ---------- mention detection ----------

var mentionREs = []*regexp.Regexp{
	regexp.MustCompile(`\b(today|tomorrow|next\s+month)\b`),
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}(?:[/-]\d{2,4})?\b`),
	regexp.MustCompile(`\b\d{1,2}(?:st|nd|rd|th)?\s+(?:of\s+)?[a-z]{3,}\b`),
	regexp.MustCompile(`\b[a-z]{3,}\s+\d{1,2}(?:st|nd|rd|th)?\b`),
}

// Mentions reports whether the utterance plausibly refers to a date at
// all. Used to decide whether a normalization note is worth showing.
func Mentions(utterance string) bool {
	s := strings.ToLower(utterance)
	for _, re := range mentionREs {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}
