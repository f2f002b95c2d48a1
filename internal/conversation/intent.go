package conversation

import (
	"regexp"
	"strings"

	"github.com/executivedriving/concierge/internal/transcript"
)

// How far back each "did we already…" check looks.
const (
	recentTurns   = 4
	advisoryTurns = 8
)

var (
	notBookingRE  = regexp.MustCompile(`(?i)\b(i (do not|dont|don't) want (to )?book|not booking|no booking|just asking|only info)\b`)
	affirmRE      = regexp.MustCompile(`(?i)^(y|ye|yes|yup|yeah|yes please|please confirm|confirm|lock it in|go ahead|book it|book now|sounds good|do it|yes sir|yessir)\b`)
	positiveAckRE = regexp.MustCompile(`(?i)\b(nice|great|awesome|perfect|cool|sweet|amazing|love it|sounds good|sounds great|okay|ok|alright|got it|thanks|thank you|appreciate it|cheers|good)\b`)

	thanksCloseRE = regexp.MustCompile(`(?i)\b(thanks|thank you|appreciate it|cheers|much obliged|gracias|merci|ta|tata)\b`)
	endIntentRE   = regexp.MustCompile(`(?i)\b(that'?s (all|it)|no (need|more|further)|we(?:'| a)re good|all good|bye|goodbye|see (ya|you)|nothing else|done|finish(?:ed)?)\b`)
	noCloseRE     = regexp.MustCompile(`(?i)\b(nope|no thanks|no thank you|no need|no more|nothing else|nah|all good|we're good|done|finished)\b`)

	questionRE      = regexp.MustCompile(`(?i)\b(what|who|where|when|why|how|price|pricing|rate|area|service)\b`)
	bookingIntentRE = regexp.MustCompile(`(?i)\b(book(ing)?|reserve|reservation|ride|pick(?:\s|-)?up)\b`)

	humanWordRE  = regexp.MustCompile(`(?i)\bhuman\b`)
	humanVerbRE  = regexp.MustCompile(`(?i)\b(talk|speak|call|connect|someone)\b`)
	escalationRE = regexp.MustCompile(`(?i)\b(human|agent|person|representative|operator|someone|call|phone|email)\b`)

	completedBookingRE = regexp.MustCompile(`(?i)(submitted your reservation|reservation (?:request )?submitted|you(?:’|')?ll receive a confirmation|confirmation shortly)`)
	companyInfoRE      = regexp.MustCompile(`(?i)(executive driving.*(private|premium).*chauffeur|airport.*executive.*edmonton|grande\s*prairie)`)
	advisoryShownRE    = regexp.MustCompile(`(?i)\bappears to be \*\*outside Alberta\*\*`)

	addressWordRE    = regexp.MustCompile(`(?i)(st\.|street|ave|avenue|rd|road|blvd|drive|dr\.|mall|terminal|airport|hotel|tower|center|centre|station|university|hospital|museum|arena|stadium)`)
	addressNumberRE  = regexp.MustCompile(`\d{1,5}`)
	addressAirportRE = regexp.MustCompile(`(?i)\b(yeg|yyc|yyz|yow|yvr|yul|yxe|yqr|ymm|yqu|yql|ybw)\b`)
	addressCityRE    = regexp.MustCompile(`(?i)(edmonton|grande\s*prairie|calgary|fort\s*mcmurray|leduc|st\.?\s*albert|sherwood\s*park)`)
	addressTimeRE    = regexp.MustCompile(`(?i)\b(\d{1,2}:\d{2}\s*(am|pm)?|\d{1,2}\s*(am|pm))\b`)
	addressDateRE    = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}(/\d{2,4})?)\b`)
)

var greetings = []string{"hi", "hello", "hey", "good morning", "good afternoon", "good evening"}

var humanPhrases = []string{
	"talk to a human", "talk to human", "speak to a human", "speak to human",
	"human please", "real person", "agent please", "customer service",
	"representative", "live agent", "operator", "call you", "call someone",
	"can i talk to someone", "connect me to a human", "talk to someone",
}

// allowedKeywords gates off-topic chatter out of the slot-filling flow.
var allowedKeywords = []string{
	"book", "booking", "reserve", "reservation", "ride", "pickup", "pick up", "dropoff", "drop-off",
	"airport", "yeg", "edmonton", "grande prairie", "destination", "quote",
	"price", "pricing", "fare", "rate", "availability", "schedule", "time",
	"date", "passengers", "luggage", "car seat", "flight",
	"executive driving", "chauffeur", "driver", "suv", "fleet", "policy",
	"cancellation", "cancel", "payment", "invoice", "hours", "contact",
	"phone", "email", "area", "service area", "reserve your ride",
}

// turnContext is everything the routing rules need, computed once per
// request from the transcript window.
type turnContext struct {
	turns       []transcript.Turn
	lastUserRaw string
	lastUser    string // lowercased

	hasAssistant     bool
	bookingCompleted bool
	companyInfoShown bool
	askedForDetail   bool
	hadBookingIntent bool
}

func newTurnContext(turns []transcript.Turn) *turnContext {
	raw := transcript.LastUserText(turns)
	return &turnContext{
		turns:            turns,
		lastUserRaw:      raw,
		lastUser:         strings.ToLower(raw),
		hasAssistant:     transcript.HasAssistant(turns),
		bookingCompleted: transcript.AnyAssistantMatches(turns, recentTurns, completedBookingRE),
		companyInfoShown: transcript.AnyAssistantMatches(turns, recentTurns, companyInfoRE),
		askedForDetail:   assistantAskedForDetail(turns),
		hadBookingIntent: transcript.AnyUserContains(turns, allowedKeywords),
	}
}

func (tc *turnContext) wantsWrapUp() bool {
	return thanksCloseRE.MatchString(tc.lastUser) ||
		endIntentRE.MatchString(tc.lastUser) ||
		noCloseRE.MatchString(tc.lastUser)
}

func (tc *turnContext) wantsHuman() bool {
	for _, p := range humanPhrases {
		if strings.Contains(tc.lastUser, p) {
			return true
		}
	}
	return humanWordRE.MatchString(tc.lastUser) && humanVerbRE.MatchString(tc.lastUser)
}

// greetingOnly fires only on the conversation opener: a short bare
// greeting before the assistant has said anything.
func (tc *turnContext) greetingOnly() bool {
	if tc.hasAssistant {
		return false
	}
	msg := tc.lastUser
	if escalationRE.MatchString(msg) {
		return false
	}
	if len(strings.Fields(msg)) > 3 {
		return false
	}
	for _, g := range greetings {
		if msg == g || msg == g+"!" || msg == g+"." {
			return true
		}
	}
	return false
}

func (tc *turnContext) asksQuestion() bool {
	return strings.HasSuffix(tc.lastUserRaw, "?") || questionRE.MatchString(tc.lastUserRaw)
}

// statesBookingIntent is a statement of intent, not a question about
// booking.
func (tc *turnContext) statesBookingIntent() bool {
	return bookingIntentRE.MatchString(tc.lastUser) && !strings.HasSuffix(strings.TrimSpace(tc.lastUser), "?")
}

func (tc *turnContext) keywordAllowed() bool {
	for _, k := range allowedKeywords {
		if strings.Contains(tc.lastUser, k) {
			return true
		}
	}
	return false
}

func (tc *turnContext) inFlow() bool {
	return tc.hadBookingIntent || tc.askedForDetail
}

func (tc *turnContext) advisoryAlreadyShown() bool {
	return transcript.AnyAssistantMatches(tc.turns, advisoryTurns, advisoryShownRE)
}

// looksAddressy guesses whether a short utterance is a slot answer
// (address, time, date, airport code) rather than off-topic chatter.
func looksAddressy(s string) bool {
	str := strings.ToLower(s)
	return addressWordRE.MatchString(str) ||
		addressNumberRE.MatchString(str) ||
		addressAirportRE.MatchString(str) ||
		addressCityRE.MatchString(str) ||
		addressTimeRE.MatchString(str) ||
		addressDateRE.MatchString(str) ||
		len(str) <= 5
}

// assistantAskedForDetail reports whether the assistant recently asked a
// slot-filling question, which keeps answers flowing to the pipeline.
func assistantAskedForDetail(turns []transcript.Turn) bool {
	cues := []string{"name", "email", "phone", "pickup", "destination", "date", "time", "passengers", "luggage", "flight"}
	for _, t := range transcript.Window(turns, recentTurns) {
		if t.Role != transcript.RoleAssistant {
			continue
		}
		content := strings.ToLower(t.Content)
		for _, c := range cues {
			if strings.Contains(content, c) {
				return true
			}
		}
	}
	return false
}
