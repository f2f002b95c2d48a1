package conversation

import (
	"context"
	"time"

	"github.com/executivedriving/concierge/internal/booking"
	"github.com/executivedriving/concierge/internal/dates"
	"github.com/executivedriving/concierge/internal/extract"
	"github.com/executivedriving/concierge/internal/geo"
	"github.com/executivedriving/concierge/internal/knowledge"
	"github.com/executivedriving/concierge/internal/observability/metrics"
	"github.com/executivedriving/concierge/internal/transcript"
	"github.com/executivedriving/concierge/pkg/logging"
)

// transcriptWindow bounds how much history a single turn considers.
const transcriptWindow = 20

// Reply is one assistant turn. Done marks a terminal outcome the widget
// may use to close the flow.
type Reply struct {
	Text string
	Done bool
}

// Orchestrator is the stateless per-turn brain: the caller sends the
// whole transcript, the orchestrator derives everything from it and
// returns exactly one reply. No conversation state is kept between
// calls, so any instance can serve any turn.
type Orchestrator struct {
	extractor  extract.Extractor // language-model extraction, may be nil
	salvage    extract.Extractor
	classifier *geo.Classifier
	store      knowledge.Store
	notifier   booking.Notifier
	metrics    *metrics.ChatMetrics
	logger     *logging.Logger
	now        func() time.Time
}

func NewOrchestrator(
	extractor extract.Extractor,
	classifier *geo.Classifier,
	store knowledge.Store,
	notifier booking.Notifier,
	m *metrics.ChatMetrics,
	logger *logging.Logger,
) *Orchestrator {
	return &Orchestrator{
		extractor:  extractor,
		salvage:    extract.NewSalvage(),
		classifier: classifier,
		store:      store,
		notifier:   notifier,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
	}
}

// rule is one entry in the routing cascade. The first rule whose matches
// returns true handles the turn; the last rule always matches.
type rule struct {
	intent  string
	matches func(tc *turnContext) bool
	respond func(ctx context.Context, tc *turnContext) Reply
}

func (o *Orchestrator) rules() []rule {
	return []rule{
		{"not_booking",
			func(tc *turnContext) bool { return notBookingRE.MatchString(tc.lastUser) },
			func(_ context.Context, _ *turnContext) Reply { return Reply{Text: replyNotBooking} }},

		{"wrap_up",
			func(tc *turnContext) bool { return tc.wantsWrapUp() },
			func(_ context.Context, tc *turnContext) Reply {
				if tc.bookingCompleted {
					return Reply{Text: replyWrapUpAfterBooking}
				}
				return Reply{Text: replyWrapUp}
			}},

		{"confirm",
			func(tc *turnContext) bool { return affirmRE.MatchString(tc.lastUser) },
			func(ctx context.Context, tc *turnContext) Reply {
				if tc.bookingCompleted {
					// A second "yes" must never submit twice.
					return Reply{Text: replyAlreadySubmitted}
				}
				return o.runPipeline(ctx, tc, true)
			}},

		{"human",
			func(tc *turnContext) bool { return tc.wantsHuman() },
			func(_ context.Context, _ *turnContext) Reply { return Reply{Text: replyHuman} }},

		{"ack",
			func(tc *turnContext) bool { return positiveAckRE.MatchString(tc.lastUser) },
			func(_ context.Context, tc *turnContext) Reply {
				switch {
				case tc.bookingCompleted:
					return Reply{Text: replyAckAfterBooking}
				case tc.inFlow():
					return Reply{Text: "Thanks! Great — shall we lock it in? What’s your full name?"}
				case tc.companyInfoShown:
					return Reply{Text: "Thanks! Glad that helps. Want a quick quote? Share pickup, destination, date & time."}
				default:
					return Reply{Text: "Thanks! Awesome. If you’re ready, share pickup, destination, date & time and I’ll quote it."}
				}
			}},

		{"greeting",
			func(tc *turnContext) bool { return tc.greetingOnly() },
			func(_ context.Context, _ *turnContext) Reply { return Reply{Text: replyGreeting} }},

		{"question",
			func(tc *turnContext) bool { return tc.asksQuestion() },
			func(ctx context.Context, tc *turnContext) Reply {
				if answer, ok := o.lookupKnowledge(ctx, tc.lastUserRaw, true); ok {
					return Reply{Text: kbFollowUp(answer)}
				}
				return Reply{Text: replyCompanyBlurb}
			}},

		{"booking_opener",
			func(tc *turnContext) bool { return tc.statesBookingIntent() && !tc.askedForDetail },
			func(_ context.Context, _ *turnContext) Reply { return Reply{Text: replyBookingOpener} }},

		{"redirect",
			func(tc *turnContext) bool {
				return !tc.keywordAllowed() && !tc.inFlow() && !looksAddressy(tc.lastUser)
			},
			func(ctx context.Context, tc *turnContext) Reply {
				if answer, ok := o.lookupKnowledge(ctx, tc.lastUserRaw, false); ok {
					return Reply{Text: kbFallbackFollowUp(answer)}
				}
				return Reply{Text: replyRedirect}
			}},

		{"slot_fill",
			func(_ *turnContext) bool { return true },
			func(ctx context.Context, tc *turnContext) Reply {
				return o.runPipeline(ctx, tc, false)
			}},
	}
}

// Respond routes one turn through the cascade.
func (o *Orchestrator) Respond(ctx context.Context, turns []transcript.Turn) Reply {
	tc := newTurnContext(transcript.Window(turns, transcriptWindow))
	for _, r := range o.rules() {
		if !r.matches(tc) {
			continue
		}
		o.metrics.ObserveTurn(r.intent)
		return r.respond(ctx, tc)
	}
	// Unreachable: the last rule always matches.
	return Reply{Text: replyRedirect}
}

// lookupKnowledge answers from the store. On the direct-question path
// it also learns the user's phrasing for next time; the off-topic
// fallback path only reads. Store failures degrade to "no answer".
func (o *Orchestrator) lookupKnowledge(ctx context.Context, question string, learn bool) (string, bool) {
	if o.store == nil {
		return "", false
	}
	answer, ok, err := o.store.Lookup(ctx, question)
	if err != nil {
		o.logger.Warn("knowledge lookup failed", "error", err)
		return "", false
	}
	if !ok {
		return "", false
	}
	o.metrics.ObserveKnowledgeHit()
	if learn {
		if err := o.store.Learn(ctx, question, answer); err != nil {
			o.logger.Warn("knowledge learn failed", "error", err)
		}
	}
	return answer, true
}

// runPipeline is the slot-filling engine: extract, merge, normalize,
// check the pickup against the service area, revalidate, then either ask
// for the next missing field or submit. confirming marks the explicit
// "yes, book it" path, which is allowed to close the conversation on a
// hard stop.
func (o *Orchestrator) runPipeline(ctx context.Context, tc *turnContext, confirming bool) Reply {
	fields := o.extractFields(ctx, tc.turns)

	// Dates are normalized to ISO up front so validation and the email
	// always see one shape. The confirmation note shows only when the
	// latest message actually talked about a date.
	if fields.Date != "" {
		if res, ok := dates.Parse(fields.Date, o.now()); ok {
			fields.Date = res.ISO
			if !confirming && dates.Mentions(tc.lastUserRaw) {
				fields.DateNote = res.Note
				if fields.DateNote == "" {
					fields.DateNote = dates.ConfirmationNote(res.ISO)
				}
			}
		}
	}

	if fields.Pickup != "" {
		if reply, stop := o.checkPickup(ctx, &fields, confirming); stop {
			return reply
		}
	}

	// Out-of-province drop-offs get a one-time heads-up but never block.
	prefix := ""
	if fields.Dropoff != "" && geo.DropoffLooksOutside(fields.Dropoff) && !tc.advisoryAlreadyShown() {
		fields.EscalationNote = dropoffEscalationLine
		prefix = dropoffEscalationLine + "\n\n"
	}
	if fields.DateNote != "" && fields.NextMissing() == "time" {
		prefix += fields.DateNote + "\n\n"
		fields.DateNote = ""
	}

	if msg := booking.Validate(&fields, o.now()); msg != "" {
		return Reply{Text: msg}
	}

	if next := fields.NextMissing(); next != "" {
		if confirming {
			return Reply{Text: finalizePrompt(next, firstNameOf(fields.Name))}
		}
		return Reply{Text: prefix + nextFieldPrompt(next, firstNameOf(fields.Name))}
	}

	return o.submit(ctx, fields)
}

// extractFields merges the model extraction with the deterministic
// salvage pass. A model failure is not fatal: salvage alone still moves
// the conversation forward.
func (o *Orchestrator) extractFields(ctx context.Context, turns []transcript.Turn) booking.Fields {
	var model booking.Fields
	if o.extractor != nil {
		var err error
		model, err = o.extractor.Extract(ctx, turns)
		if err != nil {
			o.logger.Warn("model extraction failed, salvage only", "error", err)
			o.metrics.ObserveExtractionFailure()
			model = booking.Fields{}
		}
	}
	salvaged, _ := o.salvage.Extract(ctx, turns)
	return booking.Merge(model, salvaged)
}

// checkPickup enforces the service area. A geocoded verdict is
// authoritative; heuristics only ever stop on unambiguous signals.
func (o *Orchestrator) checkPickup(ctx context.Context, fields *booking.Fields, confirming bool) (Reply, bool) {
	decision := o.classifier.ClassifyPickup(ctx, fields.Pickup)

	switch decision.Verdict {
	case geo.VerdictNonRegion:
		place := fields.Pickup
		if decision.Authoritative {
			place = decision.Formatted
		}
		// Only an explicit confirmation closes the conversation.
		return Reply{Text: pickupHardStop(place), Done: confirming}, true

	case geo.VerdictAdjacentOut:
		place := fields.Pickup
		if decision.Authoritative {
			place = decision.Formatted
		}
		return Reply{Text: pickupPoliteDecline(place)}, true

	case geo.VerdictIn:
		if decision.Authoritative {
			fields.Pickup = decision.Formatted
		}
		return Reply{}, false

	default:
		if geo.TooVague(fields.Pickup) {
			if confirming {
				return Reply{Text: "OOPSI! " + replyVaguePickup}, true
			}
			return Reply{Text: replyVaguePickup}, true
		}
		return Reply{}, false
	}
}

// submit delivers the completed reservation. Delivery failure never
// loses the conversation: the customer is told their request is safe.
func (o *Orchestrator) submit(ctx context.Context, fields booking.Fields) Reply {
	fields.Phone = booking.FormatPhone(fields.Phone)

	if err := o.notifier.SubmitBooking(ctx, fields); err != nil {
		o.logger.Error("chat booking submission failed", "error", err)
		o.metrics.ObserveSubmission("chat", "failed")
		return Reply{Text: replySubmitFailed}
	}

	o.logger.Info("chat booking submitted", "date", fields.Date, "pickup", fields.Pickup)
	o.metrics.ObserveSubmission("chat", "ok")
	return Reply{Text: submittedSummary(fields)}
}
