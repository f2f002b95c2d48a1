package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/executivedriving/concierge/internal/booking"
	"github.com/executivedriving/concierge/internal/transcript"
	"github.com/executivedriving/concierge/pkg/logging"
)

const extractionSystemPrompt = `You extract reservation details from a chauffeur-booking conversation.
Return STRICT JSON only, no prose, no code fences, with exactly these keys:
{"name":"","phone":"","email":"","pickup":"","dropoff":"","date":"","time":"","passengers":"","luggage":"","notes":""}
Rules:
- Copy values verbatim from the conversation; never invent or guess.
- Leave a key as "" when the customer has not provided it.
- "date" may be natural language exactly as the customer said it.
- "luggage" is yes/no if stated.`

// chatClient is the slice of the OpenAI client the extractor needs.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAIExtractor asks a language model to read the transcript and emit
// the fields as strict JSON. Model output is never trusted: it is
// cleaned, parsed, and coerced field by field, and any failure surfaces
// as an error so the caller can fall back to salvage-only extraction.
type OpenAIExtractor struct {
	client chatClient
	model  string
	logger *logging.Logger
}

func NewOpenAIExtractor(client *openai.Client, model string, logger *logging.Logger) *OpenAIExtractor {
	return &OpenAIExtractor{client: client, model: model, logger: logger}
}

// aiPayload tolerates the model's loose typing: passengers arrives as a
// number or a string, luggage as a bool, "yes", or a bag count.
type aiPayload struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Pickup     string `json:"pickup"`
	Dropoff    string `json:"dropoff"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	Passengers any    `json:"passengers"`
	Luggage    any    `json:"luggage"`
	Notes      string `json:"notes"`
}

func (e *OpenAIExtractor) Extract(ctx context.Context, turns []transcript.Turn) (booking.Fields, error) {
	ctx, span := otel.Tracer("extract").Start(ctx, "openai.extract")
	defer span.End()
	span.SetAttributes(attribute.Int("transcript.turns", len(turns)))

	messages := make([]openai.ChatCompletionMessage, 0, len(turns)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: extractionSystemPrompt,
	})
	for _, t := range turns {
		role := openai.ChatMessageRoleUser
		if t.Role == transcript.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: t.Content})
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       e.model,
		Messages:    messages,
		Temperature: 0,
		MaxTokens:   200,
	})
	if err != nil {
		return booking.Fields{}, fmt.Errorf("extract: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return booking.Fields{}, fmt.Errorf("extract: empty completion")
	}

	raw := cleanModelJSON(resp.Choices[0].Message.Content)
	var payload aiPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		e.logger.Warn("model returned unparseable extraction", "error", err)
		return booking.Fields{}, fmt.Errorf("extract: parse model output: %w", err)
	}
	return payload.toFields(), nil
}

// cleanModelJSON strips markdown fences and isolates the outermost JSON
// object, which is all the defense needed against chatty completions.
func cleanModelJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	if start := strings.Index(s, "{"); start >= 0 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}
	return strings.TrimSpace(s)
}

func (p aiPayload) toFields() booking.Fields {
	f := booking.Fields{
		Name:    strings.TrimSpace(p.Name),
		Phone:   strings.TrimSpace(p.Phone),
		Email:   strings.TrimSpace(p.Email),
		Pickup:  strings.TrimSpace(p.Pickup),
		Dropoff: strings.TrimSpace(p.Dropoff),
		Date:    strings.TrimSpace(p.Date),
		Time:    strings.TrimSpace(p.Time),
	}
	if s := looseString(p.Passengers); s != "" {
		if n, ok := booking.CoercePassengers(s); ok {
			f.Passengers = &n
		}
	}
	if s := looseString(p.Luggage); s != "" {
		if b, ok := booking.CoerceLuggage(s); ok {
			f.Luggage = &b
		}
	}
	if notes := strings.TrimSpace(p.Notes); notes != "" {
		normalized := booking.NormalizeNotes(notes)
		f.Notes = &normalized
	}
	return f
}

// looseString renders whatever JSON type the model used as a string the
// coercers understand. float64 is what encoding/json hands back for
// numbers.
func looseString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	case bool:
		if x {
			return "yes"
		}
		return "no"
	case float64:
		return fmt.Sprintf("%d", int(x))
	default:
		return fmt.Sprintf("%v", x)
	}
}
