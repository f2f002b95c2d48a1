package extract

import (
	"context"
	"errors"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/executivedriving/concierge/internal/transcript"
	"github.com/executivedriving/concierge/pkg/logging"
)

type fakeChatClient struct {
	content string
	err     error
	gotReq  openai.ChatCompletionRequest
}

func (f *fakeChatClient) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.gotReq = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

func newTestExtractor(fake *fakeChatClient) *OpenAIExtractor {
	return &OpenAIExtractor{client: fake, model: "gpt-4o-mini", logger: logging.New("error")}
}

func TestOpenAIExtract(t *testing.T) {
	fake := &fakeChatClient{content: "```json\n" + `{
		"name": "Ada Lovelace",
		"phone": "780-222-2222",
		"email": "",
		"pickup": "YEG",
		"dropoff": "",
		"date": "26th October",
		"time": "4:30 PM",
		"passengers": 2,
		"luggage": "yes",
		"notes": ""
	}` + "\n```"}

	e := newTestExtractor(fake)
	f, err := e.Extract(context.Background(), []transcript.Turn{
		{Role: transcript.RoleUser, Content: "I need a ride"},
		{Role: transcript.RoleAssistant, Content: "Sure."},
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", f.Name)
	assert.Equal(t, "26th October", f.Date, "date passed through verbatim")
	require.NotNil(t, f.Passengers)
	assert.Equal(t, 2, *f.Passengers, "numeric passengers coerced")
	require.NotNil(t, f.Luggage)
	assert.True(t, *f.Luggage)
	assert.Nil(t, f.Notes, "empty notes stays unset")

	// Request shape: deterministic extraction, transcript relayed.
	assert.Zero(t, fake.gotReq.Temperature)
	assert.Equal(t, 200, fake.gotReq.MaxTokens)
	require.Len(t, fake.gotReq.Messages, 3)
	assert.Equal(t, openai.ChatMessageRoleSystem, fake.gotReq.Messages[0].Role)
	assert.Equal(t, openai.ChatMessageRoleAssistant, fake.gotReq.Messages[2].Role)
}

func TestOpenAIExtractLooseTypes(t *testing.T) {
	fake := &fakeChatClient{content: `{"passengers": "four of us", "luggage": true, "notes": "no"}`}

	f, err := newTestExtractor(fake).Extract(context.Background(), nil)
	require.NoError(t, err)
	require.NotNil(t, f.Passengers)
	assert.Equal(t, 4, *f.Passengers)
	require.NotNil(t, f.Luggage)
	assert.True(t, *f.Luggage)
	require.NotNil(t, f.Notes)
	assert.Equal(t, "", *f.Notes, `model "no" normalized to explicit empty`)
}

func TestOpenAIExtractClientError(t *testing.T) {
	fake := &fakeChatClient{err: errors.New("rate limited")}
	_, err := newTestExtractor(fake).Extract(context.Background(), nil)
	assert.Error(t, err)
}

func TestOpenAIExtractGarbageOutput(t *testing.T) {
	fake := &fakeChatClient{content: "Sorry, I can't help with that."}
	_, err := newTestExtractor(fake).Extract(context.Background(), nil)
	assert.Error(t, err)
}

func TestCleanModelJSON(t *testing.T) {
	tests := []struct{ in, want string }{
		{"{\"a\":1}", `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"Here you go: {\"a\":1} hope that helps", `{"a":1}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanModelJSON(tt.in), tt.in)
	}
}
