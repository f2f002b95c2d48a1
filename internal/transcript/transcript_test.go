package transcript

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	turns := []Turn{
		{Role: RoleUser, Content: "one"},
		{Role: RoleAssistant, Content: "two"},
		{Role: RoleUser, Content: "three"},
	}

	assert.Len(t, Window(turns, 2), 2)
	assert.Equal(t, "two", Window(turns, 2)[0].Content)
	assert.Len(t, Window(turns, 10), 3)
	assert.Len(t, Window(turns, 0), 3)
}

func TestLastUserText(t *testing.T) {
	turns := []Turn{
		{Role: RoleUser, Content: "first"},
		{Role: RoleAssistant, Content: "reply"},
		{Role: RoleUser, Content: "  second  "},
	}
	assert.Equal(t, "second", LastUserText(turns))
	assert.Equal(t, "", LastUserText(nil))
}

func TestHasAssistant(t *testing.T) {
	assert.False(t, HasAssistant([]Turn{{Role: RoleUser, Content: "hi"}}))
	assert.True(t, HasAssistant([]Turn{{Role: RoleAssistant, Content: "hello"}}))
}

func TestAnyAssistantMatches(t *testing.T) {
	re := regexp.MustCompile(`(?i)outside alberta`)
	turns := []Turn{
		{Role: RoleAssistant, Content: "This appears to be **outside Alberta**"},
		{Role: RoleUser, Content: "ok"},
	}
	assert.True(t, AnyAssistantMatches(turns, 8, re))

	// Same text on a user turn must not count.
	assert.False(t, AnyAssistantMatches([]Turn{{Role: RoleUser, Content: "outside alberta"}}, 8, re))

	// Outside the look-back window.
	var long []Turn
	long = append(long, Turn{Role: RoleAssistant, Content: "outside Alberta"})
	for i := 0; i < 10; i++ {
		long = append(long, Turn{Role: RoleUser, Content: "filler"})
	}
	assert.False(t, AnyAssistantMatches(long, 8, re))
}

func TestAnyUserContains(t *testing.T) {
	turns := []Turn{
		{Role: RoleUser, Content: "I want to BOOK a ride"},
		{Role: RoleAssistant, Content: "sure"},
	}
	assert.True(t, AnyUserContains(turns, []string{"book"}))
	assert.False(t, AnyUserContains(turns, []string{"cancel"}))
}
