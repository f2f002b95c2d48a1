package transcript

import (
	"regexp"
	"strings"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one message in a conversation. Turns are immutable and ordered;
// the caller resupplies the full transcript on every request.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Window returns the trailing n turns.
func Window(turns []Turn, n int) []Turn {
	if n <= 0 || len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}

// LastUserText returns the most recent user turn's content, trimmed.
func LastUserText(turns []Turn) string {
	for i := len(turns) - 1; i >= 0; i-- {
		if turns[i].Role == RoleUser {
			return strings.TrimSpace(turns[i].Content)
		}
	}
	return ""
}

// HasAssistant reports whether the assistant has spoken at all.
func HasAssistant(turns []Turn) bool {
	for _, t := range turns {
		if t.Role == RoleAssistant {
			return true
		}
	}
	return false
}

// AnyAssistantMatches reports whether any of the trailing n assistant turns
// match the pattern. Used for "did we already say this?" checks.
func AnyAssistantMatches(turns []Turn, n int, re *regexp.Regexp) bool {
	for _, t := range Window(turns, n) {
		if t.Role == RoleAssistant && re.MatchString(t.Content) {
			return true
		}
	}
	return false
}

// AnyUserContains reports whether any user turn contains one of the
// lowercase substrings.
func AnyUserContains(turns []Turn, substrings []string) bool {
	for _, t := range turns {
		if t.Role != RoleUser {
			continue
		}
		content := strings.ToLower(t.Content)
		for _, s := range substrings {
			if strings.Contains(content, s) {
				return true
			}
		}
	}
	return false
}
