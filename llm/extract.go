package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Relay endpoints answer with a handful of loosely related JSON shapes, and
// occasionally with bodies that are not valid JSON at all (truncated streams,
// HTML error pages with a JSON fragment inside). Extraction tries the known
// shapes in order, then falls back to scanning the raw text for a message
// field.
var messagePattern = regexp.MustCompile(`"message"\s*:\s*"((?:\\"|[^"])*?)(?:"|\\\\")(,|\}|$)`)

type relayEnvelope struct {
	Content string `json:"content"`
	Message string `json:"message"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ExtractMessage pulls the assistant text out of a relay response body.
func ExtractMessage(raw []byte) (string, error) {
	var env relayEnvelope
	if err := json.Unmarshal(raw, &env); err == nil {
		if env.Content != "" {
			return env.Content, nil
		}
		if len(env.Choices) > 0 && env.Choices[0].Message.Content != "" {
			return env.Choices[0].Message.Content, nil
		}
		if env.Message != "" {
			return env.Message, nil
		}
	}
	if m := messagePattern.FindSubmatch(raw); m != nil {
		return unescapeFragment(string(m[1])), nil
	}
	return "", fmt.Errorf("no message found in response")
}

// unescapeFragment undoes the two escapes the fallback regex can capture.
func unescapeFragment(s string) string {
	s = strings.ReplaceAll(s, `\"`, `"`)
	s = strings.ReplaceAll(s, `\\`, `\`)
	return s
}
