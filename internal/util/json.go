package util

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractJSONObject returns the content itself when it is valid JSON, or the
// outermost {...} span as a fallback for models that wrap JSON in prose.
func ExtractJSONObject(content string) (string, bool) {
	trimmed := strings.TrimSpace(content)
	if gjson.Valid(trimmed) {
		return trimmed, true
	}
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end <= start {
		return "", false
	}
	span := trimmed[start : end+1]
	if !gjson.Valid(span) {
		return "", false
	}
	return span, true
}
