package utils

import (
	"encoding/json"
	"strings"
)

// CleanJSONResponse strips markdown code fences and chatty prefixes that
// models wrap around JSON output, then narrows to the outermost balanced
// object or array.
func CleanJSONResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```JSON", "")
	response = strings.ReplaceAll(response, "```", "")

	prefixes := []string{
		"Here's the itinerary:",
		"Here is the itinerary:",
		"Here is your itinerary:",
		"The itinerary is:",
		"Itinerary:",
	}
	trimmed := strings.TrimSpace(response)
	for _, prefix := range prefixes {
		if strings.HasPrefix(trimmed, prefix) {
			trimmed = strings.TrimPrefix(trimmed, prefix)
			break
		}
	}
	response = strings.TrimSpace(trimmed)

	objStart := strings.Index(response, "{")
	arrStart := strings.Index(response, "[")

	if objStart != -1 && (arrStart == -1 || objStart < arrStart) {
		if end := findMatchingDelim(response, objStart, '{', '}'); end != -1 {
			response = response[objStart : end+1]
		}
	} else if arrStart != -1 {
		if end := findMatchingDelim(response, arrStart, '[', ']'); end != -1 {
			response = response[arrStart : end+1]
		}
	}

	return strings.TrimSpace(response)
}

// RecoverJSON cleans a raw model response and verifies the result parses.
// On failure it returns a MalformedResponseError carrying the raw text.
func RecoverJSON(raw string) (string, error) {
	cleaned := CleanJSONResponse(raw)
	if cleaned == "" || !json.Valid([]byte(cleaned)) {
		return "", &MalformedResponseError{Reason: "no parseable JSON in response", Raw: raw}
	}
	return cleaned, nil
}

// findMatchingDelim walks the string from an opening delimiter to its
// matching close, skipping string literals and escapes.
func findMatchingDelim(s string, start int, open, close byte) int {
	if start >= len(s) || s[start] != open {
		return -1
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		ch := s[i]

		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch ch {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}
