package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeCompletion parses the raw completion text as a single JSON object.
func decodeCompletion(raw string) (map[string]interface{}, error) {
	clean := cleanCompletionJSON(raw)
	if clean == "" {
		return nil, fmt.Errorf("empty completion output")
	}

	var parsed interface{}
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal completion output: %w", err)
	}

	obj, ok := parsed.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("completion output is %T, want JSON object", parsed)
	}
	return obj, nil
}

// cleanCompletionJSON strips Markdown fences and surrounding junk the model
// may emit despite instructions.
func cleanCompletionJSON(raw string) string {
	s := strings.TrimSpace(raw)

	// Handle ```json ... ``` or ``` ... ``` wrappers.
	if strings.HasPrefix(s, "```") {
		// Drop the first line (``` or ```json).
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		} else {
			return s
		}
		s = strings.TrimSpace(s)
	}

	// Remove trailing ``` if present.
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}

	s = strings.TrimSpace(s)

	// Extra safety: if there's still junk around the JSON object,
	// keep only from the first '{' to the last '}'.
	if start := strings.Index(s, "{"); start != -1 {
		if end := strings.LastIndex(s, "}"); end != -1 && end > start {
			s = strings.TrimSpace(s[start : end+1])
		}
	}

	return s
}
