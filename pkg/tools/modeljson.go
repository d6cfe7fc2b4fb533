package tools

import (
	"encoding/json"
	"fmt"
	"strings"
)

// decodeModelJSON unmarshals a model reply that should contain a single JSON
// value, tolerating markdown code fences around it.
func decodeModelJSON(reply string, target interface{}) error {
	cleaned := strings.TrimSpace(reply)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		if idx := strings.LastIndex(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
		cleaned = strings.TrimSpace(cleaned)
	}
	if err := json.Unmarshal([]byte(cleaned), target); err != nil {
		return fmt.Errorf("model returned malformed JSON: %w", err)
	}
	return nil
}
