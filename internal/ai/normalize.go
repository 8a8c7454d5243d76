package ai

import (
	"encoding/json"
	"strings"
)

// ExtractJSON pulls the JSON payload out of free-form model text. Models wrap
// documents in code fences and prose no matter how firmly the prompt says not
// to, so this strips ``` markers and slices from the first opening brace or
// bracket to its matching last closer. Text without either opener is returned
// trimmed, so the caller's parse fails loudly instead of passing junk along.
func ExtractJSON(raw string) string {
	cleaned := strings.ReplaceAll(raw, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	firstObj := strings.Index(cleaned, "{")
	firstArr := strings.Index(cleaned, "[")

	if firstObj == -1 && firstArr == -1 {
		return cleaned
	}

	isArray := firstArr != -1 && (firstObj == -1 || firstArr < firstObj)

	var start, end int
	if isArray {
		start = firstArr
		end = strings.LastIndex(cleaned, "]")
	} else {
		start = firstObj
		end = strings.LastIndex(cleaned, "}")
	}
	if end > start {
		cleaned = cleaned[start : end+1]
	}
	return cleaned
}

// UnwrapArray tolerates a model answering with {"key": [...]} where a bare
// array was requested. Bare arrays pass through unchanged; otherwise the
// array-valued property named key is returned if present.
func UnwrapArray(data []byte, key string) []byte {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		return data
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return data
	}
	inner, ok := wrapper[key]
	if !ok {
		return data
	}
	if !strings.HasPrefix(strings.TrimSpace(string(inner)), "[") {
		return data
	}
	return inner
}
