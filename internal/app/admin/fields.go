package admin

import (
	"encoding/json"
	"fmt"
	"strings"

	"condoadmin/internal/storage"
)

// ParseFields builds a record from a JSON object and key=value assignments.
// Assignment values that parse as JSON (numbers, booleans, quoted strings)
// keep their type; anything else is taken as a plain string.
func ParseFields(raw string, assignments []string) (storage.Record, error) {
	fields := storage.Record{}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &fields); err != nil {
			return nil, fmt.Errorf("неверный JSON: %w", err)
		}
	}

	for _, a := range assignments {
		key, value, ok := strings.Cut(a, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("ожидается key=value, получено %q", a)
		}

		var decoded any
		if err := json.Unmarshal([]byte(value), &decoded); err == nil {
			if _, isObject := decoded.(map[string]any); !isObject {
				fields[key] = decoded
				continue
			}
		}
		fields[key] = value
	}
	return fields, nil
}
