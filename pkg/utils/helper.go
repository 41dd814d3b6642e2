package utils

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// ParseInt converts string to a positive int, falling back to defaultValue
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil || result < 1 {
		return defaultValue
	}

	return result
}

// ParseUUIDList splits a comma separated query value ("a,b,c") into ids.
// The first malformed id is returned as the error.
func ParseUUIDList(value string) ([]uuid.UUID, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}

	parts := strings.Split(value, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := uuid.Parse(p)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}
