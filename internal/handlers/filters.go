package handlers

import (
	"strconv"
	"strings"

	"github.com/sbilibin2017/recipe-app-api/internal/validation"
)

// parseIDList parses a comma-separated list of tag ids, e.g. "1,2,3".
// Empty input yields nil. Empty elements are skipped.
func parseIDList(field, raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, validation.FieldError(field, "must be a comma-separated list of integers")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// parseFlag parses a 0/1 query flag. Empty input is false.
func parseFlag(field, raw string) (bool, error) {
	switch strings.TrimSpace(raw) {
	case "", "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, validation.FieldError(field, "must be 0 or 1")
	}
}
