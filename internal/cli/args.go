package cli

import (
	"fmt"
	"strconv"
	"time"
)

// dateLayouts are accepted by date flags, most specific first. Values
// without a zone are read as UTC.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	time.DateOnly,
}

// parseDate parses a date flag value and returns it in UTC.
func parseDate(flag, value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, NewExitError(ExitCommandError,
		fmt.Sprintf("invalid --%s %q: use YYYY-MM-DD or RFC 3339", flag, value))
}

// parseOptionalDate returns nil for an empty value.
func parseOptionalDate(flag, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDate(flag, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseID parses a positive id argument.
func parseID(what, value string) (int64, error) {
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewExitError(ExitCommandError, fmt.Sprintf("invalid %s id %q: must be a positive integer", what, value))
	}
	return id, nil
}
