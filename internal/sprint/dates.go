package sprint

import (
	"strings"
	"time"
)

// fallbackLayouts are tried, in order, against the first 19 characters of
// inputs that defeat both the fast path and the ISO path. They cover legacy
// export formats that predate the tracker's current API version.
var fallbackLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate normalizes a raw tracker timestamp string to a calendar date at
// midnight UTC. The second return value is false when the input is empty or
// unparseable; parse failures never surface as errors.
func ParseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	// Fast path: a YYYY-MM-DD prefix is the dominant real-world shape and
	// sidesteps full ISO parsing of non-conforming trailing content.
	if len(raw) >= 10 && raw[4] == '-' && raw[7] == '-' {
		if t, err := time.Parse("2006-01-02", raw[:10]); err == nil {
			return t.UTC(), true
		}
		return parseFallback(raw)
	}

	if t, ok := parseISO(raw); ok {
		return t, true
	}

	return parseFallback(raw)
}

// parseISO strips fractional seconds, normalizes a trailing Z to an explicit
// offset, and attempts a strict ISO-8601 parse.
func parseISO(raw string) (time.Time, bool) {
	clean := raw

	if strings.Contains(clean, ".") && (strings.Contains(clean, "Z") || strings.Contains(clean, "+")) {
		base := clean[:strings.Index(clean, ".")]
		if strings.Contains(clean, "Z") {
			clean = base + "Z"
		} else if idx := strings.Index(clean, "+"); idx != -1 {
			clean = base + clean[idx:]
		}
	}

	if strings.HasSuffix(clean, "Z") {
		clean = strings.TrimSuffix(clean, "Z") + "+00:00"
	}

	for _, layout := range []string{"2006-01-02T15:04:05-07:00", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, clean); err == nil {
			return truncateToDate(t), true
		}
	}
	return time.Time{}, false
}

func parseFallback(raw string) (time.Time, bool) {
	head := raw
	if len(head) > 19 {
		head = head[:19]
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, head); err == nil {
			return truncateToDate(t), true
		}
	}
	return time.Time{}, false
}

// truncateToDate drops the time-of-day component, keeping the civil date as
// observed in the timestamp's own offset.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
