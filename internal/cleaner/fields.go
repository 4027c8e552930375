package cleaner

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the canonical textual date form for cleaned reviews.
const DateFormat = "2006-01-02"

// dateLayouts are tried in order when parsing raw date values.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseRating coerces a raw rating value to an integer star rating.
// Values that are not numeric or not integral are rejected. Whether the
// integer is an allowed rating is the caller's policy.
func ParseRating(raw string) (int, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}

	if f != math.Trunc(f) {
		return 0, false
	}

	return int(f), true
}

// ParseDate parses a raw date value and reformats it to canonical
// YYYY-MM-DD form. Unparsable values are rejected.
func ParseDate(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DateFormat), true
		}
	}

	return "", false
}
