package extraction

import (
	"regexp"
	"strings"
	"time"
)

// datePatterns is an ordered cascade: a labeled "date:" value first, then the
// bare numeric formats. The first pattern that both matches and parses to a
// real date supplies the ISO result.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)date[:\s]+([^\n]+)`),
	regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2,4})`),
	regexp.MustCompile(`(\d{1,2}-\d{1,2}-\d{2,4})`),
	regexp.MustCompile(`(\d{4}-\d{1,2}-\d{1,2})`),
}

// dateLayouts covers the formats receipts actually print
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	"01/02/2006",
	"1/2/2006",
	"1/2/06",
	"01-02-2006",
	"1-2-2006",
	"1-2-06",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"02 Jan 2006",
}

// parseDateString attempts all known layouts against a raw date string
func parseDateString(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ExtractDate runs the date cascade over the raw receipt text. It returns the
// first raw matched string (even when unparseable, for display) and the ISO
// YYYY-MM-DD normalization of the first match that parses. iso is empty when
// no match parses; raw is empty when nothing matches at all.
func ExtractDate(rawText string) (raw string, iso string) {
	for _, pattern := range datePatterns {
		match := pattern.FindStringSubmatch(rawText)
		if match == nil {
			continue
		}

		candidate := strings.TrimSpace(match[1])
		if raw == "" {
			raw = candidate
		}

		if t, ok := parseDateString(candidate); ok {
			return raw, t.Format("2006-01-02")
		}
	}

	return raw, ""
}
