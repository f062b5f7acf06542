// internal/sapexport/period.go
package sapexport

import (
	"regexp"
	"strings"
	"time"
)

var datePattern = regexp.MustCompile(`\b\d{2}\.\d{2}\.\d{2,4}\b`)

var separatorReplacer = strings.NewReplacer("_", " ", "-", " ", "/", " ")

// ExtractPeriodFromFilename scans an export filename for DD.MM.YY or
// DD.MM.YYYY date tokens, e.g.
// "Analisi vendite - dett cliente 01.01.25_19.08.25 base.xlsx".
// With at least two recognizable dates it returns the first and last, swapped
// if inverted; otherwise ok is false and the caller falls back to the
// configured default period.
func ExtractPeriodFromFilename(filename string) (start, end time.Time, ok bool) {
	// Underscores count as word characters for \b, so separators become
	// spaces before matching.
	clean := separatorReplacer.Replace(filename)

	var dates []time.Time
	for _, token := range datePattern.FindAllString(clean, -1) {
		if d, ok := parseDateToken(token); ok {
			dates = append(dates, d)
		}
	}
	if len(dates) < 2 {
		return time.Time{}, time.Time{}, false
	}

	start, end = dates[0], dates[len(dates)-1]
	if start.After(end) {
		start, end = end, start
	}
	return start, end, true
}

// PeriodDays is the inclusive day count of the range, never below 1.
func PeriodDays(start, end time.Time) int {
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		days = 1
	}
	return days
}

func parseDateToken(token string) (time.Time, bool) {
	for _, layout := range []string{"02.01.06", "02.01.2006"} {
		if d, err := time.Parse(layout, token); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}
