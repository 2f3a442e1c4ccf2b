package normalize

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

// Layouts tried for absolute dates carrying a year. Day-first forms are
// tried before month-first so "04/05/2024" reads as 4 May.
var datedLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"02-01-2006",
	"01-02-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// Layouts for dates with no year, resolved to the most recent year that is
// not in the future relative to the reference date.
var yearlessLayouts = []string{
	"January 2",
	"Jan 2",
	"2 January",
	"2 Jan",
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// normalizeDate resolves a raw date expression against the reference date.
// Relative terms ("yesterday", "last monday") never survive into the output.
// The boolean result reports a value that was present but unparseable.
func normalizeDate(raw string, ref civil.Date) (*civil.Date, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, false
	}

	lower := strings.ToLower(s)
	switch lower {
	case "today", "now":
		d := ref
		return &d, false
	case "yesterday":
		d := ref.AddDays(-1)
		return &d, false
	case "tomorrow":
		// explicitly future-dated in the text
		d := ref.AddDays(1)
		return &d, false
	}

	if rest, ok := strings.CutPrefix(lower, "last "); ok {
		if wd, ok := weekdays[strings.TrimSpace(rest)]; ok {
			d := lastWeekday(ref, wd)
			return &d, false
		}
	}

	// time.Parse wants month names capitalized the way Go writes them.
	canonical := capitalizeWords(lower)

	for _, layout := range datedLayouts {
		if t, err := time.Parse(layout, canonical); err == nil {
			d := civil.DateOf(t)
			return &d, false
		}
	}

	for _, layout := range yearlessLayouts {
		if t, err := time.Parse(layout, canonical); err == nil {
			d := civil.Date{Year: ref.Year, Month: t.Month(), Day: t.Day()}
			if d.After(ref) {
				d.Year--
			}
			return &d, false
		}
	}

	return nil, true
}

// lastWeekday returns the most recent date strictly before ref that falls on
// the given weekday.
func lastWeekday(ref civil.Date, wd time.Weekday) civil.Date {
	d := ref.AddDays(-1)
	for d.In(time.UTC).Weekday() != wd {
		d = d.AddDays(-1)
	}
	return d
}

func capitalizeWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
