// Package period turns a reporting period into an ordered series of labelled
// date and hour buckets for charting
package period

import (
	"strings"
	"time"
)

// Kind enumerates the named reporting periods plus the custom range variant
type Kind uint8

const (
	// OneMonth is the default period: the last 30 days sampled every 5th day
	OneMonth Kind = iota
	// SingleDay is today split into hours
	SingleDay
	// OneWeek is the last 7 days
	OneWeek
	// ThreeMonths is the last 3 calendar months
	ThreeMonths
	// SixMonths is the last 6 months sampled every 3 days
	SixMonths
	// OneYear is the last 12 months in 7 day windows
	OneYear
	// ThreeYears is the last 4 calendar years
	ThreeYears
	// AllTime runs from the first record to today in 7 day windows
	AllTime
	// Custom is an explicit from..to date range
	Custom
)

// DateLayout is the accepted format for custom range bounds
const DateLayout = "2006-01-02"

var kindKeywords = map[Kind]string{
	OneMonth:    "1m",
	SingleDay:   "1d",
	OneWeek:     "1w",
	ThreeMonths: "3m",
	SixMonths:   "6m",
	OneYear:     "1y",
	ThreeYears:  "3y",
	AllTime:     "all",
	Custom:      "custom",
}

var keywordKinds = map[string]Kind{
	"1d": SingleDay, "today": SingleDay, "day": SingleDay,
	"1w": OneWeek, "week": OneWeek,
	"1m": OneMonth, "month": OneMonth,
	"3m": ThreeMonths, "quarter": ThreeMonths,
	"6m": SixMonths, "half-year": SixMonths,
	"1y": OneYear, "year": OneYear,
	"3y": ThreeYears, "three-years": ThreeYears,
	"all": AllTime, "all-time": AllTime,
}

// Keyword returns the short keyword the chart clients send for k
func (k Kind) Keyword() string {
	if s, ok := kindKeywords[k]; ok {
		return s
	}
	return kindKeywords[OneMonth]
}

// Keywords lists the named period keywords in display order
func Keywords() []string {
	return []string{"1d", "1w", "1m", "3m", "6m", "1y", "3y", "all"}
}

// Selector picks a named period or an explicit date range.
// From and To are calendar dates and only meaningful for Custom; either may be nil
type Selector struct {
	Kind Kind
	From *time.Time
	To   *time.Time
}

// Default returns the one month selector
func Default() Selector { return Selector{Kind: OneMonth} }

// Named returns a selector for a named period
func Named(k Kind) Selector {
	if k == Custom {
		return Default()
	}
	return Selector{Kind: k}
}

// Between returns a custom range selector
func Between(from, to *time.Time) Selector {
	return Selector{Kind: Custom, From: from, To: to}
}

// ParseKind maps a period keyword to its Kind, falling back to OneMonth
func ParseKind(s string) Kind {
	if k, ok := keywordKinds[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k
	}
	return OneMonth
}

// ParseSelector resolves query parameters into a Selector.
// Any custom bound overrides the named period. A malformed bound drops the
// custom range entirely and the named period is used instead
func ParseSelector(periodKeyword, dateFrom, dateTo string) Selector {
	named := Named(ParseKind(periodKeyword))

	dateFrom, dateTo = strings.TrimSpace(dateFrom), strings.TrimSpace(dateTo)
	if dateFrom == "" && dateTo == "" {
		return named
	}

	sel := Selector{Kind: Custom}
	if dateFrom != "" {
		t, err := time.Parse(DateLayout, dateFrom)
		if err != nil {
			return named
		}
		sel.From = &t
	}
	if dateTo != "" {
		t, err := time.Parse(DateLayout, dateTo)
		if err != nil {
			return named
		}
		sel.To = &t
	}
	return sel
}

// Keyword returns the period keyword echoed back to clients
func (s Selector) Keyword() string { return s.Kind.Keyword() }

// Resolve returns the inclusive custom range as dates in ref's location.
// A missing To is ref, a missing From is 30 days before To, and reversed bounds are swapped
func (s Selector) Resolve(ref time.Time) (from, to time.Time) {
	loc := ref.Location()
	to = dateOf(ref)
	if s.To != nil {
		to = dateIn(*s.To, loc)
	}
	from = to.AddDate(0, 0, -30)
	if s.From != nil {
		from = dateIn(*s.From, loc)
	}
	if from.After(to) {
		from, to = to, from
	}
	return from, to
}

// dateOf truncates t to midnight in its own location
func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dateIn reinterprets the calendar date of t in loc
func dateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// daysBetween counts calendar days from a to b ignoring DST shifts
func daysBetween(a, b time.Time) int {
	ua := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	ub := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}
