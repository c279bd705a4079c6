package period

import (
	"fmt"
	"time"
)

// BucketKind says which range fields of a Bucket are meaningful
type BucketKind uint8

const (
	// KindDate covers the single calendar day Start
	KindDate BucketKind = iota
	// KindDateRange covers Start..End inclusive
	KindDateRange
	// KindHourRange covers [FromHour, ToHour) on the day Start
	KindHourRange
	// KindPlaceholder stands in for a period with no data at all
	KindPlaceholder
)

// String names the kind for logs and test output
func (k BucketKind) String() string {
	switch k {
	case KindDate:
		return "date"
	case KindDateRange:
		return "date_range"
	case KindHourRange:
		return "hour_range"
	case KindPlaceholder:
		return "placeholder"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// NoDataLabel labels the placeholder bucket
const NoDataLabel = "No data"

// Bucket is one labelled slot of a chart.
// Start and End are midnights in the reference location
type Bucket struct {
	Label    string
	Kind     BucketKind
	Start    time.Time
	End      time.Time
	FromHour int
	ToHour   int
}

// Window returns the half-open instant range [lo, hi) the bucket covers.
// Placeholders return zero times
func (b Bucket) Window() (lo, hi time.Time) {
	switch b.Kind {
	case KindDate:
		return b.Start, b.Start.AddDate(0, 0, 1)
	case KindDateRange:
		return b.Start, b.End.AddDate(0, 0, 1)
	case KindHourRange:
		y, m, d := b.Start.Date()
		loc := b.Start.Location()
		return time.Date(y, m, d, b.FromHour, 0, 0, 0, loc), time.Date(y, m, d, b.ToHour, 0, 0, 0, loc)
	default:
		return time.Time{}, time.Time{}
	}
}

// FirstDay returns the first calendar day touched by the bucket
func (b Bucket) FirstDay() time.Time { return b.Start }

// LastDay returns the last calendar day touched by the bucket
func (b Bucket) LastDay() time.Time {
	if b.Kind == KindDateRange {
		return b.End
	}
	return b.Start
}

// IsPlaceholder reports whether b is the no-data stand-in
func (b Bucket) IsPlaceholder() bool { return b.Kind == KindPlaceholder }

// Labels extracts the display labels in bucket order
func Labels(bs []Bucket) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.Label
	}
	return out
}

// Span returns the overall [lo, hi) covered by a bucket series
func Span(bs []Bucket) (lo, hi time.Time) {
	for _, b := range bs {
		if b.IsPlaceholder() {
			continue
		}
		l, h := b.Window()
		if lo.IsZero() || l.Before(lo) {
			lo = l
		}
		if h.After(hi) {
			hi = h
		}
	}
	return lo, hi
}

// hourLabel renders 0..23 as 12AM..11PM
func hourLabel(h int) string {
	switch {
	case h == 0:
		return "12AM"
	case h < 12:
		return fmt.Sprintf("%dAM", h)
	case h == 12:
		return "12PM"
	default:
		return fmt.Sprintf("%dPM", h-12)
	}
}
