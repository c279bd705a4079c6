package period

import "time"

// Options tune bucket generation
type Options struct {
	// Earliest is the first record date for the metric being charted; AllTime needs it
	Earliest *time.Time
	// Coarse splits a single day into 6 four hour buckets instead of 24 hourly ones
	Coarse bool
}

const (
	labelWeekday = "Mon 2"
	labelShort   = "Jan 2"
	labelMonth   = "January 2006"
	labelYear    = "2006"
	labelLong    = "Jan 2, 2006"
)

// sampled offsets back from today for the one month view
var monthSamples = []int{29, 24, 19, 14, 9, 4, 0}

// Bucketize returns the chronological buckets for sel anchored at ref.
// It never fails; an AllTime request without an earliest date yields a single placeholder
func Bucketize(sel Selector, ref time.Time, opt Options) []Bucket {
	today := dateOf(ref)

	switch sel.Kind {
	case SingleDay:
		return hours(today, opt.Coarse, "")
	case OneWeek:
		return days(today.AddDate(0, 0, -6), today)
	case OneMonth:
		out := make([]Bucket, 0, len(monthSamples))
		for _, back := range monthSamples {
			d := today.AddDate(0, 0, -back)
			out = append(out, dateBucket(d, labelShort))
		}
		return out
	case ThreeMonths:
		return months(today, 3)
	case SixMonths:
		return samples(today.AddDate(0, -6, 0), today, 3)
	case OneYear:
		return windows(today.AddDate(-1, 0, 0), today, 7, labelShort)
	case ThreeYears:
		return years(today, 4)
	case AllTime:
		if opt.Earliest == nil {
			return []Bucket{{Label: NoDataLabel, Kind: KindPlaceholder}}
		}
		first := dateIn(opt.Earliest.In(ref.Location()), ref.Location())
		if first.After(today) {
			first = today
		}
		return windows(first, today, 7, labelLong)
	case Custom:
		from, to := sel.Resolve(ref)
		return custom(from, to, opt.Coarse)
	default:
		return Bucketize(Default(), ref, opt)
	}
}

// custom picks granularity from the span in days
func custom(from, to time.Time, coarse bool) []Bucket {
	span := daysBetween(from, to)
	switch {
	case span <= 1:
		prefix := false
		if span > 0 {
			prefix = true
		}
		var out []Bucket
		for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
			p := ""
			if prefix {
				p = d.Format(labelShort) + " "
			}
			out = append(out, hours(d, coarse, p)...)
		}
		return out
	case span <= 7:
		return days(from, to)
	case span <= 90:
		return samples(from, to, 3)
	default:
		return windows(from, to, 7, labelShort)
	}
}

// hours splits day into hourly buckets, or four hour buckets when coarse
func hours(day time.Time, coarse bool, prefix string) []Bucket {
	step := 1
	if coarse {
		step = 4
	}
	out := make([]Bucket, 0, 24/step)
	for h := 0; h < 24; h += step {
		out = append(out, Bucket{
			Label:    prefix + hourLabel(h),
			Kind:     KindHourRange,
			Start:    day,
			End:      day,
			FromHour: h,
			ToHour:   h + step,
		})
	}
	return out
}

// days emits one bucket per calendar day from..to
func days(from, to time.Time) []Bucket {
	var out []Bucket
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		out = append(out, dateBucket(d, labelWeekday))
	}
	return out
}

// samples emits single day buckets every step days counted back from to,
// so the latest day is always present
func samples(from, to time.Time, step int) []Bucket {
	var rev []time.Time
	for d := to; !d.Before(from); d = d.AddDate(0, 0, -step) {
		rev = append(rev, d)
	}
	out := make([]Bucket, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		out = append(out, dateBucket(rev[i], labelShort))
	}
	return out
}

// windows emits step day ranges starting at from, the last one clipped at to
func windows(from, to time.Time, step int, layout string) []Bucket {
	var out []Bucket
	for s := from; !s.After(to); s = s.AddDate(0, 0, step) {
		e := s.AddDate(0, 0, step-1)
		if e.After(to) {
			e = to
		}
		out = append(out, Bucket{Label: s.Format(layout), Kind: KindDateRange, Start: s, End: e})
	}
	return out
}

// months emits n calendar months ending with the month of today
func months(today time.Time, n int) []Bucket {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	out := make([]Bucket, 0, n)
	for i := n - 1; i >= 0; i-- {
		s := first.AddDate(0, -i, 0)
		e := s.AddDate(0, 1, -1)
		if e.After(today) {
			e = today
		}
		out = append(out, Bucket{Label: s.Format(labelMonth), Kind: KindDateRange, Start: s, End: e})
	}
	return out
}

// years emits n calendar years ending with the year of today
func years(today time.Time, n int) []Bucket {
	out := make([]Bucket, 0, n)
	for i := n - 1; i >= 0; i-- {
		s := time.Date(today.Year()-i, time.January, 1, 0, 0, 0, 0, today.Location())
		e := time.Date(today.Year()-i, time.December, 31, 0, 0, 0, 0, today.Location())
		if e.After(today) {
			e = today
		}
		out = append(out, Bucket{Label: s.Format(labelYear), Kind: KindDateRange, Start: s, End: e})
	}
	return out
}

func dateBucket(d time.Time, layout string) Bucket {
	return Bucket{Label: d.Format(layout), Kind: KindDate, Start: d, End: d}
}
