package period

import (
	"reflect"
	"testing"
	"time"
)

// Friday 15 March 2024, mid afternoon
var ref = time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustChronological(t *testing.T, bs []Bucket) {
	t.Helper()
	for i := 1; i < len(bs); i++ {
		plo, _ := bs[i-1].Window()
		lo, _ := bs[i].Window()
		if !lo.After(plo) {
			t.Fatalf("bucket %d (%s) not after bucket %d (%s)", i, bs[i].Label, i-1, bs[i-1].Label)
		}
	}
}

func mustNotPast(t *testing.T, bs []Bucket, last time.Time) {
	t.Helper()
	for _, b := range bs {
		if b.LastDay().After(last) {
			t.Fatalf("bucket %q ends %s after %s", b.Label, b.LastDay().Format(DateLayout), last.Format(DateLayout))
		}
	}
}

func TestParseSelector_Keywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Kind
	}{
		{"1d", SingleDay},
		{"today", SingleDay},
		{"1w", OneWeek},
		{"1m", OneMonth},
		{"3m", ThreeMonths},
		{"6m", SixMonths},
		{"1y", OneYear},
		{"3y", ThreeYears},
		{"all", AllTime},
		{" ALL ", AllTime},
		{"", OneMonth},
		{"fortnight", OneMonth},
	}
	for _, tc := range tests {
		got := ParseSelector(tc.in, "", "")
		if got.Kind != tc.want {
			t.Fatalf("ParseSelector(%q) kind = %v, want %v", tc.in, got.Kind, tc.want)
		}
	}
}

func TestParseSelector_CustomOverridesNamed(t *testing.T) {
	t.Parallel()

	sel := ParseSelector("1w", "2024-01-01", "2024-01-10")
	if sel.Kind != Custom {
		t.Fatalf("kind = %v, want Custom", sel.Kind)
	}
	if sel.Keyword() != "custom" {
		t.Fatalf("keyword = %q", sel.Keyword())
	}
	if !sel.From.Equal(day(2024, 1, 1)) || !sel.To.Equal(day(2024, 1, 10)) {
		t.Fatalf("bounds = %v..%v", sel.From, sel.To)
	}
}

func TestParseSelector_MalformedFallsBackToNamed(t *testing.T) {
	t.Parallel()

	if got := ParseSelector("1w", "2024-13-01", ""); got.Kind != OneWeek {
		t.Fatalf("bad from: kind = %v, want OneWeek", got.Kind)
	}
	if got := ParseSelector("", "2024-01-01", "yesterday"); got.Kind != OneMonth {
		t.Fatalf("bad to with blank period: kind = %v, want OneMonth", got.Kind)
	}
}

func TestBucketize_OneWeek_SevenConsecutiveDaysEndingToday(t *testing.T) {
	t.Parallel()

	bs := Bucketize(Named(OneWeek), ref, Options{})
	if len(bs) != 7 {
		t.Fatalf("len = %d, want 7", len(bs))
	}
	for i, b := range bs {
		if b.Kind != KindDate {
			t.Fatalf("bucket %d kind = %v", i, b.Kind)
		}
		want := day(2024, 3, 9).AddDate(0, 0, i)
		if !b.Start.Equal(want) {
			t.Fatalf("bucket %d start = %s, want %s", i, b.Start.Format(DateLayout), want.Format(DateLayout))
		}
	}
	if bs[0].Label != "Sat 9" || bs[6].Label != "Fri 15" {
		t.Fatalf("labels = %v", Labels(bs))
	}
}

func TestBucketize_SingleDay_PartitionsTheDay(t *testing.T) {
	t.Parallel()

	for _, coarse := range []bool{false, true} {
		bs := Bucketize(Named(SingleDay), ref, Options{Coarse: coarse})
		want := 24
		if coarse {
			want = 6
		}
		if len(bs) != want {
			t.Fatalf("coarse=%v len = %d, want %d", coarse, len(bs), want)
		}
		if bs[0].FromHour != 0 || bs[len(bs)-1].ToHour != 24 {
			t.Fatalf("coarse=%v range = [%d,%d)", coarse, bs[0].FromHour, bs[len(bs)-1].ToHour)
		}
		for i := 1; i < len(bs); i++ {
			if bs[i].FromHour != bs[i-1].ToHour {
				t.Fatalf("coarse=%v gap or overlap at %d", coarse, i)
			}
			_, prevHi := bs[i-1].Window()
			lo, _ := bs[i].Window()
			if !lo.Equal(prevHi) {
				t.Fatalf("coarse=%v windows not contiguous at %d", coarse, i)
			}
		}
		lo, _ := bs[0].Window()
		_, hi := bs[len(bs)-1].Window()
		if !lo.Equal(day(2024, 3, 15)) || !hi.Equal(day(2024, 3, 16)) {
			t.Fatalf("coarse=%v span = %s..%s", coarse, lo, hi)
		}
	}

	bs := Bucketize(Named(SingleDay), ref, Options{})
	if bs[0].Label != "12AM" || bs[1].Label != "1AM" || bs[12].Label != "12PM" || bs[23].Label != "11PM" {
		t.Fatalf("labels = %v", Labels(bs))
	}
}

func TestBucketize_OneMonth_SampledEveryFifthDay(t *testing.T) {
	t.Parallel()

	bs := Bucketize(Named(OneMonth), ref, Options{})
	if len(bs) != 7 {
		t.Fatalf("len = %d, want 7", len(bs))
	}
	if bs[0].Label != "Feb 15" || bs[6].Label != "Mar 15" {
		t.Fatalf("labels = %v", Labels(bs))
	}
	mustChronological(t, bs)
	mustNotPast(t, bs, day(2024, 3, 15))
}

func TestBucketize_ThreeMonths_CalendarMonths(t *testing.T) {
	t.Parallel()

	bs := Bucketize(Named(ThreeMonths), ref, Options{})
	want := []string{"January 2024", "February 2024", "March 2024"}
	if !reflect.DeepEqual(Labels(bs), want) {
		t.Fatalf("labels = %v, want %v", Labels(bs), want)
	}
	if !bs[1].Start.Equal(day(2024, 2, 1)) || !bs[1].End.Equal(day(2024, 2, 29)) {
		t.Fatalf("february = %s..%s", bs[1].Start.Format(DateLayout), bs[1].End.Format(DateLayout))
	}
	if !bs[2].End.Equal(day(2024, 3, 15)) {
		t.Fatalf("current month not clipped: %s", bs[2].End.Format(DateLayout))
	}
}

func TestBucketize_SixMonths_EveryThirdDayEndingToday(t *testing.T) {
	t.Parallel()

	bs := Bucketize(Named(SixMonths), ref, Options{})
	last := bs[len(bs)-1]
	if !last.Start.Equal(day(2024, 3, 15)) {
		t.Fatalf("last sample = %s", last.Start.Format(DateLayout))
	}
	if bs[0].Start.Before(day(2023, 9, 15)) {
		t.Fatalf("first sample %s before six months ago", bs[0].Start.Format(DateLayout))
	}
	for i := 1; i < len(bs); i++ {
		if daysBetween(bs[i-1].Start, bs[i].Start) != 3 {
			t.Fatalf("step at %d = %d days", i, daysBetween(bs[i-1].Start, bs[i].Start))
		}
	}
}

func TestBucketize_OneYear_WeeklyWindowsClipped(t *testing.T) {
	t.Parallel()

	bs := Bucketize(Named(OneYear), ref, Options{})
	// 2023-03-15..2024-03-15 is 367 days inclusive
	if len(bs) != 53 {
		t.Fatalf("len = %d, want 53", len(bs))
	}
	if !bs[0].Start.Equal(day(2023, 3, 15)) {
		t.Fatalf("first = %s", bs[0].Start.Format(DateLayout))
	}
	if !bs[len(bs)-1].End.Equal(day(2024, 3, 15)) {
		t.Fatalf("last end = %s", bs[len(bs)-1].End.Format(DateLayout))
	}
	for i := 1; i < len(bs); i++ {
		if !bs[i].Start.Equal(bs[i-1].End.AddDate(0, 0, 1)) {
			t.Fatalf("windows not contiguous at %d", i)
		}
	}
	mustNotPast(t, bs, day(2024, 3, 15))
}

func TestBucketize_ThreeYears_FourCalendarYears(t *testing.T) {
	t.Parallel()

	bs := Bucketize(Named(ThreeYears), ref, Options{})
	want := []string{"2021", "2022", "2023", "2024"}
	if !reflect.DeepEqual(Labels(bs), want) {
		t.Fatalf("labels = %v", Labels(bs))
	}
	if !bs[0].Start.Equal(day(2021, 1, 1)) || !bs[0].End.Equal(day(2021, 12, 31)) {
		t.Fatalf("2021 = %s..%s", bs[0].Start.Format(DateLayout), bs[0].End.Format(DateLayout))
	}
	if !bs[3].End.Equal(day(2024, 3, 15)) {
		t.Fatalf("current year not clipped: %s", bs[3].End.Format(DateLayout))
	}
}

func TestBucketize_AllTime(t *testing.T) {
	t.Parallel()

	t.Run("no data yields placeholder", func(t *testing.T) {
		bs := Bucketize(Named(AllTime), ref, Options{})
		if len(bs) != 1 || !bs[0].IsPlaceholder() || bs[0].Label != NoDataLabel {
			t.Fatalf("got %+v", bs)
		}
		lo, hi := bs[0].Window()
		if !lo.IsZero() || !hi.IsZero() {
			t.Fatalf("placeholder window = %s..%s", lo, hi)
		}
	})

	t.Run("weekly windows from earliest", func(t *testing.T) {
		first := time.Date(2024, 2, 20, 17, 5, 0, 0, time.UTC)
		bs := Bucketize(Named(AllTime), ref, Options{Earliest: &first})
		if len(bs) != 4 {
			t.Fatalf("len = %d, want 4: %v", len(bs), Labels(bs))
		}
		if bs[0].Label != "Feb 20, 2024" {
			t.Fatalf("first label = %q", bs[0].Label)
		}
		if !bs[3].Start.Equal(day(2024, 3, 12)) || !bs[3].End.Equal(day(2024, 3, 15)) {
			t.Fatalf("last = %s..%s", bs[3].Start.Format(DateLayout), bs[3].End.Format(DateLayout))
		}
	})

	t.Run("earliest in the future clamps to today", func(t *testing.T) {
		future := ref.AddDate(0, 1, 0)
		bs := Bucketize(Named(AllTime), ref, Options{Earliest: &future})
		if len(bs) != 1 || !bs[0].Start.Equal(day(2024, 3, 15)) {
			t.Fatalf("got %+v", bs)
		}
	})
}

func TestBucketize_CustomGranularity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		from, to string
		kind     BucketKind
		n        int
		first    string
	}{
		{"same day is hourly", "2024-01-01", "2024-01-01", KindHourRange, 24, "12AM"},
		{"one day span is hourly with day prefix", "2024-01-01", "2024-01-02", KindHourRange, 48, "Jan 1 12AM"},
		{"five days is daily", "2024-01-01", "2024-01-05", KindDate, 5, "Mon 1"},
		{"nine days is daily every third day", "2024-01-01", "2024-01-10", KindDate, 4, "Jan 1"},
		{"half year is weekly", "2024-01-01", "2024-06-30", KindDateRange, 26, "Jan 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bs := Bucketize(ParseSelector("", tc.from, tc.to), ref, Options{})
			if len(bs) != tc.n {
				t.Fatalf("len = %d, want %d", len(bs), tc.n)
			}
			for _, b := range bs {
				if b.Kind != tc.kind {
					t.Fatalf("bucket %q kind = %v, want %v", b.Label, b.Kind, tc.kind)
				}
			}
			if bs[0].Label != tc.first {
				t.Fatalf("first label = %q, want %q", bs[0].Label, tc.first)
			}
			mustChronological(t, bs)
		})
	}
}

func TestBucketize_CustomRangeEdges(t *testing.T) {
	t.Parallel()

	t.Run("weekly windows clip at to", func(t *testing.T) {
		bs := Bucketize(ParseSelector("", "2024-01-01", "2024-06-30"), ref, Options{})
		if !bs[len(bs)-1].End.Equal(day(2024, 6, 30)) {
			t.Fatalf("last end = %s", bs[len(bs)-1].End.Format(DateLayout))
		}
		mustNotPast(t, bs, day(2024, 6, 30))
	})

	t.Run("missing from is thirty days before to", func(t *testing.T) {
		sel := ParseSelector("", "", "2024-01-31")
		from, to := sel.Resolve(ref)
		if !from.Equal(day(2024, 1, 1)) || !to.Equal(day(2024, 1, 31)) {
			t.Fatalf("resolved %s..%s", from.Format(DateLayout), to.Format(DateLayout))
		}
	})

	t.Run("missing to is the reference date", func(t *testing.T) {
		bs := Bucketize(ParseSelector("", "2024-03-10", ""), ref, Options{})
		if len(bs) != 6 || !bs[5].Start.Equal(day(2024, 3, 15)) {
			t.Fatalf("got %v", Labels(bs))
		}
	})

	t.Run("reversed bounds are swapped", func(t *testing.T) {
		a := Bucketize(ParseSelector("", "2024-01-05", "2024-01-01"), ref, Options{})
		b := Bucketize(ParseSelector("", "2024-01-01", "2024-01-05"), ref, Options{})
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("reversed %v != ordered %v", Labels(a), Labels(b))
		}
	})
}

func TestBucketize_Idempotent(t *testing.T) {
	t.Parallel()

	first := day(2023, 6, 1)
	sels := []Selector{
		Named(SingleDay), Named(OneWeek), Named(OneMonth), Named(ThreeMonths),
		Named(SixMonths), Named(OneYear), Named(ThreeYears), Named(AllTime),
		ParseSelector("", "2024-01-01", "2024-02-01"),
	}
	for _, sel := range sels {
		a := Bucketize(sel, ref, Options{Earliest: &first})
		b := Bucketize(sel, ref, Options{Earliest: &first})
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("%s: outputs differ", sel.Keyword())
		}
	}
}

func TestSpan_SkipsPlaceholder(t *testing.T) {
	t.Parallel()

	bs := Bucketize(Named(OneWeek), ref, Options{})
	lo, hi := Span(bs)
	if !lo.Equal(day(2024, 3, 9)) || !hi.Equal(day(2024, 3, 16)) {
		t.Fatalf("span = %s..%s", lo, hi)
	}

	lo, hi = Span(Bucketize(Named(AllTime), ref, Options{}))
	if !lo.IsZero() || !hi.IsZero() {
		t.Fatalf("placeholder span = %s..%s", lo, hi)
	}
}
