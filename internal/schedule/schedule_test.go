package schedule

import (
	"testing"
	"time"
)

var now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
}

func TestResolvePairArray(t *testing.T) {
	src := Source{
		Dates: []any{
			map[string]any{"startDate": date(2025, 7, 1), "endDate": date(2025, 7, 3)},
			map[string]any{"startDate": date(2025, 6, 20), "endDate": date(2025, 6, 21)},
		},
	}

	ranges := Resolve(src, now)
	if len(ranges) != 2 {
		t.Fatalf("got %d ranges, expected 2", len(ranges))
	}
	// sorted ascending by start
	if !ranges[0].StartDate.Equal(date(2025, 6, 20)) {
		t.Errorf("first range starts %v, expected 2025-06-20", ranges[0].StartDate)
	}
	if ranges[0].IsPast || ranges[1].IsPast {
		t.Error("future ranges must not be flagged past")
	}
}

func TestResolvePairArrayMissingEndDate(t *testing.T) {
	src := Source{
		Dates: []any{
			map[string]any{"startDate": date(2025, 7, 1)},
		},
	}

	ranges := Resolve(src, now)
	if len(ranges) != 1 {
		t.Fatalf("got %d ranges, expected 1", len(ranges))
	}
	want := date(2025, 7, 1).AddDate(0, 0, 1)
	if !ranges[0].EndDate.Equal(want) {
		t.Errorf("synthesized end = %v, expected start + 1 day", ranges[0].EndDate)
	}
}

func TestResolveParallelArrays(t *testing.T) {
	src := Source{
		Dates:    []any{date(2025, 7, 1), date(2025, 7, 10)},
		EndDates: []any{date(2025, 7, 2)}, // shorter than dates
	}

	ranges := Resolve(src, now)
	if len(ranges) != 2 {
		t.Fatalf("got %d ranges, expected 2", len(ranges))
	}
	if !ranges[0].EndDate.Equal(date(2025, 7, 2)) {
		t.Errorf("first end = %v, expected zipped 2025-07-02", ranges[0].EndDate)
	}
	// second pair has no end date; synthesized +1 day
	if !ranges[1].EndDate.Equal(date(2025, 7, 10).AddDate(0, 0, 1)) {
		t.Errorf("second end = %v, expected start + 1 day", ranges[1].EndDate)
	}
}

func TestResolveSinglePastDate(t *testing.T) {
	// legacy record: dates empty, single date field in the past, no endDate
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	src := Source{Date: start}

	ranges := Resolve(src, now)
	if len(ranges) != 1 {
		t.Fatalf("got %d ranges, expected 1", len(ranges))
	}
	if !ranges[0].StartDate.Equal(start) {
		t.Errorf("start = %v, expected 2024-01-01", ranges[0].StartDate)
	}
	if !ranges[0].EndDate.Equal(start.AddDate(0, 0, 1)) {
		t.Errorf("end = %v, expected 2024-01-02", ranges[0].EndDate)
	}
	if !ranges[0].IsPast {
		t.Error("2024 date must be flagged past")
	}
}

func TestResolveNeverReturnsInvertedRange(t *testing.T) {
	src := Source{
		Dates: []any{
			map[string]any{"startDate": date(2025, 7, 10), "endDate": date(2025, 7, 1)},
		},
	}
	ranges := Resolve(src, now)
	if len(ranges) != 1 {
		t.Fatalf("got %d ranges, expected 1", len(ranges))
	}
	if ranges[0].EndDate.Before(ranges[0].StartDate) {
		t.Errorf("end %v before start %v after synthesis", ranges[0].EndDate, ranges[0].StartDate)
	}
}

func TestResolveMalformedValuesNeverPanic(t *testing.T) {
	src := Source{
		Dates: []any{
			map[string]any{"startDate": "not-a-date", "endDate": 42},
			map[string]any{"startDate": nil},
		},
	}

	ranges := Resolve(src, now)
	if len(ranges) != 2 {
		t.Fatalf("got %d ranges, expected 2", len(ranges))
	}
	// unparseable start falls back to now
	if !ranges[0].StartDate.Equal(now) {
		t.Errorf("fallback start = %v, expected now", ranges[0].StartDate)
	}
}

func TestResolveStringDates(t *testing.T) {
	src := Source{
		Dates: []any{
			map[string]any{"startDate": "2025-08-01", "endDate": "2025-08-03"},
		},
	}
	ranges := Resolve(src, now)
	if len(ranges) != 1 {
		t.Fatalf("got %d ranges, expected 1", len(ranges))
	}
	if ranges[0].StartDate.Day() != 1 || ranges[0].EndDate.Day() != 3 {
		t.Errorf("parsed %v - %v, expected Aug 1 - Aug 3", ranges[0].StartDate, ranges[0].EndDate)
	}
}

func TestResolveEmptySource(t *testing.T) {
	if got := Resolve(Source{}, now); len(got) != 0 {
		t.Errorf("empty source resolved to %d ranges, expected none", len(got))
	}
}

func TestSameDayCutoff(t *testing.T) {
	// adventure starts today; cutoff is 14h and it is now 15h
	lateNow := time.Date(2025, 6, 15, 15, 0, 0, 0, time.UTC)
	src := Source{
		Dates:      []any{map[string]any{"startDate": date(2025, 6, 15)}},
		CutoffHour: 14,
	}

	ranges := Resolve(src, lateNow)
	if !ranges[0].IsPast {
		t.Error("same-day start past the cutoff hour must be flagged past")
	}

	// before the cutoff the same range is still bookable
	earlyNow := time.Date(2025, 6, 15, 13, 0, 0, 0, time.UTC)
	ranges = Resolve(src, earlyNow)
	if ranges[0].IsPast {
		t.Error("same-day start before the cutoff hour must stay bookable")
	}
}

func TestCutoffOnlyAppliesToSameDay(t *testing.T) {
	lateNow := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)
	src := Source{
		Dates:      []any{map[string]any{"startDate": date(2025, 6, 16)}},
		CutoffHour: 14,
	}
	ranges := Resolve(src, lateNow)
	if ranges[0].IsPast {
		t.Error("cutoff must not close out a start on a future day")
	}
}

func TestNextOccurrencePrefersFuture(t *testing.T) {
	src := Source{
		Dates: []any{
			map[string]any{"startDate": date(2024, 5, 1)},
			map[string]any{"startDate": date(2025, 7, 1)},
			map[string]any{"startDate": date(2025, 8, 1)},
		},
	}
	ranges := Resolve(src, now)

	next, ok := NextOccurrence(ranges)
	if !ok {
		t.Fatal("expected an occurrence")
	}
	if !next.StartDate.Equal(date(2025, 7, 1)) {
		t.Errorf("next occurrence starts %v, expected earliest future 2025-07-01", next.StartDate)
	}
}

func TestNextOccurrenceFallsBackToEarliestPast(t *testing.T) {
	src := Source{
		Dates: []any{
			map[string]any{"startDate": date(2024, 5, 1)},
			map[string]any{"startDate": date(2024, 3, 1)},
		},
	}
	ranges := Resolve(src, now)

	next, ok := NextOccurrence(ranges)
	if !ok {
		t.Fatal("expected an occurrence")
	}
	if !next.StartDate.Equal(date(2024, 3, 1)) {
		t.Errorf("fallback occurrence starts %v, expected earliest overall", next.StartDate)
	}
	if !next.IsPast {
		t.Error("fallback occurrence should keep its past flag")
	}
}

func TestNextOccurrenceEmpty(t *testing.T) {
	if _, ok := NextOccurrence(nil); ok {
		t.Error("no ranges should report ok=false")
	}
}
