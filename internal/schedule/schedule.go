package schedule

import (
	"log/slog"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DateRange is the normalized bookable occurrence of an adventure.
type DateRange struct {
	StartDate time.Time `json:"startDate" bson:"startDate"`
	EndDate   time.Time `json:"endDate" bson:"endDate"`
	IsPast    bool      `json:"isPast" bson:"-"`
}

// Source holds the raw date fields as they come out of the store. Historical
// records exist in three shapes: an array of {startDate, endDate} documents,
// parallel dates/endDates arrays, or a single date/endDate pair. Fields are
// loosely typed because the collection has drifted over the years.
type Source struct {
	Dates      []any `bson:"dates,omitempty"`
	EndDates   []any `bson:"endDates,omitempty"`
	Date       any   `bson:"date,omitempty"`
	EndDate    any   `bson:"endDate,omitempty"`
	CutoffHour int   `bson:"bookingCutoffHour,omitempty"`
}

// Resolve normalizes a Source into an ordered list of date ranges and flags
// past occurrences relative to now. It never returns an error: unparseable
// values are substituted with now and logged, and a synthesized end date is
// always at least the start date plus one day.
func Resolve(src Source, now time.Time) []DateRange {
	var ranges []DateRange

	switch {
	case len(src.Dates) > 0 && isPairDoc(src.Dates[0]):
		// current shape: dates is an array of {startDate, endDate} documents
		for _, raw := range src.Dates {
			pair := asDoc(raw)
			if pair == nil {
				slog.Warn("schedule: skipping malformed date pair", "value", raw)
				continue
			}
			start := parseDate(pair["startDate"], now)
			end, ok := tryParseDate(pair["endDate"])
			if !ok || end.Before(start) {
				end = start.AddDate(0, 0, 1)
			}
			ranges = append(ranges, DateRange{StartDate: start, EndDate: end})
		}

	case len(src.Dates) > 0:
		// legacy shape: parallel dates / endDates arrays
		for i, raw := range src.Dates {
			start := parseDate(raw, now)
			var end time.Time
			if i < len(src.EndDates) {
				if e, ok := tryParseDate(src.EndDates[i]); ok && !e.Before(start) {
					end = e
				}
			}
			if end.IsZero() {
				end = start.AddDate(0, 0, 1)
			}
			ranges = append(ranges, DateRange{StartDate: start, EndDate: end})
		}

	case src.Date != nil:
		// oldest shape: a single date/endDate pair on the document itself
		start := parseDate(src.Date, now)
		end, ok := tryParseDate(src.EndDate)
		if !ok || end.Before(start) {
			end = start.AddDate(0, 0, 1)
		}
		ranges = append(ranges, DateRange{StartDate: start, EndDate: end})
	}

	sort.Slice(ranges, func(i, j int) bool {
		return ranges[i].StartDate.Before(ranges[j].StartDate)
	})

	for i := range ranges {
		ranges[i].IsPast = isPast(ranges[i].StartDate, now, src.CutoffHour)
	}

	return ranges
}

// NextOccurrence returns the earliest range still open for booking. If every
// occurrence is past, the earliest one overall is returned so a fully past
// adventure still renders a date. ok is false only for an empty list.
func NextOccurrence(ranges []DateRange) (DateRange, bool) {
	if len(ranges) == 0 {
		return DateRange{}, false
	}
	for _, r := range ranges {
		if !r.IsPast {
			return r, true
		}
	}
	return ranges[0], true
}

// isPast applies the same-day cutoff policy: a range is closed once its start
// day is behind us, or on the start day itself once the cutoff hour is
// reached. The cutoff only ever applies to same-day starts.
func isPast(start, now time.Time, cutoffHour int) bool {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startDay := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())

	if startDay.Before(startOfToday) {
		return true
	}
	if startDay.Equal(startOfToday) && cutoffHour > 0 && now.Hour() >= cutoffHour {
		return true
	}
	return false
}

func isPairDoc(v any) bool {
	return asDoc(v) != nil
}

// asDoc coerces the decoder-dependent document shapes (plain maps from JSON,
// primitive.M or ordered primitive.D from the mongo driver) into one map.
func asDoc(v any) map[string]any {
	switch d := v.(type) {
	case map[string]any:
		return d
	case primitive.M:
		return map[string]any(d)
	case primitive.D:
		return d.Map()
	default:
		return nil
	}
}

// parseDate is tryParseDate with the fallback the resolver guarantees: an
// unusable value becomes now, logged for later diagnosis.
func parseDate(v any, now time.Time) time.Time {
	if t, ok := tryParseDate(v); ok {
		return t
	}
	slog.Warn("schedule: unparseable date, substituting current date", "value", v)
	return now
}

func tryParseDate(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, false
		}
		return t, true
	case *time.Time:
		if t == nil || t.IsZero() {
			return time.Time{}, false
		}
		return *t, true
	case primitive.DateTime:
		return t.Time(), true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
