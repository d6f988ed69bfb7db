package domain

import (
	"errors"
	"fmt"
	"time"
)

// Wire layouts for history filter parameters.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// DefaultLookbackDays is the date span of the default history window.
const DefaultLookbackDays = 7

// HistoryQuery filters readings by a calendar-date range and, independently,
// by a time-of-day range. The two predicates do not interact: a reading
// matches iff its date falls within [StartDate, EndDate] AND its wall time
// falls within [StartTime, EndTime]. This is deliberate (not a single
// continuous timestamp interval) so that recurring daily windows such as
// "every day between 06:00 and 18:00 across this date span" are expressible.
type HistoryQuery struct {
	StartDate string // "2006-01-02"
	EndDate   string
	StartTime string // "15:04:05"
	EndTime   string
}

// Empty reports whether no filter component was supplied at all.
func (q HistoryQuery) Empty() bool {
	return q.StartDate == "" && q.EndDate == "" && q.StartTime == "" && q.EndTime == ""
}

// Complete reports whether every filter component was supplied.
func (q HistoryQuery) Complete() bool {
	return q.StartDate != "" && q.EndDate != "" && q.StartTime != "" && q.EndTime != ""
}

// Validate checks presence and layout of all four components. Inverted ranges
// (start after end) are not an error: they simply match nothing.
func (q HistoryQuery) Validate() error {
	if q.StartDate == "" || q.EndDate == "" {
		return errors.New("startDate and endDate are required")
	}
	if q.StartTime == "" || q.EndTime == "" {
		return errors.New("startTime and endTime are required")
	}
	for _, d := range []string{q.StartDate, q.EndDate} {
		if _, err := time.Parse(DateLayout, d); err != nil {
			return fmt.Errorf("invalid date %q: want %s", d, DateLayout)
		}
	}
	for _, t := range []string{q.StartTime, q.EndTime} {
		if _, err := time.Parse(TimeLayout, t); err != nil {
			return fmt.Errorf("invalid time %q: want %s", t, TimeLayout)
		}
	}
	return nil
}

// Matches applies both predicates to a reading timestamp. The formatted-string
// comparison is exact for these fixed-width layouts and truncates fractional
// seconds, so a reading at 18:00:00.5 matches an end time of 18:00:00. Every
// store implementation must compare at the same whole-second granularity.
// Callers must Validate first; an unparseable query matches nothing.
func (q HistoryQuery) Matches(ts time.Time) bool {
	date := ts.Format(DateLayout)
	tod := ts.Format(TimeLayout)
	return date >= q.StartDate && date <= q.EndDate &&
		tod >= q.StartTime && tod <= q.EndTime
}

// DefaultWindow derives the filter used when the caller has no explicit
// filter yet: the last DefaultLookbackDays days of data ending at the store's
// newest reading (or at now for an empty store), clamped so the window never
// starts before the store's oldest reading. Time of day spans the whole day,
// except that when the window ends today the end time snaps to the current
// hour boundary, matching the hourly grid the filter form offers.
func DefaultWindow(ext Extent, now time.Time) HistoryQuery {
	latest := now
	if ext.Max != nil {
		latest = *ext.Max
	}
	end := latest
	start := end.AddDate(0, 0, -DefaultLookbackDays)
	if ext.Min != nil && start.Format(DateLayout) < ext.Min.Format(DateLayout) {
		start = *ext.Min
	}

	q := HistoryQuery{
		StartDate: start.Format(DateLayout),
		EndDate:   end.Format(DateLayout),
		StartTime: "00:00:00",
		EndTime:   "23:59:59",
	}
	if q.EndDate == now.Format(DateLayout) {
		q.EndTime = fmt.Sprintf("%02d:00:00", now.Hour())
	}
	return q
}
