// Package calendar lays content out on a month grid.
package calendar

import (
	"sort"
	"time"

	"SocialFlow/internal/session"
)

// Day is one cell of the month grid; padding cells have a zero Date
type Day struct {
	Date     time.Time
	Contents []session.Content
}

// IsPadding reports whether the cell precedes the first of the month
func (d Day) IsPadding() bool {
	return d.Date.IsZero()
}

// Month is a calendar month in a fixed location
type Month struct {
	Year  int
	Month time.Month
	Loc   *time.Location
}

// MonthOf returns the month containing t
func MonthOf(t time.Time) Month {
	return Month{Year: t.Year(), Month: t.Month(), Loc: t.Location()}
}

func (m Month) loc() *time.Location {
	if m.Loc == nil {
		return time.Local
	}
	return m.Loc
}

// First is midnight on the first day of the month
func (m Month) First() time.Time {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, m.loc())
}

// Days is the number of days in the month
func (m Month) Days() int {
	return m.First().AddDate(0, 1, -1).Day()
}

// Prev is the previous month
func (m Month) Prev() Month {
	return MonthOf(m.First().AddDate(0, -1, 0))
}

// Next is the following month
func (m Month) Next() Month {
	return MonthOf(m.First().AddDate(0, 1, 0))
}

// Title is the heading shown above the grid, e.g. "March 2026"
func (m Month) Title() string {
	return m.First().Format("January 2006")
}

// Contains reports whether t falls within the month in the month's location
func (m Month) Contains(t time.Time) bool {
	t = t.In(m.loc())
	return t.Year() == m.Year && t.Month() == m.Month
}

// DateOf is the calendar date a post is placed on: its schedule, or its
// creation time when unscheduled
func DateOf(c session.Content) time.Time {
	if c.ScheduledDate != nil && !c.ScheduledDate.IsZero() {
		return *c.ScheduledDate
	}
	return c.CreatedAt
}

// SameDay reports whether a and b share a calendar date in loc
func SameDay(a, b time.Time, loc *time.Location) bool {
	a, b = a.In(loc), b.In(loc)
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Grid builds the Sunday-first grid for m: padding cells up to the weekday
// of the 1st, then one cell per day holding the posts dated on it.
func Grid(m Month, contents []session.Content) []Day {
	first := m.First()
	padding := int(first.Weekday())

	days := make([]Day, padding, padding+m.Days())
	for d := 1; d <= m.Days(); d++ {
		days = append(days, Day{Date: first.AddDate(0, 0, d-1)})
	}

	for _, c := range contents {
		date := DateOf(c)
		if date.IsZero() || !m.Contains(date) {
			continue
		}
		idx := padding + date.In(m.loc()).Day() - 1
		days[idx].Contents = append(days[idx].Contents, c)
	}
	for i := range days {
		sortByDate(days[i].Contents)
	}
	return days
}

// On returns the posts dated on day, earliest first
func On(day time.Time, contents []session.Content) []session.Content {
	var out []session.Content
	for _, c := range contents {
		date := DateOf(c)
		if !date.IsZero() && SameDay(date, day, day.Location()) {
			out = append(out, c)
		}
	}
	sortByDate(out)
	return out
}

// Weeks splits a grid into rows of seven, padding the last row
func Weeks(days []Day) [][]Day {
	var weeks [][]Day
	for start := 0; start < len(days); start += 7 {
		end := min(start+7, len(days))
		week := make([]Day, 7)
		copy(week, days[start:end])
		weeks = append(weeks, week)
	}
	return weeks
}

func sortByDate(cs []session.Content) {
	sort.SliceStable(cs, func(i, j int) bool {
		return DateOf(cs[i]).Before(DateOf(cs[j]))
	})
}
