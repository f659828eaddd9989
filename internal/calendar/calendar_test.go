package calendar

import (
	"testing"
	"time"

	"SocialFlow/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func scheduled(id string, t time.Time) session.Content {
	return session.Content{ID: id, ScheduledDate: &t, CreatedAt: t.AddDate(0, 0, -10)}
}

func TestMonth_Navigation(t *testing.T) {
	m := MonthOf(at(2026, time.January, 15, 0))
	assert.Equal(t, "January 2026", m.Title())
	assert.Equal(t, 31, m.Days())

	prev := m.Prev()
	assert.Equal(t, 2025, prev.Year)
	assert.Equal(t, time.December, prev.Month)

	next := m.Next().Next()
	assert.Equal(t, time.March, next.Month)
	assert.Equal(t, 28, m.Next().Days())
}

func TestGrid_PaddingAndLength(t *testing.T) {
	tests := []struct {
		name    string
		month   Month
		padding int
		days    int
	}{
		// March 1st 2026 is a Sunday
		{"sunday start", Month{2026, time.March, time.UTC}, 0, 31},
		// May 1st 2026 is a Friday
		{"friday start", Month{2026, time.May, time.UTC}, 5, 31},
		{"leap february", Month{2028, time.February, time.UTC}, 2, 29},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := Grid(tt.month, nil)
			require.Len(t, grid, tt.padding+tt.days)
			for i := 0; i < tt.padding; i++ {
				assert.True(t, grid[i].IsPadding())
			}
			assert.Equal(t, 1, grid[tt.padding].Date.Day())
			assert.Equal(t, tt.days, grid[len(grid)-1].Date.Day())
		})
	}
}

func TestGrid_Bucketing(t *testing.T) {
	unscheduled := session.Content{ID: "draft", CreatedAt: at(2026, time.March, 3, 9)}
	contents := []session.Content{
		scheduled("late", at(2026, time.March, 10, 18)),
		scheduled("early", at(2026, time.March, 10, 8)),
		unscheduled,
		scheduled("april", at(2026, time.April, 1, 8)),
	}

	grid := Grid(Month{2026, time.March, time.UTC}, contents)

	day10 := grid[9]
	require.Len(t, day10.Contents, 2)
	assert.Equal(t, "early", day10.Contents[0].ID)
	assert.Equal(t, "late", day10.Contents[1].ID)

	require.Len(t, grid[2].Contents, 1)
	assert.Equal(t, "draft", grid[2].Contents[0].ID)

	total := 0
	for _, d := range grid {
		total += len(d.Contents)
	}
	assert.Equal(t, 3, total)
}

func TestOn(t *testing.T) {
	contents := []session.Content{
		scheduled("a", at(2026, time.March, 10, 18)),
		scheduled("b", at(2026, time.March, 11, 0)),
	}
	got := On(at(2026, time.March, 10, 0), contents)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestWeeks(t *testing.T) {
	grid := Grid(Month{2026, time.May, time.UTC}, nil)
	weeks := Weeks(grid)
	require.Len(t, weeks, 6)
	for _, w := range weeks {
		assert.Len(t, w, 7)
	}
	assert.True(t, weeks[5][6].IsPadding())
}
