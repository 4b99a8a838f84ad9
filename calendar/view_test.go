package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewStartsOnFirstOfCurrentMonth(t *testing.T) {
	v := New(WithLocation(time.UTC), WithClock(fixedClock(time.Date(2024, time.January, 31, 18, 45, 0, 0, time.UTC))))
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), v.Month())
}

func TestNavigationDoesNotDrift(t *testing.T) {
	start := time.Date(2024, time.January, 31, 12, 0, 0, 0, time.UTC)
	v := New(WithLocation(time.UTC), WithClock(fixedClock(start)))
	original := v.Month()

	v.NextMonth()
	assert.Equal(t, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC), v.Month())
	v.PrevMonth()
	assert.Equal(t, original, v.Month())

	v.SetMonth(2024, time.December)
	v.NextMonth()
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), v.Month())
	v.PrevMonth()
	v.PrevMonth()
	assert.Equal(t, time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), v.Month())
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 29, DaysIn(2024, time.February, time.UTC))
	assert.Equal(t, 28, DaysIn(2023, time.February, time.UTC))
	assert.Equal(t, 31, DaysIn(2024, time.March, time.UTC))
	assert.Equal(t, 30, DaysIn(2024, time.April, time.UTC))
}

func TestRenderMarksExactlyTheMemoDays(t *testing.T) {
	memos := map[string]string{
		"2024-03-05": "five",
		"2024-03-20": "twenty",
	}
	v := New(WithLocation(time.UTC), WithClock(fixedClock(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC))))

	march := v.Render(memos)
	assert.Equal(t, []int{5, 20}, march.Marked())
	// 2024-03-01 is a Friday.
	assert.Equal(t, 5, march.LeadingBlanks)
	assert.Equal(t, 31, march.DaysInMonth)
	require.Len(t, march.Cells, 36)
	for _, c := range march.Cells[:5] {
		assert.True(t, c.Blank)
	}
	assert.Equal(t, 1, march.Cells[5].Day)
	assert.Equal(t, "2024-03-01", march.Cells[5].Key)
	assert.Equal(t, "2024-03", march.MonthKey)
	assert.Equal(t, "2024-02", march.PrevKey)
	assert.Equal(t, "2024-04", march.NextKey)
	assert.Equal(t, "2024年3月", march.Title)

	v.NextMonth()
	april := v.Render(memos)
	assert.Empty(t, april.Marked())
	// 2024-04-01 is a Monday.
	assert.Equal(t, 1, april.LeadingBlanks)
}

func TestRenderWeeksArePaddedRows(t *testing.T) {
	v := New(WithLocation(time.UTC), WithLocale(English), WithClock(fixedClock(time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC))))
	g := v.Render(nil)

	require.Len(t, g.Weeks, 6)
	for _, w := range g.Weeks {
		assert.Len(t, w, 7)
	}
	assert.Equal(t, "March 2024", g.Title)
	assert.Equal(t, "Sun", g.Weekdays[0])

	var today []int
	for _, c := range g.Cells {
		if c.Today {
			today = append(today, c.Day)
		}
	}
	assert.Equal(t, []int{14}, today)
}

func TestRenderKeysUseViewLocation(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	// Late on May 31 UTC is already June 1 in Tokyo.
	v := New(WithLocation(tokyo), WithClock(fixedClock(time.Date(2024, time.May, 31, 20, 0, 0, 0, time.UTC))))
	g := v.Render(map[string]string{"2024-06-01": "x"})

	assert.Equal(t, "2024-06", g.MonthKey)
	assert.Equal(t, []int{1}, g.Marked())
}

func TestClickReportsConcreteDate(t *testing.T) {
	var got []time.Time
	v := New(
		WithLocation(time.UTC),
		WithClock(fixedClock(time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC))),
		OnSelect(func(d time.Time) { got = append(got, d) }),
	)

	require.NoError(t, v.Click(10))
	assert.Equal(t, []time.Time{time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)}, got)

	assert.Error(t, v.Click(0))
	assert.Error(t, v.Click(31))
	assert.Len(t, got, 1)
	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), v.Month())
}
