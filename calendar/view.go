// Package calendar renders the month grid and keeps track of which month is
// on screen.
package calendar

import (
	"fmt"
	"time"

	"github.com/oliverisaac/memocal/types"
)

type SelectFunc func(date time.Time)

// View holds the displayed month. The month is always normalized to day 1 so
// navigating from the 31st never overflows into the following month.
type View struct {
	month    time.Time
	loc      *time.Location
	now      func() time.Time
	locale   Locale
	onSelect SelectFunc
}

type Option func(*View)

func WithLocation(loc *time.Location) Option {
	return func(v *View) {
		v.loc = loc
	}
}

func WithClock(now func() time.Time) Option {
	return func(v *View) {
		v.now = now
	}
}

func WithLocale(l Locale) Option {
	return func(v *View) {
		v.locale = l
	}
}

func OnSelect(fn SelectFunc) Option {
	return func(v *View) {
		v.onSelect = fn
	}
}

// New starts on the current month.
func New(opts ...Option) *View {
	v := &View{
		loc:    time.Local,
		now:    time.Now,
		locale: Japanese,
	}
	for _, o := range opts {
		o(v)
	}
	v.month = FirstOfMonth(v.now().In(v.loc))
	return v
}

func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func DaysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

func (v *View) Month() time.Time {
	return v.month
}

func (v *View) SetMonth(year int, month time.Month) {
	v.month = time.Date(year, month, 1, 0, 0, 0, 0, v.loc)
}

func (v *View) PrevMonth() {
	v.month = v.shifted(-1)
}

func (v *View) NextMonth() {
	v.month = v.shifted(1)
}

func (v *View) shifted(delta int) time.Time {
	return time.Date(v.month.Year(), v.month.Month()+time.Month(delta), 1, 0, 0, 0, 0, v.loc)
}

// Click reports the date of day in the displayed month to the select callback.
func (v *View) Click(day int) error {
	if day < 1 || day > DaysIn(v.month.Year(), v.month.Month(), v.loc) {
		return fmt.Errorf("day %d is not in %s", day, types.MonthKey(v.month))
	}
	if v.onSelect != nil {
		v.onSelect(time.Date(v.month.Year(), v.month.Month(), day, 0, 0, 0, 0, v.loc))
	}
	return nil
}

type Cell struct {
	Blank   bool
	Day     int
	Date    time.Time
	Key     string
	HasMemo bool
	Today   bool
}

type Grid struct {
	Month         time.Time
	MonthKey      string
	PrevKey       string
	NextKey       string
	Title         string
	Weekdays      [7]string
	LeadingBlanks int
	DaysInMonth   int
	// Cells holds the leading blanks followed by one cell per day.
	Cells []Cell
	// Weeks is Cells padded with trailing blanks and split into rows of seven.
	Weeks [][]Cell
}

// Render lays out the displayed month and marks every day whose date-key
// is present in memos.
func (v *View) Render(memos map[string]string) Grid {
	year, month := v.month.Year(), v.month.Month()
	days := DaysIn(year, month, v.loc)
	blanks := int(v.month.Weekday())
	today := types.DateKey(v.now().In(v.loc))

	g := Grid{
		Month:         v.month,
		MonthKey:      types.MonthKey(v.month),
		PrevKey:       types.MonthKey(v.shifted(-1)),
		NextKey:       types.MonthKey(v.shifted(1)),
		Title:         v.locale.MonthTitle(v.month),
		Weekdays:      v.locale.Weekdays,
		LeadingBlanks: blanks,
		DaysInMonth:   days,
		Cells:         make([]Cell, 0, blanks+days),
	}

	for i := 0; i < blanks; i++ {
		g.Cells = append(g.Cells, Cell{Blank: true})
	}
	for day := 1; day <= days; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, v.loc)
		key := types.DateKey(date)
		_, hasMemo := memos[key]
		g.Cells = append(g.Cells, Cell{
			Day:     day,
			Date:    date,
			Key:     key,
			HasMemo: hasMemo,
			Today:   key == today,
		})
	}

	padded := append([]Cell{}, g.Cells...)
	for len(padded)%7 != 0 {
		padded = append(padded, Cell{Blank: true})
	}
	for i := 0; i < len(padded); i += 7 {
		g.Weeks = append(g.Weeks, padded[i:i+7])
	}
	return g
}

// Marked lists the days carrying a memo marker.
func (g Grid) Marked() []int {
	ret := []int{}
	for _, c := range g.Cells {
		if c.HasMemo {
			ret = append(ret, c.Day)
		}
	}
	return ret
}
