package calendar

import (
	"fmt"
	"time"
)

type Locale struct {
	Name     string
	Weekdays [7]string
	title    func(year int, month time.Month) string
}

func (l Locale) MonthTitle(t time.Time) string {
	return l.title(t.Year(), t.Month())
}

var Japanese = Locale{
	Name:     "ja",
	Weekdays: [7]string{"日", "月", "火", "水", "木", "金", "土"},
	title: func(year int, month time.Month) string {
		return fmt.Sprintf("%d年%d月", year, int(month))
	},
}

var English = Locale{
	Name:     "en",
	Weekdays: [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"},
	title: func(year int, month time.Month) string {
		return fmt.Sprintf("%s %d", month, year)
	},
}

// LocaleFor falls back to Japanese for unknown names.
func LocaleFor(name string) Locale {
	if name == English.Name {
		return English
	}
	return Japanese
}
