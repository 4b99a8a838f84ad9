// Package exporter writes memos out as an iCalendar feed or a backup file,
// and reads backups back in.
package exporter

import (
	"io"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/oliverisaac/memocal/types"
	"github.com/pkg/errors"
)

const ICSProductID = "-//memocal//Calendar Memos//EN"

var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/oliverisaac/memocal"))

type ICSOptions struct {
	Name     string
	Location *time.Location
	Now      time.Time
}

// MemosFromMap turns a date-key map into records ordered by date.
func MemosFromMap(memos map[string]string) []types.Memo {
	ret := make([]types.Memo, 0, len(memos))
	for date, text := range memos {
		ret = append(ret, types.Memo{Date: date, Text: text})
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Date < ret[j].Date })
	return ret
}

// EventUID is stable for a date so calendar clients update rather than
// duplicate events on refresh.
func EventUID(date string) string {
	return uuid.NewSHA1(uidNamespace, []byte(date)).String() + "@memocal"
}

// WriteICS encodes one all-day event per memo.
func WriteICS(w io.Writer, memos []types.Memo, opts ICSOptions) error {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropProductID, ICSProductID)
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	if opts.Name != "" {
		cal.Props.SetText(ical.PropName, opts.Name)
		cal.Props.SetText("X-WR-CALNAME", opts.Name)
	}

	for _, memo := range memos {
		day, err := types.ParseDateKey(memo.Date, loc)
		if err != nil {
			return errors.Wrap(err, "exporting memo")
		}

		stamp := memo.UpdatedAt
		if stamp.IsZero() {
			stamp = now
		}

		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, EventUID(memo.Date))
		event.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
		event.Props.SetDate(ical.PropDateTimeStart, day)
		event.Props.SetDate(ical.PropDateTimeEnd, day.AddDate(0, 0, 1))
		event.Props.SetText(ical.PropSummary, summary(memo.Text))
		event.Props.SetText(ical.PropDescription, memo.Text)
		cal.Children = append(cal.Children, event.Component)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return errors.Wrap(err, "encoding calendar")
	}
	return nil
}

func summary(text string) string {
	first, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return strings.TrimSpace(first)
}
