package views

import (
	errs "errors"
	"fmt"
	"time"

	"github.com/oliverisaac/memocal/calendar"
	"github.com/oliverisaac/memocal/editor"
	"github.com/oliverisaac/memocal/types"
)

type DialogData struct {
	editor.View
	Title    string
	MonthKey string
	Labels   Labels
}

type HomePageData struct {
	Locale      string
	Labels      Labels
	AuthEnabled bool
	Calendar    calendar.Grid
	Dialog      *DialogData
	Toasts      []types.Toast
	Err         error
}

func NewHomePageData(cfg types.Config, grid calendar.Grid) *HomePageData {
	return &HomePageData{
		Locale:      calendar.LocaleFor(cfg.Locale).Name,
		Labels:      LabelsFor(cfg.Locale),
		AuthEnabled: cfg.AuthEnabled(),
		Calendar:    grid,
	}
}

func (d *HomePageData) WithError(err error) *HomePageData {
	d.Err = errs.Join(d.Err, err)
	return d
}

func (d *HomePageData) WithToasts(toasts ...types.Toast) *HomePageData {
	d.Toasts = append(d.Toasts, toasts...)
	return d
}

// WithDialog shows the editor when its view is present and open.
func (d *HomePageData) WithDialog(dialog *editor.Dialog) *HomePageData {
	if dialog == nil {
		return d
	}
	v, ok := dialog.View().Get()
	if !ok || !v.Open {
		return d
	}
	d.Dialog = &DialogData{
		View:     v,
		Title:    DialogTitle(d.Locale, v.Date) + d.separator() + d.Labels.MemoFor,
		MonthKey: types.MonthKey(v.Date),
		Labels:   d.Labels,
	}
	return d
}

func (d *HomePageData) separator() string {
	if d.Locale == "en" {
		return " "
	}
	return ""
}

// DialogTitle renders date in the locale's long form.
func DialogTitle(locale string, date time.Time) string {
	if locale == "en" {
		return date.Format("January 2, 2006")
	}
	return fmt.Sprintf("%d年%d月%d日", date.Year(), int(date.Month()), date.Day())
}

type SignInPageData struct {
	Labels Labels
	Locale string
	Error  string
}
