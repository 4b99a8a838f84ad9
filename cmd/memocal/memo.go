package main

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/memocal/calendar"
	"github.com/oliverisaac/memocal/editor"
	"github.com/oliverisaac/memocal/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func (app *application) dateParam(c echo.Context) (time.Time, error) {
	date, err := types.ParseDateKey(c.Param("date"), app.cfg.Location)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return date, nil
}

// dayHandler opens the editor as if the day cell had been clicked.
func dayHandler(app *application) echo.HandlerFunc {
	return func(c echo.Context) error {
		date, err := app.dateParam(c)
		if err != nil {
			return err
		}

		n := &flashNotifier{}
		var dialog *editor.Dialog
		view, err := app.calendarView(types.MonthKey(date), "", calendar.OnSelect(func(d time.Time) {
			dialog = app.ctrl.Select(d, n)
		}))
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		if err := view.Click(date.Day()); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}

		pageData := app.homePageData(view).
			WithToasts(popFlashes(c)...).
			WithDialog(dialog)
		return c.Render(http.StatusOK, "index", pageData)
	}
}

func saveMemoHandler(app *application) echo.HandlerFunc {
	return func(c echo.Context) error {
		date, err := app.dateParam(c)
		if err != nil {
			return err
		}

		n := &flashNotifier{}
		dialog := app.ctrl.Select(date, n)
		dialog.SetText(c.FormValue("memo"))

		return app.finishDialog(c, date, dialog, n, dialog.Save(c.Request().Context()))
	}
}

func deleteMemoHandler(app *application) echo.HandlerFunc {
	return func(c echo.Context) error {
		date, err := app.dateParam(c)
		if err != nil {
			return err
		}

		n := &flashNotifier{}
		dialog := app.ctrl.Select(date, n)
		dialog.SetText(c.FormValue("memo"))

		return app.finishDialog(c, date, dialog, n, dialog.Delete(c.Request().Context()))
	}
}

// finishDialog redirects back to the month once the dialog closed, and
// re-renders it open with the user's text otherwise.
func (app *application) finishDialog(c echo.Context, date time.Time, dialog *editor.Dialog, n *flashNotifier, ok bool) error {
	month := types.MonthKey(date)
	if ok {
		if err := n.persist(c); err != nil {
			logrus.Error(err)
		}
		return c.Redirect(http.StatusSeeOther, "/?month="+month)
	}

	view, err := app.calendarView(month, "")
	if err != nil {
		return errors.Wrap(err, "rebuilding calendar")
	}
	pageData := app.homePageData(view).
		WithToasts(n.toasts...).
		WithDialog(dialog)
	return c.Render(http.StatusInternalServerError, "index", pageData)
}
