package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func homePageHandler(app *application) echo.HandlerFunc {
	return func(c echo.Context) error {
		status := http.StatusOK
		view, navErr := app.calendarView(c.QueryParam("month"), c.QueryParam("nav"))
		if navErr != nil {
			// Fall back to the current month and say what was wrong with the link.
			status = http.StatusBadRequest
			var err error
			if view, err = app.calendarView("", ""); err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
			}
		}
		logrus.Debugf("Generating homepage for %s", view.Month().Format("2006-01"))

		pageData := app.homePageData(view).
			WithError(navErr).
			WithToasts(app.startup.Drain()...).
			WithToasts(popFlashes(c)...)

		return c.Render(status, "index", pageData)
	}
}
