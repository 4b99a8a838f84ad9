package main

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/memocal/types"
	"github.com/pkg/errors"
)

type memoPayload struct {
	Memo string `json:"memo"`
}

type apiError struct {
	Error string `json:"error"`
}

func listMemosAPI(app *application) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, app.ctrl.Memos())
	}
}

func putMemoAPI(app *application) echo.HandlerFunc {
	return func(c echo.Context) error {
		date, err := app.dateParam(c)
		if err != nil {
			return err
		}

		var p memoPayload
		if err := c.Bind(&p); err != nil {
			return errors.Wrap(err, "binding memo")
		}

		n := &flashNotifier{}
		if !app.ctrl.Save(c.Request().Context(), date, p.Memo, n) {
			return c.JSON(http.StatusInternalServerError, apiError{Error: n.lastError()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}

func deleteMemoAPI(app *application) echo.HandlerFunc {
	return func(c echo.Context) error {
		date, err := app.dateParam(c)
		if err != nil {
			return err
		}

		n := &flashNotifier{}
		if !app.ctrl.Delete(c.Request().Context(), types.DateKey(date), n) {
			return c.JSON(http.StatusInternalServerError, apiError{Error: n.lastError()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
