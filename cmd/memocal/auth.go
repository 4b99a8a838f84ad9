package main

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/memocal/types"
	"github.com/oliverisaac/memocal/views"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const authenticatedKey = "authenticated"

// requireSignIn lets every request through when no password is configured.
func requireSignIn(cfg types.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if !cfg.AuthEnabled() {
			return next
		}
		return func(c echo.Context) error {
			if isSignedIn(c) {
				return next(c)
			}
			path := c.Request().URL.Path
			if strings.HasPrefix(path, "/api/") || path == "/events" || path == "/calendar.ics" {
				return echo.NewHTTPError(http.StatusUnauthorized, "sign in required")
			}
			return c.Redirect(http.StatusFound, "/auth/sign-in")
		}
	}
}

func isSignedIn(c echo.Context) bool {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return false
	}
	ok, _ := sess.Values[authenticatedKey].(bool)
	return ok
}

func signInPageData(cfg types.Config, errMsg string) views.SignInPageData {
	return views.SignInPageData{
		Labels: views.LabelsFor(cfg.Locale),
		Locale: cfg.Locale,
		Error:  errMsg,
	}
}

func signIn(app *application) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !app.cfg.AuthEnabled() {
			return c.Redirect(http.StatusFound, "/")
		}
		return c.Render(http.StatusOK, "sign-in", signInPageData(app.cfg, ""))
	}
}

func signInWithPassword(app *application) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !app.cfg.AuthEnabled() {
			return c.Redirect(http.StatusFound, "/")
		}

		password := c.FormValue("password")
		if err := bcrypt.CompareHashAndPassword(app.cfg.PasswordHash, []byte(password)); err != nil {
			logrus.Infof("Rejected sign-in from %s", c.RealIP())
			labels := views.LabelsFor(app.cfg.Locale)
			return c.Render(http.StatusUnprocessableEntity, "sign-in", signInPageData(app.cfg, labels.BadPassword))
		}

		sess, _ := session.Get(sessionName, c)
		sess.Options = &sessions.Options{
			Path:     "/",
			MaxAge:   3600 * 24 * 365,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}
		sess.Values[authenticatedKey] = true
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return errors.Wrap(err, "saving session")
		}

		return c.Redirect(http.StatusFound, "/")
	}
}

func signOut() echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, _ := session.Get(sessionName, c)
		sess.Options.MaxAge = -1
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return errors.Wrap(err, "saving session")
		}

		return c.Redirect(http.StatusFound, "/auth/sign-in")
	}
}
