package main

import (
	"encoding/json"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/memocal/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const sessionName = "session"

// flashNotifier collects toasts raised while handling a request. They are
// either rendered straight away or kept as session flashes across a redirect.
type flashNotifier struct {
	toasts []types.Toast
}

func (f *flashNotifier) Notify(t types.Toast) {
	f.toasts = append(f.toasts, t)
}

func (f *flashNotifier) lastError() string {
	for i := len(f.toasts) - 1; i >= 0; i-- {
		if f.toasts[i].IsError() {
			return f.toasts[i].Description
		}
	}
	return ""
}

func (f *flashNotifier) persist(c echo.Context) error {
	if len(f.toasts) == 0 {
		return nil
	}
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return errors.Wrap(err, "loading session")
	}
	for _, t := range f.toasts {
		b, err := json.Marshal(t)
		if err != nil {
			return errors.Wrap(err, "marshalling toast")
		}
		sess.AddFlash(string(b))
	}
	return errors.Wrap(sess.Save(c.Request(), c.Response()), "saving session")
}

// popFlashes returns and clears the toasts stored by an earlier request.
func popFlashes(c echo.Context) []types.Toast {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		logrus.Debugf("No session to read flashes from: %v", err)
		return nil
	}
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		logrus.Error(errors.Wrap(err, "clearing flashes"))
	}

	ret := make([]types.Toast, 0, len(flashes))
	for _, f := range flashes {
		s, ok := f.(string)
		if !ok {
			continue
		}
		var t types.Toast
		if err := json.Unmarshal([]byte(s), &t); err != nil {
			logrus.Warnf("Dropping unreadable flash: %v", err)
			continue
		}
		ret = append(ret, t)
	}
	return ret
}
