package main

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/memocal/revalidate"
	"github.com/pkg/errors"
)

// eventsHandler streams revalidation events so open pages can refresh
// after a change made elsewhere.
func eventsHandler(broker *revalidate.Broker) echo.HandlerFunc {
	return func(c echo.Context) error {
		events, cancel := broker.Subscribe()
		defer cancel()

		w := c.Response()
		w.Header().Set(echo.HeaderContentType, "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.WriteHeader(http.StatusOK)
		w.Flush()

		for {
			select {
			case <-c.Request().Context().Done():
				return nil
			case ev, ok := <-events:
				if !ok {
					return nil
				}
				data, err := json.Marshal(ev)
				if err != nil {
					return errors.Wrap(err, "marshalling event")
				}
				if _, err := fmt.Fprintf(w, "event: revalidate\ndata: %s\n\n", data); err != nil {
					return nil
				}
				w.Flush()
			}
		}
	}
}
