package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oliverisaac/memocal/exporter"
	"github.com/oliverisaac/memocal/memostore"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const calendarName = "memocal"

func icsHandler(app *application) echo.HandlerFunc {
	return func(c echo.Context) error {
		var buf bytes.Buffer
		err := exporter.WriteICS(&buf, exporter.MemosFromMap(app.ctrl.Memos()), exporter.ICSOptions{
			Name:     calendarName,
			Location: app.cfg.Location,
			Now:      app.now(),
		})
		if err != nil {
			return err
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="memocal.ics"`)
		return c.Blob(http.StatusOK, "text/calendar; charset=utf-8", buf.Bytes())
	}
}

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every memo as iCalendar, YAML or JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := exporter.ParseFormat(exportFormat)
		if err != nil {
			return err
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, store, err := openStore(cfg, nil)
		if err != nil {
			return err
		}
		defer closeDB(db)

		var w io.Writer = cmd.OutOrStdout()
		if exportOutput != "" && exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return errors.Wrap(err, "creating export file")
			}
			defer f.Close()
			w = f
		}

		return exportMemos(cmd.Context(), store, w, format, cfg.Location, time.Now())
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "ics, yaml or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "-", "file to write, - for stdout")
	rootCmd.AddCommand(exportCmd)
}

func exportMemos(ctx context.Context, store *memostore.Store, w io.Writer, format exporter.Format, loc *time.Location, now time.Time) error {
	records, err := store.Records(ctx)
	if err != nil {
		return err
	}
	if format == exporter.FormatICS {
		return exporter.WriteICS(w, records, exporter.ICSOptions{Name: calendarName, Location: loc, Now: now})
	}
	return exporter.WriteBackup(w, format, exporter.NewBackup(records, now))
}
