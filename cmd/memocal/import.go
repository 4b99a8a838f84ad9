package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/oliverisaac/memocal/exporter"
	"github.com/oliverisaac/memocal/memostore"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Load memos from a YAML or JSON backup",
	Long:  "Every memo in the backup is saved under its date, replacing whatever is stored there.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		f, err := os.Open(args[0])
		if err != nil {
			return errors.Wrap(err, "opening backup")
		}
		defer f.Close()

		db, store, err := openStore(cfg, nil)
		if err != nil {
			return err
		}
		defer closeDB(db)

		n, err := importMemos(cmd.Context(), store, f)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d memos\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
}

// importMemos stops at the first failed save; earlier saves stay applied.
func importMemos(ctx context.Context, store *memostore.Store, r io.Reader) (int, error) {
	backup, err := exporter.ReadBackup(r)
	if err != nil {
		return 0, err
	}
	for i, m := range backup.Memos {
		if _, err := store.Save(ctx, m.Date, m.Text).Get(); err != nil {
			return i, errors.Wrapf(err, "importing memo for %s", m.Date)
		}
		logrus.Debugf("Imported memo for %s", m.Date)
	}
	return len(backup.Memos), nil
}
