package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/oliverisaac/memocal/memostore"
	"github.com/spf13/cobra"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every memo",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, store, err := openStore(cfg, nil)
		if err != nil {
			return err
		}
		defer closeDB(db)

		return listMemos(cmd.Context(), store, cmd.OutOrStdout(), listJSON)
	},
}

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print the date to memo map as JSON")
	rootCmd.AddCommand(listCmd)
}

func listMemos(ctx context.Context, store *memostore.Store, w io.Writer, asJSON bool) error {
	memos, err := store.FetchAll(ctx).Get()
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(memos)
	}

	dates := make([]string, 0, len(memos))
	for d := range memos {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		first, _, more := strings.Cut(strings.TrimSpace(memos[d]), "\n")
		if more {
			first += " …"
		}
		fmt.Fprintf(w, "%s\t%s\n", d, first)
	}
	return nil
}
