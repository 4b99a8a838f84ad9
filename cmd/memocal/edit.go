package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set DATE TEXT...",
	Short: "Save the memo for DATE (YYYY-MM-DD); empty text deletes it",
	Args:  cobra.MinimumNArgs(1),
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

		if _, err := store.Save(cmd.Context(), args[0], strings.Join(args[1:], " ")).Get(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved memo for %s\n", args[0])
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete DATE",
	Short: "Delete the memo for DATE (YYYY-MM-DD)",
	Args:  cobra.ExactArgs(1),
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

		if _, err := store.Delete(cmd.Context(), args[0]).Get(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted memo for %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(deleteCmd)
}
