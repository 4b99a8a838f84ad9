package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Print a CALMEMO_PASSWORD_HASH line for a password read from the terminal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword("Enter password:   ")
		if err != nil {
			return err
		}
		confirm, err := readPassword("Confirm password: ")
		if err != nil {
			return err
		}
		if password == "" {
			return fmt.Errorf("Password cannot be empty")
		}
		if password != confirm {
			return fmt.Errorf("Passwords do not match")
		}

		hash, err := hashPassword(password)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "CALMEMO_PASSWORD_HASH=%s\n", hash)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}

func readPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	return string(b), nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return "", errors.Wrap(err, "hashing password")
	}
	return string(hash), nil
}
