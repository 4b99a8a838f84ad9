package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/oliverisaac/memocal/memostore"
	"github.com/oliverisaac/memocal/revalidate"
	"github.com/oliverisaac/memocal/types"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "memocal",
	Short: "A month calendar with one memo per day",
	Long: `memocal keeps a short note for any calendar day and serves a month view
to read and edit them. Run "memocal serve" to start the web app; the other
commands work on the same database from the shell.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := godotenv.Load(envFile); err != nil {
			logrus.Debugf("Not loading %s: %v", envFile, err)
		}
	},
}

// Execute runs the command line. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading CALMEMO_* variables")
}

func loadConfig() (types.Config, error) {
	cfg, err := types.ConfigFromEnv()
	if err != nil {
		return cfg, err
	}
	logrus.SetLevel(cfg.LogLevel)
	return cfg, nil
}

func openStore(cfg types.Config, broker *revalidate.Broker) (*gorm.DB, *memostore.Store, error) {
	db, err := memostore.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	opts := []memostore.Option{memostore.WithLogger(logrus.WithField("component", "memostore"))}
	if broker != nil {
		opts = append(opts, memostore.WithPublisher(broker))
	}
	return db, memostore.New(db, opts...), nil
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		logrus.Warnf("Closing database: %v", err)
	}
}
