package types

import (
	errs "errors"
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/oliverisaac/goli"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Config struct {
	DBPath       string
	DatabaseURL  string
	CookieSecret []byte
	ListenAddr   string
	Location     *time.Location
	Locale       string
	PasswordHash []byte
	LogLevel     logrus.Level
}

func (c Config) AuthEnabled() bool {
	return len(c.PasswordHash) > 0
}

// ConfigFromEnv reads every CALMEMO_* variable and reports all problems at once.
func ConfigFromEnv() (Config, error) {
	ret := Config{}
	var retErr error
	var err error

	ret.LogLevel, err = logrus.ParseLevel(goli.DefaultEnv("CALMEMO_LOG_LEVEL", "info"))
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing CALMEMO_LOG_LEVEL"))
		ret.LogLevel = logrus.InfoLevel
	}

	ret.ListenAddr = goli.DefaultEnv("CALMEMO_LISTEN_ADDR", ":8080")

	ret.Location, err = time.LoadLocation(goli.DefaultEnv("CALMEMO_TIMEZONE", "Local"))
	if err != nil {
		retErr = errs.Join(retErr, errors.Wrap(err, "parsing CALMEMO_TIMEZONE"))
		ret.Location = time.Local
	}

	ret.Locale = strings.ToLower(goli.DefaultEnv("CALMEMO_LOCALE", "ja"))
	if ret.Locale != "ja" && ret.Locale != "en" {
		retErr = errs.Join(retErr, fmt.Errorf("CALMEMO_LOCALE must be ja or en, got %q", ret.Locale))
	}

	if secret, ok := os.LookupEnv("CALMEMO_COOKIE_STORE_SECRET"); ok {
		ret.CookieSecret = []byte(secret)
	}

	if hash := os.Getenv("CALMEMO_PASSWORD_HASH"); hash != "" {
		ret.PasswordHash = []byte(hash)
	}

	ret.DatabaseURL = os.Getenv("CALMEMO_DATABASE_URL")
	if ret.DatabaseURL == "" {
		var ok bool
		ret.DBPath, ok = os.LookupEnv("CALMEMO_DB_PATH")
		if !ok {
			retErr = errs.Join(retErr, fmt.Errorf("You must define env CALMEMO_DB_PATH or CALMEMO_DATABASE_URL"))
		} else if _, err := os.Stat(path.Dir(ret.DBPath)); err != nil {
			retErr = errs.Join(retErr, errors.Wrap(err, "Directory for CALMEMO_DB_PATH must exist"))
		}
	}

	return ret, retErr
}

// ValidateServe checks the settings only the web server needs.
func (c Config) ValidateServe() error {
	if len(c.CookieSecret) == 0 {
		return fmt.Errorf("You must define env CALMEMO_COOKIE_STORE_SECRET")
	}
	return nil
}
