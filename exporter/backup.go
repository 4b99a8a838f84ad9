package exporter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/oliverisaac/memocal/types"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatICS  Format = "ics"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatICS, FormatYAML, FormatJSON:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

const backupVersion = 1

// Backup is the on-disk shape of a YAML or JSON export.
type Backup struct {
	Version    int          `json:"version" yaml:"version"`
	ExportedAt time.Time    `json:"exported_at" yaml:"exported_at"`
	Memos      []types.Memo `json:"memos" yaml:"memos"`
}

func NewBackup(memos []types.Memo, now time.Time) Backup {
	return Backup{
		Version:    backupVersion,
		ExportedAt: now,
		Memos:      memos,
	}
}

func WriteBackup(w io.Writer, format Format, b Backup) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(b); err != nil {
			return errors.Wrap(err, "encoding yaml backup")
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(b), "encoding json backup")
	default:
		return fmt.Errorf("%s is not a backup format", format)
	}
}

// ReadBackup decodes a YAML or JSON backup and rejects bad dates and
// duplicate days.
func ReadBackup(r io.Reader) (Backup, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Backup{}, errors.Wrap(err, "reading backup")
	}

	var b Backup
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("{")) {
		err = json.Unmarshal(data, &b)
	} else {
		err = yaml.Unmarshal(data, &b)
	}
	if err != nil {
		return Backup{}, errors.Wrap(err, "decoding backup")
	}
	if b.Version > backupVersion {
		return Backup{}, fmt.Errorf("backup version %d is newer than supported version %d", b.Version, backupVersion)
	}

	seen := map[string]bool{}
	for i, m := range b.Memos {
		if _, err := types.ParseDateKey(m.Date, time.UTC); err != nil {
			return Backup{}, errors.Wrapf(err, "memo %d", i)
		}
		if seen[m.Date] {
			return Backup{}, fmt.Errorf("memo %d: duplicate date %s", i, m.Date)
		}
		seen[m.Date] = true
	}
	return b, nil
}
