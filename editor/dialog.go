// Package editor is the memo editing dialog. It never touches the store:
// saving and deleting go through the callbacks it is built with.
package editor

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/oliverisaac/memocal/types"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
)

// SaveFunc persists text for the dialog's date and reports success.
type SaveFunc func(ctx context.Context, text string) bool

// DeleteFunc removes the memo on dateKey and reports success.
type DeleteFunc func(ctx context.Context, dateKey string) bool

type Dialog struct {
	open    bool
	date    *time.Time
	initial mo.Option[string]
	text    string
	busy    bool

	onSave   SaveFunc
	onDelete DeleteFunc
	log      logrus.FieldLogger
}

type Option func(*Dialog)

func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Dialog) {
		d.log = l
	}
}

func New(onSave SaveFunc, onDelete DeleteFunc, opts ...Option) *Dialog {
	d := &Dialog{
		onSave:   onSave,
		onDelete: onDelete,
		log:      logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Open shows the dialog for date with its current memo, discarding any
// edits left over from a previous date.
func (d *Dialog) Open(date time.Time, initial mo.Option[string]) {
	d.Sync(true, &date, initial)
}

// Sync applies new inputs. The edited text is reset whenever the date, the
// initial text or the open flag changes.
func (d *Dialog) Sync(open bool, date *time.Time, initial mo.Option[string]) {
	changed := open != d.open || !sameDate(date, d.date) || !sameOption(initial, d.initial)
	d.open = open
	d.date = date
	d.initial = initial
	if changed {
		d.text = initial.OrEmpty()
	}
}

func (d *Dialog) Close() {
	d.open = false
}

func (d *Dialog) IsOpen() bool {
	return d.open
}

func (d *Dialog) Busy() bool {
	return d.busy
}

func (d *Dialog) Text() string {
	return d.text
}

// SetText is ignored while a save or delete is in flight.
func (d *Dialog) SetText(text string) {
	if d.busy {
		return
	}
	d.text = text
}

// CanDelete offers deletion only when editing an existing, non-empty memo.
func (d *Dialog) CanDelete() bool {
	memo, ok := d.initial.Get()
	return ok && strings.TrimSpace(memo) != ""
}

// Save hands the edited text to the save callback exactly once. The dialog
// closes on success and stays open otherwise.
func (d *Dialog) Save(ctx context.Context) bool {
	if d.date == nil || d.busy || d.onSave == nil {
		return false
	}
	text := d.text
	return d.run("save", func() bool {
		return d.onSave(ctx, text)
	})
}

// Delete hands the date-key to the delete callback, with the same contract as Save.
func (d *Dialog) Delete(ctx context.Context) bool {
	if d.date == nil || d.busy || d.onDelete == nil {
		return false
	}
	key := types.DateKey(*d.date)
	return d.run("delete", func() bool {
		return d.onDelete(ctx, key)
	})
}

func (d *Dialog) run(op string, fn func() bool) (ok bool) {
	d.busy = true
	defer func() {
		d.busy = false
		if r := recover(); r != nil {
			err := goerrors.Wrap(r, 2)
			d.log.WithField("op", op).Errorf("Failed to %s memo: %s", op, err.ErrorStack())
			ok = false
		}
		if ok {
			d.Close()
		}
	}()
	return fn()
}

type View struct {
	Open      bool
	Date      time.Time
	DateKey   string
	Text      string
	Busy      bool
	CanDelete bool
}

// View is empty while no date is selected.
func (d *Dialog) View() mo.Option[View] {
	if d.date == nil {
		return mo.None[View]()
	}
	return mo.Some(View{
		Open:      d.open,
		Date:      *d.date,
		DateKey:   types.DateKey(*d.date),
		Text:      d.text,
		Busy:      d.busy,
		CanDelete: d.CanDelete(),
	})
}

func sameOption(a, b mo.Option[string]) bool {
	av, aok := a.Get()
	bv, bok := b.Get()
	return aok == bok && av == bv
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
