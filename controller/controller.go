// Package controller owns the in-memory memo map for the running process and
// keeps it in step with the store after every confirmed mutation.
package controller

import (
	"context"
	"maps"
	"strings"
	"sync"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/oliverisaac/memocal/editor"
	"github.com/oliverisaac/memocal/memostore"
	"github.com/oliverisaac/memocal/types"
	"github.com/pkg/errors"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
)

// MemoService is the access layer the controller drives.
type MemoService interface {
	FetchAll(ctx context.Context) mo.Result[map[string]string]
	Save(ctx context.Context, date string, text string) mo.Result[struct{}]
	Delete(ctx context.Context, date string) mo.Result[struct{}]
}

type Notifier interface {
	Notify(t types.Toast)
}

type NotifierFunc func(t types.Toast)

func (f NotifierFunc) Notify(t types.Toast) {
	f(t)
}

// Discard drops every toast.
var Discard Notifier = NotifierFunc(func(types.Toast) {})

type Controller struct {
	svc      MemoService
	loc      *time.Location
	messages Messages
	log      logrus.FieldLogger

	mu       sync.RWMutex
	memos    map[string]string
	loaded   bool
	selected *time.Time
}

type Option func(*Controller)

func WithLocation(loc *time.Location) Option {
	return func(c *Controller) {
		c.loc = loc
	}
}

func WithMessages(m Messages) Option {
	return func(c *Controller) {
		c.messages = m
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Controller) {
		c.log = l
	}
}

func New(svc MemoService, opts ...Option) *Controller {
	c := &Controller{
		svc:      svc,
		loc:      time.Local,
		messages: JapaneseMessages,
		log:      logrus.StandardLogger(),
		memos:    map[string]string{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Load fetches every memo once per controller. A failed fetch is reported to
// n and leaves the map empty; later calls do nothing.
func (c *Controller) Load(ctx context.Context, n Notifier) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded {
		return true
	}
	c.loaded = true

	memos, err := guard(c.log, "fetch", func() mo.Result[map[string]string] {
		return c.svc.FetchAll(ctx)
	}).Get()
	if err != nil {
		c.log.Errorf("Failed to fetch memos: %v", err)
		c.fail(n, c.messages.LoadFailed, err)
		c.memos = map[string]string{}
		return false
	}

	c.memos = memos
	if c.memos == nil {
		c.memos = map[string]string{}
	}
	c.log.Infof("Loaded %d memos", len(c.memos))
	return true
}

func (c *Controller) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Memos returns a copy of the current map.
func (c *Controller) Memos() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.memos)
}

func (c *Controller) Memo(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	memo, ok := c.memos[key]
	return memo, ok
}

func (c *Controller) Location() *time.Location {
	return c.loc
}

// Select records date and returns an editor opened on its memo. The editor
// saves under the date it was opened for, whatever is selected later.
func (c *Controller) Select(date time.Time, n Notifier) *editor.Dialog {
	date = date.In(c.loc)

	c.mu.Lock()
	c.selected = &date
	c.mu.Unlock()

	initial := mo.None[string]()
	if memo, ok := c.Memo(types.DateKey(date)); ok {
		initial = mo.Some(memo)
	}

	d := editor.New(
		func(ctx context.Context, text string) bool {
			return c.Save(ctx, date, text, n)
		},
		func(ctx context.Context, key string) bool {
			return c.Delete(ctx, key, n)
		},
		editor.WithLogger(c.log),
	)
	d.Open(date, initial)
	return d
}

func (c *Controller) Selected() (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.selected == nil {
		return time.Time{}, false
	}
	return *c.selected, true
}

// SaveSelected saves text for the selected date.
func (c *Controller) SaveSelected(ctx context.Context, text string, n Notifier) bool {
	date, ok := c.Selected()
	if !ok {
		c.notify(n, types.ToastError, c.messages.ErrorTitle, c.messages.NoDateChosen)
		return false
	}
	return c.Save(ctx, date, text, n)
}

// Save stores text for date and mirrors the change locally once the store
// confirms it.
func (c *Controller) Save(ctx context.Context, date time.Time, text string, n Notifier) bool {
	key := types.DateKeyIn(date, c.loc)

	_, err := guard(c.log, "save", func() mo.Result[struct{}] {
		return c.svc.Save(ctx, key, text)
	}).Get()
	if err != nil {
		c.fail(n, c.messages.SaveFailed, err)
		return false
	}

	c.mu.Lock()
	if strings.TrimSpace(text) == "" {
		delete(c.memos, key)
	} else {
		c.memos[key] = text
	}
	c.mu.Unlock()

	c.log.WithField("date", key).Info("Saved memo")
	c.notify(n, types.ToastSuccess, c.messages.SuccessTitle, c.messages.Saved)
	return true
}

// Delete removes the memo under key, locally only after the store confirms.
func (c *Controller) Delete(ctx context.Context, key string, n Notifier) bool {
	_, err := guard(c.log, "delete", func() mo.Result[struct{}] {
		return c.svc.Delete(ctx, key)
	}).Get()
	if err != nil {
		c.fail(n, c.messages.DeleteFailed, err)
		return false
	}

	c.mu.Lock()
	delete(c.memos, key)
	c.mu.Unlock()

	c.log.WithField("date", key).Info("Deleted memo")
	c.notify(n, types.ToastSuccess, c.messages.SuccessTitle, c.messages.Deleted)
	return true
}

func (c *Controller) fail(n Notifier, fallback string, err error) {
	description := err.Error()
	if f, ok := memostore.FailureOf(err); ok {
		if prefix, ok := c.messages.Failures[f.Kind]; ok {
			description = prefix
			if f.Err != nil {
				description += ": " + f.Err.Error()
			}
		}
	}
	switch {
	case errors.Is(err, errPanicked):
		description = c.messages.Unexpected
	case description == "":
		description = fallback
	}
	c.notify(n, types.ToastError, c.messages.ErrorTitle, description)
}

func (c *Controller) notify(n Notifier, level types.ToastLevel, title string, description string) {
	if n == nil {
		return
	}
	n.Notify(types.Toast{Level: level, Title: title, Description: description})
}

var errPanicked = errors.New("memo service panicked")

// guard turns a panic inside the access layer into an error result.
func guard[T any](log logrus.FieldLogger, op string, fn func() mo.Result[T]) (res mo.Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			err := goerrors.Wrap(r, 2)
			log.WithField("op", op).Errorf("Recovered from panic: %s", err.ErrorStack())
			res = mo.Err[T](errPanicked)
		}
	}()
	return fn()
}
