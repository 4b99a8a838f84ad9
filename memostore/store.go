// Package memostore is the access layer over the calendar_memos table.
// Every operation reports through mo.Result; store errors never escape as
// panics or bare errors.
package memostore

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/go-errors/errors"
	"github.com/oliverisaac/memocal/revalidate"
	"github.com/oliverisaac/memocal/types"
	"github.com/pkg/errors"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Publisher receives a revalidation event after every successful mutation.
type Publisher interface {
	Publish(ctx context.Context, ev revalidate.Event)
}

type Store struct {
	db  *gorm.DB
	now func() time.Time
	pub Publisher
	log logrus.FieldLogger
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func WithPublisher(p Publisher) Option {
	return func(s *Store) {
		s.pub = p
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Store) {
		s.log = l
	}
}

func New(db *gorm.DB, opts ...Option) *Store {
	s := &Store{
		db:  db,
		now: time.Now,
		log: logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// FetchAll returns every memo keyed by date.
func (s *Store) FetchAll(ctx context.Context) (res mo.Result[map[string]string]) {
	defer recoverResult(s.log, "fetch", &res)

	rows := []types.Memo{}
	if err := s.db.WithContext(ctx).Select("date", "memo").Find(&rows).Error; err != nil {
		err = errors.Wrap(err, "reading calendar memos")
		s.log.Error(err)
		return mo.Err[map[string]string](fail(KindFetch, err))
	}

	memos := make(map[string]string, len(rows))
	for _, row := range rows {
		memos[row.Date] = row.Text
	}
	return mo.Ok(memos)
}

// Save stores text under date, updating the existing row when there is one.
// Blank text deletes the memo instead.
func (s *Store) Save(ctx context.Context, date string, text string) (res Result) {
	defer recoverResult(s.log, "save", &res)

	if strings.TrimSpace(text) == "" {
		return s.Delete(ctx, date)
	}
	if err := validDate(date); err != nil {
		return failure(KindInvalid, err)
	}

	db := s.db.WithContext(ctx)
	log := s.log.WithField("date", date)

	var count int64
	if err := db.Model(&types.Memo{}).Where("date = ?", date).Count(&count).Error; err != nil {
		err = errors.Wrapf(err, "looking for memo on %s", date)
		log.Error(err)
		return failure(KindConfirm, err)
	}

	now := s.now()
	if count > 0 {
		err := db.Model(&types.Memo{}).
			Where("date = ?", date).
			Updates(map[string]any{"memo": text, "updated_at": now}).Error
		if err != nil {
			err = errors.Wrapf(err, "updating memo on %s", date)
			log.Error(err)
			return failure(KindUpdate, err)
		}
		log.Debug("Updated memo")
	} else {
		memo := types.Memo{
			Date:      date,
			Text:      text,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := db.Create(&memo).Error; err != nil {
			err = errors.Wrapf(err, "creating memo on %s", date)
			log.Error(err)
			return failure(KindCreate, err)
		}
		log.Debug("Created memo")
	}

	s.publish(ctx, revalidate.Event{Date: date, Kind: revalidate.Saved, At: now})
	return success()
}

// Delete removes the memo on date. A date without a memo is not an error.
func (s *Store) Delete(ctx context.Context, date string) (res Result) {
	defer recoverResult(s.log, "delete", &res)

	if err := validDate(date); err != nil {
		return failure(KindInvalid, err)
	}

	result := s.db.WithContext(ctx).Where("date = ?", date).Delete(&types.Memo{})
	if result.Error != nil {
		err := errors.Wrapf(result.Error, "deleting memo on %s", date)
		s.log.Error(err)
		return failure(KindDelete, err)
	}
	s.log.WithField("date", date).Debugf("Deleted %d memo rows", result.RowsAffected)

	s.publish(ctx, revalidate.Event{Date: date, Kind: revalidate.Deleted, At: s.now()})
	return success()
}

// Records returns full rows ordered by date, for exports.
func (s *Store) Records(ctx context.Context) ([]types.Memo, error) {
	ret := []types.Memo{}
	if err := s.db.WithContext(ctx).Order("date ASC").Find(&ret).Error; err != nil {
		return nil, errors.Wrap(err, "listing calendar memos")
	}
	return ret, nil
}

// publish runs after the write is committed, so a misbehaving publisher is
// logged and never turns the mutation into a failure.
func (s *Store) publish(ctx context.Context, ev revalidate.Event) {
	if s.pub == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			err := goerrors.Wrap(r, 2)
			s.log.WithField("date", ev.Date).Errorf("Publisher panicked: %s", err.ErrorStack())
		}
	}()
	s.pub.Publish(ctx, ev)
}

func validDate(date string) error {
	_, err := types.ParseDateKey(date, time.UTC)
	return err
}
