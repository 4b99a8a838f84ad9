package memostore

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
)

type Kind string

const (
	KindFetch      Kind = "fetch"
	KindConfirm    Kind = "confirm"
	KindUpdate     Kind = "update"
	KindCreate     Kind = "create"
	KindDelete     Kind = "delete"
	KindInvalid    Kind = "invalid"
	KindUnexpected Kind = "unexpected"
)

var prefixes = map[Kind]string{
	KindFetch:      "fetch failed",
	KindConfirm:    "confirmation failed",
	KindUpdate:     "update failed",
	KindCreate:     "creation failed",
	KindDelete:     "delete failed",
	KindInvalid:    "invalid date",
	KindUnexpected: "unexpected error",
}

// Failure is the error side of every Result this package returns.
// Message is safe to show to the user.
type Failure struct {
	Kind    Kind
	Message string
	Err     error
}

func (f *Failure) Error() string {
	return f.Message
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func fail(kind Kind, err error) *Failure {
	return &Failure{
		Kind:    kind,
		Message: fmt.Sprintf("%s: %s", prefixes[kind], err.Error()),
		Err:     err,
	}
}

// FailureOf extracts the Failure from err, if any.
func FailureOf(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Result is the outcome of a mutation: Ok carries nothing, Err carries a *Failure.
type Result = mo.Result[struct{}]

func success() Result {
	return mo.Ok(struct{}{})
}

func failure(kind Kind, err error) Result {
	return mo.Err[struct{}](fail(kind, err))
}

// recoverResult must be deferred directly so recover sees the panic.
func recoverResult[T any](log logrus.FieldLogger, op string, res *mo.Result[T]) {
	if r := recover(); r != nil {
		err := goerrors.Wrap(r, 2)
		log.WithField("op", op).Errorf("Recovered from panic: %s", err.ErrorStack())
		*res = mo.Err[T](fail(KindUnexpected, err))
	}
}
