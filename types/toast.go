package types

type ToastLevel string

const (
	ToastSuccess ToastLevel = "success"
	ToastError   ToastLevel = "error"
)

// Toast is a transient notification shown once to the user.
type Toast struct {
	Level       ToastLevel `json:"level"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
}

func (t Toast) IsError() bool {
	return t.Level == ToastError
}
