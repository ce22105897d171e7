package core

// status is the outcome tag of a Result. Only three states are
// reachable: an operation either finished, failed with a message meant
// for the user, or was backed out of by the user.
type status int

const (
	statusError status = iota
	statusDone
	statusCancelled
)

// Result is the outcome of any operation that can fail or be aborted
// by the user. Value must only be read after IsDone reports true.
type Result[T any] struct {
	status  status
	message string

	Value T
}

// Ok wraps a successful value.
func Ok[T any](value T) Result[T] {
	return Result[T]{status: statusDone, Value: value}
}

// Fail wraps a user-displayable failure message. The message is for
// display only; callers must not branch on its contents.
func Fail[T any](message string) Result[T] {
	return Result[T]{status: statusError, message: message}
}

// Cancel marks the operation as backed out of by the user. It is not a
// failure: menus unwind without printing an error.
func Cancel[T any]() Result[T] {
	return Result[T]{status: statusCancelled}
}

func (r Result[T]) IsDone() bool      { return r.status == statusDone }
func (r Result[T]) IsCancelled() bool { return r.status == statusCancelled }

func (r Result[T]) Message() string { return r.message }
