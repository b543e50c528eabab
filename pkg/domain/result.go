package domain

// ResultState is the tag of Result
type ResultState int

// result states
const (
	StateLoading ResultState = iota
	StateSuccess
	StateError
)

// String returns state name as used in API responses
func (s ResultState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Result is a tagged union of Loading, Success(Data) and Error(Message).
// Only the field matching State is meaningful.
type Result[T any] struct {
	State   ResultState
	Data    T
	Message string
}

// Loading makes a loading result
func Loading[T any]() Result[T] {
	return Result[T]{State: StateLoading}
}

// Success makes a success result carrying data
func Success[T any](data T) Result[T] {
	return Result[T]{State: StateSuccess, Data: data}
}

// Failure makes an error result with a human-readable message
func Failure[T any](msg string) Result[T] {
	return Result[T]{State: StateError, Message: msg}
}

// IsTerminal reports whether the result is Success or Error
func (r Result[T]) IsTerminal() bool {
	return r.State == StateSuccess || r.State == StateError
}
