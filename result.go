package securelogin

// Result is the uniform outcome envelope flows return for expected
// failures. Succeeded plus Data on the happy path, Message and optional
// Errors otherwise. Infrastructure faults travel as plain Go errors
// alongside the Result, never inside it.
type Result[T any] struct {
	Succeeded bool     `json:"succeeded"`
	Data      T        `json:"data,omitempty"`
	Message   string   `json:"message,omitempty"`
	Errors    []string `json:"errors,omitempty"`
}

// Success wraps data in a succeeded Result, with an optional message.
func Success[T any](data T, message ...string) Result[T] {
	r := Result[T]{Succeeded: true, Data: data}
	if len(message) > 0 {
		r.Message = message[0]
	}
	return r
}

// Failure builds a failed Result carrying a client facing message.
func Failure[T any](message string, errs ...string) Result[T] {
	return Result[T]{Succeeded: false, Message: message, Errors: errs}
}
