package entities

import "fmt"

// InputError reports a user-correctable problem with the action input or its
// configuration. It is never retried.
type InputError struct {
	Message string
	URL     string // attempted lookup URL, when the error concerns credentials
}

// NewInputError creates an InputError with a formatted message.
func NewInputError(format string, args ...any) *InputError {
	return &InputError{Message: fmt.Sprintf(format, args...)}
}

// NewCredentialsError creates an InputError for a URL that yielded no token.
func NewCredentialsError(url string) *InputError {
	return &InputError{
		Message: "no token credentials provided for " + url,
		URL:     url,
	}
}

func (e *InputError) Error() string {
	return "invalid input: " + e.Message
}
