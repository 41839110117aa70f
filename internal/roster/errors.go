package roster

import "fmt"

// ErrorType classifies a rejected roster operation.
type ErrorType string

const (
	InvalidName     ErrorType = "INVALID_NAME"
	AlreadyPresent  ErrorType = "ALREADY_PRESENT"
	NotFound        ErrorType = "NOT_FOUND"
	UnknownCategory ErrorType = "UNKNOWN_CATEGORY"
)

// Sentinels for errors.Is; only the Type field is compared.
var (
	ErrInvalidName     = &Error{Type: InvalidName}
	ErrAlreadyPresent  = &Error{Type: AlreadyPresent}
	ErrNotFound        = &Error{Type: NotFound}
	ErrUnknownCategory = &Error{Type: UnknownCategory}
)

// Error reports why an operation left the document untouched.
type Error struct {
	Type     ErrorType
	Name     string
	Category Category
}

func (e *Error) Error() string {
	switch e.Type {
	case InvalidName:
		return "invalid name: nothing left after normalization"
	case AlreadyPresent:
		return fmt.Sprintf("'%s' is already in the '%s' list", e.Name, e.Category)
	case NotFound:
		return fmt.Sprintf("'%s' not found in any list", e.Name)
	case UnknownCategory:
		return fmt.Sprintf("unknown category: %q", string(e.Category))
	default:
		return fmt.Sprintf("roster error: %s", e.Name)
	}
}

// Is matches any *Error with the same Type.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Type == t.Type
}
