package apperrors

// AppError carries an HTTP-ish status code and a message that is safe to show
// to the end user verbatim. Handlers surface Message unchanged, so services
// phrase it the way the UI should display it.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping err (usually one of the sentinel
// errors in this package, so errors.Is keeps working on the result).
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
