package bridge

import "fmt"

// StartupError reports a condition that prevents the bridge from serving
type StartupError struct {
	Reason string
	Err    error
}

func (e *StartupError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Reason, e.Err)
	}
	return e.Reason
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

func startupError(err error, format string, args ...interface{}) *StartupError {
	return &StartupError{Reason: fmt.Sprintf(format, args...), Err: err}
}
