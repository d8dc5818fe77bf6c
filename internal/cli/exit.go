package cli

import "fmt"

// ExitError signals a non-zero exit code for a command that has already
// written its own output. The error line is not printed again.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// ExitCode returns the exit code.
func (e *ExitError) ExitCode() int {
	return e.Code
}
