package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNotInteractive is returned by ReadPassword when stdin is not a
// terminal, so there is nobody to prompt.
var ErrNotInteractive = errors.New("stdin is not a terminal")

// ReadPassword prints prompt to w and reads a line from the terminal on
// stdin with echo disabled.
func ReadPassword(w io.Writer, prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", ErrNotInteractive
	}

	fmt.Fprint(w, prompt)
	password, err := term.ReadPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(password), nil
}
