package helpers

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// PromptPassword reads a password from the terminal without echo.
func PromptPassword(prompt string) (string, error) {
	return promptPassword(os.Stdin, os.Stderr, prompt)
}

func promptPassword(in *os.File, out io.Writer, prompt string) (string, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return "", fmt.Errorf("password input failed: stdin is not a terminal")
	}

	_, _ = fmt.Fprint(out, prompt)
	pw, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(out)

	if err != nil {
		return "", fmt.Errorf("password input failed: %w", err)
	}
	if len(pw) == 0 {
		return "", fmt.Errorf("password is empty")
	}
	return string(pw), nil
}
