package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var errEmptyPasswordInput = errors.New("password must not be empty")

// promptPassword reads one line from reader. When stdin is a terminal, echo is
// off while the line is typed.
func promptPassword(cmd *cobra.Command, reader *bufio.Reader, label string) (string, error) {
	fmt.Fprint(cmd.ErrOrStderr(), label)

	if file, ok := cmd.InOrStdin().(*os.File); ok {
		if restore, err := disableEcho(file); err == nil {
			defer func() {
				restore()
				fmt.Fprintln(cmd.ErrOrStderr())
			}()
		}
	}

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return nonEmptyPassword(strings.TrimRight(line, "\r\n"))
}

func nonEmptyPassword(value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", errEmptyPasswordInput
	}
	return value, nil
}

func passwordOrPrompt(cmd *cobra.Command, reader *bufio.Reader, flagValue string, label string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return promptPassword(cmd, reader, label)
}

func newInputReader(cmd *cobra.Command) *bufio.Reader {
	return bufio.NewReader(cmd.InOrStdin())
}
