package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// ErrInputTerminated is returned when the input stream ends before an answer.
var ErrInputTerminated = errors.New("input terminated")

// Prompter asks yes/no questions on a terminal. It is the confirmation gate
// for destructive commands.
type Prompter struct {
	writer io.Writer
	reader *NonBlockingReader
}

// NewPrompter creates a prompter reading from reader and writing to writer.
// Nil arguments fall back to stdin and stdout.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}

	return &Prompter{
		reader: NewNonBlockingReader(reader),
		writer: writer,
	}
}

// Confirm asks question until it gets a yes or no. A blank answer is no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	for {
		if _, err := fmt.Fprintf(p.writer, "%s[y/N] ", FormatPrompt(question)); err != nil {
			return false, fmt.Errorf("failed to write prompt: %w", err)
		}

		answer, err := p.reader.ReadLine(ctx)
		if errors.Is(err, io.EOF) {
			return false, ErrInputTerminated
		}
		if err != nil {
			return false, err
		}

		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "", "n", "no":
			return false, nil
		}

		if _, err := fmt.Fprintln(p.writer, FormatError("Please answer y or n.")); err != nil {
			slog.Warn("Failed to write error message", "error", err)
		}
	}
}
