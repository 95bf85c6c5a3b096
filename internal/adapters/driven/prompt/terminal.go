package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/custodia-labs/revisify/internal/core/ports/driven"
)

// Ensure Terminal implements the interface.
var _ driven.Prompter = (*Terminal)(nil)

// Terminal prompts on a line-oriented input and output.
// End of input cancels the prompt.
type Terminal struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

// NewTerminal creates a prompter reading from in and writing to out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:     in,
		reader: bufio.NewReader(in),
		out:    out,
	}
}

// Interactive reports whether input comes from a terminal.
func (t *Terminal) Interactive() bool {
	f, ok := t.in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Confirm asks a yes/no question. Anything but y or yes is a no.
func (t *Terminal) Confirm(ctx context.Context, message string) (bool, error) {
	fmt.Fprintf(t.out, "%s [y/N]: ", message)

	answer, err := t.readLine(ctx)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Prompt asks for a line of text. An empty answer selects def.
func (t *Terminal) Prompt(ctx context.Context, message, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(t.out, "%s [%s]: ", message, def)
	} else {
		fmt.Fprintf(t.out, "%s: ", message)
	}

	answer, err := t.readLine(ctx)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func (t *Terminal) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", driven.ErrPromptCancelled
	}

	line, err := t.reader.ReadString('\n')
	if errors.Is(err, io.EOF) && line == "" {
		fmt.Fprintln(t.out)
		return "", driven.ErrPromptCancelled
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading answer: %w", err)
	}
	return strings.TrimSpace(line), nil
}
