// Package prompt collects typed tool inputs from an interactive console.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrInterrupted is returned when the context is cancelled while a prompt
// is waiting for input.
var ErrInterrupted = errors.New("interrupted")

type lineResult struct {
	line string
	err  error
}

// Console pairs a line-oriented input stream with the output stream prompts
// are written to. Reads happen on a single background goroutine so that a
// blocked prompt can be abandoned when the context is cancelled.
type Console struct {
	in  io.Reader
	out io.Writer

	start sync.Once
	lines chan lineResult
}

// NewConsole creates a console reading from in and writing to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:    in,
		out:   out,
		lines: make(chan lineResult),
	}
}

// Out returns the output stream.
func (c *Console) Out() io.Writer {
	return c.out
}

// Printf writes formatted text to the output stream.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Println writes a line to the output stream.
func (c *Console) Println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

// Ask writes prompt and returns the next line of input.
func (c *Console) Ask(ctx context.Context, prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	return c.ReadLine(ctx)
}

// ReadLine returns the next line without its line terminator. It returns
// ErrInterrupted if ctx is done first and io.EOF once input is exhausted.
func (c *Console) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInterrupted
	}
	c.start.Do(func() { go c.readLoop() })

	select {
	case <-ctx.Done():
		return "", ErrInterrupted
	case r, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		return r.line, r.err
	}
}

func (c *Console) readLoop() {
	defer close(c.lines)

	reader := bufio.NewReader(c.in)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			line = strings.TrimSuffix(line, "\r")
			c.lines <- lineResult{line: line}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				c.lines <- lineResult{err: fmt.Errorf("failed to read input: %w", err)}
			}
			return
		}
	}
}
