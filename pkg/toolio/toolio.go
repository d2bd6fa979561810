// Package toolio holds the argument and exit-code conventions shared by the
// tool binaries the menu launches.
//
// A tool receives exactly one argument, a JSON object of its inputs. It
// reports progress on stdout, diagnostics on stderr, and exits 0 on success.
package toolio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
)

var (
	// ErrNoInput is returned when the tool was started without its argument.
	ErrNoInput = errors.New("no input provided")
	// ErrBadInput is returned when the argument is not a JSON object.
	ErrBadInput = errors.New("invalid input format")
)

// Decode unmarshals the single JSON argument in args into v.
func Decode(args []string, v any) error {
	if len(args) == 0 {
		return ErrNoInput
	}
	if err := json.Unmarshal([]byte(args[0]), v); err != nil {
		return fmt.Errorf("%w: %w", ErrBadInput, err)
	}
	return nil
}

// IO is the pair of streams a tool reports on.
type IO struct {
	Out io.Writer
	Err io.Writer
}

// Printf writes a progress line to Out.
func (s IO) Printf(format string, args ...any) {
	fmt.Fprintf(s.Out, format, args...)
}

// Errorf writes a diagnostic line to Err.
func (s IO) Errorf(format string, args ...any) {
	fmt.Fprintf(s.Err, format, args...)
}

// Func is a tool body. Returning an error fails the run.
type Func[T any] func(ctx context.Context, inputs T, streams IO) error

// Run decodes args into T, runs fn and maps the outcome to an exit code.
func Run[T any](ctx context.Context, args []string, streams IO, fn Func[T]) int {
	var inputs T
	if err := Decode(args, &inputs); err != nil {
		streams.Errorf("❌ %v\n", err)
		return ExitFailure
	}
	if err := fn(ctx, inputs, streams); err != nil {
		streams.Errorf("❌ %v\n", err)
		return ExitFailure
	}
	return ExitOK
}

// Main runs fn against the process arguments and exits. SIGINT and SIGTERM
// cancel the context passed to fn.
func Main[T any](fn Func[T]) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, os.Args[1:], IO{Out: os.Stdout, Err: os.Stderr}, fn)
	stop()
	os.Exit(code)
}
