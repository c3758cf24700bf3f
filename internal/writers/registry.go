package writers

import (
	"errors"
	"io"
	"slices"
	"syscall"

	"github.com/hyp3rd/ewrap"

	"popstats/internal/engine"
	"popstats/internal/output"
	"popstats/internal/sentinel"
)

// StartFunc starts a writer goroutine on out.
type StartFunc func(out io.Writer, info output.RunInfo, bufSize int) (chan<- engine.Result, <-chan error)

// Reports maps a format name to its writer. Register in init() blocks.
var Reports = map[string]StartFunc{}

// Register adds or replaces the writer for format.
func Register(format string, fn StartFunc) { Reports[format] = fn }

// Formats returns the registered format names, sorted.
func Formats() []string {
	out := make([]string, 0, len(Reports))
	for f := range Reports {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

// Lookup returns the writer for format.
func Lookup(format string) (StartFunc, error) {
	fn, ok := Reports[format]
	if !ok {
		return nil, ewrap.Wrapf(sentinel.ErrUnknownFormat, "%q (no writer registered)", format)
	}
	return fn, nil
}

// Start dispatches to the writer registered for format. An unknown format
// is reported on the error channel after the input is drained.
func Start(format string, out io.Writer, info output.RunInfo, bufSize int) (chan<- engine.Result, <-chan error) {
	fn, err := Lookup(format)
	if err != nil {
		return failing(err, bufSize)
	}
	return fn(out, info, bufSize)
}

func failing(err error, bufSize int) (chan<- engine.Result, <-chan error) {
	in := make(chan engine.Result, max(bufSize, 1))
	done := make(chan error, 1)
	go func() {
		for range in {
		}
		done <- err
	}()
	return in, done
}

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Downstream consumers like `head` close early; that is not a failure.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

func settle(err error) error {
	if IsBrokenPipe(err) {
		return nil
	}
	return err
}
