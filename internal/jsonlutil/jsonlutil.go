// Package jsonlutil streams values as JSON Lines from a writer goroutine.
package jsonlutil

import (
	"bufio"
	"io"

	"github.com/goccy/go-json"
)

// Start runs a goroutine that writes wire(v) as one JSON line for every
// value received on the returned channel. The error channel yields exactly
// once, after the input is closed. isBroken recognizes a closed downstream
// pipe, which ends the stream without an error.
//
// After a failure the rest of the input is drained so senders never block.
func Start[T, W any](out io.Writer, bufSize int, wire func(T) W, isBroken func(error) bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bufio.NewWriterSize(out, 64<<10)
		enc := json.NewEncoder(bw)
		enc.SetEscapeHTML(false)

		var err error
		for v := range in {
			if err = enc.Encode(wire(v)); err != nil {
				break
			}
		}
		if err == nil {
			err = bw.Flush()
		}
		for range in {
		}
		if err != nil && isBroken(err) {
			err = nil
		}
		done <- err
	}()

	return in, done
}
