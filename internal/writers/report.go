package writers

import (
	"io"

	"popstats/internal/engine"
	"popstats/internal/jsonlutil"
	"popstats/internal/output"
	"popstats/pkg/api"
)

func init() {
	Register(output.FormatText, StartTextWriter)
	Register(output.FormatJSON, batch(output.WriteJSON))
	Register(output.FormatMsgpack, batch(output.WriteMsgpack))
	Register(output.FormatJSONL, StartJSONLWriter)
}

func channels(bufSize int) (chan engine.Result, chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	return make(chan engine.Result, bufSize), make(chan error, 1)
}

// StartTextWriter streams the line-oriented report.
func StartTextWriter(out io.Writer, _ output.RunInfo, bufSize int) (chan<- engine.Result, <-chan error) {
	in, done := channels(bufSize)
	go func() {
		done <- settle(output.StreamText(out, in))
	}()
	return in, done
}

// batch adapts a whole-document encoder: results are collected in arrival
// order and written once the input closes.
func batch(write func(io.Writer, output.RunInfo, []engine.Result) error) StartFunc {
	return func(out io.Writer, info output.RunInfo, bufSize int) (chan<- engine.Result, <-chan error) {
		in, done := channels(bufSize)
		go func() {
			var buf []engine.Result
			for r := range in {
				buf = append(buf, r)
			}
			done <- settle(write(out, info, buf))
		}()
		return in, done
	}
}

// StartJSONLWriter streams each result as one JSON line (v1) tagged with
// the run id.
func StartJSONLWriter(out io.Writer, info output.RunInfo, bufSize int) (chan<- engine.Result, <-chan error) {
	return jsonlutil.Start(out, bufSize,
		func(r engine.Result) api.RecordV1 {
			rec := output.ToAPIRecord(r)
			rec.RunID = info.RunID
			return rec
		},
		IsBrokenPipe,
	)
}
