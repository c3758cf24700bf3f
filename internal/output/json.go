package output

import (
	"io"

	"github.com/goccy/go-json"
	"github.com/shamaton/msgpack/v2"

	"popstats/internal/engine"
)

// WriteJSON writes one indented JSON report document.
func WriteJSON(w io.Writer, info RunInfo, list []engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToAPIReport(info, list))
}

// WriteMsgpack writes the report document as MessagePack.
func WriteMsgpack(w io.Writer, info RunInfo, list []engine.Result) error {
	return msgpack.MarshalWrite(w, ToAPIReport(info, list))
}
