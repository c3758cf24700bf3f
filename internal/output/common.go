// Package output renders engine results in the supported report formats.
package output

// Report formats.
const (
	FormatText    = "text"
	FormatJSON    = "json"
	FormatJSONL   = "jsonl"
	FormatMsgpack = "msgpack"
)

// Extension returns the report file extension for format.
func Extension(format string) string {
	switch format {
	case FormatJSON:
		return "json"
	case FormatJSONL:
		return "jsonl"
	case FormatMsgpack:
		return "msgpack"
	}
	return "txt"
}

// RunInfo identifies the run a report belongs to.
type RunInfo struct {
	RunID      string
	Replicates int
	Seed       uint64
}
