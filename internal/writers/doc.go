// Package writers turns engine results into serialized reports.
//
// Design:
//   - Writers own all presentation knowledge (text layout, JSON, JSONL, msgpack).
//   - Engine stays domain-only; pipeline stays orchestration-only.
//   - Structured formats go through pkg/api (v1) for a stable wire format.
//   - Every writer runs in its own goroutine fed by a channel and reports
//     its outcome once on the returned error channel.
package writers
