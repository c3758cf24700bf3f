// Package pipeline runs per-population statistic jobs through a Computer
// on a worker pool and hands results to a visit callback in job order.
//
// The only contract to implement is Computer (Compute).
// This keeps the pipeline swappable and testable.
package pipeline
