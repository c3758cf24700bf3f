// Package estimate contains the point estimators: pure functions from a
// sample of measurements to one statistic. They never import the
// bootstrap, writers, cli or app packages, and never modify their input.
//
// Binned estimators take their Edges from the caller; edges come from the
// full dataset and are reused unchanged for every bootstrap replicate.
package estimate
