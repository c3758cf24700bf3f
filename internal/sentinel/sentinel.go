// Package sentinel holds the error values shared by the popstats packages.
//
// Callers wrap these with context (file name, statistic, parameter) using
// ewrap.Wrap and test for them with errors.Is. The app layer maps them to
// exit codes.
package sentinel

import (
	"github.com/hyp3rd/ewrap"
)

var (
	// ErrMissingInput is returned when an input file is absent or unreadable.
	ErrMissingInput = ewrap.New("missing input")

	// ErrBadInput is returned when an input file cannot be parsed.
	ErrBadInput = ewrap.New("bad input")

	// ErrEmptyPopulation is returned when a statistic has no regions, sites or pairs to work on.
	ErrEmptyPopulation = ewrap.New("empty population")

	// ErrZeroLength is returned when the total sequence length of a diversity sample is zero.
	ErrZeroLength = ewrap.New("total sequence length is zero")

	// ErrInvalidParameter is returned for replicate counts, bin counts or bin edges that cannot be used.
	ErrInvalidParameter = ewrap.New("invalid parameter")

	// ErrUnknownCommand is returned when a sub-command is not in the command table.
	ErrUnknownCommand = ewrap.New("unknown command")

	// ErrUnknownFormat is returned when no report writer is registered for a format.
	ErrUnknownFormat = ewrap.New("unknown report format")
)
