package appcore

import (
	"context"
	"errors"

	"popstats/internal/sentinel"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2
	ExitRuntime  = 3
	ExitCanceled = 130
)

// ExitCode maps an error to the process exit code: parameter and usage
// errors are 2, cancellation 130, anything else 3.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case errors.Is(err, sentinel.ErrInvalidParameter),
		errors.Is(err, sentinel.ErrUnknownFormat),
		errors.Is(err, sentinel.ErrUnknownCommand):
		return ExitUsage
	}
	return ExitRuntime
}
