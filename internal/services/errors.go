package services

import "errors"

// Sentinel errors shared by the station services. Callers branch on these
// with errors.Is; anything else is a store failure and aborts the session.
var (
	// ErrUnknownUser means the presented card token is not registered.
	ErrUnknownUser = errors.New("unknown card token")

	// ErrNoOpenRental means a close or charge was requested for a user in
	// the Idle state.
	ErrNoOpenRental = errors.New("no open rental for user")

	// ErrRaceLost means a commit-time precondition re-check found that
	// another agent mutated state since the session read it. The commit is
	// aborted with no durable effect; the session may be retried.
	ErrRaceLost = errors.New("rental precondition changed concurrently")

	// ErrBikeUnavailable means the chosen bike acquired an open rental (or
	// disappeared) between listing and commit.
	ErrBikeUnavailable = errors.New("bike is not available")

	// ErrInvalidSelection means the chosen bike id was not in the offered
	// available set.
	ErrInvalidSelection = errors.New("invalid bike selection")

	// ErrNotOverdue means an extended-hold charge was requested before the
	// rental exceeded its paid-for period.
	ErrNotOverdue = errors.New("rental has not exceeded its period")
)
