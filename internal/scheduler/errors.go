package scheduler

import "errors"

var (
	// ErrUnknownMatch surfaces as a 404-class error at the transport layer.
	ErrUnknownMatch = errors.New("unknown match")
	// ErrIllegalTransition covers e.g. starting a non-WAITING match.
	ErrIllegalTransition = errors.New("illegal match state transition")
	// ErrRateLimitExceeded rejects an oversized order submission wholesale.
	ErrRateLimitExceeded = errors.New("too many orders in one submission")
)
