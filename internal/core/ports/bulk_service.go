package ports

import (
	"context"
)

// InitiateResultKind discriminates the outcome of an initiation request.
type InitiateResultKind int

const (
	// InitiateAccepted - the bulk was flipped to IN-PROGRESS and the loop launched
	InitiateAccepted InitiateResultKind = iota
	// InitiateRejected - validation or status gate rejection, nothing mutated
	InitiateRejected
	// InitiateInternalError - unexpected fault while initiating
	InitiateInternalError
)

// InitiateResult is the tagged result of an initiation request.
type InitiateResult struct {
	Kind    InitiateResultKind
	Message string
}

// Accepted builds a successful initiation result.
func Accepted(msg string) InitiateResult {
	return InitiateResult{Kind: InitiateAccepted, Message: msg}
}

// Rejected builds a validation rejection result.
func Rejected(msg string) InitiateResult {
	return InitiateResult{Kind: InitiateRejected, Message: msg}
}

// InternalError builds an internal error result.
func InternalError(msg string) InitiateResult {
	return InitiateResult{Kind: InitiateInternalError, Message: msg}
}

// BulkService owns the bulk verification processing lifecycle.
type BulkService interface {
	// Initiate validates the bulk, flips it to IN-PROGRESS and launches the
	// processing loop detached from the caller. The result is returned
	// immediately, before any record is processed.
	Initiate(ctx context.Context, bulkFk int64) InitiateResult
}
