package domain

import "time"

// JobStatus drives the claim and retry logic of the processing loop.
type JobStatus string

const (
	// JobStatusPending - the record has not been claimed yet. New rows may also
	// carry a NULL job_status, which the store treats as pending.
	JobStatusPending JobStatus = "PENDING"
	// JobStatusInProgress - the record is claimed by a loop iteration
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	// JobStatusCompleted - terminal. A completed record is never reclaimed.
	JobStatusCompleted JobStatus = "COMPLETED"
)

// VerificationStatus is the verification outcome of a record.
type VerificationStatus string

const (
	// VerificationStatusVerified - the identifier resolved to an identity
	VerificationStatusVerified VerificationStatus = "VERIFIED"
	// VerificationStatusNotVerified - the provider answered but found no match
	VerificationStatusNotVerified VerificationStatus = "NOT_VERIFIED"
	// VerificationStatusFailed - the resolution attempt itself broke down
	VerificationStatusFailed VerificationStatus = "FAILED"
)

// TransactionStatus tells whether the resolution attempt succeeded.
type TransactionStatus string

const (
	// TransactionStatusSuccessful transaction ok
	TransactionStatusSuccessful TransactionStatus = "SUCCESSFUL"
	// TransactionStatusFailed transaction broken
	TransactionStatusFailed TransactionStatus = "FAILED"
)

// RetrievalMode is the provenance of a resolved record.
type RetrievalMode string

const (
	// RetrievalModeLookup - resolved from the persistent lookup table
	RetrievalModeLookup RetrievalMode = "SEARCH_FROM_DB"
	// RetrievalModeThirdParty - resolved through the provider
	RetrievalModeThirdParty RetrievalMode = "THIRD_PARTY"
)

// Record is one identifier to be verified within a bulk job.
type Record struct {
	PK                int64
	BulkFk            int64
	SearchParameter   string
	JobStatus         JobStatus
	Status            VerificationStatus
	TransactionStatus TransactionStatus
	RetrievalMode     RetrievalMode
	FailureReason     *string
	CreatedDate       time.Time
	ModifiedDate      time.Time
}

// Outcome is the terminal state a resolution writes on a record. Every outcome
// carries JobStatusCompleted: a resolved record is never left retryable.
type Outcome struct {
	JobStatus         JobStatus
	TransactionStatus TransactionStatus
	Status            VerificationStatus
	RetrievalMode     RetrievalMode
	FailureReason     *string
}

// OutcomeLookupHit is the outcome for records answered from the lookup table.
func OutcomeLookupHit() Outcome {
	return Outcome{
		JobStatus:         JobStatusCompleted,
		TransactionStatus: TransactionStatusSuccessful,
		Status:            VerificationStatusVerified,
		RetrievalMode:     RetrievalModeLookup,
	}
}

// OutcomeVerified is the outcome for a successful provider match.
func OutcomeVerified() Outcome {
	return Outcome{
		JobStatus:         JobStatusCompleted,
		TransactionStatus: TransactionStatusSuccessful,
		Status:            VerificationStatusVerified,
		RetrievalMode:     RetrievalModeThirdParty,
	}
}

// OutcomeNotVerified is the outcome for a provider answer without a match, and
// also for transport errors, which are treated as definitive non matches.
func OutcomeNotVerified(reason string) Outcome {
	return Outcome{
		JobStatus:         JobStatusCompleted,
		TransactionStatus: TransactionStatusSuccessful,
		Status:            VerificationStatusNotVerified,
		RetrievalMode:     RetrievalModeThirdParty,
		FailureReason:     &reason,
	}
}

// OutcomeFailed is the outcome for provider server errors and nil responses.
func OutcomeFailed() Outcome {
	reason := string(VerificationStatusFailed)
	return Outcome{
		JobStatus:         JobStatusCompleted,
		TransactionStatus: TransactionStatusFailed,
		Status:            VerificationStatusFailed,
		RetrievalMode:     RetrievalModeThirdParty,
		FailureReason:     &reason,
	}
}
