package domain

import (
	"strings"
	"time"
)

// BulkStatus is the lifecycle status of a bulk verification job.
type BulkStatus string

const (
	// BulkStatusNotStarted - the job has been created but processing never ran
	BulkStatusNotStarted BulkStatus = ""
	// BulkStatusInProgress - a processing loop owns the job
	BulkStatusInProgress BulkStatus = "IN-PROGRESS"
	// BulkStatusCompleted - every record of the job reached a terminal state
	BulkStatusCompleted BulkStatus = "COMPLETED"
)

// ServiceMode selects the verification backend for a bulk job.
type ServiceMode string

const (
	// ServiceModeLive - real third party lookups
	ServiceModeLive ServiceMode = "live"
	// ServiceModeMock - simulated lookups
	ServiceModeMock ServiceMode = "mock"
)

// IsLive tells whether the mode targets the real provider.
func (m ServiceMode) IsLive() bool {
	return strings.EqualFold(string(m), string(ServiceModeLive))
}

// BulkVerification is one bulk verification job grouping many records.
type BulkVerification struct {
	PK             int64
	BulkID         string
	Status         BulkStatus
	ServiceMode    ServiceMode
	WrapperFk      *int64
	FileName       *string
	CompletionDate *time.Time
	ExpiryDate     *time.Time
	CreatedDate    time.Time
	ModifiedDate   time.Time
}

// Active returns true when the job must not be initiated again.
func (b *BulkVerification) Active() bool {
	switch BulkStatus(strings.ToUpper(string(b.Status))) {
	case BulkStatusInProgress, BulkStatusCompleted:
		return true
	}
	return false
}
