package domain

import "time"

// LookupEntry caches previously resolved identity attributes keyed by the
// normalized identifier. Entries are shared across bulk jobs and upserted on
// every successful third party resolution.
type LookupEntry struct {
	SearchParameter string
	FirstName       string
	MiddleName      string
	Surname         string
	Gender          string
	Mobile          string
	DateOfBirth     string
	Photo           string
	CreatedDate     time.Time
	ModifiedDate    time.Time
}
