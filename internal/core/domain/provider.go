package domain

import "net/http"

// ProviderIdentity holds the identity attributes returned by the provider on a
// successful lookup.
type ProviderIdentity struct {
	FirstName   string `json:"first_name"`
	MiddleName  string `json:"middle_name"`
	LastName    string `json:"last_name"`
	Gender      string `json:"gender"`
	PhoneNumber string `json:"phone_number"`
	DOB         string `json:"dob"`
	PhotoID     string `json:"photoId"`
}

// ProviderResponse is the classified reply of a provider lookup. A nil
// ProviderResponse means the call never produced an http exchange.
type ProviderResponse struct {
	StatusCode int               `json:"-"`
	Status     string            `json:"status"`
	Message    string            `json:"message"`
	Data       *ProviderIdentity `json:"data"`
}

// Successful tells whether the reply is a 200 with a successful body status.
func (r *ProviderResponse) Successful() bool {
	return r != nil && r.StatusCode == http.StatusOK && r.Status == "successful"
}

// LookupEntryFromIdentity maps a provider identity onto a lookup cache entry.
func LookupEntryFromIdentity(searchParameter string, id ProviderIdentity) LookupEntry {
	return LookupEntry{
		SearchParameter: searchParameter,
		FirstName:       id.FirstName,
		MiddleName:      id.MiddleName,
		Surname:         id.LastName,
		Gender:          id.Gender,
		Mobile:          id.PhoneNumber,
		DateOfBirth:     id.DOB,
		Photo:           id.PhotoID,
	}
}
