package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"

	"github.com/kobopay/bvn-bulk-service/internal/core/domain"
	"github.com/kobopay/bvn-bulk-service/internal/db"
)

// ErrLookupEntryNotFound is returned when no lookup entry exists for an identifier
var ErrLookupEntryNotFound = errors.New("lookup entry not found")

// LookupRepository is a postgres repository for the identity lookup table
type LookupRepository struct {
	q db.Querier
}

// NewLookup creates a new LookupRepository
func NewLookup(conn db.Storage) *LookupRepository {
	return &LookupRepository{q: conn.Pgx}
}

// Get returns the lookup entry for an identifier
func (r *LookupRepository) Get(ctx context.Context, searchParameter string) (*domain.LookupEntry, error) {
	sql := `SELECT search_parameter, COALESCE(first_name, ''), COALESCE(middle_name, ''),
	               COALESCE(surname, ''), COALESCE(gender, ''), COALESCE(mobile, ''),
	               COALESCE(date_of_birth, ''), COALESCE(photo, ''), created_date, modified_date
	        FROM bvn_lookup
	        WHERE search_parameter = $1`

	var entry domain.LookupEntry
	err := r.q.QueryRow(ctx, sql, searchParameter).Scan(
		&entry.SearchParameter,
		&entry.FirstName,
		&entry.MiddleName,
		&entry.Surname,
		&entry.Gender,
		&entry.Mobile,
		&entry.DateOfBirth,
		&entry.Photo,
		&entry.CreatedDate,
		&entry.ModifiedDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLookupEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Upsert stores a lookup entry, overwriting the attributes on conflict
func (r *LookupRepository) Upsert(ctx context.Context, entry domain.LookupEntry) error {
	sql := `INSERT INTO bvn_lookup (search_parameter, first_name, middle_name, surname,
	                                gender, mobile, date_of_birth, photo)
	        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	        ON CONFLICT (search_parameter) DO UPDATE
	        SET first_name = EXCLUDED.first_name,
	            middle_name = EXCLUDED.middle_name,
	            surname = EXCLUDED.surname,
	            gender = EXCLUDED.gender,
	            mobile = EXCLUDED.mobile,
	            date_of_birth = EXCLUDED.date_of_birth,
	            photo = EXCLUDED.photo,
	            modified_date = now()`

	_, err := r.q.Exec(ctx, sql,
		entry.SearchParameter,
		entry.FirstName,
		entry.MiddleName,
		entry.Surname,
		entry.Gender,
		entry.Mobile,
		entry.DateOfBirth,
		entry.Photo,
	)
	return err
}
