package model

import "time"

// Metadata holds the audit columns every table carries.
type Metadata struct {
	CreatedAt  time.Time `db:"created_at"`
	ModifiedAt time.Time `db:"modified_at"`
	CreatedBy  string    `db:"created_by"`
	ModifiedBy string    `db:"modified_by"`
}

// NewMetadata stamps both audit pairs with the same time and user.
func NewMetadata(now time.Time, user string) Metadata {
	return Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  user,
		ModifiedBy: user,
	}
}
