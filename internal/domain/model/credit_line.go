package model

import (
	"time"

	"github.com/google/uuid"
)

// CreditLine tracks a borrower's borrowing capacity. Exactly one exists per
// profile and it is created in the same transaction as the profile, so a
// profile is never observable without its credit line.
//
// Amounts are whole currency units. available_limit <= total_limit is a CHECK
// constraint; all balance movement happens through conditional UPDATEs so the
// invariant cannot be violated by concurrent originations or repayments.
type CreditLine struct {
	ID             uuid.UUID `db:"id"`
	BorrowerID     uuid.UUID `db:"borrower_id"`
	Wallet         string    `db:"wallet"`
	TotalLimit     int64     `db:"total_limit"`
	AvailableLimit int64     `db:"available_limit"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
