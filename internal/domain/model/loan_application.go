package model

import (
	"time"

	"github.com/google/uuid"
)

// LoanApplication is a borrower's request to draw against their credit line.
// Scoring inputs are denormalized at submission time so the review record is
// auditable even after the profile re-syncs.
type LoanApplication struct {
	ID                   uuid.UUID         `db:"id"`
	ApplicantID          uuid.UUID         `db:"applicant_id"`
	CreditLineID         uuid.UUID         `db:"credit_line_id"`
	Wallet               string            `db:"wallet"`
	Amount               int64             `db:"amount"`
	AvailableCreditLine  int64             `db:"available_credit_line"`
	BuilderScore         int               `db:"builder_score"`
	NominationsReceived  int               `db:"nominations_received"`
	Followers            int               `db:"followers"`
	Status               ApplicationStatus `db:"status"`
	DecisionTxHash       *string           `db:"decision_tx_hash"`
	DecisionRecordedAt   *time.Time        `db:"decision_recorded_at"`
	CreatedAt            time.Time         `db:"created_at"`
	UpdatedAt            time.Time         `db:"updated_at"`
}

// ReviewItem is a loan application joined with its applicant and credit line,
// as listed on the underwriter dashboard.
type ReviewItem struct {
	Application LoanApplication
	Applicant   PassportProfile
	CreditLine  CreditLine
}
