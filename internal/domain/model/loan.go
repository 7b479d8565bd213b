package model

import (
	"time"

	"github.com/google/uuid"
)

// LoanTermDays is the fixed repayment term applied at origination.
const LoanTermDays = 30

// Loan is originated exclusively by an application entering APPROVED.
// PendingBalance starts equal to Amount and only moves down via repayments.
type Loan struct {
	ID             uuid.UUID `db:"id"`
	BorrowerID     uuid.UUID `db:"borrower_id"`
	CreditLineID   uuid.UUID `db:"credit_line_id"`
	ApplicationID  uuid.UUID `db:"application_id"`
	Wallet         string    `db:"wallet"`
	Amount         int64     `db:"amount"`
	PendingBalance int64     `db:"pending_balance"`
	DueDate        time.Time `db:"due_date"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}
