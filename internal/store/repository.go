package store

import (
	"context"
	"database/sql"

	"github.com/ShivamAgarwal-code/Talent-Cred/internal/domain/model"
	"github.com/google/uuid"
)

//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks

// TxBeginner abstracts the ability to begin a database transaction.
type TxBeginner interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// PassportProfileRepository provides access to borrower identity profiles.
type PassportProfileRepository interface {
	// InsertTx inserts a profile. The unique constraint on passport_user_id is
	// the source of truth for create-or-get; a conflict surfaces as a unique
	// violation for the caller to resolve by re-reading.
	InsertTx(ctx context.Context, tx *sql.Tx, p *model.PassportProfile) error
	FindByPassportUserID(ctx context.Context, passportUserID string) (*model.PassportProfile, error)
	FindByWallet(ctx context.Context, wallet string) (*model.PassportProfile, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.PassportProfile, error)
	// UpdateScores refreshes the mutable reputation fields after a re-sync
	// against the passport API.
	UpdateScores(ctx context.Context, p *model.PassportProfile) error
}

// CreditLineRepository provides access to credit line data.
type CreditLineRepository interface {
	InsertTx(ctx context.Context, tx *sql.Tx, cl *model.CreditLine) error
	FindByBorrower(ctx context.Context, borrowerID uuid.UUID) (*model.CreditLine, error)
	// ReserveTx decrements available_limit by amount iff enough remains,
	// returning ErrInsufficientCredit otherwise.
	ReserveTx(ctx context.Context, tx *sql.Tx, creditLineID uuid.UUID, amount int64) error
	// ReleaseTx returns amount to available_limit, capped at total_limit.
	ReleaseTx(ctx context.Context, tx *sql.Tx, creditLineID uuid.UUID, amount int64) error
}

// LoanApplicationRepository provides access to loan application data.
type LoanApplicationRepository interface {
	// Insert creates an application in status PENDING. A second open
	// application for the same applicant returns ErrDuplicatePendingApplication.
	Insert(ctx context.Context, a *model.LoanApplication) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.LoanApplication, error)
	// FindByIDForUpdateTx locks the application row for the duration of tx.
	FindByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.LoanApplication, error)
	// UpdateStatusTx moves id from -> to, recording the decision tx hash when
	// non-nil. Matching no row returns ErrStaleStatus.
	UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uuid.UUID, from, to model.ApplicationStatus, decisionTxHash *string) error
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]model.LoanApplication, error)
	// ListOnchainPending returns applications awaiting on-chain confirmation,
	// oldest first, for the receipt watcher.
	ListOnchainPending(ctx context.Context) ([]model.LoanApplication, error)
	// ListReviewItems returns every application joined with its applicant and
	// credit line for the underwriter dashboard.
	ListReviewItems(ctx context.Context) ([]model.ReviewItem, error)
}

// LoanRepository provides access to originated loans.
type LoanRepository interface {
	InsertTx(ctx context.Context, tx *sql.Tx, l *model.Loan) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Loan, error)
	ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]model.Loan, error)
	// ApplyRepaymentTx decrements pending_balance by amount iff the balance
	// covers it, returning ErrInsufficientCredit otherwise.
	ApplyRepaymentTx(ctx context.Context, tx *sql.Tx, loanID uuid.UUID, amount int64) error
}
