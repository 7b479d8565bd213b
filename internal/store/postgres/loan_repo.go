package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ShivamAgarwal-code/Talent-Cred/internal/domain/model"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/store"
	"github.com/google/uuid"
)

const loanColumns = `id, borrower_id, credit_line_id, application_id, wallet, amount,
	pending_balance, due_date, created_at, updated_at`

type LoanRepo struct {
	db *DB
}

func NewLoanRepo(db *DB) *LoanRepo {
	return &LoanRepo{db: db}
}

func (r *LoanRepo) InsertTx(ctx context.Context, tx *sql.Tx, l *model.Loan) error {
	err := tx.QueryRowContext(ctx, `
		INSERT INTO loans (borrower_id, credit_line_id, application_id, wallet, amount, pending_balance, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, l.BorrowerID, l.CreditLineID, l.ApplicationID, l.Wallet, l.Amount, l.PendingBalance, l.DueDate).
		Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "uq_loans_application") {
			return fmt.Errorf("application %s already originated a loan: %w", l.ApplicationID, err)
		}
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

func (r *LoanRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	var l model.Loan
	err := r.db.QueryRowContext(ctx, `
		SELECT `+loanColumns+`
		FROM loans
		WHERE id = $1
	`, id).Scan(
		&l.ID, &l.BorrowerID, &l.CreditLineID, &l.ApplicationID, &l.Wallet,
		&l.Amount, &l.PendingBalance, &l.DueDate, &l.CreatedAt, &l.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find loan: %w", err)
	}
	return &l, nil
}

func (r *LoanRepo) ListByBorrower(ctx context.Context, borrowerID uuid.UUID) ([]model.Loan, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+loanColumns+`
		FROM loans
		WHERE borrower_id = $1
		ORDER BY created_at DESC
	`, borrowerID)
	if err != nil {
		return nil, fmt.Errorf("list loans by borrower: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		var l model.Loan
		if err := rows.Scan(
			&l.ID, &l.BorrowerID, &l.CreditLineID, &l.ApplicationID, &l.Wallet,
			&l.Amount, &l.PendingBalance, &l.DueDate, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		loans = append(loans, l)
	}
	return loans, rows.Err()
}

// ApplyRepaymentTx moves the pending balance down. The sufficiency check rides
// in the WHERE clause, so overpayment is rejected without a read-then-write.
func (r *LoanRepo) ApplyRepaymentTx(ctx context.Context, tx *sql.Tx, loanID uuid.UUID, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("repayment amount must be positive, got %d", amount)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE loans
		SET pending_balance = pending_balance - $2, updated_at = now()
		WHERE id = $1 AND pending_balance >= $2
	`, loanID, amount)
	if err != nil {
		return fmt.Errorf("apply repayment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("apply repayment: %w", err)
	}
	if affected == 0 {
		return store.ErrInsufficientCredit
	}
	return nil
}
