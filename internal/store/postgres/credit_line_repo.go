package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ShivamAgarwal-code/Talent-Cred/internal/domain/model"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/store"
	"github.com/google/uuid"
)

type CreditLineRepo struct {
	db *DB
}

func NewCreditLineRepo(db *DB) *CreditLineRepo {
	return &CreditLineRepo{db: db}
}

func (r *CreditLineRepo) InsertTx(ctx context.Context, tx *sql.Tx, cl *model.CreditLine) error {
	err := tx.QueryRowContext(ctx, `
		INSERT INTO credit_lines (borrower_id, wallet, total_limit, available_limit)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, cl.BorrowerID, cl.Wallet, cl.TotalLimit, cl.AvailableLimit).
		Scan(&cl.ID, &cl.CreatedAt, &cl.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert credit line: %w", err)
	}
	return nil
}

func (r *CreditLineRepo) FindByBorrower(ctx context.Context, borrowerID uuid.UUID) (*model.CreditLine, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	var cl model.CreditLine
	err := r.db.QueryRowContext(ctx, `
		SELECT id, borrower_id, wallet, total_limit, available_limit, created_at, updated_at
		FROM credit_lines
		WHERE borrower_id = $1
	`, borrowerID).Scan(
		&cl.ID, &cl.BorrowerID, &cl.Wallet, &cl.TotalLimit, &cl.AvailableLimit,
		&cl.CreatedAt, &cl.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find credit line: %w", err)
	}
	return &cl, nil
}

// ReserveTx takes amount out of the available limit. The WHERE clause carries
// the sufficiency check so two concurrent originations cannot both draw the
// same capacity.
func (r *CreditLineRepo) ReserveTx(ctx context.Context, tx *sql.Tx, creditLineID uuid.UUID, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("reserve amount must be positive, got %d", amount)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE credit_lines
		SET available_limit = available_limit - $2, updated_at = now()
		WHERE id = $1 AND available_limit >= $2
	`, creditLineID, amount)
	if err != nil {
		return fmt.Errorf("reserve credit: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reserve credit: %w", err)
	}
	if affected == 0 {
		return store.ErrInsufficientCredit
	}
	return nil
}

// ReleaseTx returns amount to the available limit, clamped at the total limit
// so over-release can never break the credit line invariant.
func (r *CreditLineRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, creditLineID uuid.UUID, amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("release amount must be positive, got %d", amount)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE credit_lines
		SET available_limit = LEAST(total_limit, available_limit + $2), updated_at = now()
		WHERE id = $1
	`, creditLineID, amount)
	if err != nil {
		return fmt.Errorf("release credit: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("release credit: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
