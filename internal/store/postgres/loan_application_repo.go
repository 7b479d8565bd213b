package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ShivamAgarwal-code/Talent-Cred/internal/domain/model"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/store"
	"github.com/google/uuid"
)

const loanApplicationColumns = `id, applicant_id, credit_line_id, wallet, amount, available_credit_line,
	builder_score, nominations_received, followers, status, decision_tx_hash,
	decision_recorded_at, created_at, updated_at`

type LoanApplicationRepo struct {
	db *DB
}

func NewLoanApplicationRepo(db *DB) *LoanApplicationRepo {
	return &LoanApplicationRepo{db: db}
}

func (r *LoanApplicationRepo) Insert(ctx context.Context, a *model.LoanApplication) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	if a.Status == "" {
		a.Status = model.StatusPending
	}

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO loan_applications (
			applicant_id, credit_line_id, wallet, amount, available_credit_line,
			builder_score, nominations_received, followers, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`,
		a.ApplicantID, a.CreditLineID, a.Wallet, a.Amount, a.AvailableCreditLine,
		a.BuilderScore, a.NominationsReceived, a.Followers, a.Status,
	).Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "uq_loan_applications_open_per_applicant") {
			return store.ErrDuplicatePendingApplication
		}
		return fmt.Errorf("insert loan application: %w", err)
	}
	return nil
}

func (r *LoanApplicationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.LoanApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	return scanLoanApplication(r.db.QueryRowContext(ctx, `
		SELECT `+loanApplicationColumns+`
		FROM loan_applications
		WHERE id = $1
	`, id))
}

// FindByIDForUpdateTx locks the application row until tx commits, serializing
// a decision against a concurrent confirmation of the same application.
func (r *LoanApplicationRepo) FindByIDForUpdateTx(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.LoanApplication, error) {
	return scanLoanApplication(tx.QueryRowContext(ctx, `
		SELECT `+loanApplicationColumns+`
		FROM loan_applications
		WHERE id = $1
		FOR UPDATE
	`, id))
}

func (r *LoanApplicationRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uuid.UUID, from, to model.ApplicationStatus, decisionTxHash *string) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE loan_applications
		SET status = $3,
			decision_tx_hash = COALESCE($4, decision_tx_hash),
			decision_recorded_at = CASE WHEN $4 IS NOT NULL THEN now() ELSE decision_recorded_at END,
			updated_at = now()
		WHERE id = $1 AND status = $2
	`, id, from, to, decisionTxHash)
	if err != nil {
		return fmt.Errorf("update loan application status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update loan application status: %w", err)
	}
	if affected == 0 {
		return store.ErrStaleStatus
	}
	return nil
}

func (r *LoanApplicationRepo) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]model.LoanApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+loanApplicationColumns+`
		FROM loan_applications
		WHERE applicant_id = $1
		ORDER BY created_at DESC
	`, applicantID)
	if err != nil {
		return nil, fmt.Errorf("list applications by applicant: %w", err)
	}
	defer rows.Close()

	return collectLoanApplications(rows)
}

func (r *LoanApplicationRepo) ListOnchainPending(ctx context.Context) ([]model.LoanApplication, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+loanApplicationColumns+`
		FROM loan_applications
		WHERE status = $1
		ORDER BY decision_recorded_at
	`, model.StatusOnchainPending)
	if err != nil {
		return nil, fmt.Errorf("list onchain pending applications: %w", err)
	}
	defer rows.Close()

	return collectLoanApplications(rows)
}

func (r *LoanApplicationRepo) ListReviewItems(ctx context.Context) ([]model.ReviewItem, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			a.id, a.applicant_id, a.credit_line_id, a.wallet, a.amount, a.available_credit_line,
			a.builder_score, a.nominations_received, a.followers, a.status, a.decision_tx_hash,
			a.decision_recorded_at, a.created_at, a.updated_at,
			p.id, p.passport_user_id, p.wallet, p.main_wallet, p.name, p.profile_picture_url,
			p.verified, p.human_check, p.score, p.activity_score, p.identity_score, p.skills_score,
			p.nominations_received, p.socials_linked, p.follower_count, p.created_at, p.updated_at,
			c.id, c.borrower_id, c.wallet, c.total_limit, c.available_limit, c.created_at, c.updated_at
		FROM loan_applications a
		JOIN passport_profiles p ON p.id = a.applicant_id
		JOIN credit_lines c ON c.id = a.credit_line_id
		ORDER BY a.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list review items: %w", err)
	}
	defer rows.Close()

	var items []model.ReviewItem
	for rows.Next() {
		var it model.ReviewItem
		a := &it.Application
		p := &it.Applicant
		c := &it.CreditLine
		if err := rows.Scan(
			&a.ID, &a.ApplicantID, &a.CreditLineID, &a.Wallet, &a.Amount, &a.AvailableCreditLine,
			&a.BuilderScore, &a.NominationsReceived, &a.Followers, &a.Status, &a.DecisionTxHash,
			&a.DecisionRecordedAt, &a.CreatedAt, &a.UpdatedAt,
			&p.ID, &p.PassportUserID, &p.Wallet, &p.MainWallet, &p.Name, &p.ProfilePictureURL,
			&p.Verified, &p.HumanCheck, &p.Score, &p.ActivityScore, &p.IdentityScore, &p.SkillsScore,
			&p.NominationsReceived, &p.SocialsLinked, &p.FollowerCount, &p.CreatedAt, &p.UpdatedAt,
			&c.ID, &c.BorrowerID, &c.Wallet, &c.TotalLimit, &c.AvailableLimit, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanLoanApplication(row *sql.Row) (*model.LoanApplication, error) {
	var a model.LoanApplication
	err := row.Scan(
		&a.ID, &a.ApplicantID, &a.CreditLineID, &a.Wallet, &a.Amount, &a.AvailableCreditLine,
		&a.BuilderScore, &a.NominationsReceived, &a.Followers, &a.Status, &a.DecisionTxHash,
		&a.DecisionRecordedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan loan application: %w", err)
	}
	return &a, nil
}

func collectLoanApplications(rows *sql.Rows) ([]model.LoanApplication, error) {
	var apps []model.LoanApplication
	for rows.Next() {
		var a model.LoanApplication
		if err := rows.Scan(
			&a.ID, &a.ApplicantID, &a.CreditLineID, &a.Wallet, &a.Amount, &a.AvailableCreditLine,
			&a.BuilderScore, &a.NominationsReceived, &a.Followers, &a.Status, &a.DecisionTxHash,
			&a.DecisionRecordedAt, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan loan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}
