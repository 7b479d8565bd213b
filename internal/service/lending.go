// Package service implements the loan-application lifecycle and credit-line
// bookkeeping on top of the store repositories.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ShivamAgarwal-code/Talent-Cred/internal/allowance"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/domain/model"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/metrics"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/store"
	"github.com/google/uuid"
)

// ErrInvalidTransition is returned when a decision or confirmation targets an
// application whose status does not permit it.
var ErrInvalidTransition = errors.New("invalid application status transition")

// EventPublisher receives lifecycle events after the corresponding database
// transaction has committed. Publishing is best effort; failures are logged,
// never surfaced to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Event is a lending lifecycle notification.
type Event struct {
	Type          string    `json:"type"`
	ApplicationID uuid.UUID `json:"application_id,omitempty"`
	LoanID        uuid.UUID `json:"loan_id,omitempty"`
	BorrowerID    uuid.UUID `json:"borrower_id,omitempty"`
	Wallet        string    `json:"wallet,omitempty"`
	Amount        int64     `json:"amount,omitempty"`
	TxHash        string    `json:"tx_hash,omitempty"`
}

const (
	EventProfileCreated       = "profile.created"
	EventApplicationSubmitted = "application.submitted"
	EventApplicationRejected  = "application.rejected"
	EventDecisionRecorded     = "application.decision_recorded"
	EventDecisionVoided       = "application.decision_voided"
	EventLoanOriginated       = "loan.originated"
	EventLoanRepaid           = "loan.repayment_recorded"
)

// Lending wires the repositories into the application lifecycle. All
// cross-entity effects (profile+credit line, approval+origination) run inside
// a single database transaction.
type Lending struct {
	db           store.TxBeginner
	profiles     store.PassportProfileRepository
	creditLines  store.CreditLineRepository
	applications store.LoanApplicationRepository
	loans        store.LoanRepository
	allowances   *allowance.Table
	events       EventPublisher
	logger       *slog.Logger

	// twoPhase gates approvals behind on-chain confirmation. When false,
	// approval transitions PENDING -> APPROVED directly.
	twoPhase bool

	now func() time.Time
}

// Option configures optional behavior on the lending service.
type Option func(*Lending)

// WithEventPublisher attaches a lifecycle event publisher.
func WithEventPublisher(p EventPublisher) Option {
	return func(l *Lending) { l.events = p }
}

// WithTwoPhaseApproval makes approvals wait for on-chain confirmation
// (PENDING -> ONCHAIN_PENDING -> APPROVED) instead of approving directly.
func WithTwoPhaseApproval(enabled bool) Option {
	return func(l *Lending) { l.twoPhase = enabled }
}

// WithClock overrides the time source. Tests use this to pin due dates.
func WithClock(now func() time.Time) Option {
	return func(l *Lending) { l.now = now }
}

func New(
	db store.TxBeginner,
	profiles store.PassportProfileRepository,
	creditLines store.CreditLineRepository,
	applications store.LoanApplicationRepository,
	loans store.LoanRepository,
	allowances *allowance.Table,
	logger *slog.Logger,
	opts ...Option,
) *Lending {
	l := &Lending{
		db:           db,
		profiles:     profiles,
		creditLines:  creditLines,
		applications: applications,
		loans:        loans,
		allowances:   allowances,
		logger:       logger.With("component", "lending"),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allowance returns the authorized credit amount for a reputation score.
func (l *Lending) Allowance(score int) int64 {
	return l.allowances.Allowance(score)
}

// ProfileInput carries the reputation snapshot used to create a profile.
// RequestedLimit, when nil, is derived from Score via the allowance table.
type ProfileInput struct {
	PassportUserID      string
	Wallet              string
	MainWallet          string
	Name                string
	ProfilePictureURL   *string
	Verified            bool
	HumanCheck          bool
	Score               int
	ActivityScore       int
	IdentityScore       int
	SkillsScore         int
	NominationsReceived int
	SocialsLinked       int
	FollowerCount       int
	RequestedLimit      *int64
}

// CreateOrGetProfile returns the existing profile for input.PassportUserID, or
// creates the profile together with its credit line in one transaction.
// Existing profiles are returned unchanged; the operation is idempotent.
func (l *Lending) CreateOrGetProfile(ctx context.Context, input ProfileInput) (*model.PassportProfile, *model.CreditLine, bool, error) {
	if input.PassportUserID == "" {
		return nil, nil, false, fmt.Errorf("passport user id is required")
	}
	if input.Wallet == "" {
		return nil, nil, false, fmt.Errorf("wallet is required")
	}

	existing, err := l.profiles.FindByPassportUserID(ctx, input.PassportUserID)
	if err == nil {
		cl, clErr := l.creditLines.FindByBorrower(ctx, existing.ID)
		if clErr != nil {
			return nil, nil, false, fmt.Errorf("load credit line for existing profile: %w", clErr)
		}
		return existing, cl, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, nil, false, err
	}

	limit := l.allowances.Allowance(input.Score)
	if input.RequestedLimit != nil {
		limit = *input.RequestedLimit
	}

	profile := &model.PassportProfile{
		PassportUserID:      input.PassportUserID,
		Wallet:              input.Wallet,
		MainWallet:          input.MainWallet,
		Name:                input.Name,
		ProfilePictureURL:   input.ProfilePictureURL,
		Verified:            input.Verified,
		HumanCheck:          input.HumanCheck,
		Score:               input.Score,
		ActivityScore:       input.ActivityScore,
		IdentityScore:       input.IdentityScore,
		SkillsScore:         input.SkillsScore,
		NominationsReceived: input.NominationsReceived,
		SocialsLinked:       input.SocialsLinked,
		FollowerCount:       input.FollowerCount,
	}
	creditLine := &model.CreditLine{
		Wallet:         input.Wallet,
		TotalLimit:     limit,
		AvailableLimit: limit,
	}

	err = l.withTx(ctx, func(tx *sql.Tx) error {
		if err := l.profiles.InsertTx(ctx, tx, profile); err != nil {
			return err
		}
		creditLine.BorrowerID = profile.ID
		return l.creditLines.InsertTx(ctx, tx, creditLine)
	})
	if err != nil {
		// A concurrent CreateOrGet may have won the insert race. The unique
		// constraint makes the loser's transaction fail; fall back to a read.
		if raced, raceErr := l.profiles.FindByPassportUserID(ctx, input.PassportUserID); raceErr == nil {
			cl, clErr := l.creditLines.FindByBorrower(ctx, raced.ID)
			if clErr != nil {
				return nil, nil, false, fmt.Errorf("load credit line after insert race: %w", clErr)
			}
			return raced, cl, false, nil
		}
		return nil, nil, false, fmt.Errorf("create profile with credit line: %w", err)
	}

	metrics.ProfilesCreated.Inc()
	l.publish(ctx, Event{
		Type:       EventProfileCreated,
		BorrowerID: profile.ID,
		Wallet:     profile.Wallet,
		Amount:     limit,
	})
	l.logger.Info("passport profile created",
		"borrower_id", profile.ID,
		"wallet", profile.Wallet,
		"score", profile.Score,
		"total_limit", limit,
	)
	return profile, creditLine, true, nil
}

// GetBorrowerByWallet loads a profile with its credit line, loans, and
// applications.
func (l *Lending) GetBorrowerByWallet(ctx context.Context, wallet string) (*model.Borrower, error) {
	profile, err := l.profiles.FindByWallet(ctx, wallet)
	if err != nil {
		return nil, err
	}

	b := &model.Borrower{Profile: *profile}

	cl, err := l.creditLines.FindByBorrower(ctx, profile.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}
	b.CreditLine = cl

	if b.Loans, err = l.loans.ListByBorrower(ctx, profile.ID); err != nil {
		return nil, err
	}
	if b.Applications, err = l.applications.ListByApplicant(ctx, profile.ID); err != nil {
		return nil, err
	}
	return b, nil
}

// SyncProfileScores refreshes the mutable reputation fields of an existing
// profile from a new passport snapshot.
func (l *Lending) SyncProfileScores(ctx context.Context, id uuid.UUID, input ProfileInput) (*model.PassportProfile, error) {
	profile, err := l.profiles.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile.Verified = input.Verified
	profile.HumanCheck = input.HumanCheck
	profile.Score = input.Score
	profile.ActivityScore = input.ActivityScore
	profile.IdentityScore = input.IdentityScore
	profile.SkillsScore = input.SkillsScore
	profile.NominationsReceived = input.NominationsReceived
	profile.SocialsLinked = input.SocialsLinked
	profile.FollowerCount = input.FollowerCount

	if err := l.profiles.UpdateScores(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// SubmitInput carries a borrower's draw request.
type SubmitInput struct {
	ApplicantID uuid.UUID
	Amount      int64
}

// SubmitApplication creates a PENDING application carrying a snapshot of the
// applicant's scoring inputs. The one-open-application invariant is enforced
// by the store, not by a prior read.
func (l *Lending) SubmitApplication(ctx context.Context, input SubmitInput) (*model.LoanApplication, error) {
	if input.Amount <= 0 {
		return nil, fmt.Errorf("application amount must be positive, got %d", input.Amount)
	}

	profile, err := l.profiles.FindByID(ctx, input.ApplicantID)
	if err != nil {
		return nil, err
	}
	creditLine, err := l.creditLines.FindByBorrower(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	if input.Amount > creditLine.AvailableLimit {
		return nil, fmt.Errorf("requested %d exceeds available limit %d: %w",
			input.Amount, creditLine.AvailableLimit, store.ErrInsufficientCredit)
	}

	app := &model.LoanApplication{
		ApplicantID:         profile.ID,
		CreditLineID:        creditLine.ID,
		Wallet:              profile.Wallet,
		Amount:              input.Amount,
		AvailableCreditLine: creditLine.AvailableLimit,
		BuilderScore:        profile.Score,
		NominationsReceived: profile.NominationsReceived,
		Followers:           profile.FollowerCount,
		Status:              model.StatusPending,
	}
	if err := l.applications.Insert(ctx, app); err != nil {
		if errors.Is(err, store.ErrDuplicatePendingApplication) {
			metrics.DuplicateSubmissions.Inc()
		}
		return nil, err
	}

	metrics.ApplicationsSubmitted.Inc()
	l.publish(ctx, Event{
		Type:          EventApplicationSubmitted,
		ApplicationID: app.ID,
		BorrowerID:    app.ApplicantID,
		Wallet:        app.Wallet,
		Amount:        app.Amount,
	})
	l.logger.Info("loan application submitted",
		"application_id", app.ID,
		"applicant_id", app.ApplicantID,
		"amount", app.Amount,
	)
	return app, nil
}

// GetApplication returns a single application.
func (l *Lending) GetApplication(ctx context.Context, id uuid.UUID) (*model.LoanApplication, error) {
	return l.applications.FindByID(ctx, id)
}

// ListReviewQueue returns every application joined with applicant and credit
// line data for the underwriter dashboard.
func (l *Lending) ListReviewQueue(ctx context.Context) ([]model.ReviewItem, error) {
	return l.applications.ListReviewItems(ctx)
}

// Decision is an underwriter's verdict on a pending application.
type Decision struct {
	Approve bool
	// TxHash references the on-chain disbursement transaction. Required for
	// approvals when two-phase mode is on.
	TxHash string
}

// DecisionResult reports the post-decision application and, when origination
// happened synchronously, the loan it produced.
type DecisionResult struct {
	Application *model.LoanApplication
	Loan        *model.Loan
}

// Decide applies an underwriter decision to a PENDING application. Rejections
// are terminal immediately. Approvals either originate the loan now (direct
// mode) or park the application in ONCHAIN_PENDING until the receipt watcher
// confirms the disbursement transaction.
func (l *Lending) Decide(ctx context.Context, id uuid.UUID, d Decision) (*DecisionResult, error) {
	if d.Approve && l.twoPhase && d.TxHash == "" {
		return nil, fmt.Errorf("approval requires a transaction hash")
	}

	var result DecisionResult
	err := l.withTx(ctx, func(tx *sql.Tx) error {
		app, err := l.applications.FindByIDForUpdateTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if app.Status != model.StatusPending {
			return fmt.Errorf("application %s is %s: %w", id, app.Status, ErrInvalidTransition)
		}

		switch {
		case !d.Approve:
			if err := l.applications.UpdateStatusTx(ctx, tx, id, model.StatusPending, model.StatusRejected, txHashPtr(d.TxHash)); err != nil {
				return err
			}
			app.Status = model.StatusRejected

		case l.twoPhase:
			if err := l.applications.UpdateStatusTx(ctx, tx, id, model.StatusPending, model.StatusOnchainPending, txHashPtr(d.TxHash)); err != nil {
				return err
			}
			app.Status = model.StatusOnchainPending

		default:
			if err := l.applications.UpdateStatusTx(ctx, tx, id, model.StatusPending, model.StatusApproved, txHashPtr(d.TxHash)); err != nil {
				return err
			}
			app.Status = model.StatusApproved
			loan, err := l.originateTx(ctx, tx, app)
			if err != nil {
				return err
			}
			result.Loan = loan
		}

		result.Application = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.recordDecisionOutcome(ctx, &result, d)
	return &result, nil
}

// ConfirmDecision finalizes an ONCHAIN_PENDING application once its
// disbursement transaction settled. A confirmed transaction approves the
// application and originates the loan; a reverted one voids the decision back
// to PENDING so the underwriter can retry.
func (l *Lending) ConfirmDecision(ctx context.Context, id uuid.UUID, confirmed bool) (*DecisionResult, error) {
	var result DecisionResult
	err := l.withTx(ctx, func(tx *sql.Tx) error {
		app, err := l.applications.FindByIDForUpdateTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if app.Status != model.StatusOnchainPending {
			return fmt.Errorf("application %s is %s: %w", id, app.Status, ErrInvalidTransition)
		}

		if !confirmed {
			if err := l.applications.UpdateStatusTx(ctx, tx, id, model.StatusOnchainPending, model.StatusPending, nil); err != nil {
				return err
			}
			app.Status = model.StatusPending
			result.Application = app
			return nil
		}

		if err := l.applications.UpdateStatusTx(ctx, tx, id, model.StatusOnchainPending, model.StatusApproved, nil); err != nil {
			return err
		}
		app.Status = model.StatusApproved
		loan, err := l.originateTx(ctx, tx, app)
		if err != nil {
			return err
		}
		result.Application = app
		result.Loan = loan
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Loan != nil {
		l.recordOrigination(ctx, &result)
	} else {
		metrics.DecisionsVoided.Inc()
		l.publish(ctx, Event{
			Type:          EventDecisionVoided,
			ApplicationID: result.Application.ID,
			BorrowerID:    result.Application.ApplicantID,
		})
		l.logger.Warn("approval transaction reverted, decision voided",
			"application_id", result.Application.ID,
		)
	}
	return &result, nil
}

// Repay records a repayment against a loan, restoring the same amount to the
// borrower's available credit.
func (l *Lending) Repay(ctx context.Context, loanID uuid.UUID, amount int64) (*model.Loan, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("repayment amount must be positive, got %d", amount)
	}

	loan, err := l.loans.FindByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	err = l.withTx(ctx, func(tx *sql.Tx) error {
		if err := l.loans.ApplyRepaymentTx(ctx, tx, loanID, amount); err != nil {
			return err
		}
		return l.creditLines.ReleaseTx(ctx, tx, loan.CreditLineID, amount)
	})
	if err != nil {
		return nil, err
	}

	loan.PendingBalance -= amount
	metrics.RepaymentsRecorded.Inc()
	l.publish(ctx, Event{
		Type:       EventLoanRepaid,
		LoanID:     loan.ID,
		BorrowerID: loan.BorrowerID,
		Amount:     amount,
	})
	l.logger.Info("loan repayment recorded",
		"loan_id", loan.ID,
		"amount", amount,
		"pending_balance", loan.PendingBalance,
	)
	return loan, nil
}

// originateTx creates the loan for an application that just entered APPROVED
// and reserves the principal against the credit line. Runs inside the same
// transaction as the status update so approval and origination are atomic.
func (l *Lending) originateTx(ctx context.Context, tx *sql.Tx, app *model.LoanApplication) (*model.Loan, error) {
	if err := l.creditLines.ReserveTx(ctx, tx, app.CreditLineID, app.Amount); err != nil {
		return nil, err
	}

	loan := &model.Loan{
		BorrowerID:     app.ApplicantID,
		CreditLineID:   app.CreditLineID,
		ApplicationID:  app.ID,
		Wallet:         app.Wallet,
		Amount:         app.Amount,
		PendingBalance: app.Amount,
		DueDate:        l.now().AddDate(0, 0, model.LoanTermDays),
	}
	if err := l.loans.InsertTx(ctx, tx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

func (l *Lending) recordDecisionOutcome(ctx context.Context, result *DecisionResult, d Decision) {
	app := result.Application
	switch app.Status {
	case model.StatusRejected:
		metrics.ApplicationsRejected.Inc()
		l.publish(ctx, Event{
			Type:          EventApplicationRejected,
			ApplicationID: app.ID,
			BorrowerID:    app.ApplicantID,
		})
		l.logger.Info("loan application rejected", "application_id", app.ID)
	case model.StatusOnchainPending:
		metrics.DecisionsRecorded.Inc()
		l.publish(ctx, Event{
			Type:          EventDecisionRecorded,
			ApplicationID: app.ID,
			BorrowerID:    app.ApplicantID,
			TxHash:        d.TxHash,
		})
		l.logger.Info("approval recorded, awaiting on-chain confirmation",
			"application_id", app.ID,
			"tx_hash", d.TxHash,
		)
	case model.StatusApproved:
		l.recordOrigination(ctx, result)
	}
}

func (l *Lending) recordOrigination(ctx context.Context, result *DecisionResult) {
	app := result.Application
	loan := result.Loan
	metrics.ApplicationsApproved.Inc()
	metrics.LoansOriginated.Inc()
	metrics.LoanPrincipalTotal.Add(float64(loan.Amount))
	l.publish(ctx, Event{
		Type:          EventLoanOriginated,
		ApplicationID: app.ID,
		LoanID:        loan.ID,
		BorrowerID:    loan.BorrowerID,
		Wallet:        loan.Wallet,
		Amount:        loan.Amount,
	})
	l.logger.Info("loan originated",
		"application_id", app.ID,
		"loan_id", loan.ID,
		"amount", loan.Amount,
		"due_date", loan.DueDate,
	)
}

func (l *Lending) publish(ctx context.Context, ev Event) {
	if l.events == nil {
		return
	}
	if err := l.events.Publish(ctx, ev); err != nil {
		l.logger.Warn("lifecycle event publish failed", "type", ev.Type, "error", err)
	}
}

func (l *Lending) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			l.logger.Warn("tx rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func txHashPtr(h string) *string {
	if h == "" {
		return nil
	}
	return &h
}
