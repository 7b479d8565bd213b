package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ShivamAgarwal-code/Talent-Cred/internal/domain/model"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/passport"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/service"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock lending service ---

type mockLendingService struct {
	createOrGetProfileFunc  func(ctx context.Context, input service.ProfileInput) (*model.PassportProfile, *model.CreditLine, bool, error)
	getBorrowerByWalletFunc func(ctx context.Context, wallet string) (*model.Borrower, error)
	submitApplicationFunc   func(ctx context.Context, input service.SubmitInput) (*model.LoanApplication, error)
	getApplicationFunc      func(ctx context.Context, id uuid.UUID) (*model.LoanApplication, error)
	listReviewQueueFunc     func(ctx context.Context) ([]model.ReviewItem, error)
	decideFunc              func(ctx context.Context, id uuid.UUID, d service.Decision) (*service.DecisionResult, error)
	repayFunc               func(ctx context.Context, loanID uuid.UUID, amount int64) (*model.Loan, error)
	allowanceFunc           func(score int) int64
}

func (m *mockLendingService) CreateOrGetProfile(ctx context.Context, input service.ProfileInput) (*model.PassportProfile, *model.CreditLine, bool, error) {
	return m.createOrGetProfileFunc(ctx, input)
}

func (m *mockLendingService) GetBorrowerByWallet(ctx context.Context, wallet string) (*model.Borrower, error) {
	return m.getBorrowerByWalletFunc(ctx, wallet)
}

func (m *mockLendingService) SubmitApplication(ctx context.Context, input service.SubmitInput) (*model.LoanApplication, error) {
	return m.submitApplicationFunc(ctx, input)
}

func (m *mockLendingService) GetApplication(ctx context.Context, id uuid.UUID) (*model.LoanApplication, error) {
	return m.getApplicationFunc(ctx, id)
}

func (m *mockLendingService) ListReviewQueue(ctx context.Context) ([]model.ReviewItem, error) {
	return m.listReviewQueueFunc(ctx)
}

func (m *mockLendingService) Decide(ctx context.Context, id uuid.UUID, d service.Decision) (*service.DecisionResult, error) {
	return m.decideFunc(ctx, id, d)
}

func (m *mockLendingService) Repay(ctx context.Context, loanID uuid.UUID, amount int64) (*model.Loan, error) {
	return m.repayFunc(ctx, loanID, amount)
}

func (m *mockLendingService) Allowance(score int) int64 {
	if m.allowanceFunc == nil {
		return 0
	}
	return m.allowanceFunc(score)
}

func newTestServer(svc LendingService, opts ...ServerOption) http.Handler {
	return NewServer(svc, slog.Default(), opts...).Handler()
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// --- Profiles ---

func TestHandleCreateProfile_Created(t *testing.T) {
	svc := &mockLendingService{
		createOrGetProfileFunc: func(_ context.Context, input service.ProfileInput) (*model.PassportProfile, *model.CreditLine, bool, error) {
			assert.Equal(t, "user-1", input.PassportUserID)
			assert.Equal(t, "0xabc", input.Wallet)
			return &model.PassportProfile{ID: uuid.New(), Wallet: input.Wallet},
				&model.CreditLine{TotalLimit: 1500, AvailableLimit: 1500}, true, nil
		},
	}

	rec := doJSON(t, newTestServer(svc), http.MethodPost, "/api/v1/profiles", map[string]any{
		"passport_user_id": "user-1",
		"wallet":           "0xabc",
		"score":            1200,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp profileResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Created)
	assert.Equal(t, int64(1500), resp.CreditLine.TotalLimit)
}

func TestHandleCreateProfile_ExistingReturns200(t *testing.T) {
	svc := &mockLendingService{
		createOrGetProfileFunc: func(context.Context, service.ProfileInput) (*model.PassportProfile, *model.CreditLine, bool, error) {
			return &model.PassportProfile{}, &model.CreditLine{}, false, nil
		},
	}

	rec := doJSON(t, newTestServer(svc), http.MethodPost, "/api/v1/profiles", map[string]any{
		"passport_user_id": "user-1",
		"wallet":           "0xabc",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleCreateProfile_InvalidBody(t *testing.T) {
	svc := &mockLendingService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	newTestServer(svc).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCreateProfile_ValidationErrorIs400(t *testing.T) {
	svc := &mockLendingService{
		createOrGetProfileFunc: func(context.Context, service.ProfileInput) (*model.PassportProfile, *model.CreditLine, bool, error) {
			return nil, nil, false, errors.New("wallet is required")
		},
	}
	rec := doJSON(t, newTestServer(svc), http.MethodPost, "/api/v1/profiles", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type stubPassportFetcher struct {
	passport *passport.Passport
	err      error
}

func (s *stubPassportFetcher) GetByWallet(context.Context, string) (*passport.Passport, error) {
	return s.passport, s.err
}

func TestHandleCreateProfile_PassportSnapshotWins(t *testing.T) {
	p := &passport.Passport{Score: 1700}
	p.User.ID = "upstream-user"

	svc := &mockLendingService{
		createOrGetProfileFunc: func(_ context.Context, input service.ProfileInput) (*model.PassportProfile, *model.CreditLine, bool, error) {
			// upstream data overrides the client-sent snapshot
			assert.Equal(t, "upstream-user", input.PassportUserID)
			assert.Equal(t, 1700, input.Score)
			return &model.PassportProfile{}, &model.CreditLine{}, true, nil
		},
	}

	handler := newTestServer(svc, WithPassportFetcher(&stubPassportFetcher{passport: p}))
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/profiles", map[string]any{
		"passport_user_id": "client-claimed-user",
		"wallet":           "0xabc",
		"score":            9999,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandleCreateProfile_PassportMissing(t *testing.T) {
	handler := newTestServer(&mockLendingService{},
		WithPassportFetcher(&stubPassportFetcher{err: passport.ErrPassportNotFound}))
	rec := doJSON(t, handler, http.MethodPost, "/api/v1/profiles", map[string]any{
		"wallet": "0xabc",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetBorrower(t *testing.T) {
	borrowerID := uuid.New()
	svc := &mockLendingService{
		getBorrowerByWalletFunc: func(_ context.Context, wallet string) (*model.Borrower, error) {
			assert.Equal(t, "0xabc", wallet)
			return &model.Borrower{
				Profile:    model.PassportProfile{ID: borrowerID, Wallet: wallet},
				CreditLine: &model.CreditLine{BorrowerID: borrowerID},
			}, nil
		},
	}

	rec := doJSON(t, newTestServer(svc), http.MethodGet, "/api/v1/profiles/0xabc", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var b model.Borrower
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &b))
	assert.Equal(t, borrowerID, b.Profile.ID)
}

func TestHandleGetBorrower_NotFound(t *testing.T) {
	svc := &mockLendingService{
		getBorrowerByWalletFunc: func(context.Context, string) (*model.Borrower, error) {
			return nil, store.ErrNotFound
		},
	}
	rec := doJSON(t, newTestServer(svc), http.MethodGet, "/api/v1/profiles/0xnope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// --- Applications ---

func TestHandleSubmitApplication(t *testing.T) {
	applicantID := uuid.New()
	svc := &mockLendingService{
		submitApplicationFunc: func(_ context.Context, input service.SubmitInput) (*model.LoanApplication, error) {
			assert.Equal(t, applicantID, input.ApplicantID)
			assert.Equal(t, int64(500), input.Amount)
			return &model.LoanApplication{ID: uuid.New(), Status: model.StatusPending, Amount: 500}, nil
		},
	}

	rec := doJSON(t, newTestServer(svc), http.MethodPost, "/api/v1/loan-applications", map[string]any{
		"applicant_id": applicantID,
		"amount":       500,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var app model.LoanApplication
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &app))
	assert.Equal(t, model.StatusPending, app.Status)
}

func TestHandleSubmitApplication_MissingApplicant(t *testing.T) {
	rec := doJSON(t, newTestServer(&mockLendingService{}), http.MethodPost, "/api/v1/loan-applications", map[string]any{
		"amount": 500,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSubmitApplication_DuplicateIs409(t *testing.T) {
	svc := &mockLendingService{
		submitApplicationFunc: func(context.Context, service.SubmitInput) (*model.LoanApplication, error) {
			return nil, store.ErrDuplicatePendingApplication
		},
	}
	rec := doJSON(t, newTestServer(svc), http.MethodPost, "/api/v1/loan-applications", map[string]any{
		"applicant_id": uuid.New(),
		"amount":       500,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandleSubmitApplication_InsufficientCreditIs422(t *testing.T) {
	svc := &mockLendingService{
		submitApplicationFunc: func(context.Context, service.SubmitInput) (*model.LoanApplication, error) {
			return nil, fmt.Errorf("requested 900 exceeds available limit 100: %w", store.ErrInsufficientCredit)
		},
	}
	rec := doJSON(t, newTestServer(svc), http.MethodPost, "/api/v1/loan-applications", map[string]any{
		"applicant_id": uuid.New(),
		"amount":       900,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleListApplications(t *testing.T) {
	svc := &mockLendingService{
		listReviewQueueFunc: func(context.Context) ([]model.ReviewItem, error) {
			return []model.ReviewItem{
				{Application: model.LoanApplication{ID: uuid.New(), Status: model.StatusPending}},
			}, nil
		},
	}
	rec := doJSON(t, newTestServer(svc), http.MethodGet, "/api/v1/loan-applications", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []model.ReviewItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 1)
}

func TestHandleListApplications_EmptyIsJSONArray(t *testing.T) {
	svc := &mockLendingService{
		listReviewQueueFunc: func(context.Context) ([]model.ReviewItem, error) { return nil, nil },
	}
	rec := doJSON(t, newTestServer(svc), http.MethodGet, "/api/v1/loan-applications", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestHandleGetApplication_BadID(t *testing.T) {
	rec := doJSON(t, newTestServer(&mockLendingService{}), http.MethodGet, "/api/v1/loan-applications/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- Decisions ---

func TestHandleDecideApplication_Approve(t *testing.T) {
	appID := uuid.New()
	svc := &mockLendingService{
		decideFunc: func(_ context.Context, id uuid.UUID, d service.Decision) (*service.DecisionResult, error) {
			assert.Equal(t, appID, id)
			assert.True(t, d.Approve)
			assert.Equal(t, "0xdeadbeef", d.TxHash)
			return &service.DecisionResult{
				Application: &model.LoanApplication{ID: id, Status: model.StatusApproved},
				Loan:        &model.Loan{ID: uuid.New(), Amount: 500},
			}, nil
		},
	}

	rec := doJSON(t, newTestServer(svc), http.MethodPatch, "/api/v1/loan-applications/"+appID.String(), map[string]any{
		"status":  "APPROVED",
		"tx_hash": "0xdeadbeef",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp decisionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.StatusApproved, resp.Application.Status)
	require.NotNil(t, resp.Loan)
	assert.Equal(t, int64(500), resp.Loan.Amount)
}

func TestHandleDecideApplication_Reject(t *testing.T) {
	svc := &mockLendingService{
		decideFunc: func(_ context.Context, id uuid.UUID, d service.Decision) (*service.DecisionResult, error) {
			assert.False(t, d.Approve)
			return &service.DecisionResult{
				Application: &model.LoanApplication{ID: id, Status: model.StatusRejected},
			}, nil
		},
	}

	rec := doJSON(t, newTestServer(svc), http.MethodPatch, "/api/v1/loan-applications/"+uuid.NewString(), map[string]any{
		"status": "REJECTED",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp decisionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Nil(t, resp.Loan)
}

func TestHandleDecideApplication_UnknownStatus(t *testing.T) {
	rec := doJSON(t, newTestServer(&mockLendingService{}), http.MethodPatch, "/api/v1/loan-applications/"+uuid.NewString(), map[string]any{
		"status": "MAYBE",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDecideApplication_StaleStatusIs409(t *testing.T) {
	svc := &mockLendingService{
		decideFunc: func(context.Context, uuid.UUID, service.Decision) (*service.DecisionResult, error) {
			return nil, fmt.Errorf("application is APPROVED: %w", service.ErrInvalidTransition)
		},
	}
	rec := doJSON(t, newTestServer(svc), http.MethodPatch, "/api/v1/loan-applications/"+uuid.NewString(), map[string]any{
		"status": "APPROVED",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

// --- Repayments ---

func TestHandleRepayLoan(t *testing.T) {
	loanID := uuid.New()
	svc := &mockLendingService{
		repayFunc: func(_ context.Context, id uuid.UUID, amount int64) (*model.Loan, error) {
			assert.Equal(t, loanID, id)
			assert.Equal(t, int64(200), amount)
			return &model.Loan{ID: id, PendingBalance: 300}, nil
		},
	}

	rec := doJSON(t, newTestServer(svc), http.MethodPost, "/api/v1/loans/"+loanID.String()+"/repayments", map[string]any{
		"amount": 200,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var loan model.Loan
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &loan))
	assert.Equal(t, int64(300), loan.PendingBalance)
}

func TestHandleRepayLoan_OverpaymentIs422(t *testing.T) {
	svc := &mockLendingService{
		repayFunc: func(context.Context, uuid.UUID, int64) (*model.Loan, error) {
			return nil, store.ErrInsufficientCredit
		},
	}
	rec := doJSON(t, newTestServer(svc), http.MethodPost, "/api/v1/loans/"+uuid.NewString()+"/repayments", map[string]any{
		"amount": 9999,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// --- Allowance ---

func TestHandleGetAllowance(t *testing.T) {
	svc := &mockLendingService{
		allowanceFunc: func(score int) int64 {
			assert.Equal(t, 1600, score)
			return 3000
		},
	}
	rec := doJSON(t, newTestServer(svc), http.MethodGet, "/api/v1/allowance?score=1600", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp allowanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(3000), resp.Allowance)
}

func TestHandleGetAllowance_BadScore(t *testing.T) {
	rec := doJSON(t, newTestServer(&mockLendingService{}), http.MethodGet, "/api/v1/allowance?score=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, newTestServer(&mockLendingService{}), http.MethodGet, "/api/v1/allowance?score=-3", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// --- Health ---

type stubHealthChecker struct{ err error }

func (s *stubHealthChecker) PingContext(context.Context) error { return s.err }

func TestHandleHealthz(t *testing.T) {
	handler := newTestServer(&mockLendingService{}, WithHealthChecker(&stubHealthChecker{}))
	rec := doJSON(t, handler, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleHealthz_DependencyDown(t *testing.T) {
	handler := newTestServer(&mockLendingService{}, WithHealthChecker(&stubHealthChecker{err: errors.New("db down")}))
	rec := doJSON(t, handler, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestUnexpectedErrorIs500(t *testing.T) {
	svc := &mockLendingService{
		getBorrowerByWalletFunc: func(context.Context, string) (*model.Borrower, error) {
			return nil, errors.New("connection lost")
		},
	}
	rec := doJSON(t, newTestServer(svc), http.MethodGet, "/api/v1/profiles/0xabc", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "internal error", body["error"])
}
