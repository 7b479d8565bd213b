package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/ShivamAgarwal-code/Talent-Cred/internal/domain/model"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/passport"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/service"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/store"
	"github.com/google/uuid"
)

type createProfileRequest struct {
	PassportUserID      string  `json:"passport_user_id"`
	Wallet              string  `json:"wallet"`
	MainWallet          string  `json:"main_wallet"`
	Name                string  `json:"name"`
	ProfilePictureURL   *string `json:"profile_picture_url,omitempty"`
	Verified            bool    `json:"verified"`
	HumanCheck          bool    `json:"human_check"`
	Score               int     `json:"score"`
	ActivityScore       int     `json:"activity_score"`
	IdentityScore       int     `json:"identity_score"`
	SkillsScore         int     `json:"skills_score"`
	NominationsReceived int     `json:"nominations_received"`
	SocialsLinked       int     `json:"socials_linked"`
	FollowerCount       int     `json:"follower_count"`
	RequestedLimit      *int64  `json:"requested_limit,omitempty"`
}

type profileResponse struct {
	Profile    *model.PassportProfile `json:"profile"`
	CreditLine *model.CreditLine      `json:"credit_line"`
	Created    bool                   `json:"created"`
}

type submitApplicationRequest struct {
	ApplicantID uuid.UUID `json:"applicant_id"`
	Amount      int64     `json:"amount"`
}

type decideApplicationRequest struct {
	Status string `json:"status"`
	TxHash string `json:"tx_hash,omitempty"`
}

type decisionResponse struct {
	Application *model.LoanApplication `json:"application"`
	Loan        *model.Loan            `json:"loan,omitempty"`
}

type repaymentRequest struct {
	Amount int64 `json:"amount"`
}

type allowanceResponse struct {
	Score     int   `json:"score"`
	Allowance int64 `json:"allowance"`
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	input := service.ProfileInput{
		PassportUserID:      req.PassportUserID,
		Wallet:              req.Wallet,
		MainWallet:          req.MainWallet,
		Name:                req.Name,
		ProfilePictureURL:   req.ProfilePictureURL,
		Verified:            req.Verified,
		HumanCheck:          req.HumanCheck,
		Score:               req.Score,
		ActivityScore:       req.ActivityScore,
		IdentityScore:       req.IdentityScore,
		SkillsScore:         req.SkillsScore,
		NominationsReceived: req.NominationsReceived,
		SocialsLinked:       req.SocialsLinked,
		FollowerCount:       req.FollowerCount,
		RequestedLimit:      req.RequestedLimit,
	}

	// When a passport fetcher is wired, the upstream snapshot wins over
	// whatever the client sent for reputation fields.
	if s.passports != nil && req.Wallet != "" {
		p, err := s.passports.GetByWallet(r.Context(), req.Wallet)
		switch {
		case err == nil:
			input = p.ProfileInput(req.Wallet)
			input.RequestedLimit = req.RequestedLimit
		case errors.Is(err, passport.ErrPassportNotFound):
			writeError(w, http.StatusNotFound, fmt.Sprintf("no passport for wallet %s", req.Wallet))
			return
		default:
			s.logger.Error("passport lookup failed", "wallet", req.Wallet, "error", err)
			writeError(w, http.StatusBadGateway, "passport lookup failed")
			return
		}
	}

	profile, creditLine, created, err := s.svc.CreateOrGetProfile(r.Context(), input)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeJSON(w, status, profileResponse{Profile: profile, CreditLine: creditLine, Created: created})
}

func (s *Server) handleGetBorrower(w http.ResponseWriter, r *http.Request) {
	wallet := r.PathValue("wallet")
	if wallet == "" {
		writeError(w, http.StatusBadRequest, "wallet is required")
		return
	}

	borrower, err := s.svc.GetBorrowerByWallet(r.Context(), wallet)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, borrower)
}

func (s *Server) handleGetPassport(w http.ResponseWriter, r *http.Request) {
	if s.passports == nil {
		writeError(w, http.StatusNotImplemented, "passport lookups are not configured")
		return
	}
	wallet := r.PathValue("wallet")
	if wallet == "" {
		writeError(w, http.StatusBadRequest, "wallet is required")
		return
	}

	p, err := s.passports.GetByWallet(r.Context(), wallet)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, p)
	case errors.Is(err, passport.ErrPassportNotFound):
		writeError(w, http.StatusNotFound, fmt.Sprintf("no passport for wallet %s", wallet))
	default:
		s.logger.Error("passport lookup failed", "wallet", wallet, "error", err)
		writeError(w, http.StatusBadGateway, "passport lookup failed")
	}
}

func (s *Server) handleSubmitApplication(w http.ResponseWriter, r *http.Request) {
	var req submitApplicationRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.ApplicantID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "applicant_id is required")
		return
	}

	app, err := s.svc.SubmitApplication(r.Context(), service.SubmitInput{
		ApplicantID: req.ApplicantID,
		Amount:      req.Amount,
	})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, app)
}

func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.ListReviewQueue(r.Context())
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if items == nil {
		items = []model.ReviewItem{}
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	app, err := s.svc.GetApplication(r.Context(), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, app)
}

func (s *Server) handleDecideApplication(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var req decideApplicationRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	var approve bool
	switch strings.ToUpper(req.Status) {
	case string(model.StatusApproved):
		approve = true
	case string(model.StatusRejected):
		approve = false
	default:
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("status must be %s or %s", model.StatusApproved, model.StatusRejected))
		return
	}

	result, err := s.svc.Decide(r.Context(), id, service.Decision{Approve: approve, TxHash: req.TxHash})
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, decisionResponse{Application: result.Application, Loan: result.Loan})
}

func (s *Server) handleRepayLoan(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}
	var req repaymentRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	loan, err := s.svc.Repay(r.Context(), id, req.Amount)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, loan)
}

func (s *Server) handleGetAllowance(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("score")
	score, err := strconv.Atoi(raw)
	if err != nil || score < 0 {
		writeError(w, http.StatusBadRequest, "score must be a non-negative integer")
		return
	}
	writeJSON(w, http.StatusOK, allowanceResponse{Score: score, Allowance: s.svc.Allowance(score)})
}

// writeServiceError maps service and store errors to HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrDuplicatePendingApplication):
		writeError(w, http.StatusConflict, "an open application already exists for this applicant")
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, store.ErrStaleStatus):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrInsufficientCredit):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case isValidationError(err):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// isValidationError recognizes the service layer's input rejections, which are
// plain fmt errors rather than sentinels.
func isValidationError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "is required") ||
		strings.Contains(msg, "must be positive") ||
		strings.Contains(msg, "requires a transaction hash")
}

func parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}
