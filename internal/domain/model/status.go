package model

// ApplicationStatus represents the review state of a loan application.
type ApplicationStatus string

const (
	// StatusPending is the initial state of every application.
	StatusPending ApplicationStatus = "PENDING"
	// StatusOnchainPending means an underwriter approved the application and
	// the approval transaction is awaiting on-chain confirmation.
	StatusOnchainPending ApplicationStatus = "ONCHAIN_PENDING"
	// StatusApproved is terminal. Entering it originates a loan.
	StatusApproved ApplicationStatus = "APPROVED"
	// StatusRejected is terminal.
	StatusRejected ApplicationStatus = "REJECTED"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusOnchainPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Open reports whether the application still counts against the
// one-open-application-per-applicant constraint.
func (s ApplicationStatus) Open() bool {
	return s == StatusPending || s == StatusOnchainPending
}

// Terminal reports whether no further transition is allowed out of s.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransition reports whether s -> next is a legal transition.
//
//	PENDING         -> ONCHAIN_PENDING | APPROVED | REJECTED
//	ONCHAIN_PENDING -> APPROVED | PENDING
//
// PENDING -> APPROVED is the direct path used when no chain RPC is configured;
// ONCHAIN_PENDING -> PENDING voids a decision whose transaction reverted.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusOnchainPending || next == StatusApproved || next == StatusRejected
	case StatusOnchainPending:
		return next == StatusApproved || next == StatusPending
	default:
		return false
	}
}
