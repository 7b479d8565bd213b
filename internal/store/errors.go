package store

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicatePendingApplication is returned when an applicant already has
	// an open (PENDING or ONCHAIN_PENDING) loan application. Enforced by a
	// partial unique index, so concurrent submissions cannot both succeed.
	ErrDuplicatePendingApplication = errors.New("applicant already has a pending loan application")

	// ErrInsufficientCredit is returned when a balance movement would take a
	// credit line's available limit below zero or a loan's pending balance
	// negative.
	ErrInsufficientCredit = errors.New("insufficient available credit")

	// ErrStaleStatus is returned when a conditional status update matched no
	// row, meaning the application moved out of the expected status underneath
	// the caller.
	ErrStaleStatus = errors.New("application status changed concurrently")
)
