package model

import (
	"time"

	"github.com/google/uuid"
)

// PassportProfile is a borrower's reputation identity record, sourced from the
// Talent Passport API on first login. At most one profile exists per external
// passport user id.
type PassportProfile struct {
	ID                  uuid.UUID `db:"id"`
	PassportUserID      string    `db:"passport_user_id"`
	Wallet              string    `db:"wallet"`
	MainWallet          string    `db:"main_wallet"`
	Name                string    `db:"name"`
	ProfilePictureURL   *string   `db:"profile_picture_url"`
	Verified            bool      `db:"verified"`
	HumanCheck          bool      `db:"human_check"`
	Score               int       `db:"score"`
	ActivityScore       int       `db:"activity_score"`
	IdentityScore       int       `db:"identity_score"`
	SkillsScore         int       `db:"skills_score"`
	NominationsReceived int       `db:"nominations_received"`
	SocialsLinked       int       `db:"socials_linked"`
	FollowerCount       int       `db:"follower_count"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

// Borrower bundles a profile with everything hanging off it, as served to the
// borrower console.
type Borrower struct {
	Profile      PassportProfile
	CreditLine   *CreditLine
	Loans        []Loan
	Applications []LoanApplication
}
