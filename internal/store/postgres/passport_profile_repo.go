package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ShivamAgarwal-code/Talent-Cred/internal/domain/model"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/store"
	"github.com/google/uuid"
)

const passportProfileColumns = `id, passport_user_id, wallet, main_wallet, name, profile_picture_url,
	verified, human_check, score, activity_score, identity_score, skills_score,
	nominations_received, socials_linked, follower_count, created_at, updated_at`

type PassportProfileRepo struct {
	db *DB
}

func NewPassportProfileRepo(db *DB) *PassportProfileRepo {
	return &PassportProfileRepo{db: db}
}

func (r *PassportProfileRepo) InsertTx(ctx context.Context, tx *sql.Tx, p *model.PassportProfile) error {
	err := tx.QueryRowContext(ctx, `
		INSERT INTO passport_profiles (
			passport_user_id, wallet, main_wallet, name, profile_picture_url,
			verified, human_check, score, activity_score, identity_score, skills_score,
			nominations_received, socials_linked, follower_count
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at, updated_at
	`,
		p.PassportUserID, p.Wallet, p.MainWallet, p.Name, p.ProfilePictureURL,
		p.Verified, p.HumanCheck, p.Score, p.ActivityScore, p.IdentityScore, p.SkillsScore,
		p.NominationsReceived, p.SocialsLinked, p.FollowerCount,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert passport profile: %w", err)
	}
	return nil
}

func (r *PassportProfileRepo) FindByPassportUserID(ctx context.Context, passportUserID string) (*model.PassportProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT `+passportProfileColumns+`
		FROM passport_profiles
		WHERE passport_user_id = $1
	`, passportUserID))
}

func (r *PassportProfileRepo) FindByWallet(ctx context.Context, wallet string) (*model.PassportProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT `+passportProfileColumns+`
		FROM passport_profiles
		WHERE wallet = $1
		ORDER BY created_at
		LIMIT 1
	`, wallet))
}

func (r *PassportProfileRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PassportProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT `+passportProfileColumns+`
		FROM passport_profiles
		WHERE id = $1
	`, id))
}

func (r *PassportProfileRepo) UpdateScores(ctx context.Context, p *model.PassportProfile) error {
	ctx, cancel := context.WithTimeout(ctx, DefaultQueryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE passport_profiles SET
			verified = $2,
			human_check = $3,
			score = $4,
			activity_score = $5,
			identity_score = $6,
			skills_score = $7,
			nominations_received = $8,
			socials_linked = $9,
			follower_count = $10,
			updated_at = now()
		WHERE id = $1
	`,
		p.ID, p.Verified, p.HumanCheck, p.Score, p.ActivityScore, p.IdentityScore,
		p.SkillsScore, p.NominationsReceived, p.SocialsLinked, p.FollowerCount,
	)
	if err != nil {
		return fmt.Errorf("update passport profile scores: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update passport profile scores: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *PassportProfileRepo) scanOne(row *sql.Row) (*model.PassportProfile, error) {
	var p model.PassportProfile
	err := row.Scan(
		&p.ID, &p.PassportUserID, &p.Wallet, &p.MainWallet, &p.Name, &p.ProfilePictureURL,
		&p.Verified, &p.HumanCheck, &p.Score, &p.ActivityScore, &p.IdentityScore, &p.SkillsScore,
		&p.NominationsReceived, &p.SocialsLinked, &p.FollowerCount, &p.CreatedAt, &p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan passport profile: %w", err)
	}
	return &p, nil
}
