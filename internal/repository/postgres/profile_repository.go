package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/AnkitS-21/campus-connect-hub/internal/common"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/profile"
)

type ProfileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `id, user_id, full_name, roll_no, email, phone, cpi, branch, minor, graduation_year, resume_link, created_at, updated_at`

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.Profile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load profile", err)
	}
	return p, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p profile.Profile) (*profile.Profile, error) {
	now := time.Now().UTC()
	p.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO profiles (id, user_id, full_name, roll_no, email, phone, cpi, branch, minor, graduation_year, resume_link, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			roll_no = EXCLUDED.roll_no,
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			cpi = EXCLUDED.cpi,
			branch = EXCLUDED.branch,
			minor = EXCLUDED.minor,
			graduation_year = EXCLUDED.graduation_year,
			resume_link = EXCLUDED.resume_link,
			updated_at = EXCLUDED.updated_at`,
		common.NewUUID(), p.UserID, p.FullName, p.RollNo, p.Email, p.Phone,
		p.CPI, p.Branch, p.Minor, p.GraduationYear, p.ResumeLink, now)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to save profile", err)
	}
	return r.GetByUserID(ctx, p.UserID)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*profile.Profile, error) {
	var p profile.Profile
	var fullName, rollNo, email, phone, branch, minor, resumeLink sql.NullString
	if err := row.Scan(&p.ID, &p.UserID, &fullName, &rollNo, &email, &phone, &p.CPI, &branch, &minor, &p.GraduationYear, &resumeLink, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.FullName = fullName.String
	p.RollNo = rollNo.String
	p.Email = email.String
	p.Phone = phone.String
	p.Branch = branch.String
	p.Minor = minor.String
	p.ResumeLink = resumeLink.String
	return &p, nil
}
