package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/AnkitS-21/campus-connect-hub/internal/common"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/application"
)

const uniqueViolation = "23505"

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

const applicationColumns = `id, listing_id, student_id, status, applied_at, updated_at`

// Create inserts the row and leans on the (student_id, listing_id) unique
// constraint for atomicity: two concurrent submissions both reach the
// INSERT, the second gets 23505, and we surface it as the same "already
// applied" conflict the advisory pre-check produces.
func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.AppliedAt = now
	app.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (id, listing_id, student_id, status, applied_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		app.ID, app.ListingID, app.StudentID, app.Status, app.AppliedAt, app.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.NewError(common.CodeConflict, "already applied", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	return scanApplicationRow(row)
}

func (r *ApplicationRepository) FindByListingAndStudent(ctx context.Context, listingID, studentID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE listing_id = $1 AND student_id = $2`, listingID, studentID)
	return scanApplicationRow(row)
}

func (r *ApplicationRepository) ListByStudent(ctx context.Context, studentID common.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE student_id = $1 ORDER BY applied_at DESC`, studentID)
}

func (r *ApplicationRepository) ListByListing(ctx context.Context, listingID common.UUID) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications WHERE listing_id = $1 ORDER BY applied_at DESC`, listingID)
}

func (r *ApplicationRepository) ListAll(ctx context.Context) ([]application.Application, error) {
	return r.list(ctx, `SELECT `+applicationColumns+` FROM applications`)
}

func (r *ApplicationRepository) ListApplicants(ctx context.Context, listingID common.UUID) ([]application.Applicant, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT a.id, a.listing_id, a.student_id, a.status, a.applied_at, a.updated_at,
			p.id, p.user_id, p.full_name, p.roll_no, p.email, p.phone, p.cpi, p.branch, p.minor, p.graduation_year, p.resume_link, p.created_at, p.updated_at
		FROM applications a
		JOIN profiles p ON p.user_id = a.student_id
		WHERE a.listing_id = $1
		ORDER BY a.applied_at DESC`, listingID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applicants", err)
	}
	defer rows.Close()
	var items []application.Applicant
	for rows.Next() {
		var item application.Applicant
		var fullName, rollNo, email, phone, branch, minor, resumeLink sql.NullString
		if err := rows.Scan(&item.ID, &item.ListingID, &item.StudentID, &item.Status, &item.AppliedAt, &item.UpdatedAt,
			&item.Profile.ID, &item.Profile.UserID, &fullName, &rollNo, &email, &phone, &item.Profile.CPI,
			&branch, &minor, &item.Profile.GraduationYear, &resumeLink, &item.Profile.CreatedAt, &item.Profile.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan applicant", err)
		}
		item.Profile.FullName = fullName.String
		item.Profile.RollNo = rollNo.String
		item.Profile.Email = email.String
		item.Profile.Phone = phone.String
		item.Profile.Branch = branch.String
		item.Profile.Minor = minor.String
		item.Profile.ResumeLink = resumeLink.String
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applicants", err)
	}
	return items, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "application not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, id)
}

func (r *ApplicationRepository) list(ctx context.Context, query string, args ...any) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		var app application.Application
		if err := rows.Scan(&app.ID, &app.ListingID, &app.StudentID, &app.Status, &app.AppliedAt, &app.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, app)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	return items, nil
}

func scanApplicationRow(row *sql.Row) (*application.Application, error) {
	var app application.Application
	if err := row.Scan(&app.ID, &app.ListingID, &app.StudentID, &app.Status, &app.AppliedAt, &app.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}
