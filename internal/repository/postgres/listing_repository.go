package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/AnkitS-21/campus-connect-hub/internal/common"
	"github.com/AnkitS-21/campus-connect-hub/internal/domain/listing"
)

type ListingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

const listingColumns = `id, name, role, ctc, job_type, location, jd_link, deadline, min_cpi, allowed_branches, allowed_minors, allowed_graduation_years, created_by, created_at`

func (r *ListingRepository) Create(ctx context.Context, l listing.Listing) (*listing.Listing, error) {
	l.ID = common.NewUUID()
	l.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO listings (id, name, role, ctc, job_type, location, jd_link, deadline, min_cpi, allowed_branches, allowed_minors, allowed_graduation_years, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		l.ID, l.Name, l.Role, l.CTC, l.JobType, l.Location, l.JDLink, l.Deadline, l.MinCPI,
		textArray(l.AllowedBranches), textArray(l.AllowedMinors), int64Array(l.AllowedGraduationYears), l.CreatedBy, l.CreatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create listing", err)
	}
	return &l, nil
}

func (r *ListingRepository) Update(ctx context.Context, l listing.Listing) (*listing.Listing, error) {
	result, err := r.db.ExecContext(ctx, `UPDATE listings SET name = $1, role = $2, ctc = $3, job_type = $4, location = $5, jd_link = $6, deadline = $7, min_cpi = $8, allowed_branches = $9, allowed_minors = $10, allowed_graduation_years = $11, updated_at = $12
		WHERE id = $13`,
		l.Name, l.Role, l.CTC, l.JobType, l.Location, l.JDLink, l.Deadline, l.MinCPI,
		textArray(l.AllowedBranches), textArray(l.AllowedMinors), int64Array(l.AllowedGraduationYears), time.Now().UTC(), l.ID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update listing", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "listing not found", sql.ErrNoRows)
	}
	return r.GetByID(ctx, l.ID)
}

// Delete relies on the applications FK cascade, so the listing's rows
// disappear with it instead of lingering as orphans.
func (r *ListingRepository) Delete(ctx context.Context, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete listing", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "listing not found", sql.ErrNoRows)
	}
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id common.UUID) (*listing.Listing, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+listingColumns+` FROM listings WHERE id = $1`, id)
	l, err := scanListing(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "listing not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load listing", err)
	}
	return l, nil
}

func (r *ListingRepository) List(ctx context.Context) ([]listing.Listing, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+listingColumns+` FROM listings ORDER BY deadline ASC`)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list listings", err)
	}
	defer rows.Close()
	var items []listing.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan listing", err)
		}
		items = append(items, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list listings", err)
	}
	return items, nil
}

func scanListing(row rowScanner) (*listing.Listing, error) {
	var l listing.Listing
	var jdLink sql.NullString
	var createdBy sql.NullString
	if err := row.Scan(&l.ID, &l.Name, &l.Role, &l.CTC, &l.JobType, &l.Location, &jdLink, &l.Deadline, &l.MinCPI,
		pq.Array(&l.AllowedBranches), pq.Array(&l.AllowedMinors), pq.Array(&l.AllowedGraduationYears), &createdBy, &l.CreatedAt); err != nil {
		return nil, err
	}
	l.JDLink = jdLink.String
	l.CreatedBy = common.UUID(createdBy.String)
	return &l, nil
}

// The array columns are NOT NULL, and a nil slice binds as SQL NULL
// through pq.Array, so empty constraint sets go in as empty arrays.
func textArray(values []string) any {
	if values == nil {
		values = []string{}
	}
	return pq.Array(values)
}

func int64Array(values []int64) any {
	if values == nil {
		values = []int64{}
	}
	return pq.Array(values)
}
