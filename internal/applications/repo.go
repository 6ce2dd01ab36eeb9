package applications

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type Application struct {
	ID             string    `json:"id"`
	Role           string    `json:"role"`
	Company        string    `json:"company"`
	Platform       string    `json:"platform"`
	ApplicationURL string    `json:"application_url"`
	ResumeURL      string    `json:"resume_url"`
	Status         Status    `json:"status"`
	AppliedAt      time.Time `json:"applied_at"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type NewApplication struct {
	Role           string
	Company        string
	Platform       string
	ApplicationURL string
	ResumeURL      string
	Status         Status
	AppliedAt      time.Time
	Notes          string
}

// UpdateApplication carries the partial field set for an edit; nil fields
// are left untouched.
type UpdateApplication struct {
	Role           *string
	Company        *string
	Platform       *string
	ApplicationURL *string
	ResumeURL      *string
	Status         *Status
	AppliedAt      *time.Time
	Notes          *string
}

const appColumns = `
id::text, role, company, coalesce(platform,''), coalesce(application_url,''),
coalesce(resume_url,''), status, applied_at, coalesce(notes,''), created_at, updated_at`

// ListByOwner returns every live application for an owner, oldest
// applied_at first.
func (r *Repo) ListByOwner(ctx context.Context, ownerID string) ([]Application, error) {
	const q = `
select ` + appColumns + `
from applications
where user_id = $1::uuid and deleted_at is null
order by applied_at asc;
`
	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Application, 0, 16)
	for rows.Next() {
		var a Application
		if err := rows.Scan(
			&a.ID, &a.Role, &a.Company, &a.Platform, &a.ApplicationURL,
			&a.ResumeURL, &a.Status, &a.AppliedAt, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *Repo) Create(ctx context.Context, ownerID string, in NewApplication) (*Application, error) {
	const q = `
insert into applications (user_id, role, company, platform, application_url, resume_url, status, applied_at, notes)
values ($1::uuid, $2, $3, nullif($4,''), nullif($5,''), nullif($6,''), $7, $8, nullif($9,''))
returning ` + appColumns + `;
`
	var a Application
	err := r.db.QueryRow(ctx, q,
		ownerID, in.Role, in.Company, in.Platform, in.ApplicationURL,
		in.ResumeURL, in.Status, in.AppliedAt, in.Notes,
	).Scan(
		&a.ID, &a.Role, &a.Company, &a.Platform, &a.ApplicationURL,
		&a.ResumeURL, &a.Status, &a.AppliedAt, &a.Notes, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Update applies a partial edit. Returns false when the row is missing or
// not owned by ownerID.
func (r *Repo) Update(ctx context.Context, ownerID, id string, in UpdateApplication) (bool, error) {
	const q = `
update applications
set
  role = coalesce($3, role),
  company = coalesce($4, company),
  platform = coalesce($5, platform),
  application_url = coalesce($6, application_url),
  resume_url = coalesce($7, resume_url),
  status = coalesce($8, status),
  applied_at = coalesce($9, applied_at),
  notes = coalesce($10, notes),
  updated_at = now()
where user_id = $1::uuid and id = $2::uuid and deleted_at is null;
`
	ct, err := r.db.Exec(ctx, q,
		ownerID, id,
		in.Role, in.Company, in.Platform, in.ApplicationURL,
		in.ResumeURL, in.Status, in.AppliedAt, in.Notes,
	)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *Repo) SoftDelete(ctx context.Context, ownerID, id string) (bool, error) {
	const q = `
update applications
set deleted_at = now(), updated_at = now()
where user_id = $1::uuid and id = $2::uuid and deleted_at is null;
`
	ct, err := r.db.Exec(ctx, q, ownerID, id)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// PurgeDeleted hard-deletes applications that were soft-deleted more than
// retentionDays ago. Used by the maintenance scheduler.
func (r *Repo) PurgeDeleted(ctx context.Context, retentionDays int) (int64, error) {
	const q = `
delete from applications
where deleted_at is not null and deleted_at < now() - make_interval(days => $1);
`
	ct, err := r.db.Exec(ctx, q, retentionDays)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}
