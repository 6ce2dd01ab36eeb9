package profiles

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Ensure upserts the profile row for a Firebase account and returns its
// internal id. Email is refreshed on every login; names are only ever set
// through the profile edit endpoint.
func (r *Repo) Ensure(ctx context.Context, firebaseUID, email string) (string, error) {
	if firebaseUID == "" {
		return "", fmt.Errorf("firebase_uid required")
	}

	const q = `
insert into profiles (firebase_uid, email, updated_at)
values ($1, nullif($2,''), now())
on conflict (firebase_uid) do update
set
  email = coalesce(excluded.email, profiles.email),
  updated_at = now()
returning id::text;
`
	var id string
	if err := r.db.QueryRow(ctx, q, firebaseUID, email).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Profile, error) {
	const q = `
select id::text, coalesce(email,''), coalesce(first_name,''), coalesce(last_name,''), created_at, updated_at
from profiles
where id = $1::uuid;
`
	var p Profile
	err := r.db.QueryRow(ctx, q, id).
		Scan(&p.ID, &p.Email, &p.FirstName, &p.LastName, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) UpdateName(ctx context.Context, id, firstName, lastName string) (*Profile, error) {
	const q = `
update profiles
set first_name = $2, last_name = $3, updated_at = now()
where id = $1::uuid
returning id::text, coalesce(email,''), coalesce(first_name,''), coalesce(last_name,''), created_at, updated_at;
`
	var p Profile
	err := r.db.QueryRow(ctx, q, id, firstName, lastName).
		Scan(&p.ID, &p.Email, &p.FirstName, &p.LastName, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
