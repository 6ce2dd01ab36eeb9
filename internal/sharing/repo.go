package sharing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// EnsureList returns the owner's shared list, creating it on first visit.
// At most one list exists per owner (owner_id is unique).
func (r *Repo) EnsureList(ctx context.Context, ownerID string) (*SharedList, error) {
	const sel = `
select id::text, public_id, owner_id::text, created_at
from shared_lists
where owner_id = $1::uuid;
`
	var l SharedList
	err := r.db.QueryRow(ctx, sel, ownerID).Scan(&l.ID, &l.PublicID, &l.OwnerID, &l.CreatedAt)
	if err == nil {
		return &l, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	for i := 0; i < 5; i++ {
		publicID, err := NewPublicID("list")
		if err != nil {
			return nil, err
		}

		const ins = `
insert into shared_lists (public_id, owner_id)
values ($1, $2::uuid)
returning id::text, public_id, owner_id::text, created_at;
`
		err = r.db.QueryRow(ctx, ins, publicID, ownerID).
			Scan(&l.ID, &l.PublicID, &l.OwnerID, &l.CreatedAt)
		if err == nil {
			return &l, nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Either a public_id collision (retry) or the owner's list was
			// created concurrently (re-read wins).
			if el, selErr := r.getByOwner(ctx, ownerID); selErr == nil {
				return el, nil
			}
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to generate unique share id")
}

func (r *Repo) getByOwner(ctx context.Context, ownerID string) (*SharedList, error) {
	const q = `
select id::text, public_id, owner_id::text, created_at
from shared_lists
where owner_id = $1::uuid;
`
	var l SharedList
	if err := r.db.QueryRow(ctx, q, ownerID).Scan(&l.ID, &l.PublicID, &l.OwnerID, &l.CreatedAt); err != nil {
		return nil, err
	}
	return &l, nil
}

// GetListByPublicID resolves a share link. Returns ErrNotFound for unknown
// public ids.
func (r *Repo) GetListByPublicID(ctx context.Context, publicID string) (*SharedList, error) {
	const q = `
select id::text, public_id, owner_id::text, created_at
from shared_lists
where public_id = $1;
`
	var l SharedList
	err := r.db.QueryRow(ctx, q, publicID).Scan(&l.ID, &l.PublicID, &l.OwnerID, &l.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *Repo) ListInvites(ctx context.Context, listID string) ([]Invite, error) {
	const q = `
select id::text, shared_list_id::text, invitee_email, status, created_at, updated_at
from shared_list_invites
where shared_list_id = $1::uuid
order by created_at asc;
`
	rows, err := r.db.Query(ctx, q, listID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Invite, 0, 8)
	for rows.Next() {
		var inv Invite
		if err := rows.Scan(&inv.ID, &inv.SharedListID, &inv.InviteeEmail, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// CreateInvite inserts a pending invite after the duplicate check. The
// unique index on (shared_list_id, lower(invitee_email)) backstops races
// between the lookup and the insert.
func (r *Repo) CreateInvite(ctx context.Context, listID, inviteeEmail string) (*Invite, error) {
	if _, err := r.GetInvite(ctx, listID, inviteeEmail); err == nil {
		return nil, ErrDuplicateInvite
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	const q = `
insert into shared_list_invites (id, shared_list_id, invitee_email, status)
values ($1::uuid, $2::uuid, $3, $4)
returning id::text, shared_list_id::text, invitee_email, status, created_at, updated_at;
`
	var inv Invite
	err := r.db.QueryRow(ctx, q, uuid.New().String(), listID, inviteeEmail, InvitePending).
		Scan(&inv.ID, &inv.SharedListID, &inv.InviteeEmail, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateInvite
		}
		return nil, err
	}
	return &inv, nil
}

// GetInvite looks up the invite for (list, email), case-insensitive on the
// email. Returns ErrNotFound when no row exists.
func (r *Repo) GetInvite(ctx context.Context, listID, inviteeEmail string) (*Invite, error) {
	const q = `
select id::text, shared_list_id::text, invitee_email, status, created_at, updated_at
from shared_list_invites
where shared_list_id = $1::uuid and lower(invitee_email) = lower($2);
`
	var inv Invite
	err := r.db.QueryRow(ctx, q, listID, inviteeEmail).
		Scan(&inv.ID, &inv.SharedListID, &inv.InviteeEmail, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// RespondToInvite moves the caller's pending invite to accepted or declined.
// The status predicate in the UPDATE enforces the transition graph at the
// row level: resolved invites never match.
func (r *Repo) RespondToInvite(ctx context.Context, listID, inviteeEmail string, decision InviteStatus) (*Invite, error) {
	if !IsTransitionAllowed(InvitePending, decision) {
		return nil, fmt.Errorf("invalid decision %q", decision)
	}

	const q = `
update shared_list_invites
set status = $3, updated_at = now()
where shared_list_id = $1::uuid and lower(invitee_email) = lower($2) and status = $4
returning id::text, shared_list_id::text, invitee_email, status, created_at, updated_at;
`
	var inv Invite
	err := r.db.QueryRow(ctx, q, listID, inviteeEmail, decision, InvitePending).
		Scan(&inv.ID, &inv.SharedListID, &inv.InviteeEmail, &inv.Status, &inv.CreatedAt, &inv.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Distinguish "no invite" from "already resolved".
		if _, getErr := r.GetInvite(ctx, listID, inviteeEmail); getErr == nil {
			return nil, ErrInviteResolved
		}
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// SharedWithMe aggregates every list the caller holds an invite for, in one
// query, newest invite first.
func (r *Repo) SharedWithMe(ctx context.Context, inviteeEmail string) ([]SharedWithMeRow, error) {
	const q = `
select coalesce(p.email, ''), sl.public_id, i.status
from shared_list_invites i
join shared_lists sl on sl.id = i.shared_list_id
join profiles p on p.id = sl.owner_id
where lower(i.invitee_email) = lower($1)
order by i.created_at desc;
`
	rows, err := r.db.Query(ctx, q, inviteeEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SharedWithMeRow, 0, 8)
	for rows.Next() {
		var row SharedWithMeRow
		if err := rows.Scan(&row.OwnerEmail, &row.PublicID, &row.Status); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
