// Package sharing implements shareable application lists and their invites.
//
// Invite status graph:
//
//	pending ──► accepted
//	    │
//	    └─────► declined
//
// accepted and declined are terminal states.
package sharing

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrDuplicateInvite = errors.New("invite already sent to this email")
	ErrSelfInvite      = errors.New("you cannot invite yourself")
	ErrInviteResolved  = errors.New("invite already resolved")
)

// SharedList is the one-per-owner container invites hang off. PublicID is
// the random identifier embedded in share links; it is distinct from the
// internal id and safe to hand out.
type SharedList struct {
	ID        string    `json:"id"`
	PublicID  string    `json:"public_id"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ShareLink returns the path a viewer opens, e.g. /share/list-12345-6789.
func (l *SharedList) ShareLink() string {
	if l == nil || l.PublicID == "" {
		return ""
	}
	return "/share/" + l.PublicID
}

type Invite struct {
	ID           string       `json:"id"`
	SharedListID string       `json:"shared_list_id"`
	InviteeEmail string       `json:"invitee_email"`
	Status       InviteStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// InviteStatus values mirror the status column on shared_list_invites.
type InviteStatus string

const (
	InvitePending  InviteStatus = "pending"
	InviteAccepted InviteStatus = "accepted"
	InviteDeclined InviteStatus = "declined"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[InviteStatus][]InviteStatus{
	InvitePending: {InviteAccepted, InviteDeclined},
	// accepted and declined are terminal — no outgoing transitions
}

// ParseInviteStatus converts a raw string to an InviteStatus, returning an
// error for unknown values.
func ParseInviteStatus(s string) (InviteStatus, error) {
	st := InviteStatus(s)
	switch st {
	case InvitePending, InviteAccepted, InviteDeclined:
		return st, nil
	}
	return "", fmt.Errorf("unknown invite status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted.
func IsTransitionAllowed(from, to InviteStatus) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false // terminal state — no outgoing transitions
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// SharedWithMeRow is one entry of the "shared with me" listing: who shared,
// where the link points, and where the caller's invite stands.
type SharedWithMeRow struct {
	OwnerEmail string       `json:"owner_email"`
	PublicID   string       `json:"public_id"`
	Status     InviteStatus `json:"status"`
}
