// Package applications is the CRUD core for a user's job applications.
package applications

import "fmt"

// Status values mirror the status column on the applications table.
type Status string

const (
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusRejected  Status = "Rejected"
	StatusOffer     Status = "Offer"
)

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusApplied, StatusInterview, StatusRejected, StatusOffer:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}
