package sharing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInviteStatus_ValidValues(t *testing.T) {
	for _, s := range []string{"pending", "accepted", "declined"} {
		got, err := ParseInviteStatus(s)
		require.NoError(t, err, "ParseInviteStatus(%q)", s)
		assert.Equal(t, s, string(got))
	}
}

func TestParseInviteStatus_InvalidValues(t *testing.T) {
	for _, s := range []string{"", "PENDING", "revoked", "accept"} {
		_, err := ParseInviteStatus(s)
		assert.Error(t, err, "ParseInviteStatus(%q) should fail", s)
	}
}

func TestIsTransitionAllowed_FromPending(t *testing.T) {
	assert.True(t, IsTransitionAllowed(InvitePending, InviteAccepted))
	assert.True(t, IsTransitionAllowed(InvitePending, InviteDeclined))
	assert.False(t, IsTransitionAllowed(InvitePending, InvitePending))
}

func TestIsTransitionAllowed_TerminalStates(t *testing.T) {
	for _, from := range []InviteStatus{InviteAccepted, InviteDeclined} {
		for _, to := range []InviteStatus{InvitePending, InviteAccepted, InviteDeclined} {
			assert.False(t, IsTransitionAllowed(from, to),
				"transition %s → %s should not be allowed", from, to)
		}
	}
}

func TestShareLink(t *testing.T) {
	var nilList *SharedList
	assert.Empty(t, nilList.ShareLink())
	assert.Empty(t, (&SharedList{}).ShareLink())

	l := &SharedList{PublicID: "list-12345-6789"}
	assert.Equal(t, "/share/list-12345-6789", l.ShareLink())
}
