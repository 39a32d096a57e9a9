package authz

import (
	"testing"

	"corkboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	return NewResolver(BcryptHasher{Cost: bcrypt.MinCost})
}

func mustHash(t *testing.T, r *Resolver, plaintext string) string {
	t.Helper()
	digest, err := r.Hasher().Hash(plaintext)
	require.NoError(t, err)
	return digest
}

func TestAuthorizeMemberOwned(t *testing.T) {
	r := testResolver(t)
	owner := Member(42, "jin", models.RoleUser)
	stranger := Member(7, "mo", models.RoleUser)
	admin := Member(9, "root", models.RoleAdmin)

	tests := []struct {
		name       string
		actor      Actor
		credential string
		allowed    bool
		reason     string
	}{
		{name: "owner allowed", actor: owner, allowed: true},
		{name: "other member denied", actor: stranger, reason: ReasonNotOwner},
		{name: "admin is not the owner either", actor: admin, reason: ReasonNotOwner},
		{name: "anonymous denied", actor: Anonymous(), reason: ReasonMemberOnly},
		{name: "credential never unlocks member resources", actor: Anonymous(), credential: "1234", reason: ReasonMemberOnly},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := r.Authorize(tt.actor, MemberOwned{UserID: 42}, tt.credential)
			assert.Equal(t, tt.allowed, d.Allowed)
			assert.Equal(t, tt.reason, d.Reason)
		})
	}
}

func TestAuthorizeAnonymousOwned(t *testing.T) {
	r := testResolver(t)
	own := AnonymousOwned{CredentialHash: mustHash(t, r, "1234")}

	tests := []struct {
		name       string
		actor      Actor
		credential string
		allowed    bool
	}{
		{name: "matching credential from anonymous", actor: Anonymous(), credential: "1234", allowed: true},
		{name: "matching credential from any member", actor: Member(7, "mo", models.RoleUser), credential: "1234", allowed: true},
		{name: "wrong credential", actor: Anonymous(), credential: "9999"},
		{name: "empty credential", actor: Anonymous(), credential: ""},
		{name: "member identity alone is not enough", actor: Member(7, "mo", models.RoleUser), credential: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := r.Authorize(tt.actor, own, tt.credential)
			assert.Equal(t, tt.allowed, d.Allowed)
			if !tt.allowed {
				assert.Equal(t, ReasonCredentialMismatch, d.Reason)
			}
		})
	}
}

func TestOwnershipOf(t *testing.T) {
	userID := uint(42)

	own, err := OwnershipOf(&userID, "")
	require.NoError(t, err)
	assert.Equal(t, MemberOwned{UserID: 42}, own)

	// Author wins as discriminator even if a stray digest is present.
	own, err = OwnershipOf(&userID, "$2a$10$stray")
	require.NoError(t, err)
	assert.Equal(t, MemberOwned{UserID: 42}, own)

	own, err = OwnershipOf(nil, "$2a$10$digest")
	require.NoError(t, err)
	assert.Equal(t, AnonymousOwned{CredentialHash: "$2a$10$digest"}, own)

	_, err = OwnershipOf(nil, "")
	assert.ErrorIs(t, err, ErrAmbiguousOwnership)
}
