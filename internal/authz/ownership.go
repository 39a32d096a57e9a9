package authz

import (
	"errors"
)

// ErrAmbiguousOwnership is returned when a stored row satisfies neither
// ownership mode. It indicates corrupted data, not a caller mistake.
var ErrAmbiguousOwnership = errors.New("resource has neither an author nor an anonymous credential")

// Ownership classifies who may mutate a resource. It is a closed sum:
// MemberOwned or AnonymousOwned, never both, never neither.
type Ownership interface {
	isOwnership()
}

// MemberOwned marks a resource created by an authenticated account.
type MemberOwned struct {
	UserID uint
}

func (MemberOwned) isOwnership() {}

// AnonymousOwned marks a resource created without an account, protected by
// the digest of a caller-chosen credential.
type AnonymousOwned struct {
	CredentialHash string
}

func (AnonymousOwned) isOwnership() {}

// OwnershipOf classifies a fetched resource from its stored columns. The
// nullable author column is the discriminator; the credential hash is only
// meaningful when the author is absent.
func OwnershipOf(authorID *uint, credentialHash string) (Ownership, error) {
	if authorID != nil {
		return MemberOwned{UserID: *authorID}, nil
	}
	if credentialHash == "" {
		return nil, ErrAmbiguousOwnership
	}
	return AnonymousOwned{CredentialHash: credentialHash}, nil
}
