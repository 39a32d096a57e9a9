package authz

import (
	"strings"

	"corkboard/internal/models"
)

// DefaultMemberNickname labels member resources whose account nickname is
// somehow empty (legacy rows).
const DefaultMemberNickname = "member"

// OwnershipFields is what gets persisted on a newly created resource. It is
// the only construction path for ownership columns, which keeps the
// member-XOR-anonymous invariant out of handler code.
type OwnershipFields struct {
	AuthorID       *uint
	Nickname       string
	CredentialHash string
}

// Attribute determines the ownership of a resource being created by actor.
//
// Members own their resources through the account: the supplied nickname and
// credential are discarded, the account nickname is used, and no credential
// is stored. Anonymous creators must supply both a display nickname and a
// credential; the credential is hashed before it ever reaches storage.
// Validation failures happen here, before any write.
func (r *Resolver) Attribute(actor Actor, suppliedNickname, suppliedCredential string) (OwnershipFields, error) {
	if userID, ok := actor.UserID(); ok {
		nickname := actor.Nickname()
		if nickname == "" {
			nickname = DefaultMemberNickname
		}
		id := userID
		return OwnershipFields{AuthorID: &id, Nickname: nickname}, nil
	}

	nickname := strings.TrimSpace(suppliedNickname)
	if nickname == "" || suppliedCredential == "" {
		return OwnershipFields{}, models.NewValidationError("Nickname and password are required for anonymous writes")
	}

	digest, err := r.hasher.Hash(suppliedCredential)
	if err != nil {
		return OwnershipFields{}, models.NewInternalError(err)
	}
	return OwnershipFields{Nickname: nickname, CredentialHash: digest}, nil
}
