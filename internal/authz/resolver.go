package authz

// Deny reasons surfaced to clients. Services map them onto 401/403 responses.
const (
	ReasonNotOwner           = "not the owner"
	ReasonMemberOnly         = "must be the owning account"
	ReasonCredentialMismatch = "credential mismatch"
)

// Decision is the outcome of an authorization check. Resource lookup misses
// never reach the resolver; repositories report those first so a 404 is
// always distinguishable from a denial.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow is the single allowing decision.
var Allow = Decision{Allowed: true}

// Deny returns a denying decision with the given reason.
func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Resolver decides mutations (edit, delete) against a resource's ownership.
type Resolver struct {
	hasher Hasher
}

// NewResolver returns a Resolver verifying anonymous credentials with h.
func NewResolver(h Hasher) *Resolver {
	return &Resolver{hasher: h}
}

// Hasher exposes the resolver's credential hasher for attribution.
func (r *Resolver) Hasher() Hasher {
	return r.hasher
}

// Authorize applies the decision table for a mutating operation.
//
//	MemberOwned    + same member      -> Allow
//	MemberOwned    + other member     -> Deny (not the owner)
//	MemberOwned    + anonymous        -> Deny (must be the owning account)
//	AnonymousOwned + matching secret  -> Allow (any actor)
//	AnonymousOwned + missing/mismatch -> Deny (credential mismatch)
//
// A supplied credential is ignored for member-owned resources: holding the
// anonymous secret never grants access to an account's resource.
func (r *Resolver) Authorize(actor Actor, own Ownership, credential string) Decision {
	switch o := own.(type) {
	case MemberOwned:
		userID, ok := actor.UserID()
		if !ok {
			return Deny(ReasonMemberOnly)
		}
		if userID != o.UserID {
			return Deny(ReasonNotOwner)
		}
		return Allow
	case AnonymousOwned:
		if credential == "" {
			return Deny(ReasonCredentialMismatch)
		}
		if !r.hasher.Verify(credential, o.CredentialHash) {
			return Deny(ReasonCredentialMismatch)
		}
		return Allow
	default:
		// Unreachable for the closed sum; fail closed regardless.
		return Deny(ReasonCredentialMismatch)
	}
}
