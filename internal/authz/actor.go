// Package authz implements the board's dual-ownership authorization model:
// every post and comment is either member-owned (attributed to an account) or
// anonymous-owned (guarded by a caller-chosen credential), and every mutation
// is decided against that ownership.
package authz

import (
	"corkboard/internal/models"
)

// Actor is the identity performing a request. The zero value is anonymous.
type Actor struct {
	userID   uint
	nickname string
	role     models.Role
	member   bool
}

// Anonymous returns the actor for a request carrying no session token.
// A missing token is legitimate anonymous access; an invalid token never
// produces an Actor at all (the middleware rejects it outright).
func Anonymous() Actor {
	return Actor{}
}

// Member returns the actor for a verified session.
func Member(userID uint, nickname string, role models.Role) Actor {
	return Actor{userID: userID, nickname: nickname, role: role, member: true}
}

// IsMember reports whether the actor holds a verified account identity.
func (a Actor) IsMember() bool {
	return a.member
}

// UserID returns the account ID and whether the actor is a member.
func (a Actor) UserID() (uint, bool) {
	return a.userID, a.member
}

// Nickname returns the account nickname; empty for anonymous actors.
func (a Actor) Nickname() string {
	return a.nickname
}

// Role returns the account role; empty for anonymous actors.
func (a Actor) Role() models.Role {
	return a.role
}
