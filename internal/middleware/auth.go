// Package middleware provides authentication, logging, rate limiting and
// tracing middleware for the application.
package middleware

import (
	"context"
	"strings"

	"corkboard/internal/authz"
	"corkboard/internal/models"
	"corkboard/internal/token"

	"github.com/gofiber/fiber/v2"
)

// ActorKey is the Fiber locals key under which the request actor is stored.
const ActorKey = "actor"

// OptionalAuth derives the request actor from an optional bearer token.
//
// No Authorization header means a legitimate anonymous request and the chain
// proceeds with an anonymous actor. A header that is present but malformed,
// unverifiable or expired fails the request with 401: an invalid credential
// is an attack signal or client bug, never downgraded to anonymous access.
func OptionalAuth(mgr *token.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			c.Locals(ActorKey, authz.Anonymous())
			return c.Next()
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid authorization header format"))
		}

		claims, err := mgr.Verify(parts[1])
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Invalid or expired token"))
		}

		storeActor(c, authz.Member(claims.UserID, claims.Nickname, claims.Role), claims.UserID)
		return c.Next()
	}
}

// AuthRequired enforces a verified member identity. Unlike OptionalAuth, a
// missing header is also a 401.
func AuthRequired(mgr *token.Manager) fiber.Handler {
	optional := OptionalAuth(mgr)
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}
		return optional(c)
	}
}

func storeActor(c *fiber.Ctx, actor authz.Actor, userID uint) {
	c.Locals(ActorKey, actor)
	c.Locals("userID", userID)
	// Sync to UserContext for logging and downstream services
	ctx := context.WithValue(c.UserContext(), UserIDKey, userID)
	c.SetUserContext(ctx)
}

// ActorFromCtx returns the actor derived by the auth middleware, or the
// anonymous actor when the middleware did not run.
func ActorFromCtx(c *fiber.Ctx) authz.Actor {
	if actor, ok := c.Locals(ActorKey).(authz.Actor); ok {
		return actor
	}
	return authz.Anonymous()
}
