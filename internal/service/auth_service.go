// Package service holds the business logic between HTTP handlers and the
// data access layer.
package service

import (
	"context"
	"strings"

	"corkboard/internal/models"
	"corkboard/internal/repository"
	"corkboard/internal/token"
	"corkboard/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type SignupInput struct {
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthService handles member account signup, login and token issuance.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *token.Manager
}

func NewAuthService(userRepo repository.UserRepository, tokens *token.Manager) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Signup registers a member account and returns it with a fresh token.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	nickname := strings.TrimSpace(in.Nickname)

	if err := validation.ValidateEmail(email); err != nil {
		return nil, "", err
	}
	if err := validation.ValidateNickname(nickname); err != nil {
		return nil, "", err
	}
	if err := validation.ValidateAccountPassword(in.Password); err != nil {
		return nil, "", err
	}

	// Pre-check for a friendly conflict message; the unique indexes still
	// catch concurrent signups inside Create.
	taken, err := s.userRepo.ExistsByEmailOrNickname(ctx, email, nickname)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", models.NewConflictError("An account with that email or nickname already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}

	user := &models.User{
		Email:    email,
		Nickname: nickname,
		Password: string(hashed),
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	signed, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, signed, nil
}

// Login authenticates a member by email and password. Failures are reported
// uniformly so a caller cannot probe which accounts exist.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", models.NewUnauthorizedError("Invalid email or password")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)) != nil {
		return nil, "", models.NewUnauthorizedError("Invalid email or password")
	}

	signed, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, signed, nil
}
