// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"corkboard/internal/models"
)

const (
	// Anonymous credential bounds come from the frontend's password modal.
	AnonPasswordMinLen = 4
	AnonPasswordMaxLen = 8

	maxTitleLen    = 200
	maxContentLen  = 50000
	maxNicknameLen = 30
	maxCommentLen  = 10000
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidatePostInput checks the title and content of a post write.
func ValidatePostInput(title, content string) error {
	if strings.TrimSpace(title) == "" {
		return models.NewValidationError("title is required")
	}
	if len(title) > maxTitleLen {
		return models.NewValidationError(fmt.Sprintf("title must not exceed %d characters", maxTitleLen))
	}
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("content is required")
	}
	if len(content) > maxContentLen {
		return models.NewValidationError(fmt.Sprintf("content must not exceed %d characters", maxContentLen))
	}
	return nil
}

// ValidateCommentContent checks the body of a comment write.
func ValidateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("content is required")
	}
	if len(content) > maxCommentLen {
		return models.NewValidationError(fmt.Sprintf("comment must not exceed %d characters", maxCommentLen))
	}
	return nil
}

// ValidateAnonCredential checks a caller-chosen anonymous credential.
func ValidateAnonCredential(password string) error {
	if len(password) < AnonPasswordMinLen {
		return models.NewValidationError(fmt.Sprintf("password must be at least %d characters long", AnonPasswordMinLen))
	}
	if len(password) > AnonPasswordMaxLen {
		return models.NewValidationError(fmt.Sprintf("password must not exceed %d characters", AnonPasswordMaxLen))
	}
	return nil
}

// ValidateNickname checks a display nickname (account or anonymous).
func ValidateNickname(nickname string) error {
	trimmed := strings.TrimSpace(nickname)
	if trimmed == "" {
		return models.NewValidationError("nickname is required")
	}
	if len(trimmed) > maxNicknameLen {
		return models.NewValidationError(fmt.Sprintf("nickname must not exceed %d characters", maxNicknameLen))
	}
	return nil
}

// ValidateAccountPassword checks a signup password. Account passwords are
// held to a higher bar than the short anonymous credentials.
func ValidateAccountPassword(password string) error {
	if len(password) < 8 {
		return models.NewValidationError("password must be at least 8 characters long")
	}
	if len(password) > 128 {
		return models.NewValidationError("password must not exceed 128 characters")
	}
	return nil
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return models.NewValidationError("invalid email format")
	}
	if len(email) > 254 {
		return models.NewValidationError("email must not exceed 254 characters")
	}
	return nil
}
