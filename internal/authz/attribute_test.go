package authz

import (
	"errors"
	"testing"

	"corkboard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeMember(t *testing.T) {
	r := testResolver(t)

	fields, err := r.Attribute(Member(42, "jin", models.RoleUser), "ignored", "ignored")
	require.NoError(t, err)
	require.NotNil(t, fields.AuthorID)
	assert.Equal(t, uint(42), *fields.AuthorID)
	assert.Equal(t, "jin", fields.Nickname)
	assert.Empty(t, fields.CredentialHash, "member resources store no anonymous credential")
}

func TestAttributeMemberFallbackNickname(t *testing.T) {
	r := testResolver(t)

	fields, err := r.Attribute(Member(42, "", models.RoleUser), "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultMemberNickname, fields.Nickname)
}

func TestAttributeAnonymous(t *testing.T) {
	r := testResolver(t)

	fields, err := r.Attribute(Anonymous(), "guest", "1234")
	require.NoError(t, err)
	assert.Nil(t, fields.AuthorID)
	assert.Equal(t, "guest", fields.Nickname)
	require.NotEmpty(t, fields.CredentialHash)
	assert.NotEqual(t, "1234", fields.CredentialHash, "credential must be stored hashed")
	assert.True(t, r.Hasher().Verify("1234", fields.CredentialHash))
}

func TestAttributeAnonymousRejectsIncompleteInput(t *testing.T) {
	r := testResolver(t)

	tests := []struct {
		name     string
		nickname string
		password string
	}{
		{name: "missing both", nickname: "", password: ""},
		{name: "missing password", nickname: "guest", password: ""},
		{name: "missing nickname", nickname: "", password: "1234"},
		{name: "whitespace nickname", nickname: "   ", password: "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := r.Attribute(Anonymous(), tt.nickname, tt.password)
			require.Error(t, err)
			var appErr *models.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}
