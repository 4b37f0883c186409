package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	ts := NewTokenService("super-secret")

	token, err := ts.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.ID)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenService("right-secret").Issue("user-123")
	require.NoError(t, err)

	_, err = NewTokenService("wrong-secret").Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyMalformed(t *testing.T) {
	t.Parallel()

	ts := NewTokenService("secret")

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := ts.Verify(tok)
		assert.ErrorIs(t, err, ErrInvalidToken, "token %q", tok)
	}
}

func TestVerifyMissingIDClaim(t *testing.T) {
	t.Parallel()

	// A token signed with the right secret but without an id claim.
	ts := NewTokenService("secret")
	token, err := ts.Issue("")
	require.NoError(t, err)

	claims, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Empty(t, claims.ID)
}
