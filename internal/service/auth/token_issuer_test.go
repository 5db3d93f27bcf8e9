package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/tasklog-api/internal/domain"
	"github.com/phrazzld/tasklog-api/internal/mocks"
	"github.com/phrazzld/tasklog-api/internal/service/auth"
	"github.com/phrazzld/tasklog-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newIssuer(t *testing.T, users *mocks.MockUserStore, verifier auth.PasswordVerifier, tokens auth.JWTService) *auth.TokenIssuer {
	t.Helper()
	issuer, err := auth.NewTokenIssuer(users, verifier, tokens, nil)
	require.NoError(t, err)
	return issuer
}

func TestNewTokenIssuerRequiresDependencies(t *testing.T) {
	t.Parallel()

	users := mocks.NewMockUserStore()
	verifier := &mocks.MockPasswordVerifier{}
	tokens := &mocks.MockJWTService{}

	_, err := auth.NewTokenIssuer(nil, verifier, tokens, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = auth.NewTokenIssuer(users, nil, tokens, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = auth.NewTokenIssuer(users, verifier, nil, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTokenIssuer_Issue(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	newUsers := func() *mocks.MockUserStore {
		users := mocks.NewMockUserStore()
		users.AddUser(&domain.User{ID: 1, Username: "alice", HashedPassword: string(hash)})
		return users
	}

	t.Run("valid credentials", func(t *testing.T) {
		t.Parallel()
		tokens := &mocks.MockJWTService{Token: "signed-token"}
		issuer := newIssuer(t, newUsers(), auth.NewBcryptVerifier(), tokens)

		token, err := issuer.Issue(context.Background(), "alice", "correct-horse")

		require.NoError(t, err)
		assert.Equal(t, "signed-token", token)
		assert.Equal(t, []int64{1}, tokens.GeneratedFor)
	})

	t.Run("unknown username skips password check", func(t *testing.T) {
		t.Parallel()
		verifier := &mocks.MockPasswordVerifier{}
		tokens := &mocks.MockJWTService{Token: "signed-token"}
		issuer := newIssuer(t, newUsers(), verifier, tokens)

		token, err := issuer.Issue(context.Background(), "mallory", "correct-horse")

		assert.ErrorIs(t, err, auth.ErrInvalidUsername)
		assert.Empty(t, token)
		assert.Zero(t, verifier.Calls(), "password must not be compared for an unknown user")
		assert.Empty(t, tokens.GeneratedFor)
	})

	t.Run("empty or unknown username is rejected whatever the password", func(t *testing.T) {
		t.Parallel()
		for _, tc := range []struct{ username, password string }{
			{"", ""},
			{"", "correct-horse"},
			{"mallory", ""},
		} {
			verifier := &mocks.MockPasswordVerifier{}
			issuer := newIssuer(t, newUsers(), verifier, &mocks.MockJWTService{})

			_, err := issuer.Issue(context.Background(), tc.username, tc.password)

			assert.ErrorIs(t, err, auth.ErrInvalidUsername, "username %q", tc.username)
			assert.Zero(t, verifier.Calls())
		}
	})

	t.Run("missing password for known user is a validation error", func(t *testing.T) {
		t.Parallel()
		verifier := &mocks.MockPasswordVerifier{}
		issuer := newIssuer(t, newUsers(), verifier, &mocks.MockJWTService{})

		_, err := issuer.Issue(context.Background(), "alice", "")

		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "password")
		assert.Zero(t, verifier.Calls())
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		tokens := &mocks.MockJWTService{Token: "signed-token"}
		issuer := newIssuer(t, newUsers(), auth.NewBcryptVerifier(), tokens)

		token, err := issuer.Issue(context.Background(), "alice", "battery-staple")

		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.Empty(t, token)
		assert.Empty(t, tokens.GeneratedFor)
	})

	t.Run("store failure is not reported as bad credentials", func(t *testing.T) {
		t.Parallel()
		users := newUsers()
		users.GetByUsernameError = errors.New("connection refused")
		issuer := newIssuer(t, users, auth.NewBcryptVerifier(), &mocks.MockJWTService{})

		_, err := issuer.Issue(context.Background(), "alice", "correct-horse")

		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrInvalidUsername)
		assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
		assert.NotErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("signing failure", func(t *testing.T) {
		t.Parallel()
		tokens := &mocks.MockJWTService{Err: errors.New("signing failed")}
		issuer := newIssuer(t, newUsers(), auth.NewBcryptVerifier(), tokens)

		_, err := issuer.Issue(context.Background(), "alice", "correct-horse")

		assert.ErrorContains(t, err, "signing failed")
	})
}

func TestTokenIssuerWithRealJWT(t *testing.T) {
	t.Parallel()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)
	users := mocks.NewMockUserStore()
	users.AddUser(&domain.User{ID: 9, Username: "bob", HashedPassword: string(hash)})

	tokens, err := auth.NewJWTService(testAuthConfig())
	require.NoError(t, err)
	issuer := newIssuer(t, users, auth.NewBcryptVerifier(), tokens)

	token, err := issuer.Issue(context.Background(), "bob", "correct-horse")
	require.NoError(t, err)

	claims, err := tokens.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, int64(9), claims.UserID)
	assert.Equal(t, 5*60.0, claims.ExpiresAt.Sub(claims.IssuedAt).Seconds())
}
