package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/tasklog-api/internal/domain"
	"github.com/phrazzld/tasklog-api/internal/platform/logger"
	"github.com/phrazzld/tasklog-api/internal/store"
)

// UserLookup is the part of store.UserStore the issuer needs.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// TokenIssuer exchanges a username and password for a signed access token.
type TokenIssuer struct {
	users    UserLookup
	verifier PasswordVerifier
	tokens   JWTService
	logger   *slog.Logger
}

// NewTokenIssuer creates a TokenIssuer. If logger is nil, slog.Default is used.
func NewTokenIssuer(
	users UserLookup,
	verifier PasswordVerifier,
	tokens JWTService,
	logger *slog.Logger,
) (*TokenIssuer, error) {
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil")
	}
	if verifier == nil {
		return nil, domain.NewValidationError("verifier", "cannot be nil")
	}
	if tokens == nil {
		return nil, domain.NewValidationError("tokens", "cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TokenIssuer{
		users:    users,
		verifier: verifier,
		tokens:   tokens,
		logger:   logger.With(slog.String("component", "token_issuer")),
	}, nil
}

// Issue returns a signed access token for the user.
//
// An empty or unknown username yields ErrInvalidUsername without any password
// comparison. For a known user, a missing password is a validation error and
// a wrong one yields ErrInvalidCredentials.
func (i *TokenIssuer) Issue(ctx context.Context, username, password string) (string, error) {
	log := logger.FromContextOrDefault(ctx, i.logger)

	if username == "" {
		log.Debug("token requested without a username")
		return "", ErrInvalidUsername
	}

	user, err := i.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Debug("token requested for unknown username")
			return "", ErrInvalidUsername
		}
		log.Error("failed to look up user for token", slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if password == "" {
		return "", domain.NewValidationError("password", "is required")
	}

	if err := i.verifier.Compare(user.HashedPassword, password); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			log.Debug("token requested with wrong password", slog.Int64("user_id", user.ID))
		} else {
			// The stored hash itself is unusable.
			log.Error("failed to verify password",
				slog.Int64("user_id", user.ID),
				slog.String("error", err.Error()))
		}
		return "", ErrInvalidCredentials
	}

	token, err := i.tokens.GenerateToken(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	log.Info("token issued", slog.Int64("user_id", user.ID))
	return token, nil
}
