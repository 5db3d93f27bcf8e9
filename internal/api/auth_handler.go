package api

import (
	"context"
	"net/http"

	"github.com/phrazzld/tasklog-api/internal/api/shared"
)

// TokenIssuer exchanges credentials for a signed access token.
type TokenIssuer interface {
	Issue(ctx context.Context, username, password string) (string, error)
}

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	issuer TokenIssuer
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(issuer TokenIssuer) *AuthHandler {
	return &AuthHandler{issuer: issuer}
}

// Token handles POST /token/. An empty or unknown username is rejected with
// 401 before the password is looked at.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req TokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	token, err := h.issuer.Issue(r.Context(), req.Username, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TokenResponse{Token: token})
}
