package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/tasklog-api/internal/api/shared"
	"github.com/phrazzld/tasklog-api/internal/domain"
	"github.com/phrazzld/tasklog-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubIssuer struct {
	token string
	err   error
	calls int
}

func (s *stubIssuer) Issue(_ context.Context, username, password string) (string, error) {
	s.calls++
	return s.token, s.err
}

func TestAuthHandler_Token(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		body         string
		issuer       *stubIssuer
		wantStatus   int
		wantError    string
		wantFields   []string
		wantToken    string
		issuerCalled bool
	}{
		{
			name:         "valid credentials",
			body:         `{"username":"alice","password":"correct-horse"}`,
			issuer:       &stubIssuer{token: "signed.jwt.token"},
			wantStatus:   http.StatusOK,
			wantToken:    "signed.jwt.token",
			issuerCalled: true,
		},
		{
			name:         "unknown username",
			body:         `{"username":"mallory","password":"x"}`,
			issuer:       &stubIssuer{err: auth.ErrInvalidUsername},
			wantStatus:   http.StatusUnauthorized,
			wantError:    "Invalid username",
			issuerCalled: true,
		},
		{
			name:         "wrong password",
			body:         `{"username":"alice","password":"wrong"}`,
			issuer:       &stubIssuer{err: auth.ErrInvalidCredentials},
			wantStatus:   http.StatusUnauthorized,
			wantError:    "Invalid credentials",
			issuerCalled: true,
		},
		{
			name:         "missing password for known user",
			body:         `{"username":"alice"}`,
			issuer:       &stubIssuer{err: domain.NewValidationError("password", "is required")},
			wantStatus:   http.StatusBadRequest,
			wantError:    "Validation failed",
			wantFields:   []string{"password"},
			issuerCalled: true,
		},
		{
			name:         "empty object",
			body:         `{}`,
			issuer:       &stubIssuer{err: auth.ErrInvalidUsername},
			wantStatus:   http.StatusUnauthorized,
			wantError:    "Invalid username",
			issuerCalled: true,
		},
		{
			name:         "unknown username without password",
			body:         `{"username":"mallory"}`,
			issuer:       &stubIssuer{err: auth.ErrInvalidUsername},
			wantStatus:   http.StatusUnauthorized,
			wantError:    "Invalid username",
			issuerCalled: true,
		},
		{
			name:       "malformed json",
			body:       `{"username":`,
			issuer:     &stubIssuer{},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request format",
		},
		{
			name:         "store failure",
			body:         `{"username":"alice","password":"correct-horse"}`,
			issuer:       &stubIssuer{err: errors.New("failed to look up user: connection refused")},
			wantStatus:   http.StatusInternalServerError,
			wantError:    "An unexpected error occurred",
			issuerCalled: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			handler := NewAuthHandler(tt.issuer)

			req := httptest.NewRequest(http.MethodPost, "/token/", bytes.NewBufferString(tt.body))
			req = req.WithContext(shared.SetTraceID(req.Context()))
			rr := httptest.NewRecorder()

			handler.Token(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.issuerCalled, tt.issuer.calls > 0)

			if tt.wantToken != "" {
				var resp map[string]string
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, map[string]string{"Token": tt.wantToken}, resp)
				return
			}

			var errResp shared.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
			assert.Equal(t, tt.wantError, errResp.Error)
			assert.NotEmpty(t, errResp.TraceID)
			for _, f := range tt.wantFields {
				assert.Contains(t, errResp.Fields, f)
			}
			assert.NotContains(t, rr.Body.String(), "connection refused")
		})
	}
}
