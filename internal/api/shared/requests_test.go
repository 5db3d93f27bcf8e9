package shared

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/tasklog-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name"  validate:"required,max=5"`
	Count *int   `json:"count" validate:"required,gte=0"`
}

type selfValidating struct{ called bool }

func (s *selfValidating) Validate() error {
	s.called = true
	return nil
}

func newBodyRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
}

func TestDecodeJSON(t *testing.T) {
	var req sampleRequest
	require.NoError(t, DecodeJSON(newBodyRequest(`{"name":"abc","count":0}`), &req))
	assert.Equal(t, "abc", req.Name)
	require.NotNil(t, req.Count)
	assert.Equal(t, 0, *req.Count)

	assert.ErrorIs(t, DecodeJSON(newBodyRequest(""), &req), ErrEmptyBody)
	assert.Error(t, DecodeJSON(newBodyRequest(`{"name":`), &req))
	assert.Error(t, DecodeJSON(newBodyRequest(`{"count":"many"}`), &req))
	assert.Error(t, DecodeJSON(newBodyRequest(`{} {}`), &req))
}

func TestValidateRequest(t *testing.T) {
	zero := 0
	assert.NoError(t, ValidateRequest(&sampleRequest{Name: "abc", Count: &zero}))

	err := ValidateRequest(&sampleRequest{Name: "toolong"})
	require.ErrorIs(t, err, domain.ErrValidation)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be at most 5", verr.Fields["name"])
	assert.Equal(t, "is required", verr.Fields["count"])

	negative := -1
	err = ValidateRequest(&sampleRequest{Name: "ok", Count: &negative})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be greater than or equal to 0", verr.Fields["count"])
}

func TestValidateRequestUsesValidateMethod(t *testing.T) {
	s := &selfValidating{}
	assert.NoError(t, ValidateRequest(s))
	assert.True(t, s.called)
}
