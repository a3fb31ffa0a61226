package shared

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name"  validate:"required"`
	Count int    `json:"count" validate:"min=1"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	var req sampleRequest
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"a","count":2,"extra":true}`))
	require.NoError(t, DecodeJSON(httptest.NewRecorder(), r, &req))
	assert.Equal(t, sampleRequest{Name: "a", Count: 2}, req)

	r = httptest.NewRequest("POST", "/", strings.NewReader(""))
	assert.ErrorIs(t, DecodeJSON(httptest.NewRecorder(), r, &req), ErrInvalidBody)

	r = httptest.NewRequest("POST", "/", strings.NewReader(`{"name":`))
	assert.ErrorIs(t, DecodeJSON(httptest.NewRecorder(), r, &req), ErrInvalidBody)

	r = httptest.NewRequest("POST", "/", strings.NewReader(`{"name":"`+strings.Repeat("x", MaxBodyBytes)+`"}`))
	assert.ErrorIs(t, DecodeJSON(httptest.NewRecorder(), r, &req), ErrInvalidBody)
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateRequest(&sampleRequest{Name: "a", Count: 1}))
	assert.Error(t, ValidateRequest(&sampleRequest{Count: 1}))
	assert.Error(t, ValidateRequest(&sampleRequest{Name: "a"}))
}
