package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashFrom(t *testing.T, out string) string {
	t.Helper()
	prefix := "MINDCREDIT_AUTH_PASSWORD_HASH="
	require.True(t, strings.HasPrefix(out, prefix), "unexpected output %q", out)
	return strings.TrimSpace(strings.TrimPrefix(out, prefix))
}

func TestRun_Argument(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(strings.NewReader(""), &out, []string{"s3cret"}, bcrypt.MinCost))

	hash := hashFrom(t, out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret")))
}

func TestRun_Stdin(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(strings.NewReader("тест123\n"), &out, nil, bcrypt.MinCost))

	hash := hashFrom(t, out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("тест123")))
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(strings.NewReader(""), &out, nil, bcrypt.MinCost))
	assert.Error(t, run(strings.NewReader(""), &out, []string{"a", "b"}, bcrypt.MinCost))
	assert.Empty(t, out.String())
}
