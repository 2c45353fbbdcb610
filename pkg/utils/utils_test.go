package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, "debt-ledger")
	sid := uuid.New()

	token, expiresAt, err := m.GenerateSessionToken(sid, 3, "maria", "admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, sid, claims.SessionID)
	assert.Equal(t, int64(3), claims.OperatorID)
	assert.Equal(t, "maria", claims.Username)
	assert.Equal(t, "admin", claims.Role)
}

func TestJWTManager_RejectsForeignSecret(t *testing.T) {
	a := NewJWTManager("one", time.Hour, "debt-ledger")
	b := NewJWTManager("two", time.Hour, "debt-ledger")

	token, _, err := a.GenerateSessionToken(uuid.New(), 1, "joao", "operator")
	require.NoError(t, err)

	_, err = b.ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestIsNumeric(t *testing.T) {
	assert.True(t, IsNumeric("1234"))
	assert.True(t, IsNumeric("0"))
	assert.False(t, IsNumeric(""))
	assert.False(t, IsNumeric("12a4"))
	assert.False(t, IsNumeric(" 12"))
	assert.False(t, IsNumeric("١٢"))
}
