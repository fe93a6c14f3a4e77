package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 { return &v }

func TestCreateVerifyRoundTrip(t *testing.T) {
	svc := New("test-secret")

	signed, err := svc.Create(Payload{UserID: int64Ptr(42)}, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, signed)

	payload, ok := svc.Verify(signed)
	assert.True(t, ok)
	assert.NotNil(t, payload.UserID)
	assert.Equal(t, int64(42), *payload.UserID)
	assert.Empty(t, payload.RefreshToken)
}

func TestVerifyEmbeddedRefreshToken(t *testing.T) {
	svc := New("test-secret")

	refresh, err := svc.Create(Payload{UserID: int64Ptr(7)}, 168*time.Hour)
	assert.NoError(t, err)

	access, err := svc.Create(Payload{RefreshToken: refresh}, 15*time.Minute)
	assert.NoError(t, err)

	payload, ok := svc.Verify(access)
	assert.True(t, ok)
	assert.Nil(t, payload.UserID)
	assert.Equal(t, refresh, payload.RefreshToken)

	inner, ok := svc.Verify(payload.RefreshToken)
	assert.True(t, ok)
	assert.Equal(t, int64(7), *inner.UserID)
}

func TestVerifyExpired(t *testing.T) {
	svc := New("test-secret")

	signed, err := svc.Create(Payload{UserID: int64Ptr(1)}, -time.Minute)
	assert.NoError(t, err)

	_, ok := svc.Verify(signed)
	assert.False(t, ok)
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, err := New("secret-a").Create(Payload{UserID: int64Ptr(1)}, time.Hour)
	assert.NoError(t, err)

	_, ok := New("secret-b").Verify(signed)
	assert.False(t, ok)
}

func TestVerifyMalformed(t *testing.T) {
	svc := New("test-secret")

	for _, input := range []string{"", "garbage", "a.b.c"} {
		_, ok := svc.Verify(input)
		assert.False(t, ok, "input %q should not verify", input)
	}
}
