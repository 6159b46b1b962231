// Copyright (c) 2026 Folio. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/folio/internal/platform/sec"
)

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

/*
TestTokenService_RoundTrip signs and verifies a token.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	key := newKey(t)
	service := sec.NewTokenService(key, &key.PublicKey, "folio.test")

	token, err := service.GenerateAccessToken(42, "reviewer-ann", sec.RoleReviewer, time.Minute)
	require.NoError(t, err)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "reviewer", claims.Role)
	assert.Equal(t, "42", claims.Subject)
}

/*
TestTokenService_Rejects covers foreign keys, wrong issuers and expiry.
*/
func TestTokenService_Rejects(t *testing.T) {
	key := newKey(t)
	other := newKey(t)

	trusted := sec.NewTokenService(nil, &key.PublicKey, "folio.test")

	tests := []struct {
		name   string
		signer *sec.TokenService
		ttl    time.Duration
	}{
		{"foreign_key", sec.NewTokenService(other, &other.PublicKey, "folio.test"), time.Minute},
		{"wrong_issuer", sec.NewTokenService(key, &key.PublicKey, "elsewhere"), time.Minute},
		{"expired", sec.NewTokenService(key, &key.PublicKey, "folio.test"), -time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.signer.GenerateAccessToken(1, "u", sec.RoleEditor, tt.ttl)
			require.NoError(t, err)

			_, err = trusted.VerifyToken(token)
			assert.Error(t, err)
		})
	}
}

/*
TestTokenService_VerifyOnly refuses to sign without a private key.
*/
func TestTokenService_VerifyOnly(t *testing.T) {
	key := newKey(t)
	service := sec.NewTokenService(nil, &key.PublicKey, "folio.test")

	_, err := service.GenerateAccessToken(1, "u", sec.RoleReader, time.Minute)
	assert.ErrorIs(t, err, sec.ErrSigningDisabled)
}

/*
TestUserRole_AtLeast checks the role ladder.
*/
func TestUserRole_AtLeast(t *testing.T) {
	assert.True(t, sec.RoleAdmin.AtLeast(sec.RoleReviewer))
	assert.True(t, sec.RoleReviewer.AtLeast(sec.RoleEditor))
	assert.True(t, sec.RoleEditor.AtLeast(sec.RoleEditor))
	assert.False(t, sec.RoleEditor.AtLeast(sec.RoleReviewer))
	assert.False(t, sec.UserRole("guest").AtLeast(sec.RoleReader))
}
