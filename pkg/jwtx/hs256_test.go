package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const (
	accessSecret  = "access-secret-access-secret-0123456789"
	refreshSecret = "refresh-secret-refresh-secret-012345678"
)

func mustSigner(t *testing.T, secret string) *jwtx.HS256Signer {
	t.Helper()
	s, err := jwtx.NewSignerHS256(secret)
	require.NoError(t, err)
	return s
}

func TestHS256SignAndVerify(t *testing.T) {
	signer := mustSigner(t, accessSecret)
	verifier := jwtx.NewVerifierHS256(accessSecret, "folio")

	claims := jwtx.NewAccessClaims(jwtx.Profile{
		UserID:   "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV",
		Username: "dev1",
		Email:    "dev1@x.com",
		Role:     "user",
	}, "folio", time.Minute, time.Now())

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.Equal(t, "HS256", signer.Alg())

	parsed, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims.Subject, parsed.Subject)
	require.Equal(t, "dev1", parsed.Username)
	require.Equal(t, "user", parsed.Role)
	require.Equal(t, claims.ID, parsed.ID)
}

func TestHS256RejectsWeakSecret(t *testing.T) {
	_, err := jwtx.NewSignerHS256("short")
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

func TestHS256VerifyFailures(t *testing.T) {
	now := time.Now()
	access := mustSigner(t, accessSecret)
	refresh := mustSigner(t, refreshSecret)
	verifier := jwtx.NewVerifierHS256(accessSecret, "folio")

	t.Run("wrong secret", func(t *testing.T) {
		// A refresh token must never pass as an access token.
		tok, err := refresh.Sign(jwtx.NewRefreshClaims("u1", "folio", time.Hour, now))
		require.NoError(t, err)

		_, err = verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("expired", func(t *testing.T) {
		tok, err := access.Sign(jwtx.NewRefreshClaims("u1", "folio", time.Minute, now.Add(-time.Hour)))
		require.NoError(t, err)

		_, err = verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		tok, err := access.Sign(jwtx.NewRefreshClaims("u1", "elsewhere", time.Hour, now))
		require.NoError(t, err)

		_, err = verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("missing subject", func(t *testing.T) {
		tok, err := access.Sign(jwtx.NewRefreshClaims("", "folio", time.Hour, now))
		require.NoError(t, err)

		_, err = verifier.Verify(tok)
		require.ErrorIs(t, err, jwtx.ErrNoSubject)
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := verifier.Verify("not.a.jwt")
		require.Error(t, err)

		_, err = verifier.Verify(strings.Repeat("x", 10))
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("algorithm confusion", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS512, jwtx.NewRefreshClaims("u1", "folio", time.Hour, now))
		raw, err := tok.SignedString([]byte(accessSecret))
		require.NoError(t, err)

		_, err = verifier.Verify(raw)
		require.Error(t, err)
	})
}
