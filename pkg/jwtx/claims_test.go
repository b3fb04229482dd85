package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/folio/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestValidateIssuer(t *testing.T) {
	c := &jwtx.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: "folio",
		},
	}

	t.Run("matching issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer("folio"))
	})

	t.Run("empty expected issuer", func(t *testing.T) {
		require.NoError(t, c.ValidateIssuer(""))
	})

	t.Run("mismatched issuer", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateIssuer("someone-else"), jwtx.ErrIssuer)
	})
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("valid token", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(1 * time.Minute)),
			},
		}
		require.NoError(t, claims.ValidateExpiry())
	})

	t.Run("expired token", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Minute)),
			},
		}
		require.ErrorIs(t, claims.ValidateExpiry(), jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				NotBefore: jwt.NewNumericDate(now.Add(1 * time.Minute)),
			},
		}
		require.ErrorIs(t, claims.ValidateExpiry(), jwtx.ErrNotYetValid)
	})

	t.Run("leeway absorbs skew", func(t *testing.T) {
		claims := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(-10 * time.Second)),
			},
		}
		require.NoError(t, claims.ValidateExpiryWithLeeway(30*time.Second))
		require.ErrorIs(t, claims.ValidateExpiryWithLeeway(time.Second), jwtx.ErrExpired)
	})
}

func TestNewAccessAndRefreshClaims(t *testing.T) {
	now := time.Now().UTC()
	p := jwtx.Profile{UserID: "u1", Username: "dev1", Email: "dev1@x.com", FullName: "Dev One", Role: "admin"}

	access := jwtx.NewAccessClaims(p, "folio", 15*time.Minute, now)
	require.Equal(t, "u1", access.Subject)
	require.Equal(t, "admin", access.Role)
	require.Equal(t, "dev1", access.Username)
	require.WithinDuration(t, now.Add(15*time.Minute), access.ExpiresAt.Time, time.Second)

	refresh := jwtx.NewRefreshClaims("u1", "folio", time.Hour, now)
	require.Equal(t, "u1", refresh.Subject)
	require.Empty(t, refresh.Role)
	require.Empty(t, refresh.Username)

	require.NotEqual(t, access.ID, refresh.ID, "each token gets its own jti")
}
