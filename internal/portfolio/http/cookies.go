package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/folio/internal/portfolio/domain"
	"github.com/aussiebroadwan/folio/pkg/httpx"
)

const RefreshTokenCookie = "refreshToken"

// CookieConfig controls the attributes of the token cookies.
type CookieConfig struct {
	Secure   bool
	SameSite http.SameSite
}

func (c CookieConfig) cookie(name, value string, expires time.Time) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	}
	if expires.IsZero() {
		ck.MaxAge = -1
	} else {
		ck.Expires = expires
		ck.MaxAge = int(time.Until(expires).Seconds())
	}
	return ck
}

func (c CookieConfig) setTokens(w http.ResponseWriter, pair domain.TokenPair) {
	http.SetCookie(w, c.cookie(httpx.AccessTokenCookie, pair.AccessToken, pair.AccessExpiresAt))
	http.SetCookie(w, c.cookie(RefreshTokenCookie, pair.RefreshToken, pair.RefreshExpiresAt))
}

func (c CookieConfig) clearTokens(w http.ResponseWriter) {
	http.SetCookie(w, c.cookie(httpx.AccessTokenCookie, "", time.Time{}))
	http.SetCookie(w, c.cookie(RefreshTokenCookie, "", time.Time{}))
}
