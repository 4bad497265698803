package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/skilltrackhq/backend/internal/server/auth"
)

// Fixed cookie names for the two token classes.
const (
	accessTokenCookie  = "access_token"
	refreshTokenCookie = "refresh_token"
)

func tokenCookie(name, value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Expires:  expires,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteNoneMode,
	}
}

// setTokenCookies stores both bearer credentials as httpOnly cookies with
// expirations matching the token TTLs.
func setTokenCookies(c *fiber.Ctx, pair *auth.TokenPair, tokens *auth.Tokens) {
	now := time.Now()
	c.Cookie(tokenCookie(accessTokenCookie, pair.AccessToken, now.Add(tokens.TTL(auth.AccessToken))))
	c.Cookie(tokenCookie(refreshTokenCookie, pair.RefreshToken, now.Add(tokens.TTL(auth.RefreshToken))))
}

// clearTokenCookies instructs the client to discard both credentials. There
// is no server-side invalidation; the tokens expire on their own.
func clearTokenCookies(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(tokenCookie(accessTokenCookie, "", expired))
	c.Cookie(tokenCookie(refreshTokenCookie, "", expired))
}
