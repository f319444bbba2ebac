package utils

const (
	// AuthCookieName is the cookie the token middleware reads.
	AuthCookieName = "sehhatAuth"

	// TokenMaxAge in seconds
	TokenMaxAge = 3600 * 2
)
