package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Claims is the JWT payload issued by the auth provider.
type Claims struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

// GenerateToken signs a token for the given user; used by dev tooling and
// tests.
func GenerateToken(secret []byte, userID, email, fullName string, ttl time.Duration) (string, error) {
	claims := &Claims{
		Email:    email,
		FullName: fullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "pixer-marketplace",
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

func parseToken(secret []byte, tokenString string) *Claims {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil
	}
	return claims
}

func bearerToken(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	parts := strings.Fields(auth)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

// Auth requires a valid bearer token and puts the user id on the context.
func Auth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}
			claims := parseToken(secret, token)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			c.Set("user_id", claims.Subject)
			c.Set("auth_claims", claims)
			return next(c)
		}
	}
}

// OptionalAuth attaches the user when a valid token is present and lets the
// request through either way. Checkout uses it: unauthenticated users get
// the auth prompt instead of a 401.
func OptionalAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if token := bearerToken(c); token != "" {
				if claims := parseToken(secret, token); claims != nil {
					c.Set("user_id", claims.Subject)
					c.Set("auth_claims", claims)
				}
			}
			return next(c)
		}
	}
}

func UserID(c echo.Context) string {
	if v, ok := c.Get("user_id").(string); ok {
		return v
	}
	return ""
}

func GetClaims(c echo.Context) *Claims {
	if v, ok := c.Get("auth_claims").(*Claims); ok {
		return v
	}
	return nil
}
