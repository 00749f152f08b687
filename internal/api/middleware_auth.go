package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionScope = "healthlog"

type sessionClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// AuthRequired lets every request through while no report password exists
// (setup mode). Once one is set, a session token is required.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	hasPassword, err := handler.passwords.Status()
	if err != nil {
		return respondError(c, err)
	}
	if !hasPassword {
		return c.Next()
	}

	if err := handler.authenticateRequest(c); err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.Next()
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) error {
	rawToken := bearerToken(c)
	if rawToken == "" {
		rawToken = strings.TrimSpace(c.Cookies(authCookieName))
	}
	if rawToken == "" {
		return errors.New("missing session token")
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}
	if claims.Scope != sessionScope {
		return errors.New("invalid token scope")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(handler.now()) {
		return errors.New("token expired")
	}
	return nil
}

func bearerToken(c *fiber.Ctx) string {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func (handler *Handler) buildToken(now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(handler.sessionTTL)
	claims := sessionClaims{
		Scope: sessionScope,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   "owner",
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(handler.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (handler *Handler) setAuthCookie(c *fiber.Ctx, token string, expiresAt time.Time) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    token,
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  expiresAt,
	})
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

func (handler *Handler) issueSession(c *fiber.Ctx) (fiber.Map, error) {
	token, expiresAt, err := handler.buildToken(handler.now())
	if err != nil {
		return nil, err
	}
	handler.setAuthCookie(c, token, expiresAt)
	return fiber.Map{"token": token, "expires_at": expiresAt}, nil
}
