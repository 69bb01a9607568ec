package authctx

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const localsKey = "auth_claims"

// Claims is the typed view of a verified bearer token. Handlers and
// services consume this value only, never raw claim lookups.
type Claims struct {
	UserID      uuid.UUID
	Email       string
	DisplayName string
	ExpiresAt   time.Time
}

// FromToken builds Claims from the *jwt.Token the JWT middleware stored
// in context locals. Signature and expiry are already verified by the
// middleware; issuer, audience and subject shape are checked here.
func FromToken(token interface{}, issuer, audience string) (*Claims, error) {
	jwtToken, ok := token.(*jwt.Token)
	if !ok {
		return nil, errors.New("invalid token in context")
	}

	mapClaims, ok := jwtToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	if iss, err := mapClaims.GetIssuer(); err != nil || iss != issuer {
		return nil, errors.New("invalid issuer")
	}
	aud, err := mapClaims.GetAudience()
	if err != nil {
		return nil, errors.New("invalid audience")
	}
	audOK := false
	for _, a := range aud {
		if a == audience {
			audOK = true
			break
		}
	}
	if !audOK {
		return nil, errors.New("invalid audience")
	}

	sub, err := mapClaims.GetSubject()
	if err != nil {
		return nil, errors.New("missing sub claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, errors.New("malformed sub claim")
	}

	claims := &Claims{UserID: userID}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = email
	}
	if name, ok := mapClaims["display_name"].(string); ok {
		claims.DisplayName = name
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims, nil
}

// Store saves verified Claims into the request context.
func Store(c *fiber.Ctx, claims *Claims) {
	c.Locals(localsKey, claims)
}

// Current returns the Claims stored by the JWT middleware.
func Current(c *fiber.Ctx) (*Claims, error) {
	claims, ok := c.Locals(localsKey).(*Claims)
	if !ok || claims == nil {
		return nil, errors.New("no authenticated user in context")
	}
	return claims, nil
}
