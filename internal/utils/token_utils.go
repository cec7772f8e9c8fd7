package utils

import (
	"fmt"
	"time"

	"github.com/SscSPs/loot_ledger_app/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in the role claim.
const (
	RoleDM     = "DM"
	RolePlayer = "Player"
)

// Claims are the JWT claims the API accepts. Subject is the user id.
type Claims struct {
	Role        string `json:"role"`
	CharacterID *int64 `json:"character_id,omitempty"`
	jwt.RegisteredClaims
}

// Actor converts validated claims into the actor passed to services.
func (c *Claims) Actor() domain.Actor {
	return domain.Actor{
		UserID:      c.Subject,
		CharacterID: c.CharacterID,
		IsDM:        c.Role == RoleDM,
	}
}

// GenerateJWT generates a new JWT token for the actor.
func GenerateJWT(actor domain.Actor, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	role := RolePlayer
	if actor.IsDM {
		role = RoleDM
	}
	now := time.Now()
	claims := Claims{
		Role:        role,
		CharacterID: actor.CharacterID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   actor.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a JWT token string, validates its signature and standard claims.
// An empty issuer skips the issuer check.
func ParseAndValidateJWT(tokenString, secretKey, issuer string) (*Claims, error) {
	claims := &Claims{}
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: subject missing", jwt.ErrTokenInvalidClaims)
	}
	switch claims.Role {
	case RoleDM, RolePlayer:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", jwt.ErrTokenInvalidClaims, claims.Role)
	}
	return claims, nil
}
