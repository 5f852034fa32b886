package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/solstice-events/bookings-api/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// JWTValidator validates HMAC-signed bearer tokens.
type JWTValidator struct {
	config *config.AuthConfig
}

// NewJWTValidator creates a new JWT validator
func NewJWTValidator(cfg *config.AuthConfig) *JWTValidator {
	return &JWTValidator{config: cfg}
}

// ValidateToken validates a token and returns user context
func (v *JWTValidator) ValidateToken(tokenString string) (*UserContext, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(v.config.Secret), nil
	},
		jwt.WithIssuer(v.config.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	userCtx := &UserContext{
		DisplayName: stringClaim(claims, "name"),
		Email:       stringClaim(claims, "email"),
	}
	if sub, _ := claims.GetSubject(); sub != "" {
		if uid, err := uuid.Parse(sub); err == nil {
			userCtx.UserID = uid
		}
	}
	if userCtx.UserID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	return userCtx, nil
}

// IssueToken mints a token for a user. Used by tooling and tests; the
// production identity provider signs with the same shared secret.
func (v *JWTValidator) IssueToken(userID uuid.UUID, name, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   v.config.Issuer,
		"sub":   userID.String(),
		"name":  name,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(v.config.Secret))
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
