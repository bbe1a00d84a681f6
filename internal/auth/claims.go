package auth

import (
	"errors"
	"fmt"
	"time"

	"infinite-experiment/airclock/internal/constants"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingSecret = errors.New("admin token secret is not configured")
	ErrNotAdmin      = errors.New("token does not carry the admin role")
)

// AdminClaims is what the admin endpoints know about the caller
type AdminClaims struct {
	Subject   string
	Role      constants.Role
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// IssueAdminToken signs an HS256 token with role=admin valid for ttl
func IssueAdminToken(secret []byte, subject string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrMissingSecret
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": constants.RoleAdmin.String(),
		"jti":  uuid.New().String(),
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ParseAdminToken validates signature, expiry and role
func ParseAdminToken(secret []byte, tokenString string) (*AdminClaims, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}

	token, err := jwt.ParseWithClaims(tokenString, jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	role, _ := claims["role"].(string)
	if role != constants.RoleAdmin.String() {
		return nil, ErrNotAdmin
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return nil, fmt.Errorf("invalid sub claim: %w", err)
	}
	jti, _ := claims["jti"].(string)

	result := &AdminClaims{
		Subject: subject,
		Role:    constants.RoleAdmin,
		TokenID: jti,
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		result.IssuedAt = iat.Time
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		result.ExpiresAt = exp.Time
	}
	return result, nil
}
