package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"mealsub/internal/shared/authorization"
	"mealsub/internal/shared/biztime"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

var ErrNotAccessToken = errors.New("token is not an access token")

// Claims are issued by the account service. PhoneVerified is absent on
// tokens minted before verification existed and then reads as false.
type Claims struct {
	UserID        uint                   `json:"user_id"`
	Role          authorization.UserRole `json:"role"`
	PhoneVerified bool                   `json:"phone_verified"`
	TokenType     TokenType              `json:"token_type"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret    []byte
	issuer    string
	accessExp time.Duration
}

func NewJWTService(secret, issuer string, accessExp time.Duration) *JWTService {
	if accessExp <= 0 {
		accessExp = 15 * time.Minute
	}
	return &JWTService{
		secret:    []byte(secret),
		issuer:    issuer,
		accessExp: accessExp,
	}
}

// Generate signs an access token. Production tokens come from the account
// service; this is used by the dev token command and tests.
func (s *JWTService) Generate(userID uint, role authorization.UserRole, phoneVerified bool) (string, error) {
	now := biztime.NowUTC()

	claims := &Claims{
		UserID:        userID,
		Role:          role,
		PhoneVerified: phoneVerified,
		TokenType:     TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   fmt.Sprintf("%d", userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExp)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// Verify parses an HS256 access token and checks expiry, issuer and type.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.TokenType != TokenTypeAccess {
		return nil, ErrNotAccessToken
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("token has no user_id")
	}

	return claims, nil
}
