package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Ejeanjules/capstone-project/pkg/errx"
	"github.com/Ejeanjules/capstone-project/pkg/kernel"
)

// Config holds signing material and token lifetime.
type Config struct {
	JWTSecret     string
	TokenDuration time.Duration
	Issuer        string
}

// TokenClaims is the decoded content of an access token.
type TokenClaims struct {
	UserID    kernel.UserID
	Email     kernel.Email
	Username  kernel.Username
	Scopes    []string
	ExpiresAt time.Time
}

// HasScope reports whether the token carries the scope.
func (c *TokenClaims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// TokenService issues and validates signed access tokens.
type TokenService struct {
	config Config
}

func NewTokenService(config Config) *TokenService {
	if config.TokenDuration == 0 {
		config.TokenDuration = 24 * time.Hour
	}
	return &TokenService{config: config}
}

// GenerateAccessToken signs a token for the user carrying scope claims.
func (s *TokenService) GenerateAccessToken(userID kernel.UserID, email kernel.Email, username kernel.Username, scopes []string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID.String(),
		"email":    email.String(),
		"username": username.String(),
		"scopes":   scopes,
		"iss":      s.config.Issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(s.config.TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", errx.Wrap(err, "failed to sign access token", errx.TypeInternal)
	}
	return signed, nil
}

// ValidateAccessToken parses and verifies a token string.
func (s *TokenService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errx.Wrap(err, "invalid or expired token", errx.TypeAuthorization)
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errx.Wrap(nil, "malformed token claims", errx.TypeAuthorization)
	}

	claims := &TokenClaims{}
	if sub, ok := mapClaims["sub"].(string); ok {
		claims.UserID = kernel.NewUserID(sub)
	}
	if email, ok := mapClaims["email"].(string); ok {
		claims.Email = kernel.NewEmail(email)
	}
	if username, ok := mapClaims["username"].(string); ok {
		claims.Username = kernel.NewUsername(username)
	}
	if raw, ok := mapClaims["scopes"].([]any); ok {
		for _, v := range raw {
			if s, ok := v.(string); ok {
				claims.Scopes = append(claims.Scopes, s)
			}
		}
	}
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0)
	}
	if claims.UserID.IsEmpty() {
		return nil, errx.Wrap(nil, "token is missing subject", errx.TypeAuthorization)
	}
	return claims, nil
}
