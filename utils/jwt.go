package utils

import (
	"errors"
	"os"
	"time"

	"deskhive/config"

	"github.com/golang-jwt/jwt"
)

// secret resolves the signing key at call time so config loaded in main is
// honored. Fallback to the environment, then a default (not recommended in
// production).
func secret() []byte {
	if config.AppConfig.JWTSecret != "" {
		return []byte(config.AppConfig.JWTSecret)
	}
	if env := os.Getenv("JWT_SECRET"); env != "" {
		return []byte(env)
	}
	return []byte("deskhive-dev")
}

// IdentityClaims are the fields trusted from a verified access token. The
// identity provider authenticates users; this service only consumes the
// already-verified subject.
type IdentityClaims struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret(), nil
	})
}

// ExtractIdentityFromToken validates an access token and returns the identity
// claims it carries. The "sub" claim is mandatory; the rest are optional.
func ExtractIdentityFromToken(tokenString string) (*IdentityClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}

	id := &IdentityClaims{UserID: sub}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		id.Name = name
	}
	if role, ok := claims["role"].(string); ok {
		id.Role = role
	}
	return id, nil
}

// GenerateCheckinToken creates the signed token embedded in a booking's QR
// code. The token is bound to the booking and its owner and expires at the
// given time, so a scanned payload decodes to structured, verified fields or
// fails outright.
func GenerateCheckinToken(bookingID, userID string, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":        userID,
		"booking_id": bookingID,
		"purpose":    "checkin",
		"iat":        time.Now().Unix(),
		"exp":        expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

// CheckinClaims are the decoded fields of a scanned QR token.
type CheckinClaims struct {
	BookingID string
	UserID    string
}

// ParseCheckinToken validates a scanned QR token and returns its claims.
// Tokens with the wrong purpose, a missing booking reference or an invalid
// signature are rejected.
func ParseCheckinToken(tokenString string) (*CheckinClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if purpose, _ := claims["purpose"].(string); purpose != "checkin" {
		return nil, errors.New("not a check-in token")
	}
	bookingID, _ := claims["booking_id"].(string)
	userID, _ := claims["sub"].(string)
	if bookingID == "" || userID == "" {
		return nil, errors.New("check-in token missing required claims")
	}
	return &CheckinClaims{BookingID: bookingID, UserID: userID}, nil
}
