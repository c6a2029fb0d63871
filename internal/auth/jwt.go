package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrBadPassword  = errors.New("wrong password")
)

// Claims carried by the editor session cookie.
type Claims struct {
	Editor bool `json:"editor"`
	jwt.RegisteredClaims
}

// Service issues and validates editor session tokens. The password is kept
// only as a bcrypt hash computed at startup.
type Service struct {
	secretKey    []byte
	issuer       string
	passwordHash []byte
}

// NewService builds the auth service. An empty secret gets a random
// per-process one, which means sessions do not survive restarts.
func NewService(secretKey, issuer, password string) (*Service, error) {
	if secretKey == "" {
		buf := make([]byte, 32)
		if _, err := rand.Read(buf); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
		secretKey = hex.EncodeToString(buf)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash editor password: %w", err)
	}

	return &Service{
		secretKey:    []byte(secretKey),
		issuer:       issuer,
		passwordHash: hash,
	}, nil
}

// CheckPassword verifies the editor password.
func (s *Service) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return ErrBadPassword
	}
	return nil
}

// GenerateToken creates a new editor session token.
func (s *Service) GenerateToken() (string, error) {
	claims := Claims{
		Editor: true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// ValidateToken validates a session token and returns the claims.
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
