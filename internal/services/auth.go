package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AdminService gates the administrative shortcuts (force-midnight, skip-day,
// reset). With no password hash configured the admin surface stays disabled,
// which is the expected production setup.
type AdminService struct {
	jwtSecret    []byte
	passwordHash string
}

func NewAdminService(jwtSecret, passwordHash string) *AdminService {
	return &AdminService{jwtSecret: []byte(jwtSecret), passwordHash: passwordHash}
}

func (s *AdminService) Enabled() bool {
	return s.passwordHash != ""
}

func (s *AdminService) Login(password string) (string, error) {
	if !s.Enabled() {
		return "", errors.New("admin access disabled")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}
	return s.GenerateToken()
}

func (s *AdminService) GenerateToken() (string, error) {
	claims := jwt.MapClaims{
		"admin": true,
		"exp":   time.Now().Add(24 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AdminService) ValidateToken(tokenString string) error {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return errors.New("invalid claims")
	}
	if isAdmin, ok := claims["admin"].(bool); !ok || !isAdmin {
		return errors.New("not an admin token")
	}
	return nil
}
