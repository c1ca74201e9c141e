package service

import (
	"context"
	"fmt"
	"time"

	repository "eventboard/internal/database/postgres"
	"eventboard/internal/entity"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	users      repository.UserRepository
	secret     []byte
	expiration time.Duration
}

func NewAuthService(users repository.UserRepository, secret string, expiration time.Duration) AuthService {
	return &authService{
		users:      users,
		secret:     []byte(secret),
		expiration: expiration,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", entity.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", entity.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(s.expiration).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (s *authService) UserFromToken(ctx context.Context, tokenString string) (*entity.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, entity.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, entity.ErrUnauthorized
	}

	rawID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, entity.ErrUnauthorized
	}

	user, err := s.users.GetByID(ctx, int64(rawID))
	if err != nil {
		return nil, entity.ErrUnauthorized
	}

	return user, nil
}

// SetAuthorized toggles a user's event-management flag. Administrators only.
func (s *authService) SetAuthorized(ctx context.Context, actor *entity.User, userID int64, authorized bool) error {
	if actor == nil {
		return entity.ErrUnauthorized
	}
	if !actor.Admin {
		return entity.ErrForbidden
	}

	return s.users.SetAuthorized(ctx, userID, authorized)
}
