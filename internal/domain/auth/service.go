package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type Service struct {
	repo   Repository
	secret []byte
	ttl    time.Duration
	nowFn  func() time.Time
}

func NewService(repo Repository, secret string, ttl time.Duration) *Service {
	return &Service{
		repo:   repo,
		secret: []byte(secret),
		ttl:    ttl,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(nowFn func() time.Time) *Service {
	s.nowFn = nowFn
	return s
}

func (s *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	username := strings.TrimSpace(input.Username)
	email := normalizeEmail(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return nil, fmt.Errorf("username, email et password sont requis")
	}

	count, err := s.repo.CountByEmail(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailDejaUtilise
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		return nil, err
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, err
	}

	return &Session{User: user, Token: token}, nil
}

func (s *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, ErrIdentifiantsInvalides
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrIdentifiantsInvalides
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrIdentifiantsInvalides
	}

	token, err := s.signToken(*user)
	if err != nil {
		return nil, err
	}

	return &Session{User: *user, Token: token}, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetUser(ctx context.Context, id uint) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) UpdateUser(ctx context.Context, input UpdateUserInput) (*User, error) {
	username := strings.TrimSpace(input.Username)
	email := normalizeEmail(input.Email)
	if username == "" || email == "" {
		return nil, fmt.Errorf("username et email sont requis")
	}

	user, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountByEmail(ctx, email, user.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailDejaUtilise
	}

	user.Username = username
	user.Email = email
	user.UpdatedAt = s.nowFn()

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) DeleteUser(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}
	return nil
}

// VerifyToken validates a bearer token and returns the user id claim.
func (s *Service) VerifyToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrIdentifiantsInvalides
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrIdentifiantsInvalides
	}
	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrIdentifiantsInvalides
	}
	return uint(userID), nil
}

func (s *Service) signToken(user User) (string, error) {
	now := s.nowFn()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"jti":     uuid.NewString(),
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
