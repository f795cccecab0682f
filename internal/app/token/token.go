package token

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	customErrors "github.com/taskhive/task-service/internal/domain/errors"
	"github.com/taskhive/task-service/internal/domain/model"
	"github.com/taskhive/task-service/internal/domain/repo"
)

// SessionClaims are the identity claims carried by a session token. The
// token is stateless: nothing here is persisted, and it dies only by expiry.
type SessionClaims struct {
	UserID    int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

type Service struct {
	secret     []byte
	sessionTTL time.Duration
	refreshTTL time.Duration
	tokens     repo.RefreshTokenRepo
}

func New(secret string, sessionTTL, refreshTTL time.Duration, tokens repo.RefreshTokenRepo) *Service {
	return &Service{
		secret:     []byte(secret),
		sessionTTL: sessionTTL,
		refreshTTL: refreshTTL,
		tokens:     tokens,
	}
}

func (s *Service) IssueSessionToken(user model.User) (string, error) {
	if len(s.secret) == 0 {
		return "", customErrors.WrapInternal(errors.New("signing secret is empty"), "IssueSessionToken")
	}

	now := time.Now()
	claims := SessionClaims{
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", customErrors.WrapInternal(err, "sign session token")
	}
	return signed, nil
}

func (s *Service) VerifySessionToken(raw string) (SessionClaims, error) {
	token, err := jwt.ParseWithClaims(raw, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, customErrors.ErrInvalidToken
		}
		return s.secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaims{}, customErrors.ErrTokenExpired
		}
		return SessionClaims{}, customErrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return SessionClaims{}, customErrors.ErrInvalidToken
	}
	return *claims, nil
}

// IssueRefreshToken mints an opaque crypto-random token and persists it.
// Prior tokens for the same user are left untouched: every login adds a row.
func (s *Service) IssueRefreshToken(ctx context.Context, user model.User) (model.RefreshToken, error) {
	now := time.Now()
	t := model.RefreshToken{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.refreshTTL),
	}

	stored, err := s.tokens.StoreRefreshToken(ctx, t)
	if err != nil {
		return model.RefreshToken{}, customErrors.WrapInternal(err, "StoreRefreshToken")
	}
	return stored, nil
}
