package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/repotutor/repotutor-backend/internal/logger"
	"github.com/repotutor/repotutor-backend/internal/repos"
	"github.com/repotutor/repotutor-backend/internal/types"
)

type AuthService interface {
	Register(ctx context.Context, username, password string) (*types.User, string, error)
	Login(ctx context.Context, username, password string) (*types.User, string, error)
	ValidateToken(tokenString string) (uuid.UUID, error)
}

type authService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(baseLog *logger.Logger, userRepo repos.UserRepo, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		log:      baseLog.With("service", "AuthService"),
		userRepo: userRepo,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func (as *authService) Register(ctx context.Context, username, password string) (*types.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < 8 {
		return nil, "", fmt.Errorf("username and a password of at least 8 characters are required")
	}
	exists, err := as.userRepo.UsernameExists(ctx, nil, username)
	if err != nil {
		return nil, "", fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, "", fmt.Errorf("username already taken")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	user := &types.User{
		ID:       uuid.New(),
		Username: username,
		Password: string(hashed),
	}
	if _, err := as.userRepo.Create(ctx, nil, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}
	token, err := as.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (as *authService) Login(ctx context.Context, username, password string) (*types.User, string, error) {
	user, err := as.userRepo.GetByUsername(ctx, nil, strings.TrimSpace(username))
	if err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", fmt.Errorf("invalid credentials")
	}
	token, err := as.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (as *authService) issueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(as.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(as.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (as *authService) ValidateToken(tokenString string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return as.secret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, fmt.Errorf("invalid token")
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return uuid.Nil, fmt.Errorf("invalid token claims")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid token subject")
	}
	return userID, nil
}
