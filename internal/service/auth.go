package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"go-storefront/internal/apperr"
	"go-storefront/internal/config"
	"go-storefront/internal/model"
	"go-storefront/internal/repository"
)

const bcryptCost = 12

// Claims are the identity attached to every authenticated request.
type Claims struct {
	UserID   string `json:"id"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	UserName string `json:"userName"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(ctx context.Context, userName, email, password string) error
	// Login verifies credentials and returns the user plus a signed session
	// token. Bad credentials come back as Validation errors so the handler
	// can answer success:false instead of a bare 401, matching the API shape
	// the storefront client expects.
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (*Claims, error)
	TokenTTL() time.Duration
}

type authServiceImpl struct {
	userRepo repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Auth) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: cfg.TokenTTL,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, userName, email, password string) error {
	if userName == "" || email == "" || password == "" {
		return apperr.Validation("userName, email and password are required")
	}

	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return apperr.Validation("User already exists with the same email! Please try again")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("look up user by email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		UserName:     userName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperr.Validation("User doesn't exist! Please register first")
		}
		return nil, "", fmt.Errorf("look up user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperr.Validation("Incorrect password! Please try again")
	}

	now := time.Now()
	claims := &Claims{
		UserID:   user.ID,
		Role:     user.Role,
		Email:    user.Email,
		UserName: user.UserName,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}

	return user, token, nil
}

func (s *authServiceImpl) ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthorized("Unauthorized! Invalid or expired token.")
	}

	return claims, nil
}

func (s *authServiceImpl) TokenTTL() time.Duration {
	return s.tokenTTL
}
