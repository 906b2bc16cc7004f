package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/theleywin/Backend-Blog/src/lib"
	"github.com/theleywin/Backend-Blog/src/models"
	"github.com/theleywin/Backend-Blog/src/repository"
)

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Username string
	Token    string
}

// AuthService handles accounts and issues the tokens the access guard verifies
type AuthService struct {
	users  repository.UserRepository
	tokens *lib.TokenService
}

func NewAuthService(users repository.UserRepository, tokens *lib.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	username := strings.TrimSpace(input.Username)
	email := normalizeEmail(input.Email)
	if username == "" || email == "" || input.Password == "" {
		return invalidInput("username, email and password are required")
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return storeError("find user", err)
	}

	hashed, err := lib.HashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hashed,
	}
	if err := s.users.Create(ctx, &user); err != nil {
		// the unique index catches a registration that raced past the lookup
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrUserExists
		}
		return storeError("create user", err)
	}

	return nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	email := normalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, storeError("find user", err)
	}

	if !lib.CheckPassword(user.Password, input.Password) {
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateJWT(user.ID, user.Username)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}

	return LoginResult{Username: user.Username, Token: token}, nil
}

// Profile returns the caller's own account without the password hash
func (s *AuthService) Profile(ctx context.Context, caller models.Identity) (models.ProfileDto, error) {
	if err := requireCaller(caller); err != nil {
		return models.ProfileDto{}, err
	}

	user, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return models.ProfileDto{}, storeError("get profile", err)
	}
	return user.Profile(), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
