package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"minibank/internal/auth"
	"minibank/internal/model"
	"minibank/internal/repository"
)

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserAlreadyExists is returned when trying to register an existing user.
	ErrUserAlreadyExists = repository.ErrUserAlreadyExists
	// ErrBankerNotPermitted is returned when the banker role is requested
	// without a valid administrator key.
	ErrBankerNotPermitted = errors.New("banker registration requires administrator approval")
)

// AuthService handles registration and login.
type AuthService interface {
	// Register creates a user. adminKey is the key presented by the caller
	// and only matters when isBanker is set.
	Register(ctx context.Context, email, password string, isBanker bool, adminKey string) (*model.User, error)
	// Login verifies the credentials and returns a signed access token.
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	userRepo   repository.UserRepository
	hasher     auth.PasswordHasher
	jwtService *auth.JWTService
	adminKey   string
	dummyHash  string
}

// NewAuthService creates a new authentication service. An empty adminKey
// disables banker self-registration entirely.
func NewAuthService(userRepo repository.UserRepository, hasher auth.PasswordHasher, jwtService *auth.JWTService, adminKey string) (AuthService, error) {
	dummy, err := hasher.Hash("minibank-login-timing")
	if err != nil {
		return nil, err
	}
	return &authService{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		adminKey:   adminKey,
		dummyHash:  dummy,
	}, nil
}

// Register hashes the password and stores a new user.
func (s *authService) Register(ctx context.Context, email, password string, isBanker bool, adminKey string) (*model.User, error) {
	if isBanker && !s.adminApproved(adminKey) {
		return nil, ErrBankerNotPermitted
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashed,
		IsBanker:     isBanker,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, ErrUserAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

func (s *authService) adminApproved(key string) bool {
	if s.adminKey == "" || key == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(key), []byte(s.adminKey)) == 1
}

// Login authenticates a user and returns an access token.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// keep the unknown-email path as slow as a wrong password
			s.hasher.Verify(password, s.dummyHash)
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	token, err := s.jwtService.Issue(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	return token, nil
}
