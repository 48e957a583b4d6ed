package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskboard/taskboard-api/internal/constants"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken        = errors.New("username already exists")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrNotAuthenticated     = errors.New("authentication required")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles authentication and identity resolution.
type AuthService struct {
	userRepo repository.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// SignupInput represents the required information to create a new user.
type SignupInput struct {
	Username    string
	Password    string
	DisplayName string
	AvatarURL   string
}

// Signup creates a new user record. The display name defaults to the
// username when the identity claims carry none.
func (s *AuthService) Signup(input SignupInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, fmt.Errorf("username is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = username
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hashedPassword),
		DisplayName:  displayName,
		AvatarURL:    input.AvatarURL,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
}

// Login verifies credentials and returns the authenticated user.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// EnsureUser resolves a session principal to its user record. Callers that
// require authentication pass the id from the session; a nil id means no
// principal and fails fast.
func (s *AuthService) EnsureUser(id *uint64) (*models.User, error) {
	if id == nil {
		return nil, ErrNotAuthenticated
	}
	return s.GetUser(*id)
}

// SaveProfileInput carries the mutable profile fields of saveUser calls.
type SaveProfileInput struct {
	DisplayName string
	AvatarURL   string
}

// SaveProfile is the idempotent create-or-fetch of the current principal's
// record: repeated calls return the same user, applying any non-empty claim
// updates in place. Denormalized owner/author names on existing tasks and
// comments are deliberately not rewritten; they reflect the name at write
// time.
func (s *AuthService) SaveProfile(userID uint64, input SaveProfileInput) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	changed := false
	if name := strings.TrimSpace(input.DisplayName); name != "" && name != user.DisplayName {
		user.DisplayName = name
		changed = true
	}
	if input.AvatarURL != "" && input.AvatarURL != user.AvatarURL {
		user.AvatarURL = input.AvatarURL
		changed = true
	}

	if changed {
		if err := s.userRepo.Update(user); err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return user, nil
}
