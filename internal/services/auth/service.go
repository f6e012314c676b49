package auth

import (
	"errors"
	"log"

	"payflow/internal/models"
	"payflow/internal/repositories"
	"payflow/internal/utils"
	"payflow/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// Service handles account registration and session tokens.
type Service interface {
	Register(email, password string) (*models.User, string, string, error)
	Login(email, password string) (*models.User, string, string, error)
	RefreshTokens(refreshToken string) (string, string, error)
	Logout(userID uint) error
}

type service struct {
	userRepo repositories.UserRepository
	secret   string
}

// NewService creates a new auth service signing tokens with secret.
func NewService(userRepo repositories.UserRepository, secret string) Service {
	return &service{
		userRepo: userRepo,
		secret:   secret,
	}
}

func (s *service) Register(email, password string) (*models.User, string, string, error) {
	if err := validation.Email(email); err != nil {
		return nil, "", "", err
	}
	if err := validation.Password(password); err != nil {
		return nil, "", "", err
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, "", "", ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", "", errors.New("failed to hash password")
	}

	user := &models.User{Email: email, Password: string(hashed), TokenVersion: 1}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", "", err
	}

	access, refresh, err := s.signedPair(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *service) Login(email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		log.Printf("Login failed: user not found for %s", email)
		return nil, "", "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("Login failed: incorrect password for user %d", user.ID)
		return nil, "", "", ErrInvalidCredentials
	}

	access, refresh, err := s.signedPair(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}

func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	claims, err := utils.ParseToken(refreshToken, s.secret)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return "", "", errors.New("user not found")
	}
	if user.TokenVersion != claims.TokenVersion {
		return "", "", errors.New("token version mismatch")
	}

	return s.signedPair(user)
}

func (s *service) Logout(userID uint) error {
	return s.userRepo.IncrementTokenVersion(userID)
}

func (s *service) signedPair(user *models.User) (string, string, error) {
	access, refresh, err := utils.GenerateTokens(&models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		TokenVersion: user.TokenVersion,
	}, s.secret)
	if err != nil {
		log.Println("Error generating tokens:", err)
		return "", "", errors.New("error generating tokens")
	}
	return access, refresh, nil
}
