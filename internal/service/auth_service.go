package service

import (
	"errors"
	"strings"

	"dramastream/config"
	"dramastream/internal/auth"
	"dramastream/internal/domain"
	"dramastream/internal/models"
	"dramastream/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailExists  = errors.New("email already registered")
	ErrInvalidCreds = errors.New("invalid email or password")
)

type AuthService struct {
	cfg   *config.Config
	users *repository.UserRepository
}

func NewAuthService(cfg *config.Config, users *repository.UserRepository) *AuthService {
	return &AuthService{cfg: cfg, users: users}
}

func (s *AuthService) Signup(email, password, displayName string) (*models.User, string, int64, error) {
	_, err := s.users.GetByEmail(email)
	if err == nil {
		return nil, "", 0, ErrEmailExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", 0, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", 0, err
	}
	u := &models.User{
		Email:        &email,
		PasswordHash: string(hash),
		DisplayName:  displayName,
		AuthProvider: domain.AuthProviderLocal,
	}
	if err := s.users.Create(u); err != nil {
		return nil, "", 0, err
	}
	token, expiresIn, err := auth.GenerateToken(&s.cfg.JWT, u.ID, email)
	if err != nil {
		return nil, "", 0, err
	}
	return u, token, expiresIn, nil
}

func (s *AuthService) Login(email, password string) (*models.User, string, int64, error) {
	u, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", 0, ErrInvalidCreds
		}
		return nil, "", 0, err
	}
	if u.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", 0, ErrInvalidCreds
	}
	_ = s.users.TouchLastLogin(u.ID)
	token, expiresIn, err := auth.GenerateToken(&s.cfg.JWT, u.ID, email)
	if err != nil {
		return nil, "", 0, err
	}
	return u, token, expiresIn, nil
}

// Guest creates an anonymous account so the catalog and coin economy are
// usable before signup.
func (s *AuthService) Guest() (*models.User, string, int64, error) {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	u := &models.User{
		DisplayName:   "Guest_" + suffix,
		AuthProvider:  domain.AuthProviderGuest,
		EmailVerified: true,
	}
	if err := s.users.Create(u); err != nil {
		return nil, "", 0, err
	}
	token, expiresIn, err := auth.GenerateToken(&s.cfg.JWT, u.ID, "")
	if err != nil {
		return nil, "", 0, err
	}
	return u, token, expiresIn, nil
}
