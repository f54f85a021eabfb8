package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmaya/sms-monitoreo/internal/api/metrics"
	"github.com/mmaya/sms-monitoreo/internal/core/domain"
	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

// AuthService implements login.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// Login checks the credentials of an active user and issues an access token.
// Accounts still holding a plaintext password are migrated to bcrypt on their
// first successful login.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	result := "success"
	if isBcrypt(user.PasswordHash) {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
	} else {
		if user.PasswordHash == "" || subtle.ConstantTimeCompare([]byte(user.PasswordHash), []byte(password)) != 1 {
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		result = "migrated"
	}

	// Inactive accounts look the same as unknown ones to the caller.
	if !user.Status.Active() {
		metrics.LoginsTotal.WithLabelValues("inactive").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	if result == "migrated" {
		s.migratePassword(ctx, user, password)
	}

	token, err := s.generateToken(user)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues(result).Inc()
	s.logger.Info().Str("username", user.Username).Int64("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

func (s *AuthService) migratePassword(ctx context.Context, user *domain.User, password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to hash legacy password")
		return
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		s.logger.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to migrate legacy password")
		return
	}
	user.PasswordHash = string(hash)
	s.logger.Info().Int64("user_id", user.ID).Msg("legacy password migrated to bcrypt")
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"id_usuario": user.ID,
		"username":   user.Username,
		"nombre":     user.Name,
		"id_area":    derefID(user.AreaID),
		"id_rol":     derefID(user.RoleID),
		"rol":        user.RoleName,
		"exp":        time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func isBcrypt(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$")
}

func derefID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
