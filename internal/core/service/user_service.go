package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

// UserService administers user accounts.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Create(ctx context.Context, in ports.UserInput) (*domain.User, error) {
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	user, err := buildUser(&domain.User{CreatedAt: time.Now().UTC()}, in)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("user created")
	return created, nil
}

// Update replaces the profile of a user. The password is re-hashed only when
// one is supplied.
func (s *UserService) Update(ctx context.Context, id int64, in ports.UserInput) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	user, err := buildUser(current, in)
	if err != nil {
		return err
	}

	user.PasswordHash = ""
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.PasswordHash = string(hash)
	}
	return s.repo.Update(ctx, user)
}

func (s *UserService) ChangePassword(ctx context.Context, id int64, password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", domain.ErrInvalidInput)
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", id).Msg("password changed")
	return nil
}

func buildUser(base *domain.User, in ports.UserInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)
	name := strings.TrimSpace(in.Name)
	if username == "" || name == "" {
		return nil, fmt.Errorf("%w: username and nombre are required", domain.ErrInvalidInput)
	}
	status, ok := domain.ParseStatus(in.Status)
	if !ok {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, in.Status)
	}
	u := *base
	u.Username = username
	u.Name = name
	u.DocumentNo = strings.TrimSpace(in.DocumentNo)
	u.AreaID = in.AreaID
	u.RoleID = in.RoleID
	u.Status = status
	return &u, nil
}
