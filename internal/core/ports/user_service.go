package ports

import (
	"context"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
)

// UserInput carries the editable fields of a user. Password is optional on
// update.
type UserInput struct {
	DocumentNo string
	Name       string
	Username   string
	Password   string
	AreaID     *int64
	RoleID     *int64
	Status     string
}

// UserService administers user accounts.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, in UserInput) (*domain.User, error)
	Update(ctx context.Context, id int64, in UserInput) error
	ChangePassword(ctx context.Context, id int64, password string) error
}
