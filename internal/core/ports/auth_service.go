package ports

import (
	"context"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}
