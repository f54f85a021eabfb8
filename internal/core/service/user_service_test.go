package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmaya/sms-monitoreo/internal/core/domain"
	"github.com/mmaya/sms-monitoreo/internal/core/ports"
)

func TestUserService_CreateHashesPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	u, err := svc.Create(context.Background(), ports.UserInput{
		Name: "Ana Mamani", Username: "ana", Password: "pw123", RoleID: int64Ptr(2),
	})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, domain.StatusActive, u.Status)
	assert.False(t, u.CreatedAt.IsZero())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users["ana"].PasswordHash), []byte("pw123")))
}

func TestUserService_CreateDuplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	in := ports.UserInput{Name: "Ana", Username: "ana", Password: "pw"}

	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestUserService_CreateValidation(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.UserInput{Name: "Ana", Username: "ana"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Create(context.Background(), ports.UserInput{Name: "", Username: "ana", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.Create(context.Background(), ports.UserInput{Name: "Ana", Username: "ana", Password: "x", Status: "BORRADO"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserService_UpdateKeepsPasswordWhenBlank(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	ctx := context.Background()

	u, err := svc.Create(ctx, ports.UserInput{Name: "Ana", Username: "ana", Password: "pw"})
	require.NoError(t, err)
	before := repo.users["ana"].PasswordHash

	require.NoError(t, svc.Update(ctx, u.ID, ports.UserInput{Name: "Ana María", Username: "ana", Status: "INACTIVO"}))
	assert.Equal(t, before, repo.users["ana"].PasswordHash)
	assert.Equal(t, "Ana María", repo.users["ana"].Name)
	assert.Equal(t, domain.StatusInactive, repo.users["ana"].Status)

	require.NoError(t, svc.Update(ctx, u.ID, ports.UserInput{Name: "Ana", Username: "ana", Password: "new"}))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users["ana"].PasswordHash), []byte("new")))

	assert.ErrorIs(t, svc.Update(ctx, 999, ports.UserInput{Name: "x", Username: "x"}), domain.ErrUserNotFound)
}

func TestUserService_ChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())
	ctx := context.Background()

	u, err := svc.Create(ctx, ports.UserInput{Name: "Ana", Username: "ana", Password: "pw"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(ctx, u.ID, ""), domain.ErrInvalidInput)
	require.NoError(t, svc.ChangePassword(ctx, u.ID, "otra"))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users["ana"].PasswordHash), []byte("otra")))
	assert.ErrorIs(t, svc.ChangePassword(ctx, 999, "x"), domain.ErrUserNotFound)
}
