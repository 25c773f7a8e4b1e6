package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Farmacia-api/internal/application/usecase"
	"github.com/jhoicas/Farmacia-api/internal/domain"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

type memUserRepo struct {
	users map[string]*entity.User
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func TestUserGetByID(t *testing.T) {
	repo := &memUserRepo{users: map[string]*entity.User{
		"u-1": {ID: "u-1", Email: "ana@farmacia.com", PasswordHash: "hash", Role: entity.RoleAdmin, Status: entity.UserStatusActive},
	}}
	uc := usecase.NewUserUseCase(repo)

	out, err := uc.GetByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "ana@farmacia.com", out.Email)
	assert.Equal(t, entity.RoleAdmin, out.Role)

	_, err = uc.GetByID(context.Background(), "u-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.GetByID(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
