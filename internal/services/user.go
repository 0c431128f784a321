package services

import (
	"context"

	"github.com/evergreen-power/apiserver/internal/store"
	"github.com/evergreen-power/apiserver/types"
)

// UserService encapsulates account-management use-cases.
type UserService struct {
	repo *store.UserRepository
}

func NewUserService(repo *store.UserRepository) *UserService {
	return &UserService{repo: repo}
}

func (s *UserService) List() []types.User {
	return s.repo.List()
}

func (s *UserService) GetByID(id int) (types.User, error) {
	return s.repo.GetByID(id)
}

func (s *UserService) Create(ctx context.Context, in store.UserInput) (types.User, error) {
	return s.repo.Create(ctx, in)
}

func (s *UserService) Update(ctx context.Context, id int, upd store.UserUpdate) (types.User, error) {
	return s.repo.Update(ctx, id, upd)
}

func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *UserService) SetStatus(ctx context.Context, id int, status string) (types.User, error) {
	return s.repo.SetStatus(ctx, id, status)
}

func (s *UserService) ResetPassword(ctx context.Context, id int, password string) error {
	return s.repo.ResetPassword(ctx, id, password)
}
