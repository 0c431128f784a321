package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/evergreen-power/apiserver/internal/docstore"
	"github.com/evergreen-power/apiserver/types"
)

// protectedUsername is the literal account every destructive user operation
// refuses to touch, regardless of which admin session asks.
const protectedUsername = "admin"

// UserRepository owns the users collection for the lifetime of the process,
// with the same load-once, persist-on-every-mutation model as leads.
type UserRepository struct {
	docs docstore.Store

	mu    sync.Mutex
	users []types.User
}

// NewUserRepository loads the working set. The backend seeds the default
// accounts when the collection is empty, so the set is never empty here.
func NewUserRepository(ctx context.Context, docs docstore.Store) (*UserRepository, error) {
	users, err := docs.LoadUsers(ctx)
	if err != nil {
		return nil, err
	}
	return &UserRepository{docs: docs, users: users}, nil
}

// UserInput carries the caller-supplied fields for a new user.
type UserInput struct {
	Username string
	Name     string
	Email    string
	Role     string
	Password string
}

// UserUpdate is a partial update; nil fields are preserved. Password is
// replaced only when a non-empty value is supplied.
type UserUpdate struct {
	Username *string
	Name     *string
	Email    *string
	Role     *string
	Status   *string
	Password *string
}

func (r *UserRepository) List() []types.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]types.User{}, r.users...)
}

func (r *UserRepository) GetByID(id int) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return types.User{}, ErrNotFound
	}
	return r.users[idx], nil
}

// GetByUsername matches ignoring case; the stored casing is preserved.
func (r *UserRepository) GetByUsername(username string) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Username, username) {
			return user, nil
		}
	}
	return types.User{}, ErrNotFound
}

func (r *UserRepository) Create(ctx context.Context, in UserInput) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if strings.EqualFold(user.Username, in.Username) {
			return types.User{}, ErrDuplicateUsername
		}
	}

	nextID := 1
	for _, user := range r.users {
		if user.ID >= nextID {
			nextID = user.ID + 1
		}
	}

	user := types.User{
		ID:       nextID,
		Username: in.Username,
		Name:     in.Name,
		Email:    in.Email,
		Role:     in.Role,
		Status:   types.UserStatusActive,
		Password: in.Password,
	}

	next := append(append([]types.User{}, r.users...), user)
	if err := r.docs.SaveUsers(ctx, next); err != nil {
		return types.User{}, err
	}
	r.users = next
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, id int, upd UserUpdate) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return types.User{}, ErrNotFound
	}

	current := r.users[idx]
	if current.Username == protectedUsername {
		// The seeded admin can be edited, but never renamed or deactivated.
		if upd.Username != nil && *upd.Username != protectedUsername {
			return types.User{}, ErrProtectedUser
		}
		if upd.Status != nil && *upd.Status != types.UserStatusActive {
			return types.User{}, ErrProtectedUser
		}
	}

	merged := current
	if upd.Username != nil {
		for _, user := range r.users {
			if user.ID != id && strings.EqualFold(user.Username, *upd.Username) {
				return types.User{}, ErrDuplicateUsername
			}
		}
		merged.Username = *upd.Username
	}
	if upd.Name != nil {
		merged.Name = *upd.Name
	}
	if upd.Email != nil {
		merged.Email = *upd.Email
	}
	if upd.Role != nil {
		merged.Role = *upd.Role
	}
	if upd.Status != nil {
		merged.Status = *upd.Status
	}
	if upd.Password != nil && *upd.Password != "" {
		merged.Password = *upd.Password
	}

	next := append([]types.User{}, r.users...)
	next[idx] = merged
	if err := r.docs.SaveUsers(ctx, next); err != nil {
		return types.User{}, err
	}
	r.users = next
	return merged, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	if r.users[idx].Username == protectedUsername {
		return ErrProtectedUser
	}

	next := append(append([]types.User{}, r.users[:idx]...), r.users[idx+1:]...)
	if err := r.docs.SaveUsers(ctx, next); err != nil {
		return err
	}
	r.users = next
	return nil
}

func (r *UserRepository) SetStatus(ctx context.Context, id int, status string) (types.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return types.User{}, ErrNotFound
	}
	if r.users[idx].Username == protectedUsername {
		return types.User{}, ErrProtectedUser
	}

	next := append([]types.User{}, r.users...)
	next[idx].Status = status
	if err := r.docs.SaveUsers(ctx, next); err != nil {
		return types.User{}, err
	}
	r.users = next
	return next[idx], nil
}

func (r *UserRepository) ResetPassword(ctx context.Context, id int, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return ErrNotFound
	}
	if r.users[idx].Username == protectedUsername {
		return ErrProtectedUser
	}

	next := append([]types.User{}, r.users...)
	next[idx].Password = password
	if err := r.docs.SaveUsers(ctx, next); err != nil {
		return err
	}
	r.users = next
	return nil
}

// UpdateLastLogin stamps the user's last_login with the current time. The
// username match ignores case.
func (r *UserRepository) UpdateLastLogin(ctx context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, user := range r.users {
		if strings.EqualFold(user.Username, username) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}

	next := append([]types.User{}, r.users...)
	next[idx].LastLogin = time.Now().Format(types.TimeFormat)
	if err := r.docs.SaveUsers(ctx, next); err != nil {
		return err
	}
	r.users = next
	return nil
}

// SalesDisplayNames lists the display names of active sales reps, the only
// legal assignees besides Unassigned.
func (r *UserRepository) SalesDisplayNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := []string{}
	for _, user := range r.users {
		if user.Status == types.UserStatusActive && user.Role == types.RoleSales {
			names = append(names, user.Name)
		}
	}
	return names
}

func (r *UserRepository) indexOf(id int) int {
	for i, user := range r.users {
		if user.ID == id {
			return i
		}
	}
	return -1
}
