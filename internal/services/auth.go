package services

import (
	"context"
	"errors"
	"strings"

	"github.com/evergreen-power/apiserver/internal/store"
	"github.com/evergreen-power/apiserver/types"
)

// ErrInvalidCredentials is the only failure login surfaces. Unknown usernames
// and wrong passwords are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Session is the authenticated identity established after a successful login.
type Session struct {
	UserID      int
	Username    string
	DisplayName string
	Email       string
	Role        string
}

// AuthService validates credentials against the users collection.
type AuthService struct {
	users *store.UserRepository
}

func NewAuthService(users *store.UserRepository) *AuthService {
	return &AuthService{users: users}
}

type authEntry struct {
	password    string
	role        string
	displayName string
	email       string
	username    string
	userID      int
}

// authTable derives the credential lookup from the users collection: active
// users only, keyed by lowercased username. Empty when no active users exist.
func (s *AuthService) authTable() map[string]authEntry {
	table := make(map[string]authEntry)
	for _, user := range s.users.List() {
		if user.Status != types.UserStatusActive {
			continue
		}
		table[strings.ToLower(user.Username)] = authEntry{
			password:    user.Password,
			role:        user.Role,
			displayName: user.Name,
			email:       user.Email,
			username:    user.Username,
			userID:      user.ID,
		}
	}
	return table
}

// Authenticate matches the username ignoring case and the password byte for
// byte. Success stamps last_login; failure has no side effect.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (Session, error) {
	entry, ok := s.authTable()[strings.ToLower(username)]
	if !ok || entry.password != password {
		return Session{}, ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, entry.username); err != nil {
		return Session{}, err
	}

	return Session{
		UserID:      entry.userID,
		Username:    entry.username,
		DisplayName: entry.displayName,
		Email:       entry.email,
		Role:        entry.role,
	}, nil
}

// SessionByID rebuilds a session for an already-issued token. Users that have
// been deleted or deactivated since login no longer resolve.
func (s *AuthService) SessionByID(id int) (Session, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return Session{}, err
	}
	if user.Status != types.UserStatusActive {
		return Session{}, store.ErrNotFound
	}
	return Session{
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.Name,
		Email:       user.Email,
		Role:        user.Role,
	}, nil
}

// Authorize is a strict equality check against one of the two roles. There is
// no hierarchy; admin is not automatically sales.
func Authorize(sess Session, role string) bool {
	return sess.Role == role
}
