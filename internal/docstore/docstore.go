package docstore

import (
	"context"
	"time"

	"github.com/evergreen-power/apiserver/types"
)

// Store is a durable mapping from collection name to an ordered sequence of
// records. Saves are whole-collection overwrites; there is no merge or patch,
// so across processes the last writer wins.
type Store interface {
	LoadLeads(ctx context.Context) ([]types.Lead, error)
	SaveLeads(ctx context.Context, leads []types.Lead) error
	LoadUsers(ctx context.Context) ([]types.User, error)
	SaveUsers(ctx context.Context, users []types.User) error
}

// DefaultUsers is the seed written by a backend when the users collection is
// empty. The admin account in this list is protected from deletion and
// deactivation for the lifetime of the system.
func DefaultUsers() []types.User {
	now := time.Now().Format(types.TimeFormat)
	return []types.User{
		{ID: 1, Username: "admin", Name: "Admin User", Email: "admin@example.com",
			Role: types.RoleAdmin, Status: types.UserStatusActive, Password: "admin@123", LastLogin: now},
		{ID: 2, Username: "Syed.Adeel", Name: "Syed Adeel", Email: "syed.adeel@evergreen.com",
			Role: types.RoleSales, Status: types.UserStatusActive, Password: "adeel123", LastLogin: now},
		{ID: 3, Username: "Saad.Saleem", Name: "Saad Saleem", Email: "saad.saleem@evergreen.com",
			Role: types.RoleSales, Status: types.UserStatusActive, Password: "saad123", LastLogin: now},
		{ID: 4, Username: "Abdullah", Name: "Muhammad Abdullah", Email: "abdullah@evergreen.com",
			Role: types.RoleSales, Status: types.UserStatusActive, Password: "abdullah123", LastLogin: now},
	}
}
