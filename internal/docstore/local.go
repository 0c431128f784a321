package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/evergreen-power/apiserver/types"
)

const (
	leadsFile = "leads.json"
	usersFile = "users.json"
)

// LocalStore persists each collection as a pretty-printed JSON array in its
// own file under the data directory.
type LocalStore struct {
	dir string
}

// NewLocalStore constructs a local file-backed store, creating the data
// directory if it does not exist.
func NewLocalStore(dir string) (*LocalStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) LoadLeads(ctx context.Context) ([]types.Lead, error) {
	leads := []types.Lead{}
	ok, err := s.readFile(leadsFile, &leads)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []types.Lead{}, nil
	}
	return leads, nil
}

func (s *LocalStore) SaveLeads(ctx context.Context, leads []types.Lead) error {
	return s.writeFile(leadsFile, leads)
}

func (s *LocalStore) LoadUsers(ctx context.Context) ([]types.User, error) {
	users := []types.User{}
	ok, err := s.readFile(usersFile, &users)
	if err != nil {
		return nil, err
	}
	if !ok || len(users) == 0 {
		users = DefaultUsers()
		if err := s.SaveUsers(ctx, users); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (s *LocalStore) SaveUsers(ctx context.Context, users []types.User) error {
	return s.writeFile(usersFile, users)
}

func (s *LocalStore) readFile(name string, v any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", name, err)
	}
	return true, nil
}

// writeFile replaces the collection file via a temp file and rename so a save
// is atomic from the caller's perspective.
func (s *LocalStore) writeFile(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(s.dir, name))
}
