package docstore

import (
	"context"
	"errors"
	"strings"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"github.com/evergreen-power/apiserver/config"
	"github.com/evergreen-power/apiserver/types"
	"google.golang.org/api/option"
)

const (
	leadsRef = "/leads"
	usersRef = "/users"
)

// FirebaseStore persists both collections in a Firebase Realtime Database.
type FirebaseStore struct {
	client *db.Client
}

// NewFirebaseStore constructs a Realtime Database client from config.
// Credentials come from a local service-account file or the raw JSON blob;
// missing credentials are a startup error, not a retryable condition.
func NewFirebaseStore(ctx context.Context, cfg config.FirebaseConfig) (*FirebaseStore, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, errors.New("firebase database URL is required")
	}

	var opts []option.ClientOption
	switch {
	case strings.TrimSpace(cfg.CredentialsJSON) != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case strings.TrimSpace(cfg.CredentialsFile) != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	default:
		return nil, errors.New("firebase credentials are required: set FIREBASE_CREDENTIALS or FIREBASE_CREDENTIALS_FILE")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: cfg.DatabaseURL}, opts...)
	if err != nil {
		return nil, err
	}
	client, err := app.Database(ctx)
	if err != nil {
		return nil, err
	}

	return &FirebaseStore{client: client}, nil
}

func (s *FirebaseStore) LoadLeads(ctx context.Context) ([]types.Lead, error) {
	var leads []types.Lead
	if err := s.client.NewRef(leadsRef).Get(ctx, &leads); err != nil {
		return nil, err
	}
	if leads == nil {
		return []types.Lead{}, nil
	}
	return leads, nil
}

func (s *FirebaseStore) SaveLeads(ctx context.Context, leads []types.Lead) error {
	return s.client.NewRef(leadsRef).Set(ctx, leads)
}

func (s *FirebaseStore) LoadUsers(ctx context.Context) ([]types.User, error) {
	var users []types.User
	if err := s.client.NewRef(usersRef).Get(ctx, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		users = DefaultUsers()
		if err := s.SaveUsers(ctx, users); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (s *FirebaseStore) SaveUsers(ctx context.Context, users []types.User) error {
	return s.client.NewRef(usersRef).Set(ctx, users)
}
