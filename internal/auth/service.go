package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/daap14/agentflow/internal/apperror"
	"github.com/daap14/agentflow/internal/ident"
	"github.com/daap14/agentflow/internal/session"
	"github.com/daap14/agentflow/internal/store"
	"github.com/daap14/agentflow/internal/validation"
)

// DefaultKeyName names the API key issued at registration.
const DefaultKeyName = "Default Key"

// keyPrefix marks agentflow API keys.
const keyPrefix = "afk_"

// Service provides registration, login and API key operations.
type Service struct {
	store      store.Store
	state      *session.State
	bcryptCost int
	logger     *slog.Logger
	now        func() time.Time
}

// NewService creates a new auth Service.
func NewService(st store.Store, state *session.State, bcryptCost int, logger *slog.Logger) *Service {
	return &Service{
		store:      st,
		state:      state,
		bcryptCost: bcryptCost,
		logger:     logger,
		now:        time.Now,
	}
}

// GenerateKey creates a new API key: 32 random bytes -> base64url -> prepend "afk_".
func GenerateKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generating random bytes: %w", err)
	}
	return keyPrefix + base64.RawURLEncoding.EncodeToString(b), nil
}

// Register creates a user with a default API key and makes it the
// session's current user.
func (s *Service) Register(in RegisterInput) (*Registration, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, apperror.Validation("%w", err)
	}

	ds, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if ds.FindUserByEmail(in.Email) != nil {
		return nil, ErrUserExists
	}

	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, apperror.Validation("%w", err)
	}
	if err := validation.ValidateName(in.Name); err != nil {
		return nil, apperror.Validation("%w", err)
	}

	hash, err := HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, apperror.Internal("%w", err)
	}
	key, err := s.newAPIKey(DefaultKeyName)
	if err != nil {
		return nil, err
	}

	user := store.User{
		ID:           ident.New(),
		Email:        in.Email,
		PasswordHash: hash,
		Name:         in.Name,
		APIKeys:      []store.APIKey{key},
		CreatedAt:    store.NewTimestamp(s.now()),
	}
	ds.Users = append(ds.Users, user)

	if err := s.store.Save(ds); err != nil {
		return nil, err
	}
	s.logger.Debug("user registered", "id", user.ID, "email", user.Email)

	s.state.SetCurrentUserEmail(user.Email)
	s.state.SetCurrentAPIKey(key.Key)

	return &Registration{User: user, APIKey: key}, nil
}

// Login checks credentials and restores the user's first active API key
// into the session. The organization and project pointers are left as they
// were.
func (s *Service) Login(email, password string) (*LoginResult, error) {
	ds, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	user := ds.FindUserByEmail(email)
	if user == nil || !VerifyPassword(user.PasswordHash, password) {
		s.logger.Debug("login rejected", "email", email)
		return nil, ErrInvalidCredentials
	}

	key := user.FirstActiveKey()
	if key == nil {
		return nil, ErrNoActiveKey
	}

	s.state.SetCurrentUserEmail(user.Email)
	s.state.SetCurrentAPIKey(key.Key)

	return &LoginResult{
		User:         *user,
		APIKey:       *key,
		Organization: s.state.CurrentOrganization(),
		Project:      s.state.CurrentProject(),
	}, nil
}

// ListAPIKeys returns the current user's keys in creation order.
func (s *Service) ListAPIKeys() ([]store.APIKey, error) {
	ds, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	user, err := RequireUser(ds, s.state)
	if err != nil {
		return nil, err
	}

	keys := make([]store.APIKey, len(user.APIKeys))
	copy(keys, user.APIKeys)
	return keys, nil
}

// CreateAPIKey issues an additional active key for the current user and
// makes it the session key.
func (s *Service) CreateAPIKey(name string) (*store.APIKey, error) {
	if name == "" {
		return nil, ErrKeyNameRequired
	}
	if s.state.CurrentUserEmail() == "" {
		return nil, ErrNotAuthenticated
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, apperror.Validation("%w", err)
	}

	ds, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	user, err := RequireUser(ds, s.state)
	if err != nil {
		return nil, err
	}

	key, err := s.newAPIKey(name)
	if err != nil {
		return nil, err
	}
	user.APIKeys = append(user.APIKeys, key)

	if err := s.store.Save(ds); err != nil {
		return nil, err
	}
	s.logger.Debug("api key created", "user", user.Email, "name", name)

	s.state.SetCurrentAPIKey(key.Key)
	return &key, nil
}

// Status reports the session without failing when nobody is logged in.
// A session email whose user has disappeared is still reported as
// authenticated, without a name.
func (s *Service) Status() (*Status, error) {
	st := &Status{
		Email:        s.state.CurrentUserEmail(),
		Organization: s.state.CurrentOrganization(),
		Project:      s.state.CurrentProject(),
		ContextFile:  s.state.Path(),
		DataFile:     s.store.Path(),
	}
	if st.Email == "" {
		return st, nil
	}
	st.Authenticated = true

	ds, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if user := ds.FindUserByEmail(st.Email); user != nil {
		st.Name = user.Name
	}
	return st, nil
}

func (s *Service) newAPIKey(name string) (store.APIKey, error) {
	raw, err := GenerateKey()
	if err != nil {
		return store.APIKey{}, apperror.Internal("%w", err)
	}
	return store.APIKey{
		Key:       raw,
		Name:      name,
		IsActive:  true,
		CreatedAt: store.NewTimestamp(s.now()),
	}, nil
}
