package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/stellar/portfolio-backend/internal/data"
	"github.com/stellar/portfolio-backend/internal/db"
	"github.com/stellar/portfolio-backend/internal/entities"
	"github.com/stellar/portfolio-backend/internal/metrics"
	"github.com/stellar/portfolio-backend/internal/secrets"
)

var (
	ErrUserNotLoggedIn       = errors.New("no user is currently logged in")
	ErrUserAlreadyLoggedIn   = errors.New("a user is already logged in")
	ErrUserNotFound          = errors.New("user does not exist")
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrWrongPassword         = errors.New("wrong password")
	ErrInvalidPremiumKeys    = errors.New("invalid premium credentials")
	ErrUserMismatch          = errors.New("user is not the logged in user")
	ErrCorruptPremiumSecrets = errors.New("stored premium credentials could not be decrypted")
)

type NewUser struct {
	Name         string
	Password     string
	SyncApproval entities.SyncApproval
	Premium      entities.PremiumCredentials
}

type UserService interface {
	// CreateUser stores a new user and logs it in.
	CreateUser(ctx context.Context, user NewUser) (entities.User, error)
	// Login unlocks an existing user. Non empty premium credentials replace the stored ones.
	Login(ctx context.Context, name, password string, syncApproval entities.SyncApproval, premium entities.PremiumCredentials) (entities.User, error)
	Logout(ctx context.Context, name string) error
	// SetPremium attaches premium credentials to the logged in user.
	SetPremium(ctx context.Context, name string, premium entities.PremiumCredentials) error
	ListUsers(ctx context.Context) ([]entities.User, error)
	LoggedInUser() (entities.User, error)
	// PremiumCredentials returns the decrypted premium credentials of the logged in user.
	PremiumCredentials(ctx context.Context) (entities.PremiumCredentials, error)
}

var _ UserService = (*userService)(nil)

type session struct {
	name     string
	password string
}

type userService struct {
	models         *data.Models
	hasher         secrets.PasswordHasher
	encrypter      secrets.Encrypter
	metricsService metrics.MetricsService

	mu      sync.RWMutex
	current *session
}

func NewUserService(models *data.Models, hasher secrets.PasswordHasher, encrypter secrets.Encrypter, metricsService metrics.MetricsService) (*userService, error) {
	if models == nil {
		return nil, errors.New("models cannot be nil")
	}
	if hasher == nil {
		return nil, errors.New("hasher cannot be nil")
	}
	if encrypter == nil {
		return nil, errors.New("encrypter cannot be nil")
	}
	if metricsService == nil {
		return nil, errors.New("metricsService cannot be nil")
	}

	return &userService{
		models:         models,
		hasher:         hasher,
		encrypter:      encrypter,
		metricsService: metricsService,
	}, nil
}

func (s *userService) CreateUser(ctx context.Context, user NewUser) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return entities.User{}, fmt.Errorf("creating user %s while %s is logged in: %w", user.Name, s.current.name, ErrUserAlreadyLoggedIn)
	}
	if err := validatePremium(user.Premium); err != nil {
		return entities.User{}, err
	}
	if user.SyncApproval == "" {
		user.SyncApproval = entities.SyncApprovalUnknown
	}

	passwordHash, err := s.hasher.Hash(user.Password)
	if err != nil {
		return entities.User{}, fmt.Errorf("creating user %s: %w", user.Name, err)
	}
	record := data.UserRecord{
		Name:         user.Name,
		PasswordHash: passwordHash,
		SyncApproval: user.SyncApproval,
	}
	if !user.Premium.IsEmpty() {
		record.PremiumAPIKey = user.Premium.APIKey
		record.PremiumAPISecret, err = s.encrypter.Encrypt(ctx, user.Premium.APISecret, user.Password)
		if err != nil {
			return entities.User{}, fmt.Errorf("encrypting premium secret of %s: %w", user.Name, err)
		}
	}

	if err := s.models.Users.Insert(ctx, record); err != nil {
		if errors.Is(err, data.ErrUserAlreadyExists) {
			return entities.User{}, fmt.Errorf("creating user %s: %w", user.Name, ErrUserAlreadyExists)
		}
		return entities.User{}, fmt.Errorf("creating user %s: %w", user.Name, err)
	}

	s.startSession(ctx, user.Name, user.Password)
	return userFromRecord(record, true), nil
}

func (s *userService) Login(ctx context.Context, name, password string, syncApproval entities.SyncApproval, premium entities.PremiumCredentials) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		if s.current.name == name {
			return entities.User{}, fmt.Errorf("logging in %s: %w", name, ErrUserAlreadyLoggedIn)
		}
		return entities.User{}, fmt.Errorf("logging in %s while %s is logged in: %w", name, s.current.name, ErrUserAlreadyLoggedIn)
	}
	if err := validatePremium(premium); err != nil {
		return entities.User{}, err
	}

	record, err := s.getRecord(ctx, name)
	if err != nil {
		return entities.User{}, err
	}
	if err := s.hasher.Compare(record.PasswordHash, password); err != nil {
		if errors.Is(err, secrets.ErrPasswordMismatch) {
			return entities.User{}, fmt.Errorf("logging in %s: %w", name, ErrWrongPassword)
		}
		return entities.User{}, fmt.Errorf("logging in %s: %w", name, err)
	}

	// the approval and the premium credentials are stored together or not at all
	err = db.RunInTransaction(ctx, s.models.DB, nil, func(dbTx db.Transaction) error {
		if syncApproval != "" && syncApproval != record.SyncApproval {
			if err := s.models.Users.UpdateSyncApproval(ctx, dbTx, name, syncApproval); err != nil {
				return fmt.Errorf("logging in %s: %w", name, err)
			}
		}
		if !premium.IsEmpty() {
			return s.storePremium(ctx, dbTx, name, password, premium)
		}
		return nil
	})
	if err != nil {
		return entities.User{}, err
	}
	if syncApproval != "" {
		record.SyncApproval = syncApproval
	}
	if !premium.IsEmpty() {
		record.PremiumAPIKey = premium.APIKey
		record.PremiumAPISecret = premium.APISecret
	}

	s.startSession(ctx, name, password)
	return userFromRecord(*record, true), nil
}

func (s *userService) Logout(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrUserNotLoggedIn
	}
	if s.current.name != name {
		return fmt.Errorf("logging out %s: %w", name, ErrUserMismatch)
	}

	s.current = nil
	s.metricsService.IncUserAction(string(entities.UserActionLogout))
	s.metricsService.SetLoggedInUser(false)
	log.Ctx(ctx).Infof("User %s logged out", name)
	return nil
}

func (s *userService) SetPremium(ctx context.Context, name string, premium entities.PremiumCredentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.current
	if current == nil {
		return ErrUserNotLoggedIn
	}
	if current.name != name {
		return fmt.Errorf("setting premium for %s: %w", name, ErrUserMismatch)
	}
	if premium.IsEmpty() {
		return fmt.Errorf("setting premium for %s: %w", name, ErrInvalidPremiumKeys)
	}
	if err := validatePremium(premium); err != nil {
		return err
	}
	return s.storePremium(ctx, s.models.DB, name, current.password, premium)
}

func (s *userService) ListUsers(ctx context.Context) ([]entities.User, error) {
	records, err := s.models.Users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]entities.User, 0, len(records))
	for _, record := range records {
		users = append(users, userFromRecord(record, s.current != nil && s.current.name == record.Name))
	}
	return users, nil
}

func (s *userService) LoggedInUser() (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return entities.User{}, ErrUserNotLoggedIn
	}
	return entities.User{Name: s.current.name, Status: entities.UserStatusLoggedIn}, nil
}

func (s *userService) PremiumCredentials(ctx context.Context) (entities.PremiumCredentials, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current == nil {
		return entities.PremiumCredentials{}, ErrUserNotLoggedIn
	}
	record, err := s.getRecord(ctx, current.name)
	if err != nil {
		return entities.PremiumCredentials{}, err
	}
	if !record.HasPremium() {
		return entities.PremiumCredentials{}, nil
	}

	secret, err := s.encrypter.Decrypt(ctx, record.PremiumAPISecret, current.password)
	if err != nil {
		return entities.PremiumCredentials{}, fmt.Errorf("%w: %w", ErrCorruptPremiumSecrets, err)
	}
	return entities.PremiumCredentials{APIKey: record.PremiumAPIKey, APISecret: secret}, nil
}

func (s *userService) getRecord(ctx context.Context, name string) (*data.UserRecord, error) {
	record, err := s.models.Users.Get(ctx, name)
	if err != nil {
		if errors.Is(err, data.ErrUserNotFound) {
			return nil, fmt.Errorf("getting user %s: %w", name, ErrUserNotFound)
		}
		return nil, fmt.Errorf("getting user %s: %w", name, err)
	}
	return record, nil
}

func (s *userService) storePremium(ctx context.Context, sqlExecuter db.SQLExecuter, name, password string, premium entities.PremiumCredentials) error {
	encryptedSecret, err := s.encrypter.Encrypt(ctx, premium.APISecret, password)
	if err != nil {
		return fmt.Errorf("encrypting premium secret of %s: %w", name, err)
	}
	if err := s.models.Users.UpdatePremium(ctx, sqlExecuter, name, premium.APIKey, encryptedSecret); err != nil {
		return fmt.Errorf("storing premium credentials of %s: %w", name, err)
	}
	return nil
}

// startSession must be called with s.mu held.
func (s *userService) startSession(ctx context.Context, name, password string) {
	s.current = &session{name: name, password: password}
	s.metricsService.IncUserAction(string(entities.UserActionLogin))
	s.metricsService.SetLoggedInUser(true)
	log.Ctx(ctx).Infof("User %s logged in", name)
}

func validatePremium(premium entities.PremiumCredentials) error {
	if premium.IsEmpty() {
		return nil
	}
	if premium.APIKey == "" || premium.APISecret == "" {
		return fmt.Errorf("%w: must provide both or neither of api key/secret", ErrInvalidPremiumKeys)
	}
	for _, value := range []string{premium.APIKey, premium.APISecret} {
		if _, err := base64.StdEncoding.DecodeString(value); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidPremiumKeys, err)
		}
	}
	return nil
}

func userFromRecord(record data.UserRecord, loggedIn bool) entities.User {
	status := entities.UserStatusLoggedOut
	if loggedIn {
		status = entities.UserStatusLoggedIn
	}
	return entities.User{
		Name:         record.Name,
		Status:       status,
		Premium:      record.HasPremium(),
		SyncApproval: record.SyncApproval,
	}
}
