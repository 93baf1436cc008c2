package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/stellar/portfolio-backend/internal/db"
	"github.com/stellar/portfolio-backend/internal/entities"
	"github.com/stellar/portfolio-backend/internal/metrics"
	"github.com/stellar/portfolio-backend/internal/utils"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRecord is a stored user. PremiumAPISecret is kept encrypted.
type UserRecord struct {
	Name             string                `db:"name"`
	PasswordHash     string                `db:"password_hash"`
	SyncApproval     entities.SyncApproval `db:"sync_approval"`
	PremiumAPIKey    string                `db:"premium_api_key"`
	PremiumAPISecret string                `db:"premium_api_secret"`
	CreatedAt        time.Time             `db:"created_at"`
	UpdatedAt        time.Time             `db:"updated_at"`
}

func (r UserRecord) HasPremium() bool {
	return r.PremiumAPIKey != "" && r.PremiumAPISecret != ""
}

type UserModel struct {
	DB             db.ConnectionPool
	MetricsService metrics.MetricsService
}

func (m *UserModel) Insert(ctx context.Context, user UserRecord) error {
	const query = `
		INSERT INTO users (name, password_hash, sync_approval, premium_api_key, premium_api_secret)
		VALUES (:name, :password_hash, :sync_approval, :premium_api_key, :premium_api_secret)
	`
	start := time.Now()
	_, err := m.DB.NamedExecContext(ctx, query, user)
	observeQuery(m.MetricsService, "INSERT", "users", start, err)
	if err != nil {
		if utils.IsUniqueViolation(err) {
			return fmt.Errorf("inserting user %s: %w", user.Name, ErrUserAlreadyExists)
		}
		return fmt.Errorf("inserting user %s: %w", user.Name, err)
	}
	return nil
}

func (m *UserModel) Get(ctx context.Context, name string) (*UserRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE name = $1`, columnList(UserRecord{}))
	var user UserRecord
	start := time.Now()
	err := m.DB.GetContext(ctx, &user, query, name)
	observeQuery(m.MetricsService, "SELECT", "users", start, err)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("getting user %s: %w", name, ErrUserNotFound)
		}
		return nil, fmt.Errorf("getting user %s: %w", name, err)
	}
	return &user, nil
}

func (m *UserModel) GetAll(ctx context.Context) ([]UserRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY name`, columnList(UserRecord{}))
	users := []UserRecord{}
	start := time.Now()
	err := m.DB.SelectContext(ctx, &users, query)
	observeQuery(m.MetricsService, "SELECT", "users", start, err)
	if err != nil {
		return nil, fmt.Errorf("getting all users: %w", err)
	}
	return users, nil
}

// UpdateSyncApproval runs on the given executer so it can join a transaction.
func (m *UserModel) UpdateSyncApproval(ctx context.Context, sqlExecuter db.SQLExecuter, name string, approval entities.SyncApproval) error {
	const query = `UPDATE users SET sync_approval = $2, updated_at = NOW() WHERE name = $1`
	return m.update(ctx, sqlExecuter, name, query, name, approval)
}

// UpdatePremium stores the premium api key and the already encrypted secret.
func (m *UserModel) UpdatePremium(ctx context.Context, sqlExecuter db.SQLExecuter, name, apiKey, encryptedSecret string) error {
	const query = `UPDATE users SET premium_api_key = $2, premium_api_secret = $3, updated_at = NOW() WHERE name = $1`
	return m.update(ctx, sqlExecuter, name, query, name, apiKey, encryptedSecret)
}

func (m *UserModel) update(ctx context.Context, sqlExecuter db.SQLExecuter, name, query string, args ...interface{}) error {
	start := time.Now()
	result, err := sqlExecuter.ExecContext(ctx, query, args...)
	observeQuery(m.MetricsService, "UPDATE", "users", start, err)
	if err != nil {
		return fmt.Errorf("updating user %s: %w", name, err)
	}
	return checkAffected(result, fmt.Sprintf("updating user %s", name), ErrUserNotFound)
}
