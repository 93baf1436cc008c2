// Package apitest builds API servers backed by a migrated test database, with the mocked pieces
// tests usually need: a logged in user, premium credentials, stored settings and connected exchanges.
package apitest

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http/httptest"
	"testing"

	set "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/stellar/portfolio-backend/internal/apptracker"
	"github.com/stellar/portfolio-backend/internal/data"
	"github.com/stellar/portfolio-backend/internal/db"
	"github.com/stellar/portfolio-backend/internal/db/dbtest"
	"github.com/stellar/portfolio-backend/internal/entities"
	"github.com/stellar/portfolio-backend/internal/metrics"
	"github.com/stellar/portfolio-backend/internal/serve"
	"github.com/stellar/portfolio-backend/internal/services"
	"github.com/stellar/portfolio-backend/pkg/pfclient"
)

const (
	DefaultUsername = "testuser"
	DefaultPassword = "123"
	premiumKeySize  = 128
)

type Options struct {
	StartWithLoggedInUser bool
	StartWithValidPremium bool
	Username              string
	Password              string
	PremiumCredentials    entities.PremiumCredentials

	Settings                map[string]string
	IgnoredAssets           []string
	Tags                    []entities.Tag
	BlockchainAccounts      []entities.BlockchainAccount
	ManuallyTrackedBalances []entities.ManuallyTrackedBalance

	// ExchangeBalances are reported by the fake exchanges registered with NewServerWithExchanges.
	ExchangeBalances  map[entities.Location]entities.AssetBalances
	BlockchainQuerier services.BlockchainQuerier
}

// DefaultOptions starts with a logged in user without premium. The premium credentials are random
// and only attached when StartWithValidPremium is set.
func DefaultOptions(t *testing.T) Options {
	t.Helper()
	return Options{
		StartWithLoggedInUser: true,
		StartWithValidPremium: false,
		Username:              DefaultUsername,
		Password:              DefaultPassword,
		PremiumCredentials: entities.PremiumCredentials{
			APIKey:    randomBase64(t, premiumKeySize),
			APISecret: randomBase64(t, premiumKeySize),
		},
	}
}

type Server struct {
	Options         Options
	Models          *data.Models
	UserService     services.UserService
	ExchangeManager *services.ExchangeManager
	TaskManager     services.TaskManager
	AppTracker      *apptracker.MockAppTracker
	HTTP            *httptest.Server
	Client          *pfclient.Client
}

// NewUninitialized starts a server on a fresh database without unlocking any user.
func NewUninitialized(t *testing.T, opts Options) *Server {
	t.Helper()
	ctx := context.Background()

	dbt := dbtest.Open(t)
	t.Cleanup(dbt.Close)
	connectionPool, err := db.OpenDBConnectionPool(dbt.DSN)
	require.NoError(t, err)

	sqlxDB, err := connectionPool.SqlxDB(ctx)
	require.NoError(t, err)
	metricsService := metrics.NewMetricsService(sqlxDB)

	dbProvider, err := serve.NewDatabaseProvider(connectionPool, metricsService)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, dbProvider.Close()) })

	appTracker := &apptracker.MockAppTracker{}
	appTracker.On("CaptureException", mock.Anything).Maybe()
	appTracker.On("CaptureMessage", mock.Anything).Maybe()

	container, err := serve.NewServiceContainer(serve.ServiceDependencies{
		DatabaseProvider:  dbProvider,
		MetricsService:    metricsService,
		AppTracker:        appTracker,
		BlockchainQuerier: opts.BlockchainQuerier,
		BcryptCost:        bcrypt.MinCost,
	})
	require.NoError(t, err)
	t.Cleanup(container.GetTaskManager().Stop)

	httpServer := httptest.NewServer(serve.NewHandler(container))
	t.Cleanup(httpServer.Close)

	return &Server{
		Options:         opts,
		Models:          container.GetModels(),
		UserService:     container.GetUserService(),
		ExchangeManager: container.GetExchangeManager(),
		TaskManager:     container.GetTaskManager(),
		AppTracker:      appTracker,
		HTTP:            httpServer,
		Client:          pfclient.NewClient(httpServer.URL),
	}
}

// NewServer starts a server and, when StartWithLoggedInUser is set, creates and unlocks the user
// and stores the data given in the options for it.
func NewServer(t *testing.T, opts Options) *Server {
	t.Helper()
	s := NewUninitialized(t, opts)
	if opts.StartWithLoggedInUser {
		s.initializeUser(t)
	}
	return s
}

// exchangesWithoutFake are supported exchanges that have no fake connection yet.
var exchangesWithoutFake = set.NewSet(entities.LocationCoinbasePro, entities.LocationCoinbase, entities.LocationGemini)

// NewServerWithExchanges is NewServer with fake exchanges connected for the given names.
// Names of unsupported exchanges, and of exchanges without a fake, are skipped.
func NewServerWithExchanges(t *testing.T, opts Options, exchangeNames ...string) *Server {
	t.Helper()
	s := NewServer(t, opts)
	for _, name := range exchangeNames {
		if !entities.IsSupportedExchange(name) || exchangesWithoutFake.Contains(entities.Location(name)) {
			continue
		}
		location := entities.Location(name)
		require.NoError(t, s.ExchangeManager.Register(&FakeExchange{
			Location: location,
			Balances: opts.ExchangeBalances[location],
		}))
	}
	return s
}

func (s *Server) initializeUser(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	opts := s.Options

	_, err := s.UserService.CreateUser(ctx, services.NewUser{
		Name:         opts.Username,
		Password:     opts.Password,
		SyncApproval: entities.SyncApprovalNo,
	})
	require.NoError(t, err)

	if opts.StartWithValidPremium {
		require.NoError(t, s.UserService.SetPremium(ctx, opts.Username, opts.PremiumCredentials))
	}
	if len(opts.Settings) > 0 {
		require.NoError(t, s.Models.Settings.Set(ctx, opts.Username, opts.Settings))
	}
	if len(opts.IgnoredAssets) > 0 {
		require.NoError(t, s.Models.Settings.AddIgnoredAssets(ctx, opts.Username, opts.IgnoredAssets))
	}
	if len(opts.Tags) > 0 {
		require.NoError(t, s.Models.Tags.Insert(ctx, opts.Username, opts.Tags))
	}
	if len(opts.BlockchainAccounts) > 0 {
		require.NoError(t, s.Models.BlockchainAccounts.Insert(ctx, opts.Username, opts.BlockchainAccounts))
	}
	if len(opts.ManuallyTrackedBalances) > 0 {
		require.NoError(t, s.Models.ManualBalances.Insert(ctx, opts.Username, opts.ManuallyTrackedBalances))
	}
}

// FakeExchange is a connected exchange reporting fixed balances.
type FakeExchange struct {
	Location entities.Location
	Balances entities.AssetBalances
}

var _ services.Exchange = (*FakeExchange)(nil)

func (e *FakeExchange) Name() entities.Location {
	return e.Location
}

func (e *FakeExchange) QueryBalances(_ context.Context) (entities.AssetBalances, error) {
	balances := make(entities.AssetBalances, len(e.Balances))
	for asset, balance := range e.Balances {
		balances[asset] = balance
	}
	return balances, nil
}

func randomBase64(t *testing.T, size int) string {
	t.Helper()
	buf := make([]byte, size)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(buf)
}
