package serve

import (
	"errors"
	"fmt"

	"github.com/stellar/portfolio-backend/internal/apptracker"
	"github.com/stellar/portfolio-backend/internal/assets"
	"github.com/stellar/portfolio-backend/internal/data"
	"github.com/stellar/portfolio-backend/internal/metrics"
	"github.com/stellar/portfolio-backend/internal/secrets"
	"github.com/stellar/portfolio-backend/internal/services"
)

const defaultMaxConcurrentTasks = 4

type serviceContainer struct {
	userService     services.UserService
	tradeService    services.TradeService
	balanceService  services.BalanceService
	exchangeManager *services.ExchangeManager
	taskManager     services.TaskManager
	metricsService  metrics.MetricsService
	models          *data.Models
	assetResolver   *assets.Resolver
	appTracker      apptracker.AppTracker
}

var _ ServiceContainer = (*serviceContainer)(nil)

func (c *serviceContainer) GetUserService() services.UserService {
	return c.userService
}

func (c *serviceContainer) GetTradeService() services.TradeService {
	return c.tradeService
}

func (c *serviceContainer) GetBalanceService() services.BalanceService {
	return c.balanceService
}

func (c *serviceContainer) GetExchangeManager() *services.ExchangeManager {
	return c.exchangeManager
}

func (c *serviceContainer) GetTaskManager() services.TaskManager {
	return c.taskManager
}

func (c *serviceContainer) GetMetricsService() metrics.MetricsService {
	return c.metricsService
}

func (c *serviceContainer) GetModels() *data.Models {
	return c.models
}

func (c *serviceContainer) GetAssetResolver() *assets.Resolver {
	return c.assetResolver
}

func (c *serviceContainer) GetAppTracker() apptracker.AppTracker {
	return c.appTracker
}

// NewServiceContainer creates a new service container with all required services
func NewServiceContainer(deps ServiceDependencies) (*serviceContainer, error) {
	if deps.DatabaseProvider == nil {
		return nil, errors.New("database provider cannot be nil")
	}
	if deps.MetricsService == nil {
		return nil, errors.New("metrics service cannot be nil")
	}
	models := deps.DatabaseProvider.GetModels()

	userService, err := services.NewUserService(models, &secrets.BcryptPasswordHasher{Cost: deps.BcryptCost}, &secrets.DefaultEncrypter{}, deps.MetricsService)
	if err != nil {
		return nil, fmt.Errorf("creating user service: %w", err)
	}

	tradeService, err := services.NewTradeService(models, userService)
	if err != nil {
		return nil, fmt.Errorf("creating trade service: %w", err)
	}

	blockchainQuerier := deps.BlockchainQuerier
	if blockchainQuerier == nil {
		blockchainQuerier = services.EmptyBlockchainQuerier{}
	}
	exchangeManager := services.NewExchangeManager()
	balanceService, err := services.NewBalanceService(models, userService, exchangeManager, blockchainQuerier, deps.MetricsService)
	if err != nil {
		return nil, fmt.Errorf("creating balance service: %w", err)
	}

	maxConcurrentTasks := deps.MaxConcurrentTasks
	if maxConcurrentTasks <= 0 {
		maxConcurrentTasks = defaultMaxConcurrentTasks
	}
	taskManager, err := services.NewTaskManager(maxConcurrentTasks, deps.MetricsService)
	if err != nil {
		return nil, fmt.Errorf("creating task manager: %w", err)
	}

	return &serviceContainer{
		userService:     userService,
		tradeService:    tradeService,
		balanceService:  balanceService,
		exchangeManager: exchangeManager,
		taskManager:     taskManager,
		metricsService:  deps.MetricsService,
		models:          models,
		assetResolver:   assets.Default(),
		appTracker:      deps.AppTracker,
	}, nil
}
