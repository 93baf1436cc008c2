package serve

import (
	"github.com/stellar/portfolio-backend/internal/apptracker"
	"github.com/stellar/portfolio-backend/internal/assets"
	"github.com/stellar/portfolio-backend/internal/data"
	"github.com/stellar/portfolio-backend/internal/metrics"
	"github.com/stellar/portfolio-backend/internal/services"
)

// DatabaseProvider provides database connections and models
type DatabaseProvider interface {
	GetModels() *data.Models
	Close() error
}

// ServiceDependencies holds the basic dependencies needed for service creation
type ServiceDependencies struct {
	DatabaseProvider   DatabaseProvider
	MetricsService     metrics.MetricsService
	AppTracker         apptracker.AppTracker
	BlockchainQuerier  services.BlockchainQuerier
	BcryptCost         int
	MaxConcurrentTasks int
}

// ServiceContainer manages all business services
type ServiceContainer interface {
	GetUserService() services.UserService
	GetTradeService() services.TradeService
	GetBalanceService() services.BalanceService
	GetExchangeManager() *services.ExchangeManager
	GetTaskManager() services.TaskManager
	GetMetricsService() metrics.MetricsService
	GetModels() *data.Models
	GetAssetResolver() *assets.Resolver
	GetAppTracker() apptracker.AppTracker
}
