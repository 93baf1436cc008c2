package data

import (
	"errors"

	"github.com/stellar/portfolio-backend/internal/db"
	"github.com/stellar/portfolio-backend/internal/metrics"
)

type Models struct {
	DB                 db.ConnectionPool
	Users              *UserModel
	Trades             *TradeModel
	Settings           *SettingsModel
	Tags               *TagModel
	BlockchainAccounts *BlockchainAccountModel
	ManualBalances     *ManualBalanceModel
}

func NewModels(db db.ConnectionPool, metricsService metrics.MetricsService) (*Models, error) {
	if db == nil {
		return nil, errors.New("ConnectionPool must be initialized")
	}
	if metricsService == nil {
		return nil, errors.New("MetricsService must be initialized")
	}

	return &Models{
		DB:                 db,
		Users:              &UserModel{DB: db, MetricsService: metricsService},
		Trades:             &TradeModel{DB: db, MetricsService: metricsService},
		Settings:           &SettingsModel{DB: db, MetricsService: metricsService},
		Tags:               &TagModel{DB: db, MetricsService: metricsService},
		BlockchainAccounts: &BlockchainAccountModel{DB: db, MetricsService: metricsService},
		ManualBalances:     &ManualBalanceModel{DB: db, MetricsService: metricsService},
	}, nil
}
