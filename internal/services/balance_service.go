package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	set "github.com/deckarep/golang-set/v2"

	"github.com/stellar/portfolio-backend/internal/data"
	"github.com/stellar/portfolio-backend/internal/entities"
	"github.com/stellar/portfolio-backend/internal/metrics"
)

// BlockchainQuerier reports the balances held by blockchain accounts, keyed by account address.
type BlockchainQuerier interface {
	QueryBalances(ctx context.Context, blockchain entities.Blockchain, accounts []entities.BlockchainAccount) (map[string]entities.AssetBalances, error)
}

// EmptyBlockchainQuerier reports every account with no balances.
type EmptyBlockchainQuerier struct{}

var _ BlockchainQuerier = EmptyBlockchainQuerier{}

func (EmptyBlockchainQuerier) QueryBalances(_ context.Context, _ entities.Blockchain, accounts []entities.BlockchainAccount) (map[string]entities.AssetBalances, error) {
	balances := make(map[string]entities.AssetBalances, len(accounts))
	for _, account := range accounts {
		balances[account.Address] = entities.AssetBalances{}
	}
	return balances, nil
}

type BlockchainBalances struct {
	PerAccount map[entities.Blockchain]map[string]entities.AssetBalances `json:"per_account"`
	Totals     entities.AssetBalances                                    `json:"totals"`
}

type BalanceService interface {
	QueryExchangeBalances(ctx context.Context, name entities.Location) (entities.AssetBalances, error)
	// QueryBlockchainBalances queries the accounts of the given chains. Manually tracked balances held on
	// the blockchain location are added to the totals.
	QueryBlockchainBalances(ctx context.Context, blockchains []entities.Blockchain) (BlockchainBalances, error)
}

var _ BalanceService = (*balanceService)(nil)

type balanceService struct {
	models            *data.Models
	userService       UserService
	exchangeManager   *ExchangeManager
	blockchainQuerier BlockchainQuerier
	metricsService    metrics.MetricsService
}

func NewBalanceService(models *data.Models, userService UserService, exchangeManager *ExchangeManager, blockchainQuerier BlockchainQuerier, metricsService metrics.MetricsService) (*balanceService, error) {
	if models == nil {
		return nil, errors.New("models cannot be nil")
	}
	if userService == nil {
		return nil, errors.New("userService cannot be nil")
	}
	if exchangeManager == nil {
		return nil, errors.New("exchangeManager cannot be nil")
	}
	if blockchainQuerier == nil {
		return nil, errors.New("blockchainQuerier cannot be nil")
	}
	if metricsService == nil {
		return nil, errors.New("metricsService cannot be nil")
	}
	return &balanceService{
		models:            models,
		userService:       userService,
		exchangeManager:   exchangeManager,
		blockchainQuerier: blockchainQuerier,
		metricsService:    metricsService,
	}, nil
}

func (s *balanceService) QueryExchangeBalances(ctx context.Context, name entities.Location) (entities.AssetBalances, error) {
	user, err := s.userService.LoggedInUser()
	if err != nil {
		return nil, err
	}
	exchange, err := s.exchangeManager.Get(name)
	if err != nil {
		return nil, fmt.Errorf("querying %s balances: %w", name, err)
	}

	start := time.Now()
	balances, err := exchange.QueryBalances(ctx)
	s.metricsService.ObserveBalanceQueryDuration("exchange", string(name), time.Since(start).Seconds())
	if err != nil {
		s.metricsService.IncBalanceQueryError("exchange", string(name))
		return nil, fmt.Errorf("querying %s balances: %w", name, err)
	}

	ignored, err := s.models.Settings.GetIgnoredAssets(ctx, user.Name)
	if err != nil {
		return nil, fmt.Errorf("querying %s balances: %w", name, err)
	}
	return withoutIgnored(balances, ignored), nil
}

func (s *balanceService) QueryBlockchainBalances(ctx context.Context, blockchains []entities.Blockchain) (BlockchainBalances, error) {
	user, err := s.userService.LoggedInUser()
	if err != nil {
		return BlockchainBalances{}, err
	}
	ignored, err := s.models.Settings.GetIgnoredAssets(ctx, user.Name)
	if err != nil {
		return BlockchainBalances{}, fmt.Errorf("querying blockchain balances: %w", err)
	}

	result := BlockchainBalances{
		PerAccount: make(map[entities.Blockchain]map[string]entities.AssetBalances, len(blockchains)),
		Totals:     entities.AssetBalances{},
	}
	for _, blockchain := range blockchains {
		accounts, err := s.models.BlockchainAccounts.GetByBlockchains(ctx, user.Name, blockchain)
		if err != nil {
			return BlockchainBalances{}, fmt.Errorf("querying %s balances: %w", blockchain, err)
		}

		start := time.Now()
		perAccount, err := s.blockchainQuerier.QueryBalances(ctx, blockchain, accounts)
		s.metricsService.ObserveBalanceQueryDuration("blockchain", string(blockchain), time.Since(start).Seconds())
		if err != nil {
			s.metricsService.IncBalanceQueryError("blockchain", string(blockchain))
			return BlockchainBalances{}, fmt.Errorf("querying %s balances: %w", blockchain, err)
		}

		chainBalances := make(map[string]entities.AssetBalances, len(perAccount))
		for address, balances := range perAccount {
			balances = withoutIgnored(balances, ignored)
			chainBalances[address] = balances
			addBalances(result.Totals, balances)
		}
		result.PerAccount[blockchain] = chainBalances
	}

	manualBalances, err := s.models.ManualBalances.GetAll(ctx, user.Name)
	if err != nil {
		return BlockchainBalances{}, fmt.Errorf("querying blockchain balances: %w", err)
	}
	for _, balance := range manualBalances {
		if balance.Location != entities.LocationBlockchain || ignored.Contains(balance.Asset) {
			continue
		}
		addBalances(result.Totals, entities.AssetBalances{balance.Asset: {Amount: balance.Amount}})
	}

	return result, nil
}

func withoutIgnored(balances entities.AssetBalances, ignored set.Set[string]) entities.AssetBalances {
	filtered := make(entities.AssetBalances, len(balances))
	for asset, balance := range balances {
		if !ignored.Contains(asset) {
			filtered[asset] = balance
		}
	}
	return filtered
}

func addBalances(totals, balances entities.AssetBalances) {
	for asset, balance := range balances {
		totals[asset] = totals[asset].Add(balance)
	}
}
