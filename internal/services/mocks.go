package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/stellar/portfolio-backend/internal/entities"
)

type UserServiceMock struct {
	mock.Mock
}

var _ UserService = (*UserServiceMock)(nil)

func (u *UserServiceMock) CreateUser(ctx context.Context, user NewUser) (entities.User, error) {
	args := u.Called(ctx, user)
	return args.Get(0).(entities.User), args.Error(1)
}

func (u *UserServiceMock) Login(ctx context.Context, name, password string, syncApproval entities.SyncApproval, premium entities.PremiumCredentials) (entities.User, error) {
	args := u.Called(ctx, name, password, syncApproval, premium)
	return args.Get(0).(entities.User), args.Error(1)
}

func (u *UserServiceMock) Logout(ctx context.Context, name string) error {
	args := u.Called(ctx, name)
	return args.Error(0)
}

func (u *UserServiceMock) SetPremium(ctx context.Context, name string, premium entities.PremiumCredentials) error {
	args := u.Called(ctx, name, premium)
	return args.Error(0)
}

func (u *UserServiceMock) ListUsers(ctx context.Context) ([]entities.User, error) {
	args := u.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.User), args.Error(1)
}

func (u *UserServiceMock) LoggedInUser() (entities.User, error) {
	args := u.Called()
	return args.Get(0).(entities.User), args.Error(1)
}

func (u *UserServiceMock) PremiumCredentials(ctx context.Context) (entities.PremiumCredentials, error) {
	args := u.Called(ctx)
	return args.Get(0).(entities.PremiumCredentials), args.Error(1)
}

type TradeServiceMock struct {
	mock.Mock
}

var _ TradeService = (*TradeServiceMock)(nil)

func (t *TradeServiceMock) Query(ctx context.Context, filter entities.TradeFilter) ([]entities.Trade, error) {
	args := t.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.Trade), args.Error(1)
}

func (t *TradeServiceMock) Add(ctx context.Context, trade entities.Trade) (entities.Trade, error) {
	args := t.Called(ctx, trade)
	return args.Get(0).(entities.Trade), args.Error(1)
}

func (t *TradeServiceMock) Edit(ctx context.Context, trade entities.Trade) (entities.Trade, error) {
	args := t.Called(ctx, trade)
	return args.Get(0).(entities.Trade), args.Error(1)
}

func (t *TradeServiceMock) Delete(ctx context.Context, id entities.TradeID) error {
	args := t.Called(ctx, id)
	return args.Error(0)
}

type BalanceServiceMock struct {
	mock.Mock
}

var _ BalanceService = (*BalanceServiceMock)(nil)

func (b *BalanceServiceMock) QueryExchangeBalances(ctx context.Context, name entities.Location) (entities.AssetBalances, error) {
	args := b.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entities.AssetBalances), args.Error(1)
}

func (b *BalanceServiceMock) QueryBlockchainBalances(ctx context.Context, blockchains []entities.Blockchain) (BlockchainBalances, error) {
	args := b.Called(ctx, blockchains)
	return args.Get(0).(BlockchainBalances), args.Error(1)
}

// ExchangeMock is a connected exchange whose balances are set by the test.
type ExchangeMock struct {
	mock.Mock
	name entities.Location
}

var _ Exchange = (*ExchangeMock)(nil)

func NewExchangeMock(name entities.Location) *ExchangeMock {
	return &ExchangeMock{name: name}
}

func (e *ExchangeMock) Name() entities.Location {
	return e.name
}

func (e *ExchangeMock) QueryBalances(ctx context.Context) (entities.AssetBalances, error) {
	args := e.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(entities.AssetBalances), args.Error(1)
}

type BlockchainQuerierMock struct {
	mock.Mock
}

var _ BlockchainQuerier = (*BlockchainQuerierMock)(nil)

func (b *BlockchainQuerierMock) QueryBalances(ctx context.Context, blockchain entities.Blockchain, accounts []entities.BlockchainAccount) (map[string]entities.AssetBalances, error) {
	args := b.Called(ctx, blockchain, accounts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]entities.AssetBalances), args.Error(1)
}
