package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/stellar/portfolio-backend/internal/entities"
)

var (
	ErrUnsupportedExchange  = errors.New("unsupported exchange")
	ErrExchangeNotConnected = errors.New("exchange is not connected")
)

// Exchange is a connected exchange account able to report its balances.
type Exchange interface {
	Name() entities.Location
	QueryBalances(ctx context.Context) (entities.AssetBalances, error)
}

// ExchangeManager is the registry of connected exchanges. It is safe for concurrent use.
type ExchangeManager struct {
	mu        sync.RWMutex
	exchanges map[entities.Location]Exchange
}

func NewExchangeManager() *ExchangeManager {
	return &ExchangeManager{exchanges: make(map[entities.Location]Exchange)}
}

// Register connects the exchange, replacing a previous connection to the same exchange.
func (m *ExchangeManager) Register(exchange Exchange) error {
	name := exchange.Name()
	if !entities.SupportedExchanges.Contains(name) {
		return fmt.Errorf("registering %s: %w", name, ErrUnsupportedExchange)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.exchanges[name] = exchange
	return nil
}

func (m *ExchangeManager) Get(name entities.Location) (Exchange, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	exchange, ok := m.exchanges[name]
	if !ok {
		return nil, fmt.Errorf("getting %s: %w", name, ErrExchangeNotConnected)
	}
	return exchange, nil
}

// Names returns the names of the connected exchanges, sorted.
func (m *ExchangeManager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.exchanges))
	for name := range m.exchanges {
		names = append(names, string(name))
	}
	sort.Strings(names)
	return names
}

// Clear disconnects every exchange.
func (m *ExchangeManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exchanges = make(map[entities.Location]Exchange)
}
