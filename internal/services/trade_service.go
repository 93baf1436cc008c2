package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/stellar/portfolio-backend/internal/data"
	"github.com/stellar/portfolio-backend/internal/entities"
)

var ErrTradeNotFound = errors.New("trade not found")

type TradeService interface {
	Query(ctx context.Context, filter entities.TradeFilter) ([]entities.Trade, error)
	// Add stores a new trade for the logged in user and returns it with its assigned ID.
	Add(ctx context.Context, trade entities.Trade) (entities.Trade, error)
	// Edit replaces the trade with the same ID.
	Edit(ctx context.Context, trade entities.Trade) (entities.Trade, error)
	Delete(ctx context.Context, id entities.TradeID) error
}

var _ TradeService = (*tradeService)(nil)

type tradeService struct {
	models      *data.Models
	userService UserService
}

func NewTradeService(models *data.Models, userService UserService) (*tradeService, error) {
	if models == nil {
		return nil, errors.New("models cannot be nil")
	}
	if userService == nil {
		return nil, errors.New("userService cannot be nil")
	}
	return &tradeService{models: models, userService: userService}, nil
}

func (s *tradeService) Query(ctx context.Context, filter entities.TradeFilter) ([]entities.Trade, error) {
	user, err := s.userService.LoggedInUser()
	if err != nil {
		return nil, err
	}
	trades, err := s.models.Trades.Query(ctx, user.Name, filter, data.ASC)
	if err != nil {
		return nil, fmt.Errorf("querying trades of %s: %w", user.Name, err)
	}
	return trades, nil
}

func (s *tradeService) Add(ctx context.Context, trade entities.Trade) (entities.Trade, error) {
	user, err := s.userService.LoggedInUser()
	if err != nil {
		return entities.Trade{}, err
	}
	trade.ID = uuid.New()
	trade.Username = user.Name
	if err := s.models.Trades.Insert(ctx, trade); err != nil {
		return entities.Trade{}, fmt.Errorf("adding trade: %w", err)
	}
	return trade, nil
}

func (s *tradeService) Edit(ctx context.Context, trade entities.Trade) (entities.Trade, error) {
	user, err := s.userService.LoggedInUser()
	if err != nil {
		return entities.Trade{}, err
	}
	trade.Username = user.Name
	if err := s.models.Trades.Update(ctx, trade); err != nil {
		if errors.Is(err, data.ErrTradeNotFound) {
			return entities.Trade{}, fmt.Errorf("editing trade %s: %w", trade.ID, ErrTradeNotFound)
		}
		return entities.Trade{}, fmt.Errorf("editing trade %s: %w", trade.ID, err)
	}
	return trade, nil
}

func (s *tradeService) Delete(ctx context.Context, id entities.TradeID) error {
	user, err := s.userService.LoggedInUser()
	if err != nil {
		return err
	}
	if err := s.models.Trades.Delete(ctx, user.Name, id); err != nil {
		if errors.Is(err, data.ErrTradeNotFound) {
			return fmt.Errorf("deleting trade %s: %w", id, ErrTradeNotFound)
		}
		return fmt.Errorf("deleting trade %s: %w", id, err)
	}
	return nil
}
