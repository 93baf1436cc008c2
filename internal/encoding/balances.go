package encoding

import (
	"github.com/stellar/portfolio-backend/internal/entities"
)

const AllBlockchains = "all"

type ExchangeBalanceQueryRequest struct {
	Name       string `json:"name"        validate:"required,exchange"`
	AsyncQuery bool   `json:"async_query" query:"async_query"`
}

func NewExchangeBalanceQueryRequest(name string) ExchangeBalanceQueryRequest {
	return ExchangeBalanceQueryRequest{Name: name}
}

func (r ExchangeBalanceQueryRequest) Location() entities.Location {
	return entities.Location(r.Name)
}

type BlockchainBalanceQueryRequest struct {
	Name       string `json:"name"        validate:"required,oneof=all BTC ETH"`
	AsyncQuery bool   `json:"async_query" query:"async_query"`
}

func NewBlockchainBalanceQueryRequest(name string) BlockchainBalanceQueryRequest {
	if name == "" {
		name = AllBlockchains
	}
	return BlockchainBalanceQueryRequest{Name: name}
}

// Blockchains returns the chains the query covers.
func (r BlockchainBalanceQueryRequest) Blockchains() []entities.Blockchain {
	if r.Name == AllBlockchains {
		return entities.AllBlockchains
	}
	return []entities.Blockchain{entities.Blockchain(r.Name)}
}

// TaskResponse is returned by queries run with async_query.
type TaskResponse struct {
	TaskID int64 `json:"task_id"`
}
