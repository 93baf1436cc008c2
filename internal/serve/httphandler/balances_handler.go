package httphandler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/stellar/go-stellar-sdk/support/render/httpjson"

	"github.com/stellar/portfolio-backend/internal/apptracker"
	"github.com/stellar/portfolio-backend/internal/encoding"
	"github.com/stellar/portfolio-backend/internal/services"
)

type BalancesHandler struct {
	BalanceService services.BalanceService
	TaskManager    services.TaskManager
	AppTracker     apptracker.AppTracker
}

func (h BalancesHandler) QueryExchangeBalances(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reqQuery := encoding.NewExchangeBalanceQueryRequest(chi.URLParam(r, "name"))
	if httpErr := DecodeQueryAndValidate(ctx, r, &reqQuery, h.AppTracker); httpErr != nil {
		httpErr.Render(w)
		return
	}

	query := func(ctx context.Context) (any, error) {
		return h.BalanceService.QueryExchangeBalances(ctx, reqQuery.Location())
	}
	h.run(w, r, "query_exchange_balances", reqQuery.AsyncQuery, query)
}

func (h BalancesHandler) QueryBlockchainBalances(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reqQuery := encoding.NewBlockchainBalanceQueryRequest(chi.URLParam(r, "name"))
	if httpErr := DecodeQueryAndValidate(ctx, r, &reqQuery, h.AppTracker); httpErr != nil {
		httpErr.Render(w)
		return
	}

	query := func(ctx context.Context) (any, error) {
		return h.BalanceService.QueryBlockchainBalances(ctx, reqQuery.Blockchains())
	}
	h.run(w, r, "query_blockchain_balances", reqQuery.AsyncQuery, query)
}

// run executes the query in the request or, for async queries, hands it to the task manager and
// responds with the task ID.
func (h BalancesHandler) run(w http.ResponseWriter, r *http.Request, taskType string, async bool, query services.TaskFunc) {
	ctx := r.Context()

	if async {
		id := h.TaskManager.Submit(ctx, taskType, query)
		httpjson.Render(w, encoding.TaskResponse{TaskID: id}, httpjson.JSON)
		return
	}

	result, err := query(ctx)
	if err != nil {
		serviceError(ctx, err, h.AppTracker).Render(w)
		return
	}
	httpjson.Render(w, result, httpjson.JSON)
}
