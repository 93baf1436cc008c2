package httphandler

import (
	"net/http"

	"github.com/stellar/go-stellar-sdk/support/render/httpjson"

	"github.com/stellar/portfolio-backend/internal/apptracker"
	"github.com/stellar/portfolio-backend/internal/encoding"
	"github.com/stellar/portfolio-backend/internal/serve/httperror"
	"github.com/stellar/portfolio-backend/internal/services"
)

type TradesHandler struct {
	TradeService services.TradeService
	AppTracker   apptracker.AppTracker
}

func (h TradesHandler) GetTrades(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reqQuery := encoding.TradesQueryRequest{}
	if httpErr := DecodeQueryAndValidate(ctx, r, &reqQuery, h.AppTracker); httpErr != nil {
		httpErr.Render(w)
		return
	}
	filter, err := reqQuery.Load()
	if err != nil {
		httperror.BadRequest(err.Error(), nil).Render(w)
		return
	}

	trades, err := h.TradeService.Query(ctx, filter)
	if err != nil {
		serviceError(ctx, err, h.AppTracker).Render(w)
		return
	}

	httpjson.Render(w, encoding.NewTradesResponse(trades), httpjson.JSON)
}

func (h TradesHandler) AddTrade(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reqBody := encoding.TradeRequest{}
	if httpErr := DecodeJSONAndValidate(ctx, r, &reqBody, h.AppTracker); httpErr != nil {
		httpErr.Render(w)
		return
	}
	trade, err := reqBody.Load()
	if err != nil {
		httperror.BadRequest(err.Error(), nil).Render(w)
		return
	}

	trade, err = h.TradeService.Add(ctx, trade)
	if err != nil {
		serviceError(ctx, err, h.AppTracker).Render(w)
		return
	}

	httpjson.Render(w, encoding.NewTradeResponse(trade), httpjson.JSON)
}

func (h TradesHandler) EditTrade(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reqBody := encoding.TradePatchRequest{}
	if httpErr := DecodeJSONAndValidate(ctx, r, &reqBody, h.AppTracker); httpErr != nil {
		httpErr.Render(w)
		return
	}
	trade, err := reqBody.Load()
	if err != nil {
		httperror.BadRequest(err.Error(), nil).Render(w)
		return
	}

	trade, err = h.TradeService.Edit(ctx, trade)
	if err != nil {
		serviceError(ctx, err, h.AppTracker).Render(w)
		return
	}

	httpjson.Render(w, encoding.NewTradeResponse(trade), httpjson.JSON)
}

func (h TradesHandler) DeleteTrade(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reqBody := encoding.TradeDeleteRequest{}
	if httpErr := DecodeJSONAndValidate(ctx, r, &reqBody, h.AppTracker); httpErr != nil {
		httpErr.Render(w)
		return
	}
	id, err := reqBody.Load()
	if err != nil {
		httperror.BadRequest(err.Error(), nil).Render(w)
		return
	}

	if err := h.TradeService.Delete(ctx, id); err != nil {
		serviceError(ctx, err, h.AppTracker).Render(w)
		return
	}

	httpjson.Render(w, map[string]bool{"result": true}, httpjson.JSON)
}
