package httphandler

import (
	"net/http"

	"github.com/stellar/go-stellar-sdk/support/render/httpjson"

	"github.com/stellar/portfolio-backend/internal/services"
)

type ExchangesHandler struct {
	ExchangeManager *services.ExchangeManager
}

// ListConnectedExchanges renders the sorted names of the connected exchanges.
func (h ExchangesHandler) ListConnectedExchanges(w http.ResponseWriter, _ *http.Request) {
	httpjson.Render(w, h.ExchangeManager.Names(), httpjson.JSON)
}
