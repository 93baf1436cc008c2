package httphandler

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/stellar/go-stellar-sdk/support/render/httpjson"

	"github.com/stellar/portfolio-backend/internal/apptracker"
	"github.com/stellar/portfolio-backend/internal/assets"
)

type AssetsHandler struct {
	Resolver   *assets.Resolver
	AppTracker apptracker.AppTracker
}

func (h AssetsHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	data, err := h.Resolver.GetAssetData(chi.URLParam(r, "identifier"))
	if err != nil {
		serviceError(ctx, err, h.AppTracker).Render(w)
		return
	}

	httpjson.Render(w, data, httpjson.JSON)
}

func (h AssetsHandler) GetEthTokens(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokens, err := h.Resolver.GetAllEthTokenInfo()
	if err != nil {
		serviceError(ctx, err, h.AppTracker).Render(w)
		return
	}

	httpjson.Render(w, tokens, httpjson.JSON)
}
