package httphandler

import (
	"fmt"
	"net/http"

	"github.com/stellar/go-stellar-sdk/support/render/httpjson"

	"github.com/stellar/portfolio-backend/internal/apptracker"
	"github.com/stellar/portfolio-backend/internal/data"
	"github.com/stellar/portfolio-backend/internal/entities"
	"github.com/stellar/portfolio-backend/internal/serve/httperror"
)

type HealthHandler struct {
	Models     *data.Models
	AppTracker apptracker.AppTracker
}

func (h HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.Models.DB.Ping(ctx); err != nil {
		httperror.InternalServerError(ctx, "", fmt.Errorf("pinging the database: %w", err), nil, h.AppTracker).Render(w)
		return
	}

	httpjson.Render(w, entities.HealthResponse{Status: entities.Healthy}, httpjson.JSON)
}
