package httphandler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/stellar/go-stellar-sdk/support/render/httpjson"

	"github.com/stellar/portfolio-backend/internal/apptracker"
	"github.com/stellar/portfolio-backend/internal/serve/httperror"
	"github.com/stellar/portfolio-backend/internal/services"
)

type TasksHandler struct {
	TaskManager services.TaskManager
	AppTracker  apptracker.AppTracker
}

func (h TasksHandler) GetTaskResult(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httperror.BadRequest("Validation error.", map[string]interface{}{"task_id": "Should be a positive integer"}).Render(w)
		return
	}

	result, err := h.TaskManager.Result(id)
	if err != nil {
		serviceError(ctx, err, h.AppTracker).Render(w)
		return
	}

	httpjson.Render(w, result, httpjson.JSON)
}
