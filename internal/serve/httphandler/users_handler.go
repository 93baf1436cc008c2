package httphandler

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/stellar/go-stellar-sdk/support/render/httpjson"

	"github.com/stellar/portfolio-backend/internal/apptracker"
	"github.com/stellar/portfolio-backend/internal/encoding"
	"github.com/stellar/portfolio-backend/internal/entities"
	"github.com/stellar/portfolio-backend/internal/serve/httperror"
	"github.com/stellar/portfolio-backend/internal/services"
)

type UsersHandler struct {
	UserService     services.UserService
	ExchangeManager *services.ExchangeManager
	AppTracker      apptracker.AppTracker
}

func (h UsersHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.UserService.ListUsers(ctx)
	if err != nil {
		serviceError(ctx, err, h.AppTracker).Render(w)
		return
	}

	httpjson.Render(w, encoding.NewUsersResponse(users), httpjson.JSON)
}

func (h UsersHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	reqBody := encoding.NewNewUserRequest()
	if httpErr := DecodeJSONAndValidate(ctx, r, &reqBody, h.AppTracker); httpErr != nil {
		httpErr.Render(w)
		return
	}
	premium, err := reqBody.Premium()
	if err != nil {
		serviceError(ctx, err, h.AppTracker).Render(w)
		return
	}

	user, err := h.UserService.CreateUser(ctx, services.NewUser{
		Name:         reqBody.Name,
		Password:     reqBody.Password,
		SyncApproval: entities.SyncApproval(reqBody.SyncApproval),
		Premium:      premium,
	})
	if err != nil {
		serviceError(ctx, err, h.AppTracker).Render(w)
		return
	}

	httpjson.Render(w, user, httpjson.JSON)
}

// UserAction logs the user in or out. Without an action the request must carry premium credentials,
// which are attached to the logged in user.
func (h UsersHandler) UserAction(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name := chi.URLParam(r, "name")
	reqBody := encoding.NewUserActionRequest(name)
	if httpErr := DecodeJSONAndValidate(ctx, r, &reqBody, h.AppTracker); httpErr != nil {
		httpErr.Render(w)
		return
	}
	if reqBody.Name != name {
		httperror.BadRequest("Validation error.", map[string]interface{}{"name": "Does not match the user in the url"}).Render(w)
		return
	}
	premium, err := reqBody.Premium()
	if err != nil {
		serviceError(ctx, err, h.AppTracker).Render(w)
		return
	}

	switch entities.UserAction(reqBody.Action) {
	case entities.UserActionLogin:
		// unknown keeps the stored approval.
		syncApproval := entities.SyncApproval(reqBody.SyncApproval)
		if syncApproval == entities.SyncApprovalUnknown {
			syncApproval = ""
		}
		user, err := h.UserService.Login(ctx, name, reqBody.Password, syncApproval, premium)
		if err != nil {
			serviceError(ctx, err, h.AppTracker).Render(w)
			return
		}
		httpjson.Render(w, user, httpjson.JSON)

	case entities.UserActionLogout:
		if err := h.UserService.Logout(ctx, name); err != nil {
			serviceError(ctx, err, h.AppTracker).Render(w)
			return
		}
		// exchange connections belong to the session
		if h.ExchangeManager != nil {
			h.ExchangeManager.Clear()
		}
		httpjson.Render(w, map[string]bool{"result": true}, httpjson.JSON)

	default:
		if premium.IsEmpty() {
			httperror.BadRequest("Without an action premium api key and secret must be provided.", nil).Render(w)
			return
		}
		if err := h.UserService.SetPremium(ctx, name, premium); err != nil {
			serviceError(ctx, err, h.AppTracker).Render(w)
			return
		}
		httpjson.Render(w, map[string]bool{"result": true}, httpjson.JSON)
	}
}
