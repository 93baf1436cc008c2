package serve

import (
	"net/http"

	"github.com/go-chi/chi"
	chimiddleware "github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stellar/portfolio-backend/internal/serve/httperror"
	"github.com/stellar/portfolio-backend/internal/serve/httphandler"
	"github.com/stellar/portfolio-backend/internal/serve/middleware"
)

// NewHandler creates the main HTTP handler with all routes configured
func NewHandler(container ServiceContainer) http.Handler {
	mux := chi.NewRouter()
	mux.NotFound(httperror.ErrorHandler{Error: httperror.NotFound}.ServeHTTP)
	mux.MethodNotAllowed(httperror.ErrorHandler{Error: httperror.MethodNotAllowed}.ServeHTTP)

	setupMiddleware(mux, container)
	setupPublicRoutes(mux, container)
	mux.Route("/api/1", func(r chi.Router) {
		setupAssetRoutes(r, container)
		setupUserRoutes(r, container)
		setupTaskRoutes(r, container)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireLoggedInUser(container.GetUserService()))
			setupTradeRoutes(r, container)
			setupBalanceRoutes(r, container)
		})
	})

	return mux
}

func setupMiddleware(mux *chi.Mux, container ServiceContainer) {
	mux.Use(chimiddleware.RequestID)
	mux.Use(middleware.MetricsMiddleware(container.GetMetricsService()))
	mux.Use(middleware.RecoverHandler(container.GetAppTracker()))
}

func setupPublicRoutes(mux *chi.Mux, container ServiceContainer) {
	mux.Get("/health", httphandler.HealthHandler{
		Models:     container.GetModels(),
		AppTracker: container.GetAppTracker(),
	}.GetHealth)

	mux.Get("/api-metrics", promhttp.HandlerFor(
		container.GetMetricsService().GetRegistry(),
		promhttp.HandlerOpts{},
	).ServeHTTP)
}

func setupAssetRoutes(r chi.Router, container ServiceContainer) {
	r.Route("/assets", func(r chi.Router) {
		handler := httphandler.AssetsHandler{
			Resolver:   container.GetAssetResolver(),
			AppTracker: container.GetAppTracker(),
		}

		r.Get("/ethereum_tokens", handler.GetEthTokens)
		r.Get("/{identifier}", handler.GetAsset)
	})
}

func setupUserRoutes(r chi.Router, container ServiceContainer) {
	r.Route("/users", func(r chi.Router) {
		handler := httphandler.UsersHandler{
			UserService:     container.GetUserService(),
			ExchangeManager: container.GetExchangeManager(),
			AppTracker:      container.GetAppTracker(),
		}

		r.Get("/", handler.ListUsers)
		r.Put("/", handler.CreateUser)
		r.Patch("/{name}", handler.UserAction)
	})
}

func setupTaskRoutes(r chi.Router, container ServiceContainer) {
	handler := httphandler.TasksHandler{
		TaskManager: container.GetTaskManager(),
		AppTracker:  container.GetAppTracker(),
	}

	r.Get("/tasks/{id}", handler.GetTaskResult)
}

func setupTradeRoutes(r chi.Router, container ServiceContainer) {
	r.Route("/trades", func(r chi.Router) {
		handler := httphandler.TradesHandler{
			TradeService: container.GetTradeService(),
			AppTracker:   container.GetAppTracker(),
		}

		r.Get("/", handler.GetTrades)
		r.Put("/", handler.AddTrade)
		r.Patch("/", handler.EditTrade)
		r.Delete("/", handler.DeleteTrade)
	})
}

func setupBalanceRoutes(r chi.Router, container ServiceContainer) {
	handler := httphandler.BalancesHandler{
		BalanceService: container.GetBalanceService(),
		TaskManager:    container.GetTaskManager(),
		AppTracker:     container.GetAppTracker(),
	}

	r.Get("/exchanges", httphandler.ExchangesHandler{ExchangeManager: container.GetExchangeManager()}.ListConnectedExchanges)
	r.Get("/exchanges/balances/{name}", handler.QueryExchangeBalances)
	r.Get("/balances/blockchains", handler.QueryBlockchainBalances)
	r.Get("/balances/blockchains/{name}", handler.QueryBlockchainBalances)
}
