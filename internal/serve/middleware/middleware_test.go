package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stellar/go-stellar-sdk/support/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stellar/portfolio-backend/internal/apptracker"
	"github.com/stellar/portfolio-backend/internal/entities"
	"github.com/stellar/portfolio-backend/internal/metrics"
	"github.com/stellar/portfolio-backend/internal/services"
)

func okHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write(json.RawMessage(`{"status":"ok"}`))
		require.NoError(t, err)
	}
}

func TestRecoverHandler(t *testing.T) {
	getEntries := log.DefaultLogger.StartTest(log.ErrorLevel)
	appTrackerMock := apptracker.MockAppTracker{}
	defer appTrackerMock.AssertExpectations(t)

	r := chi.NewRouter()
	errString := "test panic"
	r.Use(RecoverHandler(&appTrackerMock))
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		panic(errString)
	})

	req, err := http.NewRequest("GET", "/", nil)
	require.NoError(t, err)
	rr := httptest.NewRecorder()
	appTrackerMock.On("CaptureException", errors.New("panic: "+errString)).Once()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	wantJSON := `{
		"error": "An error occurred while processing this request."
	}`
	assert.JSONEq(t, wantJSON, rr.Body.String())

	entries := getEntries()
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].Message, "panic: test panic", "should log the panic message")
	assert.Contains(t, entries[1].Message, "stack trace")
}

func TestRequireLoggedInUser(t *testing.T) {
	testCases := []struct {
		name            string
		loggedInErr     error
		expectedStatus  int
		expectedMessage string
	}{
		{
			name:            "🔴no_logged_in_user",
			loggedInErr:     services.ErrUserNotLoggedIn,
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: `{"error":"No user is currently logged in."}`,
		},
		{
			name:            "🟢logged_in_user",
			expectedStatus:  http.StatusOK,
			expectedMessage: `{"status":"ok"}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			userServiceMock := &services.UserServiceMock{}
			userServiceMock.On("LoggedInUser").Return(entities.User{Name: "alice"}, tc.loggedInErr).Once()
			defer userServiceMock.AssertExpectations(t)

			r := chi.NewRouter()
			r.Get("/public", okHandler(t))
			r.Group(func(r chi.Router) {
				r.Use(RequireLoggedInUser(userServiceMock))
				r.Get("/trades", okHandler(t))
			})

			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/trades", nil))
			assert.Equal(t, tc.expectedStatus, rr.Code)
			assert.JSONEq(t, tc.expectedMessage, rr.Body.String())

			rr = httptest.NewRecorder()
			r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/public", nil))
			assert.Equal(t, http.StatusOK, rr.Code)
		})
	}
}

func TestMetricsMiddleware(t *testing.T) {
	mockMetricsService := metrics.NewMockMetricsService()
	mockMetricsService.On("ObserveRequestDuration", "/api/1/assets/{identifier}", http.MethodGet, mock.AnythingOfType("float64")).Return().Once()
	mockMetricsService.On("IncNumRequests", "/api/1/assets/{identifier}", http.MethodGet, http.StatusOK).Return().Once()
	mockMetricsService.On("ObserveRequestDuration", "/api/1/trades", http.MethodPut, mock.AnythingOfType("float64")).Return().Once()
	mockMetricsService.On("IncNumRequests", "/api/1/trades", http.MethodPut, http.StatusBadRequest).Return().Once()
	defer mockMetricsService.AssertExpectations(t)

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(mockMetricsService))
	r.Get("/api/1/assets/{identifier}", okHandler(t))
	r.Put("/api/1/trades", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/1/assets/BTC", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPut, "/api/1/trades", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
