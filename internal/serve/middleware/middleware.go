package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/stellar/go-stellar-sdk/support/log"

	"github.com/stellar/portfolio-backend/internal/apptracker"
	"github.com/stellar/portfolio-backend/internal/serve/httperror"
	"github.com/stellar/portfolio-backend/internal/services"
)

// RecoverHandler turns a panicking handler into a 500 response and reports the panic.
func RecoverHandler(appTracker apptracker.AppTracker) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler { //nolint:errorlint
					panic(r)
				}

				ctx := req.Context()
				err, ok := r.(error)
				if !ok {
					err = fmt.Errorf("panic: %v", r)
				}
				log.Ctx(ctx).Error(err)
				log.Ctx(ctx).Errorf("stack trace: %s", debug.Stack())
				if appTracker != nil {
					appTracker.CaptureException(err)
				}
				httperror.ErrorResponse{
					Status: http.StatusInternalServerError,
					Error:  "An error occurred while processing this request.",
				}.Render(rw)
			}()

			next.ServeHTTP(rw, req)
		})
	}
}

// RequireLoggedInUser rejects requests with 401 while no user is logged in.
func RequireLoggedInUser(userService services.UserService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
			if _, err := userService.LoggedInUser(); err != nil {
				httperror.Unauthorized("", nil).Render(rw)
				return
			}
			next.ServeHTTP(rw, req)
		})
	}
}
