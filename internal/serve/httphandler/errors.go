package httphandler

import (
	"context"
	"errors"

	"github.com/stellar/portfolio-backend/internal/apptracker"
	"github.com/stellar/portfolio-backend/internal/assets"
	"github.com/stellar/portfolio-backend/internal/encoding"
	"github.com/stellar/portfolio-backend/internal/serve/httperror"
	"github.com/stellar/portfolio-backend/internal/services"
)

var conflictErrors = []error{
	services.ErrUserAlreadyLoggedIn,
	services.ErrUserAlreadyExists,
	services.ErrUserNotFound,
	services.ErrUserMismatch,
	services.ErrTradeNotFound,
	services.ErrExchangeNotConnected,
}

var badRequestErrors = []error{
	services.ErrInvalidPremiumKeys,
	services.ErrUnsupportedExchange,
	encoding.ErrIncompletePremiumCredentials,
}

// serviceError maps the errors returned by the services to their HTTP response. Errors it does
// not know are reported as internal errors.
func serviceError(ctx context.Context, err error, appTracker apptracker.AppTracker) *httperror.ErrorResponse {
	var unknownAsset *assets.UnknownAssetError
	switch {
	case errors.Is(err, services.ErrUserNotLoggedIn):
		return httperror.Unauthorized("", nil)
	case errors.Is(err, services.ErrWrongPassword):
		return httperror.Unauthorized(err.Error(), nil)
	case errors.As(err, &unknownAsset):
		return httperror.ResourceNotFound(unknownAsset.Error(), nil)
	case errors.Is(err, services.ErrTaskNotFound):
		return httperror.ResourceNotFound(err.Error(), nil)
	}
	for _, target := range conflictErrors {
		if errors.Is(err, target) {
			return httperror.Conflict(err.Error(), nil)
		}
	}
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return httperror.BadRequest(err.Error(), nil)
		}
	}
	return httperror.InternalServerError(ctx, "", err, nil, appTracker)
}
