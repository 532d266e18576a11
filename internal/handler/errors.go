package handler

import (
	"errors"
	"net/http"

	"github.com/BloggingApp/blog-service/internal/service"
)

var (
	errNotAuthorized           = errors.New("user is not authorized")
	errInvalidPostID           = errors.New("invalid post ID")
	errInvalidID               = errors.New("invalid ID")
	errLimitAndOffsetMustBeInt = errors.New("limit and offset must be int")
)

func errStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrPasswordsDoNotMatch),
		errors.Is(err, service.ErrCredentialRejected),
		errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotAuthorized), errors.Is(err, service.ErrInvalidRefreshToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrProfileNotFound), errors.Is(err, service.ErrPostNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmailTaken), errors.Is(err, service.ErrUpdateInFlight):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
