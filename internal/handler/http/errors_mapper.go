package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-realm/internal/service"
	"github.com/MKhiriev/go-realm/internal/store"
	"github.com/MKhiriev/go-realm/internal/utils"
	"github.com/MKhiriev/go-realm/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided: http.StatusBadRequest,
	service.ErrInvalidCredentials:  http.StatusUnauthorized,
	service.ErrTokenInvalid:        http.StatusUnauthorized,
	service.ErrTokenExpired:        http.StatusUnauthorized,
	service.ErrTokenMissingClaims:  http.StatusUnauthorized,
	service.ErrTooSoon:             http.StatusTooManyRequests,
	service.ErrStateNotInitialized: http.StatusInternalServerError,
	service.ErrTokenCreationFailed: http.StatusInternalServerError,

	models.ErrInvalidBuildingType: http.StatusBadRequest,
	utils.ErrInvalidJSONBody:      http.StatusBadRequest,
	utils.ErrInvalidBearerToken:   http.StatusUnauthorized,
	ErrEmptyAuthorizationHeader:   http.StatusUnauthorized,
	ErrMissingToken:               http.StatusUnauthorized,

	store.ErrUsernameTaken:     http.StatusConflict,
	store.ErrUserNotFound:      http.StatusUnauthorized,
	store.ErrGameStateNotFound: http.StatusNotFound,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
}

// statusFromError maps err onto an HTTP status code. Wrapped errors are
// matched with [errors.Is]; anything unknown is a 500.
func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
