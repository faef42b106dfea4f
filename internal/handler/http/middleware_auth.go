package http

import (
	"net/http"

	"github.com/MKhiriev/go-realm/internal/app"
	"github.com/MKhiriev/go-realm/internal/logger"
	"github.com/MKhiriev/go-realm/internal/utils"
	"github.com/MKhiriev/go-realm/models"
)

// auth is an HTTP middleware that enforces bearer token authentication.
//
// The "Authorization: Bearer <token>" header is verified through
// [service.TokenService.ParseToken]; on success the user's ID and username
// are stored in the request context via [utils.WithUser]. Missing, malformed,
// expired and otherwise invalid tokens are all rejected with 401 Unauthorized;
// only the log entry tells them apart.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteJSONError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Err(err).Send()
			utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ctx := r.Context()
		token, err := h.services.TokenService.ParseToken(ctx, tokenString)
		if err != nil {
			log.Err(err).Msg("token rejected")
			utils.WriteJSONError(w, app.MsgInvalidOrExpiredToken, http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithUser(ctx, token.UserID, token.Username)))
	})
}

// pageToken authenticates a page request. The token travels in the "token"
// query parameter or form field.
func (h *Handler) pageToken(r *http.Request) (models.Token, string, error) {
	tokenString := r.FormValue("token")
	if tokenString == "" {
		return models.Token{}, "", ErrMissingToken
	}

	token, err := h.services.TokenService.ParseToken(r.Context(), tokenString)
	if err != nil {
		return models.Token{}, tokenString, err
	}

	return token, tokenString, nil
}
