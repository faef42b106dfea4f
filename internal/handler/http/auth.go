package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-realm/internal/app"
	"github.com/MKhiriev/go-realm/internal/logger"
	"github.com/MKhiriev/go-realm/internal/service"
	"github.com/MKhiriev/go-realm/internal/store"
	"github.com/MKhiriev/go-realm/internal/utils"
	"github.com/MKhiriev/go-realm/models"
)

const loginPath = "/login"

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, loginPath, http.StatusFound)
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login.html", nil, http.StatusOK)
}

func (h *Handler) registerPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "register.html", nil, http.StatusOK)
}

// logout only redirects: tokens are stateless and stay valid until expiry.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, loginPath, http.StatusFound)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := utils.DecodeJSON(w, r, &credentials); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		utils.WriteJSONError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.RegisterUser(ctx, credentials)
	if err != nil {
		status := statusFromError(err)
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			utils.WriteJSONError(w, err.Error(), status)
		case errors.Is(err, store.ErrUsernameTaken):
			log.Err(err).Str("username", credentials.Username).Msg("username already exists")
			utils.WriteJSONError(w, app.MsgUsernameTaken, status)
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			utils.WriteJSONError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	log.Info().Int64("user_id", user.UserID).Str("username", user.Username).Msg("user registered")

	utils.WriteJSON(w, models.RegisterResponse{
		Message:     app.MsgUserRegistered,
		RedirectURL: loginPath,
	}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var credentials models.Credentials
	if err := utils.DecodeJSON(w, r, &credentials); err != nil {
		log.Err(err).Msg(app.MsgInvalidJSON)
		utils.WriteJSONError(w, app.MsgInvalidJSON, http.StatusBadRequest)
		return
	}

	user, err := h.services.AuthService.Login(ctx, credentials)
	if err != nil {
		status := statusFromError(err)
		switch status {
		case http.StatusBadRequest:
			log.Err(err).Msg("invalid data provided")
			utils.WriteJSONError(w, err.Error(), status)
		case http.StatusUnauthorized:
			log.Err(err).Str("username", credentials.Username).Msg("invalid username/password")
			utils.WriteJSONError(w, app.MsgInvalidUsernamePassword, status)
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			utils.WriteJSONError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	token, err := h.services.TokenService.CreateToken(ctx, user)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteJSONError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Info().Int64("user_id", user.UserID).Msg("user successfully logged in")

	utils.WriteJSON(w, models.LoginResponse{
		AccessToken: token.SignedString,
		RedirectURL: h.gameURL + gameURLFor(token.SignedString),
	}, http.StatusOK)
}
