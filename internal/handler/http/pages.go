package http

import (
	"bytes"
	"net/http"
	"net/url"
	"time"

	"github.com/MKhiriev/go-realm/internal/logger"
)

const (
	flashCookieName = "realm_flash"
	flashMaxAge     = time.Minute
)

// Flash message kinds, used as CSS classes by the game page.
const (
	flashSuccess = "success"
	flashWarning = "warning"
	flashError   = "error"
	flashInfo    = "info"
)

type flash struct {
	Kind    string
	Message string
}

type errorPage struct {
	Message string
	Token   string
	AuthURL string
}

// render executes the named page into a buffer first, so a template failure
// still produces a clean 500.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any, status int) {
	var buf bytes.Buffer
	if err := h.pages.ExecuteTemplate(&buf, name, data); err != nil {
		logger.FromRequest(r).Err(err).Str("template", name).Msg("error rendering page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, status int, message, token string) {
	h.render(w, r, "error.html", errorPage{Message: message, Token: token, AuthURL: h.authURL}, status)
}

func setFlash(w http.ResponseWriter, kind, message string) {
	value := url.Values{"kind": {kind}, "message": {message}}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    value.Encode(),
		Path:     "/",
		MaxAge:   int(flashMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending flash message, if any, and clears it.
func popFlash(w http.ResponseWriter, r *http.Request) *flash {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	values, err := url.ParseQuery(cookie.Value)
	if err != nil || values.Get("message") == "" {
		return nil
	}

	return &flash{Kind: values.Get("kind"), Message: values.Get("message")}
}

// gameURLFor returns the game page URL for token, relative to the game service.
func gameURLFor(token string) string {
	return "/game?token=" + url.QueryEscape(token)
}
