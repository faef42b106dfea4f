package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-realm/internal/config"
	"github.com/MKhiriev/go-realm/internal/logger"
	"github.com/MKhiriev/go-realm/internal/mock"
	"github.com/MKhiriev/go-realm/internal/service"
	"github.com/MKhiriev/go-realm/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type testMocks struct {
	auth    *mock.MockAuthService
	token   *mock.MockTokenService
	init    *mock.MockStateInitializer
	game    *mock.MockGameService
	appInfo *mock.MockAppInfoService
}

func newTestHandler(t *testing.T, svc config.Service) (*Handler, testMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := testMocks{
		auth:    mock.NewMockAuthService(ctrl),
		token:   mock.NewMockTokenService(ctrl),
		init:    mock.NewMockStateInitializer(ctrl),
		game:    mock.NewMockGameService(ctrl),
		appInfo: mock.NewMockAppInfoService(ctrl),
	}

	services := &service.Services{
		AuthService:      m.auth,
		TokenService:     m.token,
		StateInitializer: m.init,
		GameService:      m.game,
		AppInfoService:   m.appInfo,
	}
	cfg := &config.StructuredConfig{
		Services: config.Services{
			AuthURL: "http://auth.test/",
			GameURL: "http://game.test",
		},
	}

	h, err := NewHandler(svc, services, cfg, logger.Nop())
	require.NoError(t, err)
	h.now = func() time.Time { return testNow }

	return h, m
}

// aliceToken is what the mocked TokenService returns for "tok".
var aliceToken = models.Token{SignedString: "tok", UserID: 7, Username: "alice"}

func expectValidToken(m testMocks) {
	m.token.EXPECT().ParseToken(gomock.Any(), "tok").Return(aliceToken, nil)
}

func aliceState(lastCollected time.Time) models.GameState {
	state := models.NewGameState(7, lastCollected)
	state.Username = "alice"
	return state
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func formRequest(target, token string) *http.Request {
	form := url.Values{"token": {token}}
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func bearerRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer tok")
	return req
}

func readBody(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	body, err := io.ReadAll(rec.Result().Body)
	require.NoError(t, err)
	return string(body)
}

// flashFrom returns the flash cookie set by a response, or nil.
func flashFrom(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookieName {
			return c
		}
	}
	return nil
}
