package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/oauth2"

	"github.com/blogem/battlenet-login/authenticator"
	"github.com/blogem/battlenet-login/database"
	"github.com/blogem/battlenet-login/metrics"
	"github.com/blogem/battlenet-login/middleware"
	"github.com/blogem/battlenet-login/models"
	"github.com/blogem/battlenet-login/repositories"
	"github.com/blogem/battlenet-login/services"
)

// fakeDriver answers CompleteLogin based on the code it receives
type fakeDriver struct{}

func (fakeDriver) Name() string { return "battlenet" }

func (fakeDriver) BuildRedirectURL(scopes []string, opts ...oauth2.AuthCodeOption) string {
	conf := oauth2.Config{
		ClientID:    "client-1",
		RedirectURL: "https://app.example.com/callback/battlenet",
		Endpoint:    oauth2.Endpoint{AuthURL: "https://provider.example.com/authorize"},
		Scopes:      scopes,
	}
	return conf.AuthCodeURL("", opts...)
}

func (fakeDriver) CompleteLogin(_ context.Context, params url.Values) (*models.User, error) {
	switch params.Get("code") {
	case "":
		return nil, authenticator.NewAuthorizationDenied(params.Get("error_message"))
	case "good":
		return &models.User{ID: "42", Nickname: "Foo#1234", AccessToken: "T"}, nil
	case "other":
		return &models.User{ID: "43", Nickname: "Bar#5678", AccessToken: "T2"}, nil
	default:
		return nil, &authenticator.TokenExchangeError{StatusCode: 400, Message: "invalid_grant"}
	}
}

// AuthControllerTestSuite runs the full login round trip against a fake driver
type AuthControllerTestSuite struct {
	suite.Suite
	server  *httptest.Server
	client  *http.Client
	metrics *metrics.Metrics
	repos   *repositories.Repositories
}

func (suite *AuthControllerTestSuite) SetupTest() {
	db, err := database.InitializeDatabase(filepath.Join(suite.T().TempDir(), "test.db"))
	require.NoError(suite.T(), err)
	suite.T().Cleanup(func() { db.Close() })

	suite.repos = repositories.NewRepositories(db)
	suite.metrics, err = metrics.New(prometheus.NewRegistry())
	require.NoError(suite.T(), err)

	drivers := map[string]authenticator.Driver{"battlenet": fakeDriver{}}
	ctrl := NewControllers(services.NewServices(suite.repos), drivers, suite.metrics)

	sessioner, err := session.Sessioner(session.Options{
		Provider:   "memory",
		CookieName: "test_session",
	})
	require.NoError(suite.T(), err)

	r := chi.NewRouter()
	r.Use(sessioner)
	r.Get("/login/{provider}", ctrl.Auth.Login)
	r.Get("/callback/{provider}", ctrl.Auth.Callback)
	r.Post("/logout", ctrl.Auth.Logout)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth("/login/battlenet"))
		r.Get("/me", ctrl.Account.Me)
		r.Get("/me/events", ctrl.Account.Events)
	})

	suite.server = httptest.NewServer(r)
	suite.T().Cleanup(suite.server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(suite.T(), err)
	suite.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (suite *AuthControllerTestSuite) get(path string) *http.Response {
	resp, err := suite.client.Get(suite.server.URL + path)
	require.NoError(suite.T(), err)
	suite.T().Cleanup(func() { resp.Body.Close() })
	return resp
}

// startLogin follows /login and returns the state handed to the provider
func (suite *AuthControllerTestSuite) startLogin(query string) (string, *url.URL) {
	resp := suite.get("/login/battlenet" + query)
	require.Equal(suite.T(), http.StatusTemporaryRedirect, resp.StatusCode)

	loc, err := url.Parse(resp.Header.Get("Location"))
	require.NoError(suite.T(), err)
	state := loc.Query().Get("state")
	require.NotEmpty(suite.T(), state)
	return state, loc
}

func (suite *AuthControllerTestSuite) TestLogin_RedirectsWithStateAndScopes() {
	_, loc := suite.startLogin("?scope=openid&scope=wow.profile")

	assert.Equal(suite.T(), "provider.example.com", loc.Host)
	assert.Equal(suite.T(), "openid wow.profile", loc.Query().Get("scope"))
	assert.Equal(suite.T(), "code", loc.Query().Get("response_type"))
}

func (suite *AuthControllerTestSuite) TestLogin_UnknownProvider() {
	resp := suite.get("/login/unknown")
	assert.Equal(suite.T(), http.StatusNotFound, resp.StatusCode)
}

func (suite *AuthControllerTestSuite) TestCallback_Success() {
	state, _ := suite.startLogin("")

	resp := suite.get("/callback/battlenet?code=good&state=" + url.QueryEscape(state))
	require.Equal(suite.T(), http.StatusSeeOther, resp.StatusCode)
	assert.Equal(suite.T(), "/me", resp.Header.Get("Location"))

	resp = suite.get("/me")
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)

	var account models.Account
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&account))
	assert.Equal(suite.T(), "battlenet", account.Provider)
	assert.Equal(suite.T(), "42", account.ProviderUserID)
	assert.Equal(suite.T(), "Foo#1234", account.Nickname)
	assert.Empty(suite.T(), account.AccessToken, "tokens are never serialized")

	assert.Equal(suite.T(), 1.0, testutil.ToFloat64(suite.metrics.Logins.WithLabelValues("battlenet", metrics.OutcomeOK)))

	resp = suite.get("/me/events")
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	var events []models.LoginEvent
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&events))
	require.Len(suite.T(), events, 1)
	assert.Equal(suite.T(), models.OutcomeSuccess, events[0].Outcome)
}

func (suite *AuthControllerTestSuite) TestCallback_StateIsSingleUse() {
	state, _ := suite.startLogin("")

	resp := suite.get("/callback/battlenet?code=good&state=" + url.QueryEscape(state))
	require.Equal(suite.T(), http.StatusSeeOther, resp.StatusCode)

	resp = suite.get("/callback/battlenet?code=good&state=" + url.QueryEscape(state))
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
}

func (suite *AuthControllerTestSuite) TestCallback_StateMismatch() {
	suite.startLogin("")

	resp := suite.get("/callback/battlenet?code=good&state=forged")
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
}

func (suite *AuthControllerTestSuite) TestCallback_NoLoginStarted() {
	resp := suite.get("/callback/battlenet?code=good&state=x")
	assert.Equal(suite.T(), http.StatusBadRequest, resp.StatusCode)
}

func (suite *AuthControllerTestSuite) TestCallback_Denied() {
	state, _ := suite.startLogin("")

	resp := suite.get("/callback/battlenet?error=access_denied&error_message=nope&state=" + url.QueryEscape(state))
	assert.Equal(suite.T(), http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(suite.T(), 1.0, testutil.ToFloat64(suite.metrics.Logins.WithLabelValues("battlenet", metrics.OutcomeDenied)))

	events, err := suite.repos.Audit.ListRecentForUser(context.Background(), "battlenet", "", 10)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), events, 1)
	assert.Equal(suite.T(), models.OutcomeFailure, events[0].Outcome)
	assert.Contains(suite.T(), events[0].Reason, "nope")
}

func (suite *AuthControllerTestSuite) TestEvents_OnlyOwnEvents() {
	// Another player signs in from a different address first
	state, _ := suite.startLogin("")
	resp := suite.get("/callback/battlenet?code=other&state=" + url.QueryEscape(state))
	require.Equal(suite.T(), http.StatusSeeOther, resp.StatusCode)

	logout, err := suite.client.Post(suite.server.URL+"/logout", "", nil)
	require.NoError(suite.T(), err)
	logout.Body.Close()

	state, _ = suite.startLogin("")
	resp = suite.get("/callback/battlenet?code=good&state=" + url.QueryEscape(state))
	require.Equal(suite.T(), http.StatusSeeOther, resp.StatusCode)

	resp = suite.get("/me/events")
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	var events []models.LoginEvent
	require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&events))
	require.Len(suite.T(), events, 1)
	assert.Equal(suite.T(), "42", events[0].ProviderUserID)

	others, err := suite.repos.Audit.ListRecentForUser(context.Background(), "battlenet", "43", 10)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), others, 1, "the other player's event exists but is not returned")
}

func (suite *AuthControllerTestSuite) TestCallback_ProviderFailure() {
	state, _ := suite.startLogin("")

	resp := suite.get("/callback/battlenet?code=expired&state=" + url.QueryEscape(state))
	assert.Equal(suite.T(), http.StatusBadGateway, resp.StatusCode)
	assert.Equal(suite.T(), 1.0, testutil.ToFloat64(suite.metrics.Logins.WithLabelValues("battlenet", metrics.OutcomeTokenExchangeFailed)))
}

func (suite *AuthControllerTestSuite) TestMe_RequiresLogin() {
	resp := suite.get("/me")
	assert.Equal(suite.T(), http.StatusSeeOther, resp.StatusCode)
	assert.Equal(suite.T(), "/login/battlenet", resp.Header.Get("Location"))
}

func (suite *AuthControllerTestSuite) TestLogout() {
	state, _ := suite.startLogin("")
	suite.get("/callback/battlenet?code=good&state=" + url.QueryEscape(state))
	require.Equal(suite.T(), http.StatusOK, suite.get("/me").StatusCode)

	resp, err := suite.client.Post(suite.server.URL+"/logout", "", nil)
	require.NoError(suite.T(), err)
	resp.Body.Close()
	assert.Equal(suite.T(), http.StatusNoContent, resp.StatusCode)

	assert.Equal(suite.T(), http.StatusSeeOther, suite.get("/me").StatusCode)
}

func TestAuthControllerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthControllerTestSuite))
}
