package account

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Pjt727/roster/server/view"
	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthenticator struct {
	registered  []Registration
	registerErr error
	user        view.User
	checkErr    error
}

func (f *fakeAuthenticator) RegisterUser(ctx context.Context, reg Registration) error {
	f.registered = append(f.registered, reg)
	return f.registerErr
}

func (f *fakeAuthenticator) CheckUser(ctx context.Context, c Credentials) (view.User, error) {
	if f.checkErr != nil {
		return view.User{}, f.checkErr
	}
	return f.user, nil
}

func testRouter(auth Authenticator, sessions SessionStore) http.Handler {
	logger := log.New()
	logger.SetOutput(io.Discard)
	h := NewHandler(auth, sessions, false, log.NewEntry(logger))

	var r chi.Router = chi.NewRouter()
	r.Use(view.TrackRoute)
	r.Use(h.LoadSession)
	PopulateAccountRoutes(&r, h)
	r.Group(func(r chi.Router) {
		r.Use(EnsureLoggedIn)
		r.Get("/private", func(w http.ResponseWriter, r *http.Request) {
			io.WriteString(w, "hello "+view.UserFrom(r.Context()).UserName)
		})
	})
	return r
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestEnsureLoggedInRedirects(t *testing.T) {
	router := testRouter(&fakeAuthenticator{}, NewMemoryStore(time.Hour, time.Minute))

	for _, path := range []string{"/private", "/userHistory"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}
}

func TestLoginCreatesSession(t *testing.T) {
	sessions := NewMemoryStore(time.Hour, time.Minute)
	router := testRouter(&fakeAuthenticator{user: view.User{UserName: "ada"}}, sessions)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/login", url.Values{"userName": {"ada"}, "password": {"pw"}}))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello ada", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	_, ok, _ := sessions.Get(context.Background(), cookies[0].Value)
	assert.False(t, ok)
}

func TestLoginFailureShowsMessage(t *testing.T) {
	auth := &fakeAuthenticator{checkErr: ErrIncorrectPassword}
	router := testRouter(auth, NewMemoryStore(time.Hour, time.Minute))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/login", url.Values{"userName": {"ada"}, "password": {"bad"}}))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Incorrect Password for user: ada")
	assert.Empty(t, rec.Result().Cookies())

	auth.checkErr = ErrUserNotFound
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/login", url.Values{"userName": {"bob"}, "password": {"bad"}}))
	assert.Contains(t, rec.Body.String(), "Unable to find user: bob")
}

func TestRegister(t *testing.T) {
	auth := &fakeAuthenticator{}
	router := testRouter(auth, NewMemoryStore(time.Hour, time.Minute))

	form := url.Values{"userName": {"ada"}, "password": {"pw"}, "password2": {"pw"}, "email": {"ada@example.com"}}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/register", form))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "User created")
	require.Len(t, auth.registered, 1)
	assert.Equal(t, Registration{UserName: "ada", Password: "pw", Password2: "pw", Email: "ada@example.com"}, auth.registered[0])

	auth.registerErr = ErrPasswordMismatch
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/register", form))
	assert.Contains(t, rec.Body.String(), "Passwords do not match")

	auth.registerErr = ErrUserNameTaken
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, postForm("/register", form))
	assert.Contains(t, rec.Body.String(), "User Name already taken")
}

func TestUserHistoryShowsLogins(t *testing.T) {
	sessions := NewMemoryStore(time.Hour, time.Minute)
	token, err := sessions.Create(context.Background(), view.User{
		UserName:     "ada",
		LoginHistory: []view.LoginEntry{{DateTime: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), UserAgent: "curl/8.0"}},
	})
	require.NoError(t, err)
	router := testRouter(&fakeAuthenticator{}, sessions)

	req := httptest.NewRequest(http.MethodGet, "/userHistory", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "curl/8.0")
	assert.Contains(t, rec.Body.String(), "Fri Mar 1 2024 09:30:00 UTC")
}
