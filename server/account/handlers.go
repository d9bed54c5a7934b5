package account

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Pjt727/roster/server/components"
	"github.com/Pjt727/roster/server/view"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const SessionCookieName = "session"

// Authenticator registers users and checks their credentials
type Authenticator interface {
	RegisterUser(ctx context.Context, reg Registration) error
	CheckUser(ctx context.Context, c Credentials) (view.User, error)
}

type Handler struct {
	users        Authenticator
	sessions     SessionStore
	secureCookie bool
	throttle     *attemptThrottle
	logger       *log.Entry
}

func NewHandler(users Authenticator, sessions SessionStore, secureCookie bool, logger *log.Entry) *Handler {
	return &Handler{
		users:        users,
		sessions:     sessions,
		secureCookie: secureCookie,
		throttle:     newAttemptThrottle(rate.Every(6*time.Second), 5),
		logger:       logger.WithField("area", "account"),
	}
}

// LoadSession puts the logged in user, if any, on the request context so
// every page can see it
func (h *Handler) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}
		user, ok, err := h.sessions.Get(r.Context(), cookie.Value)
		if err != nil {
			h.logger.WithError(err).Warn("Could not load session")
		}
		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(view.WithUser(r.Context(), user)))
	})
}

// EnsureLoggedIn must run after LoadSession
func EnsureLoggedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if view.UserFrom(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) loginView(w http.ResponseWriter, r *http.Request) {
	components.Render(w, r, h.logger, components.Login("", ""))
}

func loginMessage(err error, userName string) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "Unable to find user: " + userName
	case errors.Is(err, ErrIncorrectPassword):
		return "Incorrect Password for user: " + userName
	default:
		return "There was an error verifying the user: " + userName
	}
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	userName := r.PostFormValue("userName")
	user, err := h.users.CheckUser(r.Context(), Credentials{
		UserName:  userName,
		Password:  r.PostFormValue("password"),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		h.throttle.fail(clientKey(r))
		h.logger.WithError(err).WithField("userName", userName).Info("Login failed")
		components.Render(w, r, h.logger, components.Login(loginMessage(err, userName), userName))
		return
	}
	h.throttle.succeed(clientKey(r))

	token, err := h.sessions.Create(r.Context(), user)
	if err != nil {
		h.logger.WithError(err).Error("Could not create session")
		http.Error(w, "unable to log in", http.StatusInternalServerError)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Secure:   h.secureCookie,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) registerView(w http.ResponseWriter, r *http.Request) {
	components.Render(w, r, h.logger, components.Register("", "", ""))
}

func registerMessage(err error) string {
	switch {
	case errors.Is(err, ErrMissingCredentials):
		return "User Name and Password are required"
	case errors.Is(err, ErrPasswordMismatch):
		return "Passwords do not match"
	case errors.Is(err, ErrUserNameTaken):
		return "User Name already taken"
	default:
		return "There was an error creating the user"
	}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	userName := r.PostFormValue("userName")
	err := h.users.RegisterUser(r.Context(), Registration{
		UserName:  userName,
		Password:  r.PostFormValue("password"),
		Password2: r.PostFormValue("password2"),
		Email:     r.PostFormValue("email"),
	})
	if err != nil {
		h.throttle.fail(clientKey(r))
		h.logger.WithError(err).WithField("userName", userName).Info("Registration failed")
		components.Render(w, r, h.logger, components.Register("", registerMessage(err), userName))
		return
	}
	h.logger.WithField("userName", userName).Info("User created")
	components.Render(w, r, h.logger, components.Register("User created", "", ""))
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
			h.logger.WithError(err).Warn("Could not delete session")
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   h.secureCookie,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) userHistory(w http.ResponseWriter, r *http.Request) {
	components.Render(w, r, h.logger, components.UserHistory())
}
