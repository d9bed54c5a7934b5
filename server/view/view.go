package view

import (
	"context"
	"net/http"
	"strings"
	"time"
)

type contextKey int

const (
	activeRouteKey contextKey = iota
	sessionUserKey
)

type LoginEntry struct {
	DateTime  time.Time `json:"dateTime"`
	UserAgent string    `json:"userAgent"`
}

// User is what a session remembers about whoever logged in
type User struct {
	UserName     string       `json:"userName"`
	Email        string       `json:"email"`
	LoginHistory []LoginEntry `json:"loginHistory"`
}

// ActiveRoute normalizes the request path so the navigation can highlight the
// current page, "/employees/" and "/employees" are the same route
func ActiveRoute(path string) string {
	if path == "/" || path == "" {
		return "/"
	}
	return strings.TrimSuffix(path, "/")
}

func TrackRoute(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), activeRouteKey, ActiveRoute(r.URL.Path))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func ActiveRouteFrom(ctx context.Context) string {
	route, _ := ctx.Value(activeRouteKey).(string)
	return route
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, sessionUserKey, &user)
}

// UserFrom returns nil when nobody is logged in
func UserFrom(ctx context.Context) *User {
	user, _ := ctx.Value(sessionUserKey).(*User)
	return user
}
