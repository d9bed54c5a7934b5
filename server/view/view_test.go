package view

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActiveRoute(t *testing.T) {
	assert.Equal(t, "/", ActiveRoute("/"))
	assert.Equal(t, "/", ActiveRoute(""))
	assert.Equal(t, "/employees", ActiveRoute("/employees/"))
	assert.Equal(t, "/employees/add", ActiveRoute("/employees/add"))
}

func TestTrackRoute(t *testing.T) {
	var seen string
	h := TrackRoute(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ActiveRouteFrom(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/departments/", nil))
	assert.Equal(t, "/departments", seen)
}

func TestUserFrom(t *testing.T) {
	assert.Nil(t, UserFrom(context.Background()))

	ctx := WithUser(context.Background(), User{UserName: "ada"})
	if assert.NotNil(t, UserFrom(ctx)) {
		assert.Equal(t, "ada", UserFrom(ctx).UserName)
	}
}
