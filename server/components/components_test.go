package components

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Pjt727/roster/data/db"
	"github.com/Pjt727/roster/server/view"
	"github.com/a-h/templ"
	"github.com/jackc/pgx/v5/pgtype"
	log "github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, ctx context.Context, c templ.Component) string {
	t.Helper()
	var b bytes.Buffer
	require.NoError(t, c.Render(ctx, &b))
	return b.String()
}

func TestPageNavigation(t *testing.T) {
	html := render(t, context.Background(), Home())
	assert.Contains(t, html, `<a href="/login">Log In</a>`)
	assert.NotContains(t, html, "Log Out")

	ctx := view.WithUser(context.Background(), view.User{UserName: "ada"})
	html = render(t, ctx, Home())
	assert.Contains(t, html, `<a href="/userHistory">ada</a>`)
	assert.Contains(t, html, `<a href="/logout">Log Out</a>`)
}

func TestPageHighlightsActiveRoute(t *testing.T) {
	var html string
	h := view.TrackRoute(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		html = render(t, r.Context(), About())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/about/", nil))
	assert.Contains(t, html, `<li class="active"><a href="/about">About</a></li>`)
	assert.Contains(t, html, `<li><a href="/">Home</a></li>`)
}

func TestEmployeesEscapesValues(t *testing.T) {
	html := render(t, context.Background(), Employees([]db.Employee{{
		EmployeeNum: 4,
		FirstName:   pgtype.Text{String: "<script>", Valid: true},
		Status:      pgtype.Text{String: "Full Time", Valid: true},
	}}, ""))
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, `href="/employees?status=Full+Time"`)
	assert.Contains(t, html, `href="/employee/4"`)
}

func TestEmployeesNoResults(t *testing.T) {
	html := render(t, context.Background(), Employees(nil, "no results"))
	assert.Contains(t, html, `<p class="no-results">no results</p>`)
	assert.NotContains(t, html, "<table")
}

func TestEmployeeSelectsDepartment(t *testing.T) {
	html := render(t, context.Background(), Employee(
		db.Employee{EmployeeNum: 1, IsManager: true},
		[]DepartmentOption{
			{Department: db.Department{DepartmentID: 1, DepartmentName: pgtype.Text{String: "Sales", Valid: true}}},
			{Department: db.Department{DepartmentID: 2, DepartmentName: pgtype.Text{String: "Research", Valid: true}}, Selected: true},
		},
	))
	assert.Contains(t, html, `<option value="2" selected>Research</option>`)
	assert.Contains(t, html, `<option value="1">Sales</option>`)
	assert.Contains(t, html, `name="isManager" type="checkbox" checked`)
}

func TestLoginKeepsUserNameOnly(t *testing.T) {
	html := render(t, context.Background(), Login("Incorrect Password for user: ada", "ada"))
	assert.Contains(t, html, "Incorrect Password for user: ada")
	assert.Contains(t, html, `name="userName" type="text" value="ada"`)
	assert.Contains(t, html, `name="password" type="password" value=""`)
}

func TestUserHistory(t *testing.T) {
	ctx := view.WithUser(context.Background(), view.User{
		UserName: "ada",
		Email:    "ada@example.com",
		LoginHistory: []view.LoginEntry{
			{DateTime: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), UserAgent: "curl/8.0"},
		},
	})
	html := render(t, ctx, UserHistory())
	assert.Contains(t, html, "ada@example.com")
	assert.Contains(t, html, "curl/8.0")
	assert.Contains(t, html, "Fri Mar 1 2024 09:30:00 UTC")
}

func TestRenderWritesHTML(t *testing.T) {
	logger, hook := test.NewNullLogger()
	rec := httptest.NewRecorder()
	Render(rec, httptest.NewRequest(http.MethodGet, "/about", nil), log.NewEntry(logger), About())
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<h1>About</h1>")
	assert.Empty(t, hook.AllEntries())
}

func TestRenderFailureIsServerError(t *testing.T) {
	logger, hook := test.NewNullLogger()
	broken := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<h1>half a page"); err != nil {
			return err
		}
		return errors.New("template exploded")
	})
	rec := httptest.NewRecorder()
	Render(rec, httptest.NewRequest(http.MethodGet, "/employees", nil), log.NewEntry(logger), broken)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "half a page")
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, "/employees", hook.LastEntry().Data["path"])
}

func TestDepartmentTitle(t *testing.T) {
	html := render(t, context.Background(), Department(db.Department{
		DepartmentID:   3,
		DepartmentName: pgtype.Text{String: "Research", Valid: true},
	}))
	assert.Contains(t, html, "<title>Department: Research | Roster</title>")
	assert.Contains(t, html, "<h1>Department: Research</h1>")
	assert.Contains(t, html, `name="departmentId" value="3"`)
}
