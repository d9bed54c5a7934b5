package components

import (
	"net/http"
	"strconv"

	"github.com/Pjt727/roster/data/db"
	"github.com/a-h/templ"
	"github.com/jackc/pgx/v5/pgtype"
	log "github.com/sirupsen/logrus"
)

//go:generate go tool templ generate

type navItem struct {
	url   string
	label string
}

var navItems = []navItem{
	{"/", "Home"},
	{"/about", "About"},
	{"/employees", "Employees"},
	{"/departments", "Departments"},
	{"/images", "Images"},
	{"/employees/add", "Add Employee"},
	{"/departments/add", "Add Department"},
	{"/images/add", "Add Image"},
}

type DepartmentOption struct {
	Department db.Department
	Selected   bool
}

// Render writes the page only once it rendered completely so a failed
// render becomes a plain 500 instead of half a page
func Render(w http.ResponseWriter, r *http.Request, logger *log.Entry, c templ.Component) {
	templ.Handler(c, templ.WithErrorHandler(func(r *http.Request, err error) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.WithError(err).WithField("path", r.URL.Path).Error("Could not render page")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		})
	})).ServeHTTP(w, r)
}

func textOf(t pgtype.Text) string {
	if !t.Valid {
		return ""
	}
	return t.String
}

func intOf(i pgtype.Int4) string {
	if !i.Valid {
		return ""
	}
	return strconv.FormatInt(int64(i.Int32), 10)
}

func itoa(i int32) string {
	return strconv.FormatInt(int64(i), 10)
}

func address(e db.Employee) string {
	return textOf(e.AddressStreet) + " " + textOf(e.AddressCity) + " " + textOf(e.AddressState) + " " + textOf(e.AddressPostal)
}

func employeeTitle(e db.Employee) string {
	return "Employee: " + textOf(e.FirstName) + " " + textOf(e.LastName)
}

func unselected(departments []db.Department) []DepartmentOption {
	options := make([]DepartmentOption, len(departments))
	for i, d := range departments {
		options[i] = DepartmentOption{Department: d}
	}
	return options
}
