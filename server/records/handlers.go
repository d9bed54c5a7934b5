package records

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/Pjt727/roster/data/db"
	"github.com/Pjt727/roster/server/components"
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgtype"
	log "github.com/sirupsen/logrus"
)

const maxFormMemory = 1 << 20

type recordHandler struct {
	store  Store
	logger *log.Entry
}

// fail logs the full cause and only shows the user a short message
func (h *recordHandler) fail(w http.ResponseWriter, r *http.Request, err error, status int, message string) {
	h.logger.WithError(err).WithField("path", r.URL.Path).Error(message)
	http.Error(w, message, status)
}

func parseForm(r *http.Request) (url.Values, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, err
		}
	} else if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return r.PostForm, nil
}

// the first filter given wins: status, then department, then manager
func (h *recordHandler) employees(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var employees []db.Employee
	var err error
	var failure string
	switch {
	case query.Get("status") != "":
		failure = "unable to get employees by status"
		employees, err = h.store.GetEmployeesByStatus(ctx, query.Get("status"))
	case query.Get("department") != "":
		failure = "unable to get employees by department"
		var department int32
		if department, err = db.ParseID("department", query.Get("department")); err == nil {
			employees, err = h.store.GetEmployeesByDepartment(ctx, department)
		}
	case query.Get("manager") != "":
		failure = "unable to get employees by manager"
		var manager int32
		if manager, err = db.ParseID("manager", query.Get("manager")); err == nil {
			employees, err = h.store.GetEmployeesByManager(ctx, manager)
		}
	default:
		failure = "unable to get all employees"
		employees, err = h.store.GetAllEmployees(ctx)
	}
	if err != nil {
		h.fail(w, r, err, http.StatusInternalServerError, failure)
		return
	}

	if len(employees) == 0 {
		components.Render(w, r, h.logger, components.Employees(nil, "no results"))
		return
	}
	components.Render(w, r, h.logger, components.Employees(employees, ""))
}

func departmentOptions(departments []db.Department, selected pgtype.Int4) []components.DepartmentOption {
	options := make([]components.DepartmentOption, len(departments))
	for i, d := range departments {
		options[i] = components.DepartmentOption{
			Department: d,
			Selected:   selected.Valid && d.DepartmentID == selected.Int32,
		}
	}
	return options
}

func (h *recordHandler) employee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	num, err := db.ParseID("empNum", chi.URLParam(r, "empNum"))
	if err != nil {
		http.Error(w, "Employee Not Found", http.StatusNotFound)
		return
	}

	employee, err := h.store.GetEmployeeByNum(ctx, num)
	if errors.Is(err, db.ErrNotFound) {
		http.Error(w, "Employee Not Found", http.StatusNotFound)
		return
	} else if err != nil {
		h.fail(w, r, err, http.StatusInternalServerError, "unable to get employee")
		return
	}

	// the form still works without the department choices
	departments, err := h.store.GetDepartments(ctx)
	if err != nil {
		h.logger.WithError(err).Warn("Could not get departments for employee form")
		departments = nil
	}
	components.Render(w, r, h.logger, components.Employee(employee, departmentOptions(departments, employee.Department)))
}

func (h *recordHandler) deleteEmployee(w http.ResponseWriter, r *http.Request) {
	const failure = "Unable to Remove Employee / Employee not found"
	num, err := db.ParseID("empNum", chi.URLParam(r, "empNum"))
	if err != nil {
		h.fail(w, r, err, http.StatusInternalServerError, failure)
		return
	}
	if err := h.store.DeleteEmployeeByNum(r.Context(), num); err != nil {
		h.fail(w, r, err, http.StatusInternalServerError, failure)
		return
	}
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}

func (h *recordHandler) addEmployeeView(w http.ResponseWriter, r *http.Request) {
	departments, err := h.store.GetDepartments(r.Context())
	if err != nil {
		h.logger.WithError(err).Warn("Could not get departments for add employee form")
		departments = nil
	}
	components.Render(w, r, h.logger, components.AddEmployee(departments))
}

func (h *recordHandler) addEmployee(w http.ResponseWriter, r *http.Request) {
	const failure = "unable to add employee"
	form, err := parseForm(r)
	if err != nil {
		h.fail(w, r, err, http.StatusBadRequest, failure)
		return
	}
	employee, err := h.store.AddEmployee(r.Context(), employeeFromForm(form))
	if err != nil {
		h.fail(w, r, err, http.StatusInternalServerError, failure)
		return
	}
	h.logger.WithField("employeeNum", employee.EmployeeNum).Info("New employee created successfully")
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}

func (h *recordHandler) updateEmployee(w http.ResponseWriter, r *http.Request) {
	const failure = "unable to update employee"
	form, err := parseForm(r)
	if err != nil {
		h.fail(w, r, err, http.StatusBadRequest, failure)
		return
	}
	if err := h.store.UpdateEmployee(r.Context(), employeeFromForm(form)); err != nil {
		h.fail(w, r, err, http.StatusInternalServerError, failure)
		return
	}
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}

func (h *recordHandler) departments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.store.GetDepartments(r.Context())
	if err != nil {
		h.logger.WithError(err).Error("Could not get departments")
		components.Render(w, r, h.logger, components.Departments(nil, "unable to get departments"))
		return
	}
	if len(departments) == 0 {
		components.Render(w, r, h.logger, components.Departments(nil, "no results"))
		return
	}
	components.Render(w, r, h.logger, components.Departments(departments, ""))
}

func (h *recordHandler) department(w http.ResponseWriter, r *http.Request) {
	id, err := db.ParseID("departmentId", chi.URLParam(r, "departmentId"))
	if err != nil {
		http.Error(w, "Department Not Found", http.StatusNotFound)
		return
	}
	department, err := h.store.GetDepartmentById(r.Context(), id)
	if errors.Is(err, db.ErrNotFound) {
		http.Error(w, "Department Not Found", http.StatusNotFound)
		return
	} else if err != nil {
		h.fail(w, r, err, http.StatusInternalServerError, "unable to get department")
		return
	}
	components.Render(w, r, h.logger, components.Department(department))
}

func (h *recordHandler) deleteDepartment(w http.ResponseWriter, r *http.Request) {
	const failure = "Unable to Remove Department / Department not found"
	id, err := db.ParseID("departmentId", chi.URLParam(r, "departmentId"))
	if err != nil {
		h.fail(w, r, err, http.StatusInternalServerError, failure)
		return
	}
	if err := h.store.DeleteDepartmentById(r.Context(), id); err != nil {
		h.fail(w, r, err, http.StatusInternalServerError, failure)
		return
	}
	http.Redirect(w, r, "/departments", http.StatusSeeOther)
}

func (h *recordHandler) addDepartmentView(w http.ResponseWriter, r *http.Request) {
	components.Render(w, r, h.logger, components.AddDepartment())
}

func (h *recordHandler) addDepartment(w http.ResponseWriter, r *http.Request) {
	const failure = "unable to add department"
	form, err := parseForm(r)
	if err != nil {
		h.fail(w, r, err, http.StatusBadRequest, failure)
		return
	}
	department, err := h.store.AddDepartment(r.Context(), departmentFromForm(form))
	if err != nil {
		h.fail(w, r, err, http.StatusInternalServerError, failure)
		return
	}
	h.logger.WithField("departmentId", department.DepartmentID).Info("New department created successfully")
	http.Redirect(w, r, "/departments", http.StatusSeeOther)
}

func (h *recordHandler) updateDepartment(w http.ResponseWriter, r *http.Request) {
	const failure = "unable to update department"
	form, err := parseForm(r)
	if err != nil {
		h.fail(w, r, err, http.StatusBadRequest, failure)
		return
	}
	if err := h.store.UpdateDepartment(r.Context(), departmentFromForm(form)); err != nil {
		h.fail(w, r, err, http.StatusInternalServerError, failure)
		return
	}
	http.Redirect(w, r, "/departments", http.StatusSeeOther)
}
