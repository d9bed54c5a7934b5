package records

import (
	"context"

	"github.com/Pjt727/roster/data/db"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// Store is the part of the data access layer the record pages use
type Store interface {
	GetAllEmployees(ctx context.Context) ([]db.Employee, error)
	GetEmployeesByStatus(ctx context.Context, status string) ([]db.Employee, error)
	GetEmployeesByDepartment(ctx context.Context, department int32) ([]db.Employee, error)
	GetEmployeesByManager(ctx context.Context, managerNum int32) ([]db.Employee, error)
	GetEmployeeByNum(ctx context.Context, num int32) (db.Employee, error)
	AddEmployee(ctx context.Context, in db.EmployeeInput) (db.Employee, error)
	UpdateEmployee(ctx context.Context, in db.EmployeeInput) error
	DeleteEmployeeByNum(ctx context.Context, num int32) error

	GetDepartments(ctx context.Context) ([]db.Department, error)
	GetDepartmentById(ctx context.Context, id int32) (db.Department, error)
	AddDepartment(ctx context.Context, in db.DepartmentInput) (db.Department, error)
	UpdateDepartment(ctx context.Context, in db.DepartmentInput) error
	DeleteDepartmentById(ctx context.Context, id int32) error
}

// PopulateRecordRoutes expects to be called on a router that already requires a login
func PopulateRecordRoutes(r *chi.Router, store Store, logger *log.Entry) {
	h := recordHandler{
		store:  store,
		logger: logger.WithField("area", "records"),
	}

	(*r).Get("/employees", h.employees)
	(*r).Get("/employee/{empNum}", h.employee)
	(*r).Get("/employees/delete/{empNum}", h.deleteEmployee)
	(*r).Get("/employees/add", h.addEmployeeView)

	(*r).Get("/departments", h.departments)
	(*r).Get("/department/{departmentId}", h.department)
	(*r).Get("/departments/delete/{departmentId}", h.deleteDepartment)
	(*r).Get("/departments/add", h.addDepartmentView)

	(*r).Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/x-www-form-urlencoded", "multipart/form-data"))
		r.Post("/employees/add", h.addEmployee)
		r.Post("/employee/update", h.updateEmployee)
		r.Post("/departments/add", h.addDepartment)
		r.Post("/department/update", h.updateDepartment)
	})
}
