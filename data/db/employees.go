package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const employeeColumns = `employee_num, first_name, last_name, email, ssn,
	address_street, address_city, address_state, address_postal, marital_status,
	is_manager, employee_manager_num, status, department, hire_date`

func (q *Queries) listEmployees(ctx context.Context, op string, where string, args ...any) ([]Employee, error) {
	rows, err := q.db.Query(ctx, `SELECT `+employeeColumns+` FROM employees `+where+` ORDER BY employee_num`, args...)
	if err != nil {
		return nil, storeError(op, err)
	}
	employees, err := pgx.CollectRows(rows, pgx.RowToStructByName[Employee])
	if err != nil {
		return nil, storeError(op, err)
	}
	return employees, nil
}

func (q *Queries) GetAllEmployees(ctx context.Context) ([]Employee, error) {
	return q.listEmployees(ctx, "get all employees", "")
}

func (q *Queries) GetEmployeesByStatus(ctx context.Context, status string) ([]Employee, error) {
	return q.listEmployees(ctx, "get employees by status", "WHERE status = $1", status)
}

func (q *Queries) GetEmployeesByDepartment(ctx context.Context, department int32) ([]Employee, error) {
	return q.listEmployees(ctx, "get employees by department", "WHERE department = $1", department)
}

func (q *Queries) GetEmployeesByManager(ctx context.Context, managerNum int32) ([]Employee, error) {
	return q.listEmployees(ctx, "get employees by manager", "WHERE employee_manager_num = $1", managerNum)
}

// GetManagers has never been implemented and always fails
func (q *Queries) GetManagers(ctx context.Context) ([]Employee, error) {
	return nil, &StoreError{Op: "get managers", Err: ErrUnimplemented}
}

func (q *Queries) GetEmployeeByNum(ctx context.Context, num int32) (Employee, error) {
	rows, err := q.db.Query(ctx, `SELECT `+employeeColumns+` FROM employees WHERE employee_num = $1`, num)
	if err != nil {
		return Employee{}, storeError("get employee", err)
	}
	employee, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Employee])
	if err != nil {
		return Employee{}, storeError(fmt.Sprintf("get employee %d", num), err)
	}
	return employee, nil
}

// a supplied employee number is kept, otherwise the identity sequence picks one
const addEmployee = `
INSERT INTO employees (
	employee_num, first_name, last_name, email, ssn,
	address_street, address_city, address_state, address_postal, marital_status,
	is_manager, employee_manager_num, status, department, hire_date
) VALUES (
	COALESCE($1, nextval(pg_get_serial_sequence('employees', 'employee_num'))::int),
	$2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
)
RETURNING ` + employeeColumns

func (q *Queries) AddEmployee(ctx context.Context, in EmployeeInput) (Employee, error) {
	p, err := in.Normalize()
	if err != nil {
		return Employee{}, &StoreError{Op: "create employee", Err: err}
	}
	rows, err := q.db.Query(ctx, addEmployee,
		p.EmployeeNum,
		p.FirstName,
		p.LastName,
		p.Email,
		p.SSN,
		p.AddressStreet,
		p.AddressCity,
		p.AddressState,
		p.AddressPostal,
		p.MaritalStatus,
		p.IsManager,
		p.EmployeeManagerNum,
		p.Status,
		p.Department,
		p.HireDate,
	)
	if err != nil {
		return Employee{}, storeError("create employee", err)
	}
	employee, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Employee])
	if err != nil {
		return Employee{}, storeError("create employee", err)
	}
	return employee, nil
}

const updateEmployee = `
UPDATE employees SET
	first_name = $2,
	last_name = $3,
	email = $4,
	ssn = $5,
	address_street = $6,
	address_city = $7,
	address_state = $8,
	address_postal = $9,
	marital_status = $10,
	is_manager = $11,
	employee_manager_num = $12,
	status = $13,
	department = $14,
	hire_date = $15
WHERE employee_num = $1
`

// UpdateEmployee overwrites every column of the employee named by
// in.EmployeeNum. Matching no employee is not an error
func (q *Queries) UpdateEmployee(ctx context.Context, in EmployeeInput) error {
	p, err := in.Normalize()
	if err != nil {
		return &StoreError{Op: "update employee", Err: err}
	}
	_, err = q.db.Exec(ctx, updateEmployee,
		p.EmployeeNum,
		p.FirstName,
		p.LastName,
		p.Email,
		p.SSN,
		p.AddressStreet,
		p.AddressCity,
		p.AddressState,
		p.AddressPostal,
		p.MaritalStatus,
		p.IsManager,
		p.EmployeeManagerNum,
		p.Status,
		p.Department,
		p.HireDate,
	)
	return storeError("update employee", err)
}

// DeleteEmployeeByNum succeeds even when no employee has that number
func (q *Queries) DeleteEmployeeByNum(ctx context.Context, num int32) error {
	_, err := q.db.Exec(ctx, `DELETE FROM employees WHERE employee_num = $1`, num)
	return storeError("delete employee", err)
}
