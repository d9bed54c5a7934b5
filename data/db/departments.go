package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

func (q *Queries) GetDepartments(ctx context.Context) ([]Department, error) {
	rows, err := q.db.Query(ctx, `SELECT department_id, department_name FROM departments ORDER BY department_id`)
	if err != nil {
		return nil, storeError("get departments", err)
	}
	departments, err := pgx.CollectRows(rows, pgx.RowToStructByName[Department])
	if err != nil {
		return nil, storeError("get departments", err)
	}
	return departments, nil
}

func (q *Queries) GetDepartmentById(ctx context.Context, id int32) (Department, error) {
	rows, err := q.db.Query(ctx, `SELECT department_id, department_name FROM departments WHERE department_id = $1`, id)
	if err != nil {
		return Department{}, storeError("get department", err)
	}
	department, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Department])
	if err != nil {
		return Department{}, storeError(fmt.Sprintf("get department %d", id), err)
	}
	return department, nil
}

const addDepartment = `
INSERT INTO departments (department_id, department_name)
VALUES (COALESCE($1, nextval(pg_get_serial_sequence('departments', 'department_id'))::int), $2)
RETURNING department_id, department_name
`

func (q *Queries) AddDepartment(ctx context.Context, in DepartmentInput) (Department, error) {
	p, err := in.Normalize()
	if err != nil {
		return Department{}, &StoreError{Op: "create department", Err: err}
	}
	rows, err := q.db.Query(ctx, addDepartment, p.DepartmentID, p.DepartmentName)
	if err != nil {
		return Department{}, storeError("create department", err)
	}
	department, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[Department])
	if err != nil {
		return Department{}, storeError("create department", err)
	}
	return department, nil
}

// UpdateDepartment matching no department is not an error
func (q *Queries) UpdateDepartment(ctx context.Context, in DepartmentInput) error {
	p, err := in.Normalize()
	if err != nil {
		return &StoreError{Op: "update department", Err: err}
	}
	_, err = q.db.Exec(ctx,
		`UPDATE departments SET department_name = $2 WHERE department_id = $1`,
		p.DepartmentID,
		p.DepartmentName,
	)
	return storeError("update department", err)
}

// DeleteDepartmentById leaves employees in the department untouched
func (q *Queries) DeleteDepartmentById(ctx context.Context, id int32) error {
	_, err := q.db.Exec(ctx, `DELETE FROM departments WHERE department_id = $1`, id)
	return storeError("delete department", err)
}
