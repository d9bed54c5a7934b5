package db_test

import (
	"context"
	"testing"

	"github.com/Pjt727/roster/data/db"
	"github.com/Pjt727/roster/data/testdb"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRoundTrip(t *testing.T) {
	store := testdb.SetupTestDb(t)
	ctx := context.Background()

	created, err := store.AddEmployee(ctx, db.EmployeeInput{
		EmployeeNum: "260",
		FirstName:   "Grace",
		LastName:    "Hopper",
		Email:       "",
		IsManager:   "on",
		Status:      "active",
		Department:  "2",
		HireDate:    "1/1/1944",
	})
	require.NoError(t, err)
	assert.Equal(t, int32(260), created.EmployeeNum)

	read, err := store.GetEmployeeByNum(ctx, 260)
	require.NoError(t, err)
	assert.Equal(t, created, read)
	assert.Equal(t, "Grace", read.FirstName.String)
	assert.False(t, read.Email.Valid)
	assert.True(t, read.IsManager)
	assert.Equal(t, pgtype.Int4{Int32: 2, Valid: true}, read.Department)

	err = store.UpdateEmployee(ctx, db.EmployeeInput{
		EmployeeNum: "260",
		FirstName:   "Grace",
		LastName:    "Hopper",
		Status:      "terminated",
	})
	require.NoError(t, err)
	read, err = store.GetEmployeeByNum(ctx, 260)
	require.NoError(t, err)
	assert.Equal(t, "terminated", read.Status.String)
	assert.False(t, read.IsManager)
	assert.False(t, read.Department.Valid)

	require.NoError(t, store.DeleteEmployeeByNum(ctx, 260))
	_, err = store.GetEmployeeByNum(ctx, 260)
	assert.ErrorIs(t, err, db.ErrNotFound)

	// nothing left to match
	assert.NoError(t, store.DeleteEmployeeByNum(ctx, 260))
	assert.NoError(t, store.UpdateEmployee(ctx, db.EmployeeInput{EmployeeNum: "260"}))
}

func TestEmployeeGeneratedNumbers(t *testing.T) {
	store := testdb.SetupTestDb(t)
	ctx := context.Background()

	first, err := store.AddEmployee(ctx, db.EmployeeInput{FirstName: "A"})
	require.NoError(t, err)
	second, err := store.AddEmployee(ctx, db.EmployeeInput{FirstName: "B"})
	require.NoError(t, err)
	assert.NotEqual(t, first.EmployeeNum, second.EmployeeNum)

	_, err = store.AddEmployee(ctx, db.EmployeeInput{EmployeeNum: "1000", FirstName: "C"})
	require.NoError(t, err)
	_, err = store.AddEmployee(ctx, db.EmployeeInput{EmployeeNum: "1000", FirstName: "D"})
	assert.ErrorIs(t, err, db.ErrAlreadyExists)
}

func TestEmployeeFilters(t *testing.T) {
	store := testdb.SetupTestDb(t)
	ctx := context.Background()

	for _, in := range []db.EmployeeInput{
		{FirstName: "a", Status: "active", Department: "1", EmployeeManagerNum: "9"},
		{FirstName: "b", Status: "terminated", Department: "1"},
		{FirstName: "c", Status: "active", Department: "2", EmployeeManagerNum: "9"},
		{FirstName: "d", Status: "Active", Department: "3"},
	} {
		_, err := store.AddEmployee(ctx, in)
		require.NoError(t, err)
	}

	all, err := store.GetAllEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	active, err := store.GetEmployeesByStatus(ctx, "active")
	require.NoError(t, err)
	require.Len(t, active, 2)
	for _, e := range active {
		assert.Equal(t, "active", e.Status.String)
	}

	inDepartment, err := store.GetEmployeesByDepartment(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, inDepartment, 2)

	managed, err := store.GetEmployeesByManager(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, managed, 2)

	none, err := store.GetEmployeesByStatus(ctx, "on leave")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDeleteDepartmentKeepsEmployees(t *testing.T) {
	store := testdb.SetupTestDb(t)
	ctx := context.Background()

	department, err := store.AddDepartment(ctx, db.DepartmentInput{DepartmentName: "Research"})
	require.NoError(t, err)
	employee, err := store.AddEmployee(ctx, db.EmployeeInput{
		FirstName:  "Ada",
		Department: db.FormatID(department.DepartmentID),
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteDepartmentById(ctx, department.DepartmentID))
	_, err = store.GetDepartmentById(ctx, department.DepartmentID)
	assert.ErrorIs(t, err, db.ErrNotFound)

	read, err := store.GetEmployeeByNum(ctx, employee.EmployeeNum)
	require.NoError(t, err)
	assert.Equal(t, pgtype.Int4{Int32: department.DepartmentID, Valid: true}, read.Department)
}

func TestDepartmentRoundTrip(t *testing.T) {
	store := testdb.SetupTestDb(t)
	ctx := context.Background()

	created, err := store.AddDepartment(ctx, db.DepartmentInput{DepartmentName: "Sales"})
	require.NoError(t, err)

	err = store.UpdateDepartment(ctx, db.DepartmentInput{
		DepartmentID:   db.FormatID(created.DepartmentID),
		DepartmentName: "",
	})
	require.NoError(t, err)

	read, err := store.GetDepartmentById(ctx, created.DepartmentID)
	require.NoError(t, err)
	assert.False(t, read.DepartmentName.Valid)

	departments, err := store.GetDepartments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []db.Department{read}, departments)
}

func TestUsersAndLoginHistory(t *testing.T) {
	store := testdb.SetupTestDb(t)
	ctx := context.Background()

	params := db.CreateUserParams{
		UserName:          "ada",
		EncryptedPassword: "hash",
		Email:             pgtype.Text{String: "ada@example.com", Valid: true},
	}
	require.NoError(t, store.CreateUser(ctx, params))
	assert.ErrorIs(t, store.CreateUser(ctx, params), db.ErrAlreadyExists)

	user, err := store.GetUser(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, "hash", user.EncryptedPassword)

	_, err = store.GetUser(ctx, "grace")
	assert.ErrorIs(t, err, db.ErrNotFound)

	history, err := store.GetLoginHistory(ctx, "ada")
	require.NoError(t, err)
	assert.Empty(t, history)
}
