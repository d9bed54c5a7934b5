package db

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeNormalizeEmptyStringsAreNull(t *testing.T) {
	p, err := EmployeeInput{
		FirstName: "Ada",
		LastName:  "",
		Email:     "",
		Status:    "active",
	}.Normalize()
	require.NoError(t, err)

	assert.Equal(t, pgtype.Text{String: "Ada", Valid: true}, p.FirstName)
	assert.Equal(t, pgtype.Text{String: "active", Valid: true}, p.Status)
	for name, text := range map[string]pgtype.Text{
		"lastName":      p.LastName,
		"email":         p.Email,
		"SSN":           p.SSN,
		"addressStreet": p.AddressStreet,
		"addressCity":   p.AddressCity,
		"addressState":  p.AddressState,
		"addressPostal": p.AddressPostal,
		"maritalStatus": p.MaritalStatus,
		"hireDate":      p.HireDate,
	} {
		assert.False(t, text.Valid, "%s should be NULL", name)
	}
	assert.False(t, p.EmployeeNum.Valid)
	assert.False(t, p.EmployeeManagerNum.Valid)
	assert.False(t, p.Department.Valid)
}

func TestEmployeeNormalizeIsManager(t *testing.T) {
	cases := map[string]bool{
		"":      false,
		"on":    true,
		"true":  true,
		"1":     true,
		"yes":   true,
		"false": false,
		"0":     false,
		"off":   false,
		"no":    false,
		" OFF ": false,
		"No":    false,
	}
	for value, expected := range cases {
		p, err := EmployeeInput{IsManager: value}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, expected, p.IsManager, "isManager=%q", value)
	}
}

func TestEmployeeNormalizeIntegers(t *testing.T) {
	p, err := EmployeeInput{
		EmployeeNum:        "12",
		EmployeeManagerNum: " 3 ",
		Department:         "4",
	}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, pgtype.Int4{Int32: 12, Valid: true}, p.EmployeeNum)
	assert.Equal(t, pgtype.Int4{Int32: 3, Valid: true}, p.EmployeeManagerNum)
	assert.Equal(t, pgtype.Int4{Int32: 4, Valid: true}, p.Department)

	_, err = EmployeeInput{Department: "sales"}.Normalize()
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestDepartmentNormalize(t *testing.T) {
	p, err := DepartmentInput{DepartmentName: ""}.Normalize()
	require.NoError(t, err)
	assert.False(t, p.DepartmentID.Valid)
	assert.False(t, p.DepartmentName.Valid)

	p, err = DepartmentInput{DepartmentID: "7", DepartmentName: "Research"}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, pgtype.Int4{Int32: 7, Valid: true}, p.DepartmentID)
	assert.Equal(t, pgtype.Text{String: "Research", Valid: true}, p.DepartmentName)

	_, err = DepartmentInput{DepartmentID: "x"}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("empNum", "42")
	require.NoError(t, err)
	assert.Equal(t, int32(42), id)

	_, err = ParseID("empNum", "99999999999")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
