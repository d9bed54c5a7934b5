package db

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
)

// EmployeeInput is an employee exactly as it was submitted. Every value is still
// text so normalization happens in one place before anything reaches the database
type EmployeeInput struct {
	EmployeeNum        string
	FirstName          string
	LastName           string
	Email              string
	SSN                string
	AddressStreet      string
	AddressCity        string
	AddressState       string
	AddressPostal      string
	MaritalStatus      string
	IsManager          string
	EmployeeManagerNum string
	Status             string
	Department         string
	HireDate           string
}

type DepartmentInput struct {
	DepartmentID   string
	DepartmentName string
}

// EmployeeParams is a normalized EmployeeInput: empty strings are NULL and
// IsManager is a strict boolean
type EmployeeParams struct {
	EmployeeNum        pgtype.Int4
	FirstName          pgtype.Text
	LastName           pgtype.Text
	Email              pgtype.Text
	SSN                pgtype.Text
	AddressStreet      pgtype.Text
	AddressCity        pgtype.Text
	AddressState       pgtype.Text
	AddressPostal      pgtype.Text
	MaritalStatus      pgtype.Text
	IsManager          bool
	EmployeeManagerNum pgtype.Int4
	Status             pgtype.Text
	Department         pgtype.Int4
	HireDate           pgtype.Text
}

type DepartmentParams struct {
	DepartmentID   pgtype.Int4
	DepartmentName pgtype.Text
}

func (in EmployeeInput) Normalize() (EmployeeParams, error) {
	p := EmployeeParams{
		FirstName:     nullText(in.FirstName),
		LastName:      nullText(in.LastName),
		Email:         nullText(in.Email),
		SSN:           nullText(in.SSN),
		AddressStreet: nullText(in.AddressStreet),
		AddressCity:   nullText(in.AddressCity),
		AddressState:  nullText(in.AddressState),
		AddressPostal: nullText(in.AddressPostal),
		MaritalStatus: nullText(in.MaritalStatus),
		IsManager:     truthy(in.IsManager), // "false", "0", "off" and "no" are unchecked too
		Status:        nullText(in.Status),
		HireDate:      nullText(in.HireDate),
	}
	var err error
	if p.EmployeeNum, err = nullInt("employeeNum", in.EmployeeNum); err != nil {
		return p, err
	}
	if p.EmployeeManagerNum, err = nullInt("employeeManagerNum", in.EmployeeManagerNum); err != nil {
		return p, err
	}
	if p.Department, err = nullInt("department", in.Department); err != nil {
		return p, err
	}
	return p, nil
}

func (in DepartmentInput) Normalize() (DepartmentParams, error) {
	id, err := nullInt("departmentId", in.DepartmentID)
	if err != nil {
		return DepartmentParams{}, err
	}
	return DepartmentParams{
		DepartmentID:   id,
		DepartmentName: nullText(in.DepartmentName),
	}, nil
}

// ParseID parses an identifier taken from a url or query string
func ParseID(field, s string) (int32, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidInput, field, s)
	}
	return int32(n), nil
}

func nullText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: s, Valid: true}
}

func nullInt(field, s string) (pgtype.Int4, error) {
	if s == "" {
		return pgtype.Int4{}, nil
	}
	n, err := ParseID(field, s)
	if err != nil {
		return pgtype.Int4{}, err
	}
	return pgtype.Int4{Int32: n, Valid: true}, nil
}

// forms send "on" for a checked box and nothing otherwise. Other clients may
// send an explicit negative, which stays false
func truthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "false", "0", "off", "no":
		return false
	default:
		return true
	}
}

func FormatID(id int32) string {
	return strconv.FormatInt(int64(id), 10)
}
