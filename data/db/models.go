package db

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type Employee struct {
	EmployeeNum        int32       `db:"employee_num" json:"employee_num"`
	FirstName          pgtype.Text `db:"first_name" json:"first_name"`
	LastName           pgtype.Text `db:"last_name" json:"last_name"`
	Email              pgtype.Text `db:"email" json:"email"`
	SSN                pgtype.Text `db:"ssn" json:"ssn"`
	AddressStreet      pgtype.Text `db:"address_street" json:"address_street"`
	AddressCity        pgtype.Text `db:"address_city" json:"address_city"`
	AddressState       pgtype.Text `db:"address_state" json:"address_state"`
	AddressPostal      pgtype.Text `db:"address_postal" json:"address_postal"`
	MaritalStatus      pgtype.Text `db:"marital_status" json:"marital_status"`
	IsManager          bool        `db:"is_manager" json:"is_manager"`
	EmployeeManagerNum pgtype.Int4 `db:"employee_manager_num" json:"employee_manager_num"`
	Status             pgtype.Text `db:"status" json:"status"`
	Department         pgtype.Int4 `db:"department" json:"department"`
	HireDate           pgtype.Text `db:"hire_date" json:"hire_date"`
}

type Department struct {
	DepartmentID   int32       `db:"department_id" json:"department_id"`
	DepartmentName pgtype.Text `db:"department_name" json:"department_name"`
}

type User struct {
	UserName          string      `db:"user_name" json:"user_name"`
	EncryptedPassword string      `db:"encrypted_password" json:"-"`
	Email             pgtype.Text `db:"email" json:"email"`
}

type LoginHistory struct {
	DateTime  pgtype.Timestamptz `db:"date_time" json:"date_time"`
	UserAgent pgtype.Text        `db:"user_agent" json:"user_agent"`
}
