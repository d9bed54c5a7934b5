package records

import (
	"net/url"

	"github.com/Pjt727/roster/data/db"
)

func employeeFromForm(form url.Values) db.EmployeeInput {
	return db.EmployeeInput{
		EmployeeNum:        form.Get("employeeNum"),
		FirstName:          form.Get("firstName"),
		LastName:           form.Get("lastName"),
		Email:              form.Get("email"),
		SSN:                form.Get("SSN"),
		AddressStreet:      form.Get("addressStreet"),
		AddressCity:        form.Get("addressCity"),
		AddressState:       form.Get("addressState"),
		AddressPostal:      form.Get("addressPostal"),
		MaritalStatus:      form.Get("maritalStatus"),
		IsManager:          form.Get("isManager"),
		EmployeeManagerNum: form.Get("employeeManagerNum"),
		Status:             form.Get("status"),
		Department:         form.Get("department"),
		HireDate:           form.Get("hireDate"),
	}
}

func departmentFromForm(form url.Values) db.DepartmentInput {
	return db.DepartmentInput{
		DepartmentID:   form.Get("departmentId"),
		DepartmentName: form.Get("departmentName"),
	}
}
