package employees

import "strconv"

type Employee struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	Status     string  `json:"status"`
	JoinDate   string  `json:"joinDate"`
	Phone      string  `json:"phone,omitempty"`
	Salary     float64 `json:"salary,omitempty"`
	EmployeeID string  `json:"employeeId,omitempty"`
	Address    string  `json:"address,omitempty"`
}

func (e Employee) Key() string {
	return strconv.Itoa(e.ID)
}

// NewEmployee carries everything Add needs. The id is assigned by the
// directory; Name is only used when first or last name is blank.
type NewEmployee struct {
	Name       string  `json:"name,omitempty"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Department string  `json:"department"`
	Position   string  `json:"position"`
	Status     string  `json:"status"`
	JoinDate   string  `json:"joinDate"`
	Phone      string  `json:"phone,omitempty"`
	Salary     float64 `json:"salary,omitempty"`
	EmployeeID string  `json:"employeeId,omitempty"`
	Address    string  `json:"address,omitempty"`
}

// Patch lists the fields an update may change. Nil fields are left alone.
type Patch struct {
	FirstName  *string  `json:"firstName,omitempty"`
	LastName   *string  `json:"lastName,omitempty"`
	Email      *string  `json:"email,omitempty"`
	Department *string  `json:"department,omitempty"`
	Position   *string  `json:"position,omitempty"`
	Status     *string  `json:"status,omitempty"`
	JoinDate   *string  `json:"joinDate,omitempty"`
	Phone      *string  `json:"phone,omitempty"`
	Salary     *float64 `json:"salary,omitempty"`
	EmployeeID *string  `json:"employeeId,omitempty"`
	Address    *string  `json:"address,omitempty"`
}
