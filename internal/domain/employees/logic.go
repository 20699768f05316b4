package employees

import "strings"

// FullName derives the display name stored alongside first and last name.
func FullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}

func displayName(in NewEmployee) string {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		if name := strings.TrimSpace(in.Name); name != "" {
			return name
		}
	}
	return FullName(in.FirstName, in.LastName)
}

func ValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

func nextID(items []Employee) int {
	maxID := 0
	for _, e := range items {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID + 1
}

func indexOf(items []Employee, id int) int {
	for i, e := range items {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// apply merges p into e. The name is only recomputed when the patch carries
// both a non-empty first and last name.
func (p Patch) apply(e Employee) Employee {
	setString(&e.FirstName, p.FirstName)
	setString(&e.LastName, p.LastName)
	setString(&e.Email, p.Email)
	setString(&e.Department, p.Department)
	setString(&e.Position, p.Position)
	setString(&e.Status, p.Status)
	setString(&e.JoinDate, p.JoinDate)
	setString(&e.Phone, p.Phone)
	setString(&e.EmployeeID, p.EmployeeID)
	setString(&e.Address, p.Address)
	if p.Salary != nil {
		e.Salary = *p.Salary
	}
	if p.FirstName != nil && p.LastName != nil && *p.FirstName != "" && *p.LastName != "" {
		e.Name = FullName(*p.FirstName, *p.LastName)
	}
	return e
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
