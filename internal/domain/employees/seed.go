package employees

func Seed() []Employee {
	return []Employee{
		{
			ID: 1, Name: "John Doe", FirstName: "John", LastName: "Doe",
			Email: "john.doe@company.com", Department: "Engineering", Position: "Senior Developer",
			Status: StatusActive, JoinDate: "2023-01-15",
		},
		{
			ID: 2, Name: "Sarah Johnson", FirstName: "Sarah", LastName: "Johnson",
			Email: "sarah.johnson@company.com", Department: "Marketing", Position: "Marketing Manager",
			Status: StatusActive, JoinDate: "2022-08-20",
		},
		{
			ID: 3, Name: "Mike Chen", FirstName: "Mike", LastName: "Chen",
			Email: "mike.chen@company.com", Department: "Sales", Position: "Sales Representative",
			Status: StatusOnLeave, JoinDate: "2023-03-10",
		},
	}
}
