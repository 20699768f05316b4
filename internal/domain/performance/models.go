package performance

import "strconv"

type Goal struct {
	Title    string `json:"title"`
	Progress int    `json:"progress"`
}

type Review struct {
	ID           int    `json:"id"`
	EmployeeID   int    `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	Position     string `json:"position,omitempty"`
	Department   string `json:"department"`
	Rating       int    `json:"rating"`
	Status       string `json:"status"`
	ReviewDate   string `json:"reviewDate"`
	Goals        []Goal `json:"goals"`
	Notes        string `json:"notes,omitempty"`
}

func (r Review) Key() string {
	return strconv.Itoa(r.ID)
}

type NewReview struct {
	EmployeeID   int    `json:"employeeId"`
	EmployeeName string `json:"employeeName"`
	Position     string `json:"position"`
	Department   string `json:"department"`
	Rating       int    `json:"rating"`
	Status       string `json:"status"`
	ReviewDate   string `json:"reviewDate"`
	Goals        []Goal `json:"goals"`
	Notes        string `json:"notes"`
}

type Patch struct {
	Rating     *int    `json:"rating,omitempty"`
	Status     *string `json:"status,omitempty"`
	ReviewDate *string `json:"reviewDate,omitempty"`
	Goals      *[]Goal `json:"goals,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

type Summary struct {
	Total              int            `json:"total"`
	AverageRating      float64        `json:"averageRating"`
	Completed          int            `json:"completed"`
	TopPerformers      int            `json:"topPerformers"`
	RatingDistribution map[string]int `json:"ratingDistribution"`
	CompletionRate     float64        `json:"completionRate"`
}
