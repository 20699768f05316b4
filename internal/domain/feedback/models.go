package feedback

import "time"

const CollectionKey = "feedbacks"

const (
	MinRating = 1
	MaxRating = 5
)

type Feedback struct {
	ID         string    `json:"id"`
	EmployeeID int       `json:"employeeId"`
	Rating     int       `json:"rating"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
	CreatedBy  string    `json:"createdBy"`
	IsRead     bool      `json:"isRead"`
}

type Stats struct {
	EmployeeID    int     `json:"employeeId"`
	Count         int     `json:"count"`
	Unread        int     `json:"unread"`
	AverageRating float64 `json:"averageRating"`
}
