package performance

const CollectionKey = "performanceReviews"

const (
	StatusScheduled  = "Scheduled"
	StatusInProgress = "In Progress"
	StatusCompleted  = "Completed"
)

var Statuses = []string{StatusScheduled, StatusInProgress, StatusCompleted}

const (
	MinRating = 1
	MaxRating = 5
)

const dateLayout = "2006-01-02"
