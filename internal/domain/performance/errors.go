package performance

import "errors"

var (
	ErrReviewNotFound  = errors.New("performance review not found")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrInvalidStatus   = errors.New("review status must be Scheduled, In Progress or Completed")
	ErrInvalidProgress = errors.New("goal progress must be between 0 and 100")
)
