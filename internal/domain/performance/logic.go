package performance

import (
	"math"
	"strconv"
)

func ValidStatus(status string) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

func validate(rating int, status string, goals []Goal) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	for _, g := range goals {
		if g.Progress < 0 || g.Progress > 100 {
			return ErrInvalidProgress
		}
	}
	return nil
}

func (p Patch) apply(r Review) Review {
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.ReviewDate != nil {
		r.ReviewDate = *p.ReviewDate
	}
	if p.Goals != nil {
		r.Goals = append([]Goal{}, (*p.Goals)...)
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	return r
}

func buildSummary(reviews []Review) Summary {
	summary := Summary{
		Total:              len(reviews),
		RatingDistribution: map[string]int{},
	}
	if len(reviews) == 0 {
		return summary
	}
	total := 0
	for _, r := range reviews {
		total += r.Rating
		summary.RatingDistribution[strconv.Itoa(r.Rating)]++
		if r.Status == StatusCompleted {
			summary.Completed++
		}
		if r.Rating == MaxRating {
			summary.TopPerformers++
		}
	}
	summary.AverageRating = math.Round(float64(total)/float64(len(reviews))*10) / 10
	summary.CompletionRate = float64(summary.Completed) / float64(len(reviews))
	return summary
}

func nextID(items []Review) int {
	max := 0
	for _, r := range items {
		if r.ID > max {
			max = r.ID
		}
	}
	return max + 1
}

func indexOf(items []Review, id int) int {
	for idx, r := range items {
		if r.ID == id {
			return idx
		}
	}
	return -1
}
