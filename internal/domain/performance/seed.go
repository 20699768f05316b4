package performance

import (
	"math/rand/v2"
	"time"

	"corecrew/internal/domain/employees"
)

var seedGoals = []string{"Improve coding skills", "Complete training", "Project delivery"}

// SeedFor builds one review per employee with a review date in the last
// ninety days and between one and three goals.
func SeedFor(roster []employees.Employee, rng *rand.Rand, now time.Time) []Review {
	out := make([]Review, 0, len(roster))
	for idx, e := range roster {
		goals := make([]Goal, 0, len(seedGoals))
		for _, title := range seedGoals[:rng.IntN(len(seedGoals))+1] {
			goals = append(goals, Goal{Title: title, Progress: rng.IntN(100)})
		}
		out = append(out, Review{
			ID:           idx + 1,
			EmployeeID:   e.ID,
			EmployeeName: e.Name,
			Position:     e.Position,
			Department:   e.Department,
			Rating:       rng.IntN(MaxRating) + 1,
			Status:       Statuses[rng.IntN(len(Statuses))],
			ReviewDate:   now.AddDate(0, 0, -rng.IntN(90)).Format(dateLayout),
			Goals:        goals,
		})
	}
	return out
}
