package leave

import "time"

const day = 24 * time.Hour

// CalculateDays counts calendar days from start to end, both included. Only
// the date part of each time matters.
func CalculateDays(start, end time.Time) (float64, error) {
	s, e := dateOf(start), dateOf(end)
	if e.Before(s) {
		return 0, ErrInvalidRange
	}
	return float64(e.Sub(s)/day) + 1, nil
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween parses two YYYY-MM-DD dates and returns the inclusive count.
func DaysBetween(start, end string) (float64, error) {
	s, err := time.Parse(dateLayout, start)
	if err != nil {
		return 0, ErrInvalidDate
	}
	e, err := time.Parse(dateLayout, end)
	if err != nil {
		return 0, ErrInvalidDate
	}
	return CalculateDays(s, e)
}

func nextID(items []Request) int {
	highest := 0
	for _, r := range items {
		highest = max(highest, r.ID)
	}
	return highest + 1
}

func indexOf(items []Request, id int) int {
	for idx, r := range items {
		if r.ID == id {
			return idx
		}
	}
	return -1
}
