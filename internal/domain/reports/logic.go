package reports

import (
	"math"
	"sort"

	"corecrew/internal/domain/employees"
)

type Bucket struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type Distribution struct {
	Total        int      `json:"total"`
	ByDepartment []Bucket `json:"byDepartment"`
	ByStatus     []Bucket `json:"byStatus"`
}

// Distribute groups employees by department and by status. Buckets are
// ordered by count, largest first, then by name.
func Distribute(list []employees.Employee) Distribution {
	departments := map[string]int{}
	statuses := map[string]int{}
	for _, e := range list {
		dept := e.Department
		if dept == "" {
			dept = "Unassigned"
		}
		departments[dept]++
		statuses[e.Status]++
	}
	return Distribution{
		Total:        len(list),
		ByDepartment: buckets(departments, len(list)),
		ByStatus:     buckets(statuses, len(list)),
	}
}

func buckets(counts map[string]int, total int) []Bucket {
	out := make([]Bucket, 0, len(counts))
	for name, count := range counts {
		out = append(out, Bucket{Name: name, Count: count, Percentage: percentage(count, total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
