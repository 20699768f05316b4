package shared

import (
	"net/http"
	"strconv"
	"strings"

	"corecrew/internal/transport/http/api"
)

type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination reads limit and offset, falling back to defaultLimit and
// capping at maxLimit. Malformed values are ignored rather than rejected.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	p := Pagination{Limit: defaultLimit}
	query := r.URL.Query()
	if v, err := strconv.Atoi(query.Get("limit")); err == nil && v > 0 {
		p.Limit = v
	}
	if v, err := strconv.Atoi(query.Get("offset")); err == nil && v > 0 {
		p.Offset = v
	}
	if maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// Window returns the part of items covered by p.
func Window[T any](items []T, p Pagination) []T {
	if p.Offset >= len(items) {
		return []T{}
	}
	end := len(items)
	if p.Limit > 0 && p.Offset+p.Limit < end {
		end = p.Offset + p.Limit
	}
	return items[p.Offset:end]
}

// Meta describes the page handed back next to a list.
func (p Pagination) Meta(total int) api.Page {
	return api.Page{Total: total, Limit: p.Limit, Offset: p.Offset}
}

// OptionalIntQuery parses an optional integer filter. present is false when
// the parameter is absent; ok is false once a 400 has been written.
func OptionalIntQuery(w http.ResponseWriter, r *http.Request, name, requestID string) (value int, present, ok bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, false, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		FailValidation(w, requestID, []ValidationIssue{{Field: name, Reason: "must be an integer"}})
		return 0, true, false
	}
	return value, true, true
}
