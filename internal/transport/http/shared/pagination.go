package shared

import (
	"net/http"
	"strconv"
)

// maxOffset bounds how deep a list can be paged; the tables here are small
// (one tenant's employees, requests, notifications) and anything past this is
// a client bug.
const maxOffset = 100_000

type Pagination struct {
	Limit  int
	Offset int
}

// ParsePagination reads limit/offset query values. Each endpoint passes its
// own default and cap; out-of-range or unparseable values fall back.
func ParsePagination(r *http.Request, defaultLimit, maxLimit int) Pagination {
	return Pagination{
		Limit:  queryInt(r, "limit", defaultLimit, 1, maxLimit),
		Offset: queryInt(r, "offset", 0, 0, maxOffset),
	}
}

func queryInt(r *http.Request, key string, fallback, min, max int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < min {
		return fallback
	}
	if max > 0 && v > max {
		return max
	}
	return v
}
