package utils

import (
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

type Pagination struct {
	Limit  uint64
	Offset uint64
}

// ParsePagination reads the explicit skip/limit contract from the query
// string. Out-of-range values fall back to the defaults.
func ParsePagination(values url.Values) Pagination {
	p := Pagination{Limit: DefaultLimit}

	if limitStr := values.Get("limit"); limitStr != "" {
		if l, err := strconv.ParseUint(limitStr, 10, 64); err == nil && l > 0 {
			if l > MaxLimit {
				p.Limit = MaxLimit
			} else {
				p.Limit = l
			}
		}
	}

	if offsetStr := values.Get("skip"); offsetStr != "" {
		if o, err := strconv.ParseUint(offsetStr, 10, 64); err == nil {
			p.Offset = o
		}
	} else if offsetStr := values.Get("offset"); offsetStr != "" {
		if o, err := strconv.ParseUint(offsetStr, 10, 64); err == nil {
			p.Offset = o
		}
	}

	return p
}
