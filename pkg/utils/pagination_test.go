package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	cases := []struct {
		name   string
		query  string
		limit  uint64
		offset uint64
	}{
		{"defaults", "", DefaultLimit, 0},
		{"explicit limit and skip", "limit=20&skip=40", 20, 40},
		{"offset alias", "limit=10&offset=5", 10, 5},
		{"skip wins over offset", "skip=3&offset=9", DefaultLimit, 3},
		{"limit capped", "limit=99999", MaxLimit, 0},
		{"zero limit ignored", "limit=0", DefaultLimit, 0},
		{"garbage ignored", "limit=abc&skip=xyz", DefaultLimit, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.query)
			assert.NoError(t, err)

			p := ParsePagination(values)
			assert.Equal(t, tc.limit, p.Limit)
			assert.Equal(t, tc.offset, p.Offset)
		})
	}
}
