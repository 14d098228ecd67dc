package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name  string
		page  int
		limit int
		total int64
		want  Pagination
	}{
		{
			name: "first of three pages", page: 1, limit: 10, total: 25,
			want: Pagination{CurrentPage: 1, TotalPages: 3, TotalCount: 25, HasNextPage: true, HasPrevPage: false},
		},
		{
			name: "middle page", page: 2, limit: 10, total: 25,
			want: Pagination{CurrentPage: 2, TotalPages: 3, TotalCount: 25, HasNextPage: true, HasPrevPage: true},
		},
		{
			name: "last page", page: 3, limit: 10, total: 25,
			want: Pagination{CurrentPage: 3, TotalPages: 3, TotalCount: 25, HasNextPage: false, HasPrevPage: true},
		},
		{
			name: "exact multiple", page: 2, limit: 5, total: 10,
			want: Pagination{CurrentPage: 2, TotalPages: 2, TotalCount: 10, HasNextPage: false, HasPrevPage: true},
		},
		{
			name: "empty result", page: 1, limit: 10, total: 0,
			want: Pagination{CurrentPage: 1, TotalPages: 0, TotalCount: 0, HasNextPage: false, HasPrevPage: false},
		},
		{
			name: "page beyond the end", page: 9, limit: 10, total: 25,
			want: Pagination{CurrentPage: 9, TotalPages: 3, TotalCount: 25, HasNextPage: false, HasPrevPage: true},
		},
		{
			name: "zero page and limit clamp to defaults floor", page: 0, limit: 0, total: 3,
			want: Pagination{CurrentPage: 1, TotalPages: 3, TotalCount: 3, HasNextPage: true, HasPrevPage: false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Paginate(tt.page, tt.limit, tt.total))
		})
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, ClampPage(-3))
	assert.Equal(t, 1, ClampPage(0))
	assert.Equal(t, 7, ClampPage(7))
	assert.Equal(t, 1, ClampLimit(0))
	assert.Equal(t, 50, ClampLimit(50))
}
