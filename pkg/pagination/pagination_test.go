package pagination_test

import (
	"net/url"
	"testing"

	"github.com/echomindhq/echomind/pkg/pagination"
)

func testConfig() pagination.Config {
	return pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		name         string
		page         int
		pageSize     int
		wantPage     int
		wantPageSize int
	}{
		{"defaults applied", 0, 0, 1, 20},
		{"negative page", -5, 10, 1, 10},
		{"oversized page size clamped", 1, 500, 1, 100},
		{"valid passthrough", 3, 50, 3, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := pagination.PageRequest{Page: tc.page, PageSize: tc.pageSize}
			req.Normalize(testConfig())

			if req.Page != tc.wantPage || req.PageSize != tc.wantPageSize {
				t.Errorf("Normalize() = (%d, %d), want (%d, %d)", req.Page, req.PageSize, tc.wantPage, tc.wantPageSize)
			}
		})
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	values := url.Values{}
	values.Set("page", "2")
	values.Set("page_size", "50")
	values.Set("search", "sync")
	values.Set("sort", "-CreatedAt,Title")

	req := pagination.PageRequestFromQuery(values, testConfig())

	if req.Page != 2 || req.PageSize != 50 {
		t.Errorf("PageRequestFromQuery() = (%d, %d), want (2, 50)", req.Page, req.PageSize)
	}
	if req.Search == nil || *req.Search != "sync" {
		t.Errorf("Search = %v, want sync", req.Search)
	}
	if len(req.Sort) != 2 {
		t.Errorf("Sort = %v, want 2 fields", req.Sort)
	}
}

func TestPageRequestFromQuery_EmptyNormalized(t *testing.T) {
	req := pagination.PageRequestFromQuery(url.Values{}, testConfig())

	if req.Page != 1 || req.PageSize != 20 {
		t.Errorf("PageRequestFromQuery() = (%d, %d), want (1, 20)", req.Page, req.PageSize)
	}
	if req.Search != nil {
		t.Errorf("Search = %v, want nil", req.Search)
	}
}

func TestOffset(t *testing.T) {
	req := pagination.PageRequest{Page: 3, PageSize: 25}
	if req.Offset() != 50 {
		t.Errorf("Offset() = %d, want 50", req.Offset())
	}
}

func TestNewPageResult(t *testing.T) {
	data := []string{"a", "b", "c"}
	result := pagination.NewPageResult(data, 23, 1, 10)

	if result.Total != 23 {
		t.Errorf("Total = %d, want 23", result.Total)
	}
	if result.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", result.TotalPages)
	}
}

func TestNewPageResult_NilData(t *testing.T) {
	result := pagination.NewPageResult[string](nil, 0, 1, 10)

	if result.Data == nil {
		t.Error("Data is nil, want empty slice")
	}
	if result.TotalPages != 1 {
		t.Errorf("TotalPages = %d, want 1", result.TotalPages)
	}
}

func TestNewPageResult_ExactPages(t *testing.T) {
	result := pagination.NewPageResult([]int{1, 2}, 20, 1, 10)

	if result.TotalPages != 2 {
		t.Errorf("TotalPages = %d, want 2", result.TotalPages)
	}
}
