package shared

import (
	"net/http/httptest"
	"testing"
)

func TestParsePaginationDefaultsAndCaps(t *testing.T) {
	req := httptest.NewRequest("GET", "/?limit=0&offset=-5", nil)
	page := ParsePagination(req, 50, 200)
	if page.Limit != 50 || page.Offset != 0 {
		t.Fatalf("expected fallbacks for out-of-range values, got %+v", page)
	}

	req = httptest.NewRequest("GET", "/?limit=9999&offset=30", nil)
	page = ParsePagination(req, 50, 200)
	if page.Limit != 200 || page.Offset != 30 {
		t.Fatalf("expected limit capped at 200, got %+v", page)
	}

	req = httptest.NewRequest("GET", "/?limit=abc", nil)
	page = ParsePagination(req, 20, 100)
	if page.Limit != 20 {
		t.Fatalf("expected default for unparseable limit, got %+v", page)
	}
}
