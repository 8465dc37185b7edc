package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/Georges999/Car-Parts-Marketplace/internal/services"

	"github.com/gin-gonic/gin"
)

func searchContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/parts?"+rawQuery, nil)
	return c
}

func TestParseSearchQueryFull(t *testing.T) {
	c := searchContext(t, "category=Brakes&subcategory=Pads&brand=StopTech&inStock=true"+
		"&search=ceramic&make=Toyota&model=Camry&year=2020&minPrice=10&maxPrice=99.5&page=2&limit=10")

	q := parseSearchQuery(c)

	if q.Category != "Brakes" || q.Subcategory != "Pads" || q.Brand != "StopTech" {
		t.Errorf("filter fields mismatch: %+v", q)
	}
	if q.InStock == nil || !*q.InStock {
		t.Errorf("expected inStock=true, got %v", q.InStock)
	}
	if q.Search != "ceramic" {
		t.Errorf("expected search=ceramic, got %q", q.Search)
	}
	if q.Make != "Toyota" || q.Model != "Camry" || q.Year != 2020 {
		t.Errorf("vehicle fields mismatch: %+v", q)
	}
	if q.MinPrice == nil || *q.MinPrice != 10 {
		t.Errorf("expected minPrice=10, got %v", q.MinPrice)
	}
	if q.MaxPrice == nil || *q.MaxPrice != 99.5 {
		t.Errorf("expected maxPrice=99.5, got %v", q.MaxPrice)
	}
	if q.Page != 2 || q.Limit != 10 {
		t.Errorf("pagination mismatch: page=%d limit=%d", q.Page, q.Limit)
	}
}

func TestParseSearchQueryDefaults(t *testing.T) {
	c := searchContext(t, "")
	q := parseSearchQuery(c)

	if q.Page != 1 || q.Limit != 20 {
		t.Errorf("expected default page=1 limit=20, got page=%d limit=%d", q.Page, q.Limit)
	}
	if q.InStock != nil || q.MinPrice != nil || q.MaxPrice != nil {
		t.Errorf("expected unset optional filters, got %+v", q)
	}
}

func TestParseSearchQueryBadNumbers(t *testing.T) {
	// 非数字的 year/page/limit 回退默认值，不报错
	c := searchContext(t, "year=abc&page=xyz&limit=nope")
	q := parseSearchQuery(c)

	if q.Year != 0 {
		t.Errorf("expected year=0 for bad input, got %d", q.Year)
	}

	q.Normalize()
	if q.Page != 1 || q.Limit != services.DefaultPageLimit {
		t.Errorf("expected normalized defaults, got page=%d limit=%d", q.Page, q.Limit)
	}
}

func TestParseSearchQueryInStockFalse(t *testing.T) {
	c := searchContext(t, "inStock=false")
	q := parseSearchQuery(c)
	if q.InStock == nil || *q.InStock {
		t.Errorf("expected inStock=false, got %v", q.InStock)
	}
}
