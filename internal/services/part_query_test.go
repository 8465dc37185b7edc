package services

import (
	"testing"
)

func TestBuildPaginationMiddlePage(t *testing.T) {
	// 3 条结果，每页 1 条，第 2 页：prev={1,1}，next={3,1}
	p := BuildPagination(2, 1, 3)

	if p.Prev == nil {
		t.Fatalf("expected prev page")
	}
	if p.Prev.Page != 1 || p.Prev.Limit != 1 {
		t.Errorf("prev mismatch: got %+v, want {1 1}", *p.Prev)
	}

	if p.Next == nil {
		t.Fatalf("expected next page")
	}
	if p.Next.Page != 3 || p.Next.Limit != 1 {
		t.Errorf("next mismatch: got %+v, want {3 1}", *p.Next)
	}
}

func TestBuildPaginationFirstPage(t *testing.T) {
	p := BuildPagination(1, 20, 50)
	if p.Prev != nil {
		t.Errorf("first page should have no prev, got %+v", *p.Prev)
	}
	if p.Next == nil || p.Next.Page != 2 {
		t.Errorf("expected next page 2, got %+v", p.Next)
	}
}

func TestBuildPaginationLastPage(t *testing.T) {
	p := BuildPagination(3, 20, 50)
	if p.Next != nil {
		t.Errorf("last page should have no next, got %+v", *p.Next)
	}
	if p.Prev == nil || p.Prev.Page != 2 {
		t.Errorf("expected prev page 2, got %+v", p.Prev)
	}
}

func TestBuildPaginationExactBoundary(t *testing.T) {
	// total 正好整除：第 2 页是最后一页，page*limit == total 时没有 next
	p := BuildPagination(2, 20, 40)
	if p.Next != nil {
		t.Errorf("expected no next when page*limit == total, got %+v", *p.Next)
	}
}

func TestBuildPaginationSinglePage(t *testing.T) {
	p := BuildPagination(1, 20, 5)
	if p.Next != nil || p.Prev != nil {
		t.Errorf("single page should have neither next nor prev: %+v", p)
	}
}

func TestBuildPaginationEmptyResult(t *testing.T) {
	p := BuildPagination(1, 20, 0)
	if p.Next != nil || p.Prev != nil {
		t.Errorf("empty result should have neither next nor prev: %+v", p)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	q := PartSearch{}
	q.Normalize()
	if q.Page != 1 {
		t.Errorf("expected default page 1, got %d", q.Page)
	}
	if q.Limit != DefaultPageLimit {
		t.Errorf("expected default limit %d, got %d", DefaultPageLimit, q.Limit)
	}
}

func TestNormalizeBadValues(t *testing.T) {
	q := PartSearch{Page: -3, Limit: -10}
	q.Normalize()
	if q.Page != 1 || q.Limit != DefaultPageLimit {
		t.Errorf("bad values should fall back to defaults, got page=%d limit=%d", q.Page, q.Limit)
	}
}

func TestNormalizeLimitCap(t *testing.T) {
	q := PartSearch{Page: 1, Limit: 5000}
	q.Normalize()
	if q.Limit != MaxPageLimit {
		t.Errorf("expected limit capped at %d, got %d", MaxPageLimit, q.Limit)
	}
}

func TestNormalizeTrimsSearch(t *testing.T) {
	q := PartSearch{Search: "  brake pads  "}
	q.Normalize()
	if q.Search != "brake pads" {
		t.Errorf("expected trimmed search text, got %q", q.Search)
	}
}
