package utils

import (
	"strings"
	"testing"
)

func TestSnowflakeIDUnique(t *testing.T) {
	gen := NewSnowflakeID(1)

	seen := make(map[int64]bool)
	for i := 0; i < 10000; i++ {
		id := gen.Generate()
		if seen[id] {
			t.Fatalf("duplicate id generated: %d", id)
		}
		seen[id] = true
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	gen := NewSnowflakeID(1)

	id := gen.GenerateWithPrefix("req")
	if !strings.HasPrefix(id, "req_") {
		t.Fatalf("expected req_ prefix, got %s", id)
	}
	if len(id) <= len("req_") {
		t.Fatalf("expected numeric suffix, got %s", id)
	}
}

func TestTruncateID(t *testing.T) {
	cases := []struct {
		id   string
		n    int
		want string
	}{
		{"user_12345678", 8, "user_123…"},
		{"short", 8, "short"},
		{"exactly8", 8, "exactly8"},
		{"anything", 0, "anything"},
		{"", 8, ""},
	}

	for _, c := range cases {
		if got := TruncateID(c.id, c.n); got != c.want {
			t.Errorf("TruncateID(%q, %d) = %q, want %q", c.id, c.n, got, c.want)
		}
	}
}

func TestPaginationDefaults(t *testing.T) {
	p := NewPagination(0, 0, 95)
	if p.Page != 1 || p.PageSize != 10 {
		t.Fatalf("expected defaults page=1 size=10, got page=%d size=%d", p.Page, p.PageSize)
	}
	if p.Pages != 10 {
		t.Fatalf("expected 10 pages for 95 items, got %d", p.Pages)
	}
	if p.Offset() != 0 {
		t.Fatalf("expected offset 0, got %d", p.Offset())
	}

	p = NewPagination(3, 20, 95)
	if p.Offset() != 40 || p.Limit() != 20 {
		t.Fatalf("unexpected offset/limit: %d/%d", p.Offset(), p.Limit())
	}
}
