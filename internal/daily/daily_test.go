package daily

import (
	"testing"
	"time"
)

func TestDateKey(t *testing.T) {
	ts := time.Date(2025, 3, 9, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	// 23:30 EST is already March 10 in UTC.
	if got := DateKey(ts); got != "2025-03-10" {
		t.Fatalf("DateKey = %q", got)
	}
}

func TestWordIndexDeterministic(t *testing.T) {
	date := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	a := WordIndex(date, "salt", 131)
	b := WordIndex(date, "salt", 131)
	if a != b {
		t.Fatalf("same inputs gave %d and %d", a, b)
	}
	if a < 0 || a >= 131 {
		t.Fatalf("index %d out of range", a)
	}
}

func TestWordIndexVariesByDate(t *testing.T) {
	salt := "salt"
	seen := make(map[int]struct{})
	for day := 1; day <= 14; day++ {
		d := time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC)
		seen[WordIndex(d, salt, 1000)] = struct{}{}
	}
	// 14 dates mapping to a single index would mean the date is not hashed.
	if len(seen) < 2 {
		t.Fatalf("indices do not vary across dates: %v", seen)
	}
}

func TestWordIndexEmptyCatalog(t *testing.T) {
	if got := WordIndex(time.Now(), "salt", 0); got != 0 {
		t.Fatalf("empty catalog: got %d", got)
	}
}
