package repository

import "testing"

func TestLikeOperatorByDialect(t *testing.T) {
	cases := []struct {
		dialect string
		want    string
	}{
		{"sqlite", "LIKE"},
		{"", "LIKE"},
		{"postgres", "ILIKE"},
		{"PostgreSQL", "ILIKE"},
		{" mysql ", "LIKE"},
	}
	for _, tc := range cases {
		if got := likeOperatorByDialect(tc.dialect); got != tc.want {
			t.Fatalf("likeOperatorByDialect(%q) = %q, want %q", tc.dialect, got, tc.want)
		}
	}
}

func TestMonthBucketExprByDialect(t *testing.T) {
	if got := monthBucketExprByDialect("postgres", "created_at"); got != "to_char(created_at, 'MM/YY')" {
		t.Fatalf("unexpected postgres expr: %s", got)
	}
	if got := monthBucketExprByDialect("sqlite", "created_at"); got != "strftime('%m/%y', created_at)" {
		t.Fatalf("unexpected sqlite expr: %s", got)
	}
}
