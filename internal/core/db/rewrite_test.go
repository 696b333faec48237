package db

import (
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestRewriteScalar(t *testing.T) {
	tests := []struct {
		name   string
		driver string
		query  string
		want   string
	}{
		{
			name:   "exact idiom on postgres",
			driver: "postgres",
			query:  "SELECT last_insert_rowid()",
			want:   "SELECT lastval()",
		},
		{
			name:   "idiom with trailing semicolon",
			driver: "postgres",
			query:  "SELECT last_insert_rowid();",
			want:   "SELECT lastval()",
		},
		{
			name:   "idiom with mixed case and whitespace",
			driver: "postgres",
			query:  "  select   LAST_INSERT_ROWID()  ",
			want:   "SELECT lastval()",
		},
		{
			name:   "idiom untouched on sqlite",
			driver: "sqlite3",
			query:  "SELECT last_insert_rowid()",
			want:   "SELECT last_insert_rowid()",
		},
		{
			name:   "idiom embedded in larger statement passes through",
			driver: "postgres",
			query:  "SELECT last_insert_rowid() AS id FROM t",
			want:   "SELECT last_insert_rowid() AS id FROM t",
		},
		{
			name:   "count query passes through",
			driver: "postgres",
			query:  "SELECT COUNT(*) FROM feedback",
			want:   "SELECT COUNT(*) FROM feedback",
		},
		{
			name:   "existence probe passes through",
			driver: "postgres",
			query:  "SELECT 1 FROM feedback WHERE id = ?",
			want:   "SELECT 1 FROM feedback WHERE id = ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RewriteScalar(tt.driver, tt.query); got != tt.want {
				t.Errorf("RewriteScalar(%q, %q) = %q, want %q", tt.driver, tt.query, got, tt.want)
			}
		})
	}
}

// Property-based test: the rewrite is exact-phrase only, never a general
// translator.
func TestRewriteScalar_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("identity on the embedded backend", prop.ForAll(
		func(query string) bool {
			return RewriteScalar("sqlite3", query) == query
		},
		gen.AnyString(),
	))

	properties.Property("non-idiom queries pass through on postgres", prop.ForAll(
		func(query string) bool {
			norm := strings.ToLower(strings.Join(strings.Fields(strings.TrimSuffix(strings.TrimSpace(query), ";")), " "))
			if norm == "select last_insert_rowid()" {
				return true // idiom itself, covered above
			}
			return RewriteScalar("postgres", query) == query
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// Property-based test: placeholder rewriting preserves parameter count, so a
// count mismatch always surfaces as a backend error rather than silent
// truncation.
func TestRebind_PlaceholderCountPreserved(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("? count equals $N count after rebind", prop.ForAll(
		func(n int) bool {
			var sb strings.Builder
			sb.WriteString("SELECT * FROM feedback WHERE 1=1")
			for i := 0; i < n; i++ {
				sb.WriteString(" AND project_key = ?")
			}
			bound := sqlx.Rebind(sqlx.DOLLAR, sb.String())
			return strings.Count(bound, "$") == n && !strings.Contains(bound, "?")
		},
		gen.IntRange(0, 30),
	))

	properties.TestingRun(t)
}
