package db

import "strings"

// lastvalQuery is the client/server equivalent of SQLite's
// last_insert_rowid(): the last value generated by the session's most recent
// sequence. Valid only on the same connection as the preceding insert, which
// transaction scopes guarantee.
const lastvalQuery = "SELECT lastval()"

// RewriteScalar rewrites the embedded backend's last-inserted-rowid idiom to
// the client/server equivalent when running on postgres. This is a textual
// shortcut, not a statement translator: the match is exact-phrase after
// case/whitespace normalization and trailing-semicolon removal, and every
// other query passes through byte-for-byte.
func RewriteScalar(driverName, query string) string {
	if driverName != "postgres" {
		return query
	}
	norm := strings.TrimSuffix(strings.TrimSpace(query), ";")
	norm = strings.ToLower(strings.Join(strings.Fields(norm), " "))
	if norm == "select last_insert_rowid()" {
		return lastvalQuery
	}
	return query
}
