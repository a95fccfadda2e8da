// Package queryutil parses query paths over object graphs.
package queryutil

import (
	"strings"

	query "github.com/zoncoen/query-go"
)

// Parse parses a query string such as ".foo[0].bar".
// A leading dot may be omitted.
func Parse(s string, opts ...query.Option) (*query.Query, error) {
	if s != "" && !strings.HasPrefix(s, ".") && !strings.HasPrefix(s, "[") {
		s = "." + s
	}
	return query.ParseString(s, opts...)
}
