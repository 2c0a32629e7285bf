// Package query builds the SQL ORDER BY clause the stored-query store uses
// to list StoredQuery rows, and parses the debug server's ?sort= request
// parameter into the sort tokens that clause is built from. The one
// resource this module lists is stored_queries, so the whitelist here is
// fixed rather than per-resource.
package query

import (
	"net/http"
	"strings"
)

// ValidSortFields is the whitelist of stored-query columns a client may
// sort by via the debug server's ?sort= parameter.
var ValidSortFields = []string{"name", "created_by", "created_at"}

// ParseSort parses the sort query parameter into a slice of sort tokens.
// Example: ?sort=-created_at,name returns ["-created_at", "name"]. The "-"
// prefix indicates descending order. Returns an empty slice if the sort
// parameter is absent.
func ParseSort(r *http.Request) []string {
	sort := r.URL.Query().Get("sort")
	if sort == "" {
		return []string{}
	}

	parts := strings.Split(sort, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ValidateSortFields checks that every sort token (without its optional
// "-" prefix) names a column in validFields. It returns an error listing
// every offending field, not just the first.
func ValidateSortFields(sorts []string, validFields []string) error {
	validSet := make(map[string]bool, len(validFields))
	for _, field := range validFields {
		validSet[field] = true
	}

	var invalid []string
	for _, sort := range sorts {
		field := strings.TrimPrefix(sort, "-")
		if !validSet[field] {
			invalid = append(invalid, field)
		}
	}

	if len(invalid) > 0 {
		return &InvalidSortFieldError{Fields: invalid}
	}
	return nil
}

// InvalidSortFieldError reports one or more sort tokens that did not name
// a whitelisted column.
type InvalidSortFieldError struct {
	Fields []string
}

func (e *InvalidSortFieldError) Error() string {
	return "invalid sort fields: " + strings.Join(e.Fields, ", ")
}

// BuildSortClause renders sort tokens into a SQL ORDER BY clause scoped to
// tableName, validating each token against validFields first. Fields
// prefixed with "-" sort descending; all others sort ascending. Returns
// an empty string, with no error, when sorts is empty; callers append it
// to a query only when non-empty.
//
// SECURITY NOTE: tableName is never taken from a request; it is always a
// compile-time constant the caller supplies.
func BuildSortClause(sorts []string, tableName string, validFields []string) (string, error) {
	if len(sorts) == 0 {
		return "", nil
	}
	if err := ValidateSortFields(sorts, validFields); err != nil {
		return "", err
	}

	exprs := make([]string, len(sorts))
	for i, sort := range sorts {
		direction := "ASC"
		field := sort
		if strings.HasPrefix(sort, "-") {
			direction = "DESC"
			field = sort[1:]
		}
		exprs[i] = tableName + "." + field + " " + direction
	}
	return "ORDER BY " + strings.Join(exprs, ", "), nil
}
