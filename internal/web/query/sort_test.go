package query

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSort(t *testing.T) {
	t.Run("absent parameter returns empty slice", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/queries", nil)
		assert.Empty(t, ParseSort(r))
	})

	t.Run("splits and trims tokens", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/queries?sort=-created_at,%20name", nil)
		assert.Equal(t, []string{"-created_at", "name"}, ParseSort(r))
	})
}

func TestValidateSortFields(t *testing.T) {
	t.Run("accepts whitelisted fields with or without descending prefix", func(t *testing.T) {
		assert.NoError(t, ValidateSortFields([]string{"-created_at", "name"}, ValidSortFields))
	})

	t.Run("rejects an unknown field", func(t *testing.T) {
		err := ValidateSortFields([]string{"secret_column"}, ValidSortFields)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "secret_column")
	})
}

func TestBuildSortClause(t *testing.T) {
	t.Run("empty input produces no clause", func(t *testing.T) {
		clause, err := BuildSortClause(nil, "stored_queries", ValidSortFields)
		require.NoError(t, err)
		assert.Empty(t, clause)
	})

	t.Run("renders direction per token and scopes columns to the table", func(t *testing.T) {
		clause, err := BuildSortClause([]string{"-created_at", "name"}, "stored_queries", ValidSortFields)
		require.NoError(t, err)
		assert.Equal(t, "ORDER BY stored_queries.created_at DESC, stored_queries.name ASC", clause)
	})

	t.Run("rejects a non-whitelisted field before building anything", func(t *testing.T) {
		_, err := BuildSortClause([]string{"input"}, "stored_queries", ValidSortFields)
		require.Error(t, err)
	})
}
