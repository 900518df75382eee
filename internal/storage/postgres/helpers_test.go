package postgres

import (
	"testing"

	"github.com/edarmartinez/job-hunt-os/internal/transport/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func baseQuery() *dto.ListApplicationsQuery {
	return &dto.ListApplicationsQuery{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
	}
}

func TestBuildFilterConditions_NoFilters(t *testing.T) {
	conditions, args := buildFilterConditions(baseQuery())

	assert.Empty(t, conditions)
	assert.Empty(t, args)
}

func TestBuildFilterConditions_SearchMatchesCompanyOrRole(t *testing.T) {
	q := baseQuery()
	q.Search = strPtr("AcMe")

	conditions, args := buildFilterConditions(q)

	require.Len(t, conditions, 1)
	assert.Equal(t, "(LOWER(company) LIKE $1 OR LOWER(role) LIKE $1)", conditions[0])
	require.Len(t, args, 1)
	assert.Equal(t, "%acme%", args[0], "search term is lowercased and wrapped in wildcards")
}

func TestBuildFilterConditions_AllFiltersNumberPlaceholdersInOrder(t *testing.T) {
	q := baseQuery()
	q.Search = strPtr("dev")
	q.Stage = strPtr("applied")
	q.Status = strPtr("active")

	conditions, args := buildFilterConditions(q)

	require.Len(t, conditions, 3)
	assert.Equal(t, "(LOWER(company) LIKE $1 OR LOWER(role) LIKE $1)", conditions[0])
	assert.Equal(t, "stage = $2", conditions[1])
	assert.Equal(t, "status = $3", conditions[2])
	assert.Equal(t, []interface{}{"%dev%", "applied", "active"}, args)
}

func TestBuildFilterConditions_EmptyStringsIgnored(t *testing.T) {
	q := baseQuery()
	q.Search = strPtr("")
	q.Stage = strPtr("")
	q.Status = strPtr("")

	conditions, args := buildFilterConditions(q)

	assert.Empty(t, conditions)
	assert.Empty(t, args)
}

func TestBuildListQuery_DefaultOrdering(t *testing.T) {
	q := baseQuery()
	conditions, args := buildFilterConditions(q)

	sql, err := buildListQuery(conditions, &args, q)

	require.NoError(t, err)
	assert.Contains(t, sql, "FROM applications")
	assert.NotContains(t, sql, "WHERE")
	assert.Contains(t, sql, "ORDER BY created_at DESC, id DESC")
	assert.Contains(t, sql, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []interface{}{20, 0}, args)
}

func TestBuildListQuery_FiltersAndPaging(t *testing.T) {
	q := baseQuery()
	q.Stage = strPtr("applied")
	q.OrderBy = "next_action_date"
	q.OrderDir = "asc"
	q.Page = 3
	q.PageSize = 10
	conditions, args := buildFilterConditions(q)

	sql, err := buildListQuery(conditions, &args, q)

	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE stage = $1")
	assert.Contains(t, sql, "ORDER BY next_action_date ASC, id DESC")
	assert.Contains(t, sql, "LIMIT $2 OFFSET $3")
	assert.Equal(t, []interface{}{"applied", 10, 20}, args, "offset is (page-1)*page_size")
}

func TestBuildListQuery_RejectsUnknownOrderColumn(t *testing.T) {
	q := baseQuery()
	q.OrderBy = "company"
	conditions, args := buildFilterConditions(q)

	_, err := buildListQuery(conditions, &args, q)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported order_by column")
}

// The id tie-break must apply to every sortable column, not just the default.
func TestBuildListQuery_TieBreakOnEverySortColumn(t *testing.T) {
	for column := range orderColumns {
		q := baseQuery()
		q.OrderBy = column
		conditions, args := buildFilterConditions(q)

		sql, err := buildListQuery(conditions, &args, q)

		require.NoError(t, err)
		assert.Contains(t, sql, ", id DESC", "column %s", column)
	}
}
