package postgres

import (
	"fmt"
	"strings"

	"github.com/edarmartinez/job-hunt-os/internal/transport/dto"
)

// orderColumns whitelists sortable columns. Filterable columns like company
// or stage are deliberately not sortable.
var orderColumns = map[string]string{
	"created_at":       "created_at",
	"updated_at":       "updated_at",
	"next_action_date": "next_action_date",
}

// buildFilterConditions translates the query's filters into WHERE conditions
// and their arguments. Shared by List and Count so both see the same set.
func buildFilterConditions(q *dto.ListApplicationsQuery) ([]string, []interface{}) {
	var conditions []string
	args := []interface{}{}

	if q.Search != nil && *q.Search != "" {
		args = append(args, "%"+strings.ToLower(*q.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("(LOWER(company) LIKE $%d OR LOWER(role) LIKE $%d)", len(args), len(args)))
	}
	if q.Stage != nil && *q.Stage != "" {
		args = append(args, *q.Stage)
		conditions = append(conditions, fmt.Sprintf("stage = $%d", len(args)))
	}
	if q.Status != nil && *q.Status != "" {
		args = append(args, *q.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}

	return conditions, args
}

// buildListQuery constructs the SQL for listing applications. The secondary
// "id DESC" sort key guarantees a total order even when the primary column
// ties or is null, which keeps pagination windows stable.
func buildListQuery(conditions []string, args *[]interface{}, q *dto.ListApplicationsQuery) (string, error) {
	column, ok := orderColumns[q.OrderBy]
	if !ok {
		return "", fmt.Errorf("unsupported order_by column: %s", q.OrderBy)
	}
	direction := "DESC"
	if strings.EqualFold(q.OrderDir, "asc") {
		direction = "ASC"
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + applicationColumns + ` FROM applications`)

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(conditions, " AND "))
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY %s %s, id DESC", column, direction))

	*args = append(*args, q.PageSize)
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d", len(*args)))
	*args = append(*args, q.Offset())
	queryBuilder.WriteString(fmt.Sprintf(" OFFSET $%d", len(*args)))

	return queryBuilder.String(), nil
}
