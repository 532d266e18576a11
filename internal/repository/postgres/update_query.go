package postgres

import (
	"errors"
	"sort"
	"strconv"
)

var ErrFieldsNotAllowedToUpdate = errors.New("some fields are not allowed to update")

// buildUpdateQuery renders a merge-patch: only the supplied columns are
// written, everything else is untouched. Columns outside the allow-list
// are rejected before touching the database. The WHERE placeholders
// continue the numbering after the SET clause.
func buildUpdateQuery(table string, updates map[string]interface{}, allowedFields []string, whereColumns []string) (string, []interface{}, error) {
	if len(updates) == 0 {
		return "", nil, nil
	}

	allowedFieldsSet := make(map[string]struct{}, len(allowedFields))
	for _, field := range allowedFields {
		allowedFieldsSet[field] = struct{}{}
	}

	for field := range updates {
		if _, ok := allowedFieldsSet[field]; !ok {
			return "", nil, ErrFieldsNotAllowedToUpdate
		}
	}

	columns := make([]string, 0, len(updates))
	for column := range updates {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	query := "UPDATE " + table + " SET "
	args := []interface{}{}
	i := 1

	for _, column := range columns {
		query += (column + " = $" + strconv.Itoa(i) + ", ")
		args = append(args, updates[column])
		i++
	}

	query = query[:len(query)-2] + " WHERE "
	for j, column := range whereColumns {
		if j > 0 {
			query += " AND "
		}
		query += (column + " = $" + strconv.Itoa(i))
		i++
	}

	return query, args, nil
}
