// Package query constructs parameterized SQL queries from view-level field
// names. A ProjectionMap binds view names to table columns so repositories
// can accept client sort and filter fields without exposing SQL identifiers.
package query

import (
	"fmt"
	"strings"
)

// ProjectionMap maps view-level field names to aliased table columns.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	order   []string
	columns map[string]string
}

// NewProjectionMap creates a projection for the given schema-qualified table and alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		columns: make(map[string]string),
	}
}

// Project registers a column under a view-level field name. Registration
// order determines column order in SELECT lists.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	p.columns[viewName] = fmt.Sprintf("%s.%s", p.alias, column)
	p.order = append(p.order, viewName)
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the aliased, schema-qualified table reference.
func (p *ProjectionMap) Table() string {
	return fmt.Sprintf("%s.%s %s", p.schema, p.table, p.alias)
}

// Column resolves a view-level field name to its aliased column.
// Unknown names are returned unchanged.
func (p *ProjectionMap) Column(viewName string) string {
	if col, ok := p.columns[viewName]; ok {
		return col
	}
	return viewName
}

// Columns returns the comma-separated SELECT list in registration order.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.ColumnList(), ", ")
}

// ColumnList returns the aliased columns in registration order.
func (p *ProjectionMap) ColumnList() []string {
	list := make([]string, len(p.order))
	for i, viewName := range p.order {
		list[i] = p.columns[viewName]
	}
	return list
}

// SortField identifies a view-level field and sort direction.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// ParseSortFields parses a comma-separated sort expression where a "-"
// prefix marks descending order, e.g. "-CreatedAt,Title".
func ParseSortFields(expr string) []SortField {
	if expr == "" {
		return nil
	}

	var fields []SortField
	for _, part := range strings.Split(expr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "-") {
			fields = append(fields, SortField{Field: part[1:], Descending: true})
		} else {
			fields = append(fields, SortField{Field: part})
		}
	}
	return fields
}
