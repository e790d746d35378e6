package query

import "strings"

// Order is the sort order of a task listing.
type Order string

const (
	// OrderCreatedDesc lists newest tasks first. It is the default.
	OrderCreatedDesc Order = "created"
	// OrderDueDate lists by due date ascending with undated tasks last,
	// then newest first.
	OrderDueDate Order = "due_date"
)

// ParseOrder maps a query-string value to an Order, defaulting to OrderCreatedDesc.
func ParseOrder(s string) Order {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "due_date", "duedate", "due":
		return OrderDueDate
	default:
		return OrderCreatedDesc
	}
}

// Clause returns the ORDER BY expression for o.
func (o Order) Clause() string {
	if o == OrderDueDate {
		return "CASE WHEN tasks.due_date IS NULL THEN 1 ELSE 0 END, tasks.due_date ASC, tasks.created_at DESC, tasks.id DESC"
	}
	return "tasks.created_at DESC, tasks.id DESC"
}
