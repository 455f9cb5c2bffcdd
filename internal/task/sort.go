package task

import "slices"

// Order is a sort direction multiplier.
type Order int

const (
	Ascending  Order = 1
	Descending Order = -1
)

// field returns the numeric value of a sortable task field.
func field(t Task, name string) *int64 {
	switch name {
	case KeyDeadline:
		return t.Deadline
	case KeyCompleted:
		return t.Completed
	}
	return nil
}

// compareField orders a and b by the named field. Undefined values always
// sort after defined ones regardless of order; two undefined values are equal.
func compareField(a, b Task, name string, order Order) int {
	av, bv := field(a, name), field(b, name)
	switch {
	case av == nil && bv == nil:
		return 0
	case av == nil:
		return 1
	case bv == nil:
		return -1
	case *av < *bv:
		return -1 * int(order)
	case *av > *bv:
		return int(order)
	}
	return 0
}

// sortByField stable-sorts tasks in place by the named numeric field.
func sortByField(tasks []Task, name string, order Order) {
	slices.SortStableFunc(tasks, func(a, b Task) int {
		return compareField(a, b, name, order)
	})
}
