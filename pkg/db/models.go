package db

// Roster is a date-scoped container record grouping the assignment rows
// produced for one event on one date. It carries no person of its own.
type Roster struct {
	ID      string
	EventID int64
	Date    string
}

// Assignment is one persisted (roster, role, person) row
type Assignment struct {
	ID       string
	RosterID string
	RoleID   int64
	PersonID int64
}

// AssignmentRow is an assignment pending insertion, before a row id and
// container are attached
type AssignmentRow struct {
	RoleID   int64
	PersonID int64
}

// RosterSave is the write-back unit for one (event, date) container: the
// container is found or created, its existing rows deleted, and Rows
// inserted fresh. A slice of RosterSave is applied in a single transaction.
type RosterSave struct {
	EventID int64
	Date    string
	Rows    []AssignmentRow
}
