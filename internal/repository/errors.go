package repository

import "fmt"

// DependentsError blocks a delete that would orphan audit history. The count
// is surfaced to the caller so the UI can say how many rows are in the way.
type DependentsError struct {
	Entity    string
	Dependent string
	Count     int64
}

func (e *DependentsError) Error() string {
	return fmt.Sprintf("cannot delete %s: %d dependent %s row(s) exist", e.Entity, e.Count, e.Dependent)
}
