package store

// RowStatus is the soft-lifecycle marker shared by platform entities.
type RowStatus string

const (
	// Normal is the status for an active row.
	Normal RowStatus = "NORMAL"
	// Pending is the status for a row awaiting review.
	Pending RowStatus = "PENDING"
	// Archived is the status for a soft-deleted row.
	Archived RowStatus = "ARCHIVED"
)

func (s RowStatus) String() string {
	return string(s)
}
