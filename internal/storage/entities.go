package storage

const (
	DefaultCollection = "todos"
	DefaultListLimit  = 100
)

// Document field names shared by every backend.
const (
	FieldTitle       = "title"
	FieldDueDate     = "dueDate"
	FieldIsCompleted = "isCompleted"
	FieldCreatedAt   = "createdAt"
)

// ListFilter caps a listing. Results are always ordered by creation time,
// newest first.
type ListFilter struct {
	Limit int
}

func (f ListFilter) limit() int {
	if f.Limit <= 0 {
		return DefaultListLimit
	}
	return f.Limit
}
