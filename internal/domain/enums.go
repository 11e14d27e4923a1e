package domain

// LookupStatus is the outcome of resolving one vocabulary word.
type LookupStatus string

const (
	StatusFound    LookupStatus = "FOUND"
	StatusNotFound LookupStatus = "NOT_FOUND"
	StatusFailed   LookupStatus = "FAILED"
)

// String returns the status as written in reports.
func (s LookupStatus) String() string { return string(s) }
