package types

// Status is a type for the lifecycle status of a persisted record.
// This is independent of any domain status (e.g. whether an invoice is paid).
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)
