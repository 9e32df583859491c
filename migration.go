package wixport

import (
	"context"
	"time"
)

// Migration record statuses. A record moves through pending, converted,
// draft and published; failed and skipped are terminal for a single run
// but retried on the next one.
const (
	MigrationPending   = "pending"
	MigrationConverted = "converted"
	MigrationDraft     = "draft"
	MigrationPublished = "published"
	MigrationFailed    = "failed"
	MigrationSkipped   = "skipped"
)

// MigrationRecord tracks the migration state of a single post. The slug is
// unique: rerunning a migration updates the existing record rather than
// creating a duplicate.
type MigrationRecord struct {
	ID              string    `json:"id"`
	Slug            string    `json:"slug"`
	Title           string    `json:"title"`
	Permalink       string    `json:"permalink"`
	ContentHash     string    `json:"contentHash"`
	DraftID         string    `json:"draftId"`
	PostID          string    `json:"postId"`
	PostURL         string    `json:"postUrl"`
	MemberID        string    `json:"memberId"`
	Status          string    `json:"status"`
	ErrorMessage    string    `json:"errorMessage"`
	WordCount       int       `json:"wordCount"`
	ReadTimeSeconds int       `json:"readTimeSeconds"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *MigrationRecord) Validate() error {
	if r.Slug == "" {
		return Errorf(EINVALID, "migration record slug required")
	}
	if r.Status == "" {
		return Errorf(EINVALID, "migration record status required")
	}
	return nil
}

// MigrationRecordService represents a service for managing migration
// records.
type MigrationRecordService interface {
	// CreateRecord creates a new migration record.
	CreateRecord(ctx context.Context, record *MigrationRecord) error

	// FindRecordByID retrieves a record by ID.
	// Returns ENOTFOUND if record does not exist.
	FindRecordByID(ctx context.Context, id string) (*MigrationRecord, error)

	// FindRecordBySlug retrieves a record by post slug.
	// Returns ENOTFOUND if record does not exist.
	FindRecordBySlug(ctx context.Context, slug string) (*MigrationRecord, error)

	// FindRecords retrieves records matching the filter.
	FindRecords(ctx context.Context, filter MigrationRecordFilter) ([]*MigrationRecord, error)

	// UpdateRecord updates an existing record.
	// Returns ENOTFOUND if record does not exist.
	UpdateRecord(ctx context.Context, id string, upd MigrationRecordUpdate) (*MigrationRecord, error)

	// DeleteRecord permanently removes a record.
	// Returns ENOTFOUND if record does not exist.
	DeleteRecord(ctx context.Context, id string) error
}

// MigrationRecordFilter represents a filter for FindRecords.
type MigrationRecordFilter struct {
	Slug   *string `json:"slug"`
	Status *string `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// MigrationRecordUpdate represents fields that can be updated on a record.
type MigrationRecordUpdate struct {
	ContentHash     *string `json:"contentHash"`
	DraftID         *string `json:"draftId"`
	PostID          *string `json:"postId"`
	PostURL         *string `json:"postUrl"`
	MemberID        *string `json:"memberId"`
	Status          *string `json:"status"`
	ErrorMessage    *string `json:"errorMessage"`
	WordCount       *int    `json:"wordCount"`
	ReadTimeSeconds *int    `json:"readTimeSeconds"`
}
