package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/wixport"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ wixport.MigrationRecordService = (*MigrationRecordService)(nil)

// MigrationRecordService implements wixport.MigrationRecordService using SQLite.
type MigrationRecordService struct {
	db *DB
}

// NewMigrationRecordService creates a new MigrationRecordService.
func NewMigrationRecordService(db *DB) *MigrationRecordService {
	return &MigrationRecordService{db: db}
}

const recordColumns = "id, slug, title, permalink, content_hash, draft_id, post_id, post_url, member_id, status, error_message, word_count, read_time_seconds, created_at, updated_at"

// CreateRecord creates a new migration record.
func (s *MigrationRecordService) CreateRecord(ctx context.Context, record *wixport.MigrationRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	record.ID = uuid.New().String()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO migration_records (`+recordColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.Slug, record.Title, record.Permalink, record.ContentHash,
		record.DraftID, record.PostID, record.PostURL, record.MemberID, record.Status,
		record.ErrorMessage, record.WordCount, record.ReadTimeSeconds,
		record.CreatedAt.Format(time.RFC3339), record.UpdatedAt.Format(time.RFC3339))

	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint") {
		return wixport.Errorf(wixport.ECONFLICT, "a record for slug %q already exists", record.Slug)
	}
	return err
}

// FindRecordByID retrieves a record by ID.
func (s *MigrationRecordService) FindRecordByID(ctx context.Context, id string) (*wixport.MigrationRecord, error) {
	return s.findRecordBy(ctx, "id", id)
}

// FindRecordBySlug retrieves a record by post slug.
func (s *MigrationRecordService) FindRecordBySlug(ctx context.Context, slug string) (*wixport.MigrationRecord, error) {
	return s.findRecordBy(ctx, "slug", slug)
}

func (s *MigrationRecordService) findRecordBy(ctx context.Context, column, value string) (*wixport.MigrationRecord, error) {
	var record wixport.MigrationRecord
	var createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT `+recordColumns+`
		FROM migration_records
		WHERE `+column+` = ?
	`, value).Scan(&record.ID, &record.Slug, &record.Title, &record.Permalink, &record.ContentHash,
		&record.DraftID, &record.PostID, &record.PostURL, &record.MemberID, &record.Status,
		&record.ErrorMessage, &record.WordCount, &record.ReadTimeSeconds, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, wixport.Errorf(wixport.ENOTFOUND, "migration record not found")
	}
	if err != nil {
		return nil, err
	}

	if record.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if record.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &record, nil
}

// FindRecords retrieves records matching the filter, oldest first.
func (s *MigrationRecordService) FindRecords(ctx context.Context, filter wixport.MigrationRecordFilter) ([]*wixport.MigrationRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + recordColumns + " FROM migration_records WHERE 1=1")

	if filter.Slug != nil {
		query.WriteString(" AND slug = ?")
		args = append(args, *filter.Slug)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, *filter.Status)
	}

	query.WriteString(" ORDER BY created_at ASC, slug ASC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*wixport.MigrationRecord
	for rows.Next() {
		var record wixport.MigrationRecord
		var createdAt, updatedAt string

		if err := rows.Scan(&record.ID, &record.Slug, &record.Title, &record.Permalink, &record.ContentHash,
			&record.DraftID, &record.PostID, &record.PostURL, &record.MemberID, &record.Status,
			&record.ErrorMessage, &record.WordCount, &record.ReadTimeSeconds, &createdAt, &updatedAt); err != nil {
			return nil, err
		}

		if record.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}
		if record.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
			return nil, err
		}

		records = append(records, &record)
	}

	return records, rows.Err()
}

// UpdateRecord updates an existing record.
func (s *MigrationRecordService) UpdateRecord(ctx context.Context, id string, upd wixport.MigrationRecordUpdate) (*wixport.MigrationRecord, error) {
	record, err := s.FindRecordByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.ContentHash != nil {
		record.ContentHash = *upd.ContentHash
	}
	if upd.DraftID != nil {
		record.DraftID = *upd.DraftID
	}
	if upd.PostID != nil {
		record.PostID = *upd.PostID
	}
	if upd.PostURL != nil {
		record.PostURL = *upd.PostURL
	}
	if upd.MemberID != nil {
		record.MemberID = *upd.MemberID
	}
	if upd.Status != nil {
		record.Status = *upd.Status
	}
	if upd.ErrorMessage != nil {
		record.ErrorMessage = *upd.ErrorMessage
	}
	if upd.WordCount != nil {
		record.WordCount = *upd.WordCount
	}
	if upd.ReadTimeSeconds != nil {
		record.ReadTimeSeconds = *upd.ReadTimeSeconds
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	record.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE migration_records
		SET content_hash = ?, draft_id = ?, post_id = ?, post_url = ?, member_id = ?,
			status = ?, error_message = ?, word_count = ?, read_time_seconds = ?, updated_at = ?
		WHERE id = ?
	`, record.ContentHash, record.DraftID, record.PostID, record.PostURL, record.MemberID,
		record.Status, record.ErrorMessage, record.WordCount, record.ReadTimeSeconds,
		record.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return record, nil
}

// DeleteRecord permanently removes a record.
func (s *MigrationRecordService) DeleteRecord(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM migration_records WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return wixport.Errorf(wixport.ENOTFOUND, "migration record not found")
	}

	return nil
}
