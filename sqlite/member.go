package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/fwojciec/wixport"
)

// Compile-time interface verification.
var _ wixport.MemberMapService = (*MemberMapService)(nil)

// MemberMapService implements wixport.MemberMapService using SQLite.
type MemberMapService struct {
	db *DB
}

// NewMemberMapService creates a new MemberMapService.
func NewMemberMapService(db *DB) *MemberMapService {
	return &MemberMapService{db: db}
}

// UpsertMapping creates or replaces the mapping for its email. The
// original creation time survives a replace.
func (s *MemberMapService) UpsertMapping(ctx context.Context, mapping *wixport.MemberMapping) error {
	if err := mapping.Validate(); err != nil {
		return err
	}

	if mapping.CreatedAt.IsZero() {
		mapping.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO member_mappings (email, member_id, nickname, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET member_id = excluded.member_id, nickname = excluded.nickname
	`, mapping.Email, mapping.MemberID, mapping.Nickname, mapping.CreatedAt.Format(time.RFC3339))

	return err
}

// FindMappingByEmail retrieves a mapping by email.
func (s *MemberMapService) FindMappingByEmail(ctx context.Context, email string) (*wixport.MemberMapping, error) {
	var mapping wixport.MemberMapping
	var createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT email, member_id, nickname, created_at
		FROM member_mappings
		WHERE email = ?
	`, email).Scan(&mapping.Email, &mapping.MemberID, &mapping.Nickname, &createdAt)

	if err == sql.ErrNoRows {
		return nil, wixport.Errorf(wixport.ENOTFOUND, "member mapping not found")
	}
	if err != nil {
		return nil, err
	}

	if mapping.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}

	return &mapping, nil
}

// FindMappings retrieves all stored mappings ordered by email.
func (s *MemberMapService) FindMappings(ctx context.Context) ([]*wixport.MemberMapping, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT email, member_id, nickname, created_at
		FROM member_mappings
		ORDER BY email ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mappings []*wixport.MemberMapping
	for rows.Next() {
		var mapping wixport.MemberMapping
		var createdAt string

		if err := rows.Scan(&mapping.Email, &mapping.MemberID, &mapping.Nickname, &createdAt); err != nil {
			return nil, err
		}

		if mapping.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
			return nil, err
		}

		mappings = append(mappings, &mapping)
	}

	return mappings, rows.Err()
}
