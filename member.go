package wixport

import (
	"context"
	"time"
)

// Member is a site member. Blog posts are authored by members, so every
// migrated post needs one.
type Member struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

// MemberService represents the remote members API.
type MemberService interface {
	// FindMemberByEmail retrieves a member by login email.
	// Returns ENOTFOUND if no member has that email.
	FindMemberByEmail(ctx context.Context, email string) (*Member, error)

	// CreateMember creates a member with the given login email.
	// Returns ECONFLICT if a member with that email already exists.
	CreateMember(ctx context.Context, email, nickname string) (*Member, error)
}

// MemberMapping is a persisted WordPress-author-email to Wix-member-ID
// association, so reruns do not query the members API again.
type MemberMapping struct {
	Email     string    `json:"email"`
	MemberID  string    `json:"memberId"`
	Nickname  string    `json:"nickname"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the mapping contains invalid fields.
func (m *MemberMapping) Validate() error {
	if m.Email == "" {
		return Errorf(EINVALID, "member mapping email required")
	}
	if m.MemberID == "" {
		return Errorf(EINVALID, "member mapping member ID required")
	}
	return nil
}

// MemberMapService stores member mappings.
type MemberMapService interface {
	// UpsertMapping creates or replaces the mapping for its email.
	UpsertMapping(ctx context.Context, mapping *MemberMapping) error

	// FindMappingByEmail retrieves a mapping by email.
	// Returns ENOTFOUND if no mapping exists.
	FindMappingByEmail(ctx context.Context, email string) (*MemberMapping, error)

	// FindMappings retrieves all stored mappings.
	FindMappings(ctx context.Context) ([]*MemberMapping, error)
}
