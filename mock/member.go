package mock

import (
	"context"

	"github.com/fwojciec/wixport"
)

var _ wixport.MemberService = (*MemberService)(nil)

// MemberService is a mock implementation of wixport.MemberService.
type MemberService struct {
	FindMemberByEmailFn func(ctx context.Context, email string) (*wixport.Member, error)
	CreateMemberFn      func(ctx context.Context, email, nickname string) (*wixport.Member, error)
}

func (s *MemberService) FindMemberByEmail(ctx context.Context, email string) (*wixport.Member, error) {
	return s.FindMemberByEmailFn(ctx, email)
}

func (s *MemberService) CreateMember(ctx context.Context, email, nickname string) (*wixport.Member, error) {
	return s.CreateMemberFn(ctx, email, nickname)
}

var _ wixport.MemberMapService = (*MemberMapService)(nil)

// MemberMapService is a mock implementation of wixport.MemberMapService.
type MemberMapService struct {
	UpsertMappingFn      func(ctx context.Context, mapping *wixport.MemberMapping) error
	FindMappingByEmailFn func(ctx context.Context, email string) (*wixport.MemberMapping, error)
	FindMappingsFn       func(ctx context.Context) ([]*wixport.MemberMapping, error)
}

func (s *MemberMapService) UpsertMapping(ctx context.Context, mapping *wixport.MemberMapping) error {
	return s.UpsertMappingFn(ctx, mapping)
}

func (s *MemberMapService) FindMappingByEmail(ctx context.Context, email string) (*wixport.MemberMapping, error) {
	return s.FindMappingByEmailFn(ctx, email)
}

func (s *MemberMapService) FindMappings(ctx context.Context) ([]*wixport.MemberMapping, error) {
	return s.FindMappingsFn(ctx)
}
