package mock

import (
	"context"

	"github.com/fwojciec/wixport"
)

var _ wixport.MigrationRecordService = (*MigrationRecordService)(nil)

// MigrationRecordService is a mock implementation of wixport.MigrationRecordService.
type MigrationRecordService struct {
	CreateRecordFn     func(ctx context.Context, record *wixport.MigrationRecord) error
	FindRecordByIDFn   func(ctx context.Context, id string) (*wixport.MigrationRecord, error)
	FindRecordBySlugFn func(ctx context.Context, slug string) (*wixport.MigrationRecord, error)
	FindRecordsFn      func(ctx context.Context, filter wixport.MigrationRecordFilter) ([]*wixport.MigrationRecord, error)
	UpdateRecordFn     func(ctx context.Context, id string, upd wixport.MigrationRecordUpdate) (*wixport.MigrationRecord, error)
	DeleteRecordFn     func(ctx context.Context, id string) error
}

func (s *MigrationRecordService) CreateRecord(ctx context.Context, record *wixport.MigrationRecord) error {
	return s.CreateRecordFn(ctx, record)
}

func (s *MigrationRecordService) FindRecordByID(ctx context.Context, id string) (*wixport.MigrationRecord, error) {
	return s.FindRecordByIDFn(ctx, id)
}

func (s *MigrationRecordService) FindRecordBySlug(ctx context.Context, slug string) (*wixport.MigrationRecord, error) {
	return s.FindRecordBySlugFn(ctx, slug)
}

func (s *MigrationRecordService) FindRecords(ctx context.Context, filter wixport.MigrationRecordFilter) ([]*wixport.MigrationRecord, error) {
	return s.FindRecordsFn(ctx, filter)
}

func (s *MigrationRecordService) UpdateRecord(ctx context.Context, id string, upd wixport.MigrationRecordUpdate) (*wixport.MigrationRecord, error) {
	return s.UpdateRecordFn(ctx, id, upd)
}

func (s *MigrationRecordService) DeleteRecord(ctx context.Context, id string) error {
	return s.DeleteRecordFn(ctx, id)
}
