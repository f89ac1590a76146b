package listing

import (
	"context"
	"fmt"
	"log/slog"

	"EstateView/models"
	"EstateView/records"
)

// Repository is everything the rest of the service may ask of listings.
type Repository interface {
	GetAll(ctx context.Context) ([]models.Property, error)
	GetByID(ctx context.Context, id int64) (models.Property, bool, error)
	GetByFilters(ctx context.Context, spec models.FilterSpec) ([]models.Property, error)
	Search(ctx context.Context, text string) ([]models.Property, error)
	GetFeatured(ctx context.Context) ([]models.Property, error)
}

var _ Repository = (*Service)(nil)

// Service reads raw property records from a record store and normalizes them
// on every call. Nothing is cached between calls.
type Service struct {
	store  records.Store
	table  string
	logger *slog.Logger
}

func NewService(store records.Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, table: records.TableProperties, logger: logger}
}

func (s *Service) GetAll(ctx context.Context) ([]models.Property, error) {
	return s.fetch(ctx, records.Query{})
}

// GetByID reports found=false for a missing id; err is reserved for store
// failures.
func (s *Service) GetByID(ctx context.Context, id int64) (models.Property, bool, error) {
	props, err := s.fetch(ctx, records.Where(records.FieldID, id))
	if err != nil {
		return models.Property{}, false, err
	}
	for _, p := range props {
		if p.ID == id {
			return p, true, nil
		}
	}
	return models.Property{}, false, nil
}

func (s *Service) GetByFilters(ctx context.Context, spec models.FilterSpec) ([]models.Property, error) {
	props, err := s.fetch(ctx, records.Query{})
	if err != nil {
		return nil, err
	}
	return Filter(props, spec), nil
}

func (s *Service) Search(ctx context.Context, text string) ([]models.Property, error) {
	props, err := s.fetch(ctx, records.Query{})
	if err != nil {
		return nil, err
	}
	return Search(props, text), nil
}

func (s *Service) GetFeatured(ctx context.Context) ([]models.Property, error) {
	props, err := s.fetch(ctx, records.Query{})
	if err != nil {
		return nil, err
	}
	return Featured(props), nil
}

func (s *Service) fetch(ctx context.Context, q records.Query) ([]models.Property, error) {
	recs, err := s.store.Fetch(ctx, s.table, q)
	if err != nil {
		s.logger.Error("fetch properties failed", "table", s.table, "err", err)
		return nil, fmt.Errorf("fetch properties: %w", err)
	}
	return FromRecords(recs), nil
}
