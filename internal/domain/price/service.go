package price

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Servicer defines the business logic for price operations.
type Servicer interface {
	List(ctx context.Context) ([]Price, error)
	Find(ctx context.Context, id string) (*Price, error)
	Create(ctx context.Context, fields Fields) (*Price, error)
	Update(ctx context.Context, id string, fields Fields) (*Price, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

// NewService creates a new price service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "price_service"),
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]Price, error) {
	prices, err := s.repo.List(ctx)
	if err != nil {
		s.log.Error("failed to list prices", "error", err)
		return nil, fmt.Errorf("list prices: %w", err)
	}
	return prices, nil
}

func (s *Service) Find(ctx context.Context, id string) (*Price, error) {
	p, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find price %s: %w", id, err)
	}
	return p, nil
}

// Create assigns the durable id and the authoritative timestamp. The
// client's optimistic copy is replaced by whatever this returns.
func (s *Service) Create(ctx context.Context, fields Fields) (*Price, error) {
	fields.Normalize()
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, fields.Apply(uuid.NewString(), s.now().UTC()))
	if err != nil {
		s.log.Error("failed to create price", "code", fields.Code, "error", err)
		return nil, fmt.Errorf("create price: %w", err)
	}

	s.log.Info("price created", "id", created.ID, "code", created.Code)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id string, fields Fields) (*Price, error) {
	fields.Normalize()
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, fields.Apply(id, s.now().UTC()))
	if err != nil {
		s.log.Error("failed to update price", "id", id, "error", err)
		return nil, fmt.Errorf("update price %s: %w", id, err)
	}

	s.log.Info("price updated", "id", id)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.Error("failed to delete price", "id", id, "error", err)
		return fmt.Errorf("delete price %s: %w", id, err)
	}

	s.log.Info("price deleted", "id", id)
	return nil
}
