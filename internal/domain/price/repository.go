package price

import "context"

// Repository is the persistence contract for prices. Implementations
// return ErrNotFound and ErrDuplicateCode where applicable.
type Repository interface {
	List(ctx context.Context) ([]Price, error)
	Find(ctx context.Context, id string) (*Price, error)
	Create(ctx context.Context, p Price) (*Price, error)
	Update(ctx context.Context, p Price) (*Price, error)
	Delete(ctx context.Context, id string) error
}
