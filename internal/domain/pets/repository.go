package pets

import "context"

type Repository interface {
	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Pet, error)
	GetByID(ctx context.Context, userID, petID string) (*Pet, error)
	Create(ctx context.Context, pet *Pet) error
	Update(ctx context.Context, pet *Pet) error
	Delete(ctx context.Context, userID, petID string) (bool, error)
}
