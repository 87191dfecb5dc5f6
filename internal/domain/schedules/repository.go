package schedules

import "context"

type Repository interface {
	ListByUser(ctx context.Context, userID string, filter ListFilter) ([]Schedule, error)
	ListByPet(ctx context.Context, userID, petID string) ([]Schedule, error)
	GetByID(ctx context.Context, userID, scheduleID string) (*Schedule, error)
	Create(ctx context.Context, schedule *Schedule) error
	Update(ctx context.Context, schedule *Schedule) error
	Delete(ctx context.Context, userID, scheduleID string) (bool, error)
}
