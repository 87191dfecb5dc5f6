package profile

import "context"

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*MasterProfile, error)
	Upsert(ctx context.Context, p *MasterProfile) error
	// EnsureExists inserts a bare row for userID if none exists, without
	// touching an existing profile's edited fields.
	EnsureExists(ctx context.Context, p *MasterProfile) error
}
