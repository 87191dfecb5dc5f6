package pets

import "time"

// Cache holds a user's pet list between mutations; every write path below
// invalidates the owner's entry.
type Cache interface {
	GetByUserID(userID string) ([]Pet, bool)
	SetByUserID(userID string, pets []Pet, ttl time.Duration)
	DeleteByUserID(userID string)
}

type noopCache struct{}

func (noopCache) GetByUserID(string) ([]Pet, bool) { return nil, false }

func (noopCache) SetByUserID(string, []Pet, time.Duration) {}

func (noopCache) DeleteByUserID(string) {}
