package inmemory

import (
	"sync"
	"time"

	petsdomain "bokumono-go/internal/domain/pets"
)

// InMemoryPetsCache is a TTL cache of each owner's full pet list. The pets
// service invalidates the owner's entry after every mutation.
type InMemoryPetsCache struct {
	mu    sync.RWMutex
	items map[string]petsItem
}

type petsItem struct {
	value     []petsdomain.Pet
	expiresAt time.Time
}

func NewInMemoryPetsCache() *InMemoryPetsCache {
	return &InMemoryPetsCache{
		items: make(map[string]petsItem),
	}
}

func (c *InMemoryPetsCache) GetByUserID(userID string) ([]petsdomain.Pet, bool) {
	now := time.Now()

	c.mu.RLock()
	item, ok := c.items[userID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[userID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, userID)
		}
		c.mu.Unlock()
		return nil, false
	}

	value := make([]petsdomain.Pet, len(item.value))
	copy(value, item.value)
	return value, true
}

func (c *InMemoryPetsCache) SetByUserID(userID string, pets []petsdomain.Pet, ttl time.Duration) {
	if ttl <= 0 {
		c.DeleteByUserID(userID)
		return
	}

	value := make([]petsdomain.Pet, len(pets))
	copy(value, pets)

	c.mu.Lock()
	c.items[userID] = petsItem{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *InMemoryPetsCache) DeleteByUserID(userID string) {
	c.mu.Lock()
	delete(c.items, userID)
	c.mu.Unlock()
}
