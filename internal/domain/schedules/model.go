package schedules

import "time"

// Schedule is a time-boxed appointment for one pet (vet visit, grooming and
// the like). StartsAt/EndsAt form a half-open interval [StartsAt, EndsAt).
type Schedule struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	UserID    string    `gorm:"type:uuid;index;not null"`
	PetID     string    `gorm:"type:uuid;index;not null"`
	Title     string    `gorm:"not null"`
	Details   string    `gorm:"type:text"`
	StartsAt  time.Time `gorm:"not null;index"`
	EndsAt    time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// ListFilter narrows owner-wide schedule listings (calendar range queries).
type ListFilter struct {
	PetID string
	From  *time.Time
	To    *time.Time
}

type CreateInput struct {
	UserID   string
	PetID    string
	Title    string
	Details  string
	StartsAt time.Time
	EndsAt   time.Time
}

// UpdateInput is a patch: nil means keep the current value.
type UpdateInput struct {
	ID       string
	UserID   string
	PetID    *string
	Title    *string
	Details  *string
	StartsAt *time.Time
	EndsAt   *time.Time
}
