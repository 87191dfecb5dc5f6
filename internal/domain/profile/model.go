package profile

import "time"

// MasterProfile is the owner's profile, keyed by the auth provider's user id.
// It is created lazily on first save (upsert semantics).
type MasterProfile struct {
	UserID    string    `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:text"`
	Email     *string   `gorm:"type:text"`
	Bio       *string   `gorm:"type:text"`
	AvatarURL *string   `gorm:"column:avatar_url;type:text"`
	Birthdate *string   `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// SaveInput carries the editable profile fields; empty optional fields are
// stored as NULL.
type SaveInput struct {
	UserID    string
	Name      string
	Bio       string
	AvatarURL string
	Birthdate string
}
