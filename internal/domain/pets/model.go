package pets

import "time"

// Status is the pet lifecycle state. Archived pets stay readable but are
// hidden from the schedule form's pet picker.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusArchived
}

// Pet is one animal registered by an owner. Birthdate is kept as the
// YYYY-MM-DD string the SPA sends; PerceivedMasterAge is the age the pet
// "thinks" its owner is (always at least 1).
type Pet struct {
	ID                 string    `gorm:"type:uuid;primaryKey"`
	UserID             string    `gorm:"type:uuid;index;not null"`
	Name               string    `gorm:"not null"`
	Birthdate          *string   `gorm:"type:text"`
	Status             Status    `gorm:"type:text;not null;default:'active'"`
	Memo               string    `gorm:"type:text"`
	PhotoURL           string    `gorm:"column:photo_url;type:text"`
	PerceivedMasterAge int       `gorm:"column:perceived_master_age;not null;default:1"`
	CreatedAt          time.Time `gorm:"autoCreateTime"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime"`
}

// ListFilter selects pets by status; the zero value means all.
type ListFilter struct {
	Status Status
}

type CreateInput struct {
	UserID             string
	Name               string
	Birthdate          *string
	Memo               string
	PhotoURL           string
	PerceivedMasterAge int
}

// UpdateInput is a patch: nil means keep the current value. Birthdate
// distinguishes "not sent" (field nil) from "clear" (Set with nil Value).
type UpdateInput struct {
	ID                 string
	UserID             string
	Name               *string
	Birthdate          *BirthdatePatch
	Status             *Status
	Memo               *string
	PhotoURL           *string
	PerceivedMasterAge *int
}

type BirthdatePatch struct {
	Value *string
}
