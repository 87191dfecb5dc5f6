package profile

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const birthdateLayout = "2006-01-02"

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, userID string) (*MasterProfile, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return s.repo.GetByUserID(ctx, userID)
}

// Save upserts the full editable profile: created lazily on first save,
// overwritten afterwards.
func (s *Service) Save(ctx context.Context, input SaveInput) (*MasterProfile, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	birthdate := strings.TrimSpace(input.Birthdate)
	if birthdate != "" {
		if _, err := time.Parse(birthdateLayout, birthdate); err != nil {
			return nil, fmt.Errorf("%w: birthdate must be YYYY-MM-DD", ErrInvalidInput)
		}
	}

	p := MasterProfile{
		UserID:    input.UserID,
		Name:      name,
		Bio:       optional(input.Bio),
		AvatarURL: optional(input.AvatarURL),
		Birthdate: optional(birthdate),
	}

	if err := s.repo.Upsert(ctx, &p); err != nil {
		return nil, err
	}

	return s.repo.GetByUserID(ctx, p.UserID)
}

// UpsertProfile is the auth middleware hook: it makes sure a profile row
// exists for every authenticated user without clobbering edited fields.
func (s *Service) UpsertProfile(ctx context.Context, userID, email, avatarURL string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	p := MasterProfile{
		UserID:    userID,
		Email:     optional(email),
		AvatarURL: optional(avatarURL),
	}
	return s.repo.EnsureExists(ctx, &p)
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
