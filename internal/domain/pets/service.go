package pets

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bokumono-go/pkg/logger"
	"github.com/google/uuid"
)

// ScheduleDeleter is the slice of the schedules service the pet-deletion
// cascade needs. The cascade lives here, not in storage.
type ScheduleDeleter interface {
	DeleteByPet(ctx context.Context, userID, petID string) (int, error)
}

type Service struct {
	repo      Repository
	schedules ScheduleDeleter
	cache     Cache
	cacheTTL  time.Duration
	now       func() time.Time
	log       logger.Logger
}

func NewService(repo Repository, schedules ScheduleDeleter, log logger.Logger) *Service {
	return &Service{
		repo:      repo,
		schedules: schedules,
		cache:     noopCache{},
		now:       time.Now,
		log:       log,
	}
}

// SetCache enables list caching; entries are dropped on every mutation.
func (s *Service) SetCache(cache Cache, ttl time.Duration) {
	if cache == nil || ttl <= 0 {
		return
	}
	s.cache = cache
	s.cacheTTL = ttl
}

func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]Pet, error) {
	all, ok := s.cache.GetByUserID(userID)
	if !ok {
		loaded, err := s.repo.ListByUser(ctx, userID, ListFilter{})
		if err != nil {
			return nil, err
		}
		s.cache.SetByUserID(userID, loaded, s.cacheTTL)
		all = loaded
	}

	if filter.Status == "" {
		return all, nil
	}

	filtered := make([]Pet, 0, len(all))
	for _, pet := range all {
		if pet.Status == filter.Status {
			filtered = append(filtered, pet)
		}
	}
	return filtered, nil
}

func (s *Service) GetByID(ctx context.Context, userID, petID string) (*Pet, error) {
	return s.repo.GetByID(ctx, userID, petID)
}

func (s *Service) Create(ctx context.Context, input CreateInput) (*Pet, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.PerceivedMasterAge < 1 {
		return nil, fmt.Errorf("%w: perceived_master_age must be at least 1", ErrInvalidInput)
	}
	birthdate, err := normalizeBirthdate(input.Birthdate)
	if err != nil {
		return nil, err
	}

	pet := Pet{
		ID:                 uuid.NewString(),
		UserID:             input.UserID,
		Name:               name,
		Birthdate:          birthdate,
		Status:             StatusActive,
		Memo:               strings.TrimSpace(input.Memo),
		PhotoURL:           strings.TrimSpace(input.PhotoURL),
		PerceivedMasterAge: input.PerceivedMasterAge,
	}

	if err := s.repo.Create(ctx, &pet); err != nil {
		return nil, err
	}

	s.cache.DeleteByUserID(input.UserID)
	return &pet, nil
}

func (s *Service) Update(ctx context.Context, input UpdateInput) (*Pet, error) {
	if input.Name == nil && input.Birthdate == nil && input.Status == nil &&
		input.Memo == nil && input.PhotoURL == nil && input.PerceivedMasterAge == nil {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	current, err := s.repo.GetByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		current.Name = name
	}
	if input.Birthdate != nil {
		birthdate, err := normalizeBirthdate(input.Birthdate.Value)
		if err != nil {
			return nil, err
		}
		current.Birthdate = birthdate
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, fmt.Errorf("%w: status must be active or archived", ErrInvalidInput)
		}
		current.Status = *input.Status
	}
	if input.Memo != nil {
		current.Memo = strings.TrimSpace(*input.Memo)
	}
	if input.PhotoURL != nil {
		current.PhotoURL = strings.TrimSpace(*input.PhotoURL)
	}
	if input.PerceivedMasterAge != nil {
		if *input.PerceivedMasterAge < 1 {
			return nil, fmt.Errorf("%w: perceived_master_age must be at least 1", ErrInvalidInput)
		}
		current.PerceivedMasterAge = *input.PerceivedMasterAge
	}

	current.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}

	s.cache.DeleteByUserID(input.UserID)
	return current, nil
}

// Delete removes the pet's schedules first, then the pet itself. There is no
// rollback: if the pet delete fails after the schedules went, the schedules
// stay gone.
func (s *Service) Delete(ctx context.Context, userID, petID string) error {
	if _, err := s.repo.GetByID(ctx, userID, petID); err != nil {
		return err
	}

	removed, err := s.schedules.DeleteByPet(ctx, userID, petID)
	if err != nil {
		return fmt.Errorf("cascade schedules: %w", err)
	}
	if removed > 0 {
		s.log.Info("pets: cascade deleted schedules", "pet_id", petID, "count", removed)
	}

	deleted, err := s.repo.Delete(ctx, userID, petID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPetNotFound
	}

	s.cache.DeleteByUserID(userID)
	return nil
}

// Age computes the pet's age in full years, or nil when the birthdate is
// absent or unreadable. Bad stored values are logged, never surfaced.
func (s *Service) Age(pet *Pet) *int {
	if pet == nil || pet.Birthdate == nil {
		return nil
	}
	age, ok := AgeFromString(*pet.Birthdate, s.now())
	if !ok {
		s.log.Warn("pets: unreadable birthdate", "pet_id", pet.ID, "birthdate", *pet.Birthdate)
		return nil
	}
	return &age
}

func normalizeBirthdate(value *string) (*string, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	if !ValidBirthdate(trimmed) {
		return nil, fmt.Errorf("%w: birthdate must be YYYY-MM-DD", ErrInvalidInput)
	}
	return &trimmed, nil
}
