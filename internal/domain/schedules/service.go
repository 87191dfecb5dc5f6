package schedules

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]Schedule, error) {
	return s.repo.ListByUser(ctx, userID, filter)
}

func (s *Service) ListByPet(ctx context.Context, userID, petID string) ([]Schedule, error) {
	return s.repo.ListByPet(ctx, userID, petID)
}

func (s *Service) GetByID(ctx context.Context, userID, scheduleID string) (*Schedule, error) {
	return s.repo.GetByID(ctx, userID, scheduleID)
}

// Create validates the candidate, refuses it when it overlaps an existing
// schedule of the same pet, and only then persists. The conflict check reads
// whatever schedule set is visible at call time; two concurrent creates
// against the same free slot can both pass (no server-side lock here).
func (s *Service) Create(ctx context.Context, input CreateInput) (*Schedule, error) {
	petID := strings.TrimSpace(input.PetID)
	if petID == "" {
		return nil, fmt.Errorf("%w: pet id is required", ErrInvalidInput)
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	interval, err := NewInterval(input.StartsAt, input.EndsAt)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListByPet(ctx, input.UserID, petID)
	if err != nil {
		return nil, err
	}
	if HasConflict(petID, interval, existing, "") {
		return nil, ErrScheduleConflict
	}

	schedule := Schedule{
		ID:       uuid.NewString(),
		UserID:   input.UserID,
		PetID:    petID,
		Title:    title,
		Details:  strings.TrimSpace(input.Details),
		StartsAt: interval.Start,
		EndsAt:   interval.End,
	}

	if err := s.repo.Create(ctx, &schedule); err != nil {
		return nil, err
	}

	return &schedule, nil
}

// Update overlays the patch onto the stored record and re-runs the conflict
// check with the record's own id excluded, so an edit never conflicts with
// the value it is replacing.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*Schedule, error) {
	if input.PetID == nil && input.Title == nil && input.Details == nil && input.StartsAt == nil && input.EndsAt == nil {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	current, err := s.repo.GetByID(ctx, input.UserID, input.ID)
	if err != nil {
		return nil, err
	}

	if input.PetID != nil {
		petID := strings.TrimSpace(*input.PetID)
		if petID == "" {
			return nil, fmt.Errorf("%w: pet id is required", ErrInvalidInput)
		}
		current.PetID = petID
	}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
		}
		current.Title = title
	}
	if input.Details != nil {
		current.Details = strings.TrimSpace(*input.Details)
	}
	if input.StartsAt != nil {
		current.StartsAt = *input.StartsAt
	}
	if input.EndsAt != nil {
		current.EndsAt = *input.EndsAt
	}

	interval, err := NewInterval(current.StartsAt, current.EndsAt)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListByPet(ctx, input.UserID, current.PetID)
	if err != nil {
		return nil, err
	}
	if HasConflict(current.PetID, interval, existing, current.ID) {
		return nil, ErrScheduleConflict
	}

	current.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, current); err != nil {
		return nil, err
	}

	return current, nil
}

func (s *Service) Delete(ctx context.Context, userID, scheduleID string) error {
	deleted, err := s.repo.Delete(ctx, userID, scheduleID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrScheduleNotFound
	}
	return nil
}

// DeleteByPet removes every schedule of petID one record at a time, for the
// pet-deletion cascade. A failure partway through leaves the earlier deletes
// in place; the caller reports the failure as-is.
func (s *Service) DeleteByPet(ctx context.Context, userID, petID string) (int, error) {
	items, err := s.repo.ListByPet(ctx, userID, petID)
	if err != nil {
		return 0, err
	}

	for removed, item := range items {
		if _, err := s.repo.Delete(ctx, userID, item.ID); err != nil {
			return removed, err
		}
	}

	return len(items), nil
}

// FormDefaults returns prefill values for the schedule form: the next free
// quarter-hour slot for a new schedule, or the stored values when editing.
func (s *Service) FormDefaults(ctx context.Context, userID, scheduleID string) (FormDefaults, error) {
	if strings.TrimSpace(scheduleID) == "" {
		return NewFormDefaults(s.now()), nil
	}

	current, err := s.repo.GetByID(ctx, userID, scheduleID)
	if err != nil {
		return FormDefaults{}, err
	}

	return EditFormDefaults(*current), nil
}
