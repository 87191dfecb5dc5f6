package schedules

import (
	"context"
	"errors"

	schedulesdomain "bokumono-go/internal/domain/schedules"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, filter schedulesdomain.ListFilter) ([]schedulesdomain.Schedule, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.PetID != "" {
		query = query.Where("pet_id = ?", filter.PetID)
	}
	// Range filters compare against the half-open interval: a schedule is in
	// range when it overlaps [from, to).
	if filter.From != nil {
		query = query.Where("ends_at > ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("starts_at < ?", *filter.To)
	}

	var items []schedulesdomain.Schedule
	if err := query.Order("starts_at asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) ListByPet(ctx context.Context, userID, petID string) ([]schedulesdomain.Schedule, error) {
	var items []schedulesdomain.Schedule
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND pet_id = ?", userID, petID).
		Order("starts_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, scheduleID string) (*schedulesdomain.Schedule, error) {
	var schedule schedulesdomain.Schedule
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, scheduleID).
		First(&schedule).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, schedulesdomain.ErrScheduleNotFound
		}
		return nil, err
	}
	return &schedule, nil
}

func (r *PostgresRepository) Create(ctx context.Context, schedule *schedulesdomain.Schedule) error {
	return r.db.WithContext(ctx).Create(schedule).Error
}

func (r *PostgresRepository) Update(ctx context.Context, schedule *schedulesdomain.Schedule) error {
	return r.db.WithContext(ctx).
		Model(&schedulesdomain.Schedule{}).
		Where("id = ? AND user_id = ?", schedule.ID, schedule.UserID).
		Updates(map[string]interface{}{
			"pet_id":     schedule.PetID,
			"title":      schedule.Title,
			"details":    schedule.Details,
			"starts_at":  schedule.StartsAt,
			"ends_at":    schedule.EndsAt,
			"updated_at": schedule.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, scheduleID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&schedulesdomain.Schedule{}, "user_id = ? AND id = ?", userID, scheduleID)
	return result.RowsAffected > 0, result.Error
}
