package pets

import (
	"context"
	"errors"

	petsdomain "bokumono-go/internal/domain/pets"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, filter petsdomain.ListFilter) ([]petsdomain.Pet, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var items []petsdomain.Pet
	if err := query.Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, petID string) (*petsdomain.Pet, error) {
	var pet petsdomain.Pet
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, petID).
		First(&pet).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, petsdomain.ErrPetNotFound
		}
		return nil, err
	}
	return &pet, nil
}

func (r *PostgresRepository) Create(ctx context.Context, pet *petsdomain.Pet) error {
	return r.db.WithContext(ctx).Create(pet).Error
}

func (r *PostgresRepository) Update(ctx context.Context, pet *petsdomain.Pet) error {
	return r.db.WithContext(ctx).
		Model(&petsdomain.Pet{}).
		Where("id = ? AND user_id = ?", pet.ID, pet.UserID).
		Updates(map[string]interface{}{
			"name":                 pet.Name,
			"birthdate":            pet.Birthdate,
			"status":               pet.Status,
			"memo":                 pet.Memo,
			"photo_url":            pet.PhotoURL,
			"perceived_master_age": pet.PerceivedMasterAge,
			"updated_at":           pet.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, petID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&petsdomain.Pet{}, "user_id = ? AND id = ?", userID, petID)
	return result.RowsAffected > 0, result.Error
}
