package profile

import (
	"context"
	"errors"
	"time"

	profiledomain "bokumono-go/internal/domain/profile"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID string) (*profiledomain.MasterProfile, error) {
	var p profiledomain.MasterProfile
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profiledomain.ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, p *profiledomain.MasterProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"name":       p.Name,
				"bio":        p.Bio,
				"avatar_url": p.AvatarURL,
				"birthdate":  p.Birthdate,
				"updated_at": time.Now().UTC(),
			}),
		}).
		Create(p).Error
}

func (r *PostgresRepository) EnsureExists(ctx context.Context, p *profiledomain.MasterProfile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(p).Error
}
