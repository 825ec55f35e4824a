package membres

import (
	"context"
	"errors"

	membresdomain "fonds-social-go/internal/domain/membres"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]membresdomain.Membre, error) {
	var items []membresdomain.Membre
	if err := r.db.WithContext(ctx).Order("nom asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uint) (*membresdomain.Membre, error) {
	var membre membresdomain.Membre
	if err := r.db.WithContext(ctx).First(&membre, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, membresdomain.ErrMembreNotFound
		}
		return nil, err
	}
	return &membre, nil
}

func (r *PostgresRepository) Create(ctx context.Context, membre *membresdomain.Membre) error {
	return r.db.WithContext(ctx).Create(membre).Error
}

func (r *PostgresRepository) Update(ctx context.Context, membre *membresdomain.Membre) error {
	return r.db.WithContext(ctx).
		Model(&membresdomain.Membre{}).
		Where("id = ?", membre.ID).
		Updates(map[string]interface{}{
			"nom":   membre.Nom,
			"email": membre.Email,
			"poste": membre.Poste,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&membresdomain.Membre{}, id)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&membresdomain.Membre{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CountByEmail(ctx context.Context, email string, excludeID uint) (int64, error) {
	query := r.db.WithContext(ctx).Model(&membresdomain.Membre{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) ListSansCotisation(ctx context.Context) ([]membresdomain.Membre, error) {
	var items []membresdomain.Membre
	if err := r.db.WithContext(ctx).
		Joins("left join cotisations on cotisations.membre_id = membres.id").
		Where("cotisations.id IS NULL").
		Order("membres.nom asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
