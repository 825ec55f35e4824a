package cotisations

import (
	"context"
	"errors"
	"time"

	cotisationsdomain "fonds-social-go/internal/domain/cotisations"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]cotisationsdomain.Cotisation, error) {
	var items []cotisationsdomain.Cotisation
	if err := r.db.WithContext(ctx).Order("date_paiement desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uint) (*cotisationsdomain.Cotisation, error) {
	var cotisation cotisationsdomain.Cotisation
	if err := r.db.WithContext(ctx).First(&cotisation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cotisationsdomain.ErrCotisationNotFound
		}
		return nil, err
	}
	return &cotisation, nil
}

func (r *PostgresRepository) Create(ctx context.Context, cotisation *cotisationsdomain.Cotisation) error {
	return r.db.WithContext(ctx).Create(cotisation).Error
}

func (r *PostgresRepository) Update(ctx context.Context, cotisation *cotisationsdomain.Cotisation) error {
	return r.db.WithContext(ctx).
		Model(&cotisationsdomain.Cotisation{}).
		Where("id = ?", cotisation.ID).
		Updates(map[string]interface{}{
			"membre_id":     cotisation.MembreID,
			"montant":       cotisation.Montant,
			"mois":          cotisation.Mois,
			"date_paiement": cotisation.DatePaiement,
			"status":        cotisation.Status,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&cotisationsdomain.Cotisation{}, id)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListByMembre(ctx context.Context, membreID uint) ([]cotisationsdomain.Cotisation, error) {
	var items []cotisationsdomain.Cotisation
	if err := r.db.WithContext(ctx).
		Where("membre_id = ?", membreID).
		Order("mois asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) ListByDateRange(ctx context.Context, from, to time.Time) ([]cotisationsdomain.Cotisation, error) {
	var items []cotisationsdomain.Cotisation
	if err := r.db.WithContext(ctx).
		Where("date_paiement BETWEEN ? AND ?", from, to).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) CountByMembreAndMois(ctx context.Context, membreID uint, mois string, excludeID uint) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&cotisationsdomain.Cotisation{}).
		Where("membre_id = ? AND mois = ?", membreID, mois)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
