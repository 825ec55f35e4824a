package missions

import (
	"context"
	"errors"
	"time"

	missionsdomain "fonds-social-go/internal/domain/missions"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(missionsdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) List(ctx context.Context) ([]missionsdomain.Mission, error) {
	var items []missionsdomain.Mission
	if err := r.db.WithContext(ctx).
		Preload("Membre").
		Order("mois desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id uint) (*missionsdomain.Mission, error) {
	var mission missionsdomain.Mission
	if err := r.db.WithContext(ctx).Preload("Membre").First(&mission, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, missionsdomain.ErrMissionNotFound
		}
		return nil, err
	}
	return &mission, nil
}

func (r *PostgresRepository) Create(ctx context.Context, mission *missionsdomain.Mission) error {
	return r.db.WithContext(ctx).Create(mission).Error
}

func (r *PostgresRepository) Update(ctx context.Context, mission *missionsdomain.Mission) error {
	return r.db.WithContext(ctx).
		Model(&missionsdomain.Mission{}).
		Where("id = ?", mission.ID).
		Updates(map[string]interface{}{
			"membre_id": mission.MembreID,
			"montant":   mission.Montant,
			"mois":      mission.Mois,
		}).Error
}

func (r *PostgresRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&missionsdomain.Mission{}, id)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountByMembreAndMois(ctx context.Context, membreID uint, mois time.Time, excludeID uint) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&missionsdomain.Mission{}).
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

func (r *PostgresRepository) ListPaiements(ctx context.Context) ([]missionsdomain.PaiementMission, error) {
	var items []missionsdomain.PaiementMission
	if err := r.db.WithContext(ctx).
		Preload("Mission").
		Preload("Membre").
		Order("date_paiement desc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetPaiementByID(ctx context.Context, id uint) (*missionsdomain.PaiementMission, error) {
	var paiement missionsdomain.PaiementMission
	if err := r.db.WithContext(ctx).
		Preload("Mission").
		Preload("Membre").
		First(&paiement, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, missionsdomain.ErrPaiementNotFound
		}
		return nil, err
	}
	return &paiement, nil
}

func (r *PostgresRepository) CreatePaiement(ctx context.Context, paiement *missionsdomain.PaiementMission) error {
	return r.db.WithContext(ctx).Create(paiement).Error
}

func (r *PostgresRepository) UpdatePaiement(ctx context.Context, paiement *missionsdomain.PaiementMission) error {
	return r.db.WithContext(ctx).
		Model(&missionsdomain.PaiementMission{}).
		Where("id = ?", paiement.ID).
		Updates(map[string]interface{}{
			"montant":       paiement.Montant,
			"date_paiement": paiement.DatePaiement,
		}).Error
}

func (r *PostgresRepository) DeletePaiement(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&missionsdomain.PaiementMission{}, id)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountPaiementsByMissionAndMembre(ctx context.Context, missionID, membreID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&missionsdomain.PaiementMission{}).
		Where("mission_id = ? AND membre_id = ?", missionID, membreID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) SumPaiementsByMission(ctx context.Context, missionID uint) (float64, error) {
	var sum float64
	if err := r.db.WithContext(ctx).
		Model(&missionsdomain.PaiementMission{}).
		Where("mission_id = ?", missionID).
		Select("COALESCE(SUM(montant), 0)").
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return sum, nil
}
