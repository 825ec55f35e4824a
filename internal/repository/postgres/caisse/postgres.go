package caisse

import (
	"context"
	"errors"

	caissedomain "fonds-social-go/internal/domain/caisse"
	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(caissedomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) ListCaisses(ctx context.Context) ([]caissedomain.CaisseSociale, error) {
	var items []caissedomain.CaisseSociale
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetCaisseByID(ctx context.Context, id uint) (*caissedomain.CaisseSociale, error) {
	var caisse caissedomain.CaisseSociale
	if err := r.db.WithContext(ctx).First(&caisse, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, caissedomain.ErrCaisseNotFound
		}
		return nil, err
	}
	return &caisse, nil
}

func (r *PostgresRepository) CreateCaisse(ctx context.Context, caisse *caissedomain.CaisseSociale) error {
	return r.db.WithContext(ctx).Create(caisse).Error
}

func (r *PostgresRepository) UpdateCaisse(ctx context.Context, caisse *caissedomain.CaisseSociale) error {
	return r.db.WithContext(ctx).
		Model(&caissedomain.CaisseSociale{}).
		Where("id = ?", caisse.ID).
		Update("solde_actuel", caisse.SoldeActuel).Error
}

func (r *PostgresRepository) DeleteCaisse(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&caissedomain.CaisseSociale{}, id)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListEntrees(ctx context.Context) ([]caissedomain.SoldeEntree, error) {
	var items []caissedomain.SoldeEntree
	if err := r.db.WithContext(ctx).Order("date desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetEntreeByID(ctx context.Context, id uint) (*caissedomain.SoldeEntree, error) {
	var entree caissedomain.SoldeEntree
	if err := r.db.WithContext(ctx).First(&entree, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, caissedomain.ErrEntreeNotFound
		}
		return nil, err
	}
	return &entree, nil
}

func (r *PostgresRepository) CreateEntree(ctx context.Context, entree *caissedomain.SoldeEntree) error {
	return r.db.WithContext(ctx).Create(entree).Error
}

func (r *PostgresRepository) UpdateEntree(ctx context.Context, entree *caissedomain.SoldeEntree) error {
	return r.db.WithContext(ctx).
		Model(&caissedomain.SoldeEntree{}).
		Where("id = ?", entree.ID).
		Updates(map[string]interface{}{
			"motif":     entree.Motif,
			"montant":   entree.Montant,
			"date":      entree.Date,
			"caisse_id": entree.CaisseID,
		}).Error
}

func (r *PostgresRepository) DeleteEntree(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&caissedomain.SoldeEntree{}, id)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) SumEntrees(ctx context.Context) (float64, error) {
	return r.sum(ctx, &caissedomain.SoldeEntree{})
}

func (r *PostgresRepository) SumEntreesByCaisse(ctx context.Context, caisseID uint) (float64, error) {
	return r.sumByCaisse(ctx, &caissedomain.SoldeEntree{}, caisseID)
}

func (r *PostgresRepository) ListSorties(ctx context.Context) ([]caissedomain.SoldeSortie, error) {
	var items []caissedomain.SoldeSortie
	if err := r.db.WithContext(ctx).Order("date desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetSortieByID(ctx context.Context, id uint) (*caissedomain.SoldeSortie, error) {
	var sortie caissedomain.SoldeSortie
	if err := r.db.WithContext(ctx).First(&sortie, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, caissedomain.ErrSortieNotFound
		}
		return nil, err
	}
	return &sortie, nil
}

func (r *PostgresRepository) CreateSortie(ctx context.Context, sortie *caissedomain.SoldeSortie) error {
	return r.db.WithContext(ctx).Create(sortie).Error
}

func (r *PostgresRepository) UpdateSortie(ctx context.Context, sortie *caissedomain.SoldeSortie) error {
	return r.db.WithContext(ctx).
		Model(&caissedomain.SoldeSortie{}).
		Where("id = ?", sortie.ID).
		Updates(map[string]interface{}{
			"motif":     sortie.Motif,
			"montant":   sortie.Montant,
			"date":      sortie.Date,
			"caisse_id": sortie.CaisseID,
		}).Error
}

func (r *PostgresRepository) DeleteSortie(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&caissedomain.SoldeSortie{}, id)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) SumSorties(ctx context.Context) (float64, error) {
	return r.sum(ctx, &caissedomain.SoldeSortie{})
}

func (r *PostgresRepository) SumSortiesByCaisse(ctx context.Context, caisseID uint) (float64, error) {
	return r.sumByCaisse(ctx, &caissedomain.SoldeSortie{}, caisseID)
}

func (r *PostgresRepository) SumCotisations(ctx context.Context) (float64, error) {
	var sum float64
	if err := r.db.WithContext(ctx).
		Table("cotisations").
		Select("COALESCE(SUM(montant), 0)").
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return sum, nil
}

func (r *PostgresRepository) SumPaiementsMissions(ctx context.Context) (float64, error) {
	var sum float64
	if err := r.db.WithContext(ctx).
		Table("paiement_missions").
		Select("COALESCE(SUM(montant), 0)").
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return sum, nil
}

func (r *PostgresRepository) sum(ctx context.Context, model interface{}) (float64, error) {
	var sum float64
	if err := r.db.WithContext(ctx).
		Model(model).
		Select("COALESCE(SUM(montant), 0)").
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return sum, nil
}

func (r *PostgresRepository) sumByCaisse(ctx context.Context, model interface{}, caisseID uint) (float64, error) {
	var sum float64
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("caisse_id = ?", caisseID).
		Select("COALESCE(SUM(montant), 0)").
		Scan(&sum).Error; err != nil {
		return 0, err
	}
	return sum, nil
}
