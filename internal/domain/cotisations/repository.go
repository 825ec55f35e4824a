package cotisations

import (
	"context"
	"time"
)

type Repository interface {
	List(ctx context.Context) ([]Cotisation, error)
	GetByID(ctx context.Context, id uint) (*Cotisation, error)
	Create(ctx context.Context, cotisation *Cotisation) error
	Update(ctx context.Context, cotisation *Cotisation) error
	Delete(ctx context.Context, id uint) (bool, error)
	ListByMembre(ctx context.Context, membreID uint) ([]Cotisation, error)
	ListByDateRange(ctx context.Context, from, to time.Time) ([]Cotisation, error)
	CountByMembreAndMois(ctx context.Context, membreID uint, mois string, excludeID uint) (int64, error)
}
