package missions

import (
	"context"
	"time"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	List(ctx context.Context) ([]Mission, error)
	GetByID(ctx context.Context, id uint) (*Mission, error)
	Create(ctx context.Context, mission *Mission) error
	Update(ctx context.Context, mission *Mission) error
	Delete(ctx context.Context, id uint) (bool, error)
	CountByMembreAndMois(ctx context.Context, membreID uint, mois time.Time, excludeID uint) (int64, error)

	ListPaiements(ctx context.Context) ([]PaiementMission, error)
	GetPaiementByID(ctx context.Context, id uint) (*PaiementMission, error)
	CreatePaiement(ctx context.Context, paiement *PaiementMission) error
	UpdatePaiement(ctx context.Context, paiement *PaiementMission) error
	DeletePaiement(ctx context.Context, id uint) (bool, error)
	CountPaiementsByMissionAndMembre(ctx context.Context, missionID, membreID uint) (int64, error)
	SumPaiementsByMission(ctx context.Context, missionID uint) (float64, error)
}
