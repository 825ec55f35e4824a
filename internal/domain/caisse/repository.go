package caisse

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	ListCaisses(ctx context.Context) ([]CaisseSociale, error)
	GetCaisseByID(ctx context.Context, id uint) (*CaisseSociale, error)
	CreateCaisse(ctx context.Context, caisse *CaisseSociale) error
	UpdateCaisse(ctx context.Context, caisse *CaisseSociale) error
	DeleteCaisse(ctx context.Context, id uint) (bool, error)

	ListEntrees(ctx context.Context) ([]SoldeEntree, error)
	GetEntreeByID(ctx context.Context, id uint) (*SoldeEntree, error)
	CreateEntree(ctx context.Context, entree *SoldeEntree) error
	UpdateEntree(ctx context.Context, entree *SoldeEntree) error
	DeleteEntree(ctx context.Context, id uint) (bool, error)
	SumEntrees(ctx context.Context) (float64, error)
	SumEntreesByCaisse(ctx context.Context, caisseID uint) (float64, error)

	ListSorties(ctx context.Context) ([]SoldeSortie, error)
	GetSortieByID(ctx context.Context, id uint) (*SoldeSortie, error)
	CreateSortie(ctx context.Context, sortie *SoldeSortie) error
	UpdateSortie(ctx context.Context, sortie *SoldeSortie) error
	DeleteSortie(ctx context.Context, id uint) (bool, error)
	SumSorties(ctx context.Context) (float64, error)
	SumSortiesByCaisse(ctx context.Context, caisseID uint) (float64, error)

	// Fund-wide sums folded into the balance of every caisse, matching
	// the historical bookkeeping of the association.
	SumCotisations(ctx context.Context) (float64, error)
	SumPaiementsMissions(ctx context.Context) (float64, error)
}
