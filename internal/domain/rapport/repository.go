package rapport

import "context"

type Repository interface {
	ListCotisations(ctx context.Context) ([]LigneCotisation, error)
	ListPaiements(ctx context.Context) ([]LignePaiement, error)
	ListCaisses(ctx context.Context) ([]CaisseLedger, error)
}
