package caisse

import (
	"context"
	"fmt"
	"sort"
	"time"
)

type Service struct {
	repo     Repository
	cache    TrendsCache
	cacheTTL time.Duration
	nowFn    func() time.Time
}

func NewService(repo Repository, cache TrendsCache, cacheTTL time.Duration) *Service {
	if cache == nil {
		cache = noopTrendsCache{}
	}
	return &Service{
		repo:     repo,
		cache:    cache,
		cacheTTL: cacheTTL,
		nowFn:    func() time.Time { return time.Now().UTC() },
	}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(nowFn func() time.Time) *Service {
	s.nowFn = nowFn
	return s
}

func (s *Service) CreateCaisse(ctx context.Context, soldeActuel float64) (*CaisseSociale, error) {
	caisse := CaisseSociale{SoldeActuel: soldeActuel}
	if err := s.repo.CreateCaisse(ctx, &caisse); err != nil {
		return nil, err
	}
	return &caisse, nil
}

// List recomputes and persists the balance of every caisse, then returns
// them annotated with their ledger totals.
func (s *Service) List(ctx context.Context) ([]CaisseWithTotals, error) {
	var result []CaisseWithTotals
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		caisses, err := tx.ListCaisses(ctx)
		if err != nil {
			return err
		}

		result = make([]CaisseWithTotals, 0, len(caisses))
		for i := range caisses {
			totals, err := s.recomputeSolde(ctx, tx, &caisses[i])
			if err != nil {
				return err
			}
			result = append(result, *totals)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*CaisseSociale, error) {
	return s.repo.GetCaisseByID(ctx, id)
}

func (s *Service) UpdateCaisse(ctx context.Context, id uint, soldeActuel float64) (*CaisseSociale, error) {
	caisse, err := s.repo.GetCaisseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	caisse.SoldeActuel = soldeActuel
	if err := s.repo.UpdateCaisse(ctx, caisse); err != nil {
		return nil, err
	}
	return caisse, nil
}

func (s *Service) DeleteCaisse(ctx context.Context, id uint) error {
	deleted, err := s.repo.DeleteCaisse(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCaisseNotFound
	}
	return nil
}

// Total sums the stored balance of every caisse.
func (s *Service) Total(ctx context.Context) (float64, error) {
	caisses, err := s.repo.ListCaisses(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, caisse := range caisses {
		total += caisse.SoldeActuel
	}
	return total, nil
}

// Trends buckets ledger activity per month. Cotisations and mission
// payments are folded, in full, into the current month's inflow bucket;
// that is how the fund has always reported them.
func (s *Service) Trends(ctx context.Context) ([]TrendPoint, error) {
	if points, ok := s.cache.Get(); ok {
		return points, nil
	}

	entrees, err := s.repo.ListEntrees(ctx)
	if err != nil {
		return nil, err
	}
	sorties, err := s.repo.ListSorties(ctx)
	if err != nil {
		return nil, err
	}
	totalCotisations, err := s.repo.SumCotisations(ctx)
	if err != nil {
		return nil, err
	}
	totalPaiements, err := s.repo.SumPaiementsMissions(ctx)
	if err != nil {
		return nil, err
	}

	entreesParMois := make(map[string]float64)
	sortiesParMois := make(map[string]float64)
	for _, entree := range entrees {
		entreesParMois[entree.Date.Format("2006-01")] += entree.Montant
	}
	for _, sortie := range sorties {
		sortiesParMois[sortie.Date.Format("2006-01")] += sortie.Montant
	}

	moisCourant := s.nowFn().Format("2006-01")
	entreesParMois[moisCourant] += totalCotisations + totalPaiements

	keys := make(map[string]struct{}, len(entreesParMois)+len(sortiesParMois))
	for mois := range entreesParMois {
		keys[mois] = struct{}{}
	}
	for mois := range sortiesParMois {
		keys[mois] = struct{}{}
	}

	points := make([]TrendPoint, 0, len(keys))
	for mois := range keys {
		points = append(points, TrendPoint{
			Mois:    mois,
			Entrees: entreesParMois[mois],
			Sorties: sortiesParMois[mois],
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Mois < points[j].Mois })

	s.cache.Set(points, s.cacheTTL)
	return points, nil
}

func (s *Service) ListEntrees(ctx context.Context) ([]SoldeEntree, error) {
	return s.repo.ListEntrees(ctx)
}

func (s *Service) GetEntree(ctx context.Context, id uint) (*SoldeEntree, error) {
	return s.repo.GetEntreeByID(ctx, id)
}

func (s *Service) AddEntree(ctx context.Context, input EntreeInput) (*SoldeEntree, error) {
	if err := validateMouvement(input.Motif, input.Montant, input.Date, input.CaisseID); err != nil {
		return nil, err
	}

	entree := SoldeEntree{
		Motif:    input.Motif,
		Montant:  input.Montant,
		Date:     input.Date,
		CaisseID: input.CaisseID,
	}
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		caisse, err := tx.GetCaisseByID(ctx, input.CaisseID)
		if err != nil {
			return err
		}
		if err := tx.CreateEntree(ctx, &entree); err != nil {
			return err
		}
		_, err = s.recomputeSolde(ctx, tx, caisse)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return &entree, nil
}

func (s *Service) UpdateEntree(ctx context.Context, input UpdateEntreeInput) (*SoldeEntree, error) {
	if err := validateMouvement(input.Motif, input.Montant, input.Date, input.CaisseID); err != nil {
		return nil, err
	}

	var updated *SoldeEntree
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		entree, err := tx.GetEntreeByID(ctx, input.ID)
		if err != nil {
			return err
		}
		previousCaisseID := entree.CaisseID

		entree.Motif = input.Motif
		entree.Montant = input.Montant
		entree.Date = input.Date
		entree.CaisseID = input.CaisseID

		if err := tx.UpdateEntree(ctx, entree); err != nil {
			return err
		}

		if err := s.recomputeCaisses(ctx, tx, previousCaisseID, input.CaisseID); err != nil {
			return err
		}
		updated = entree
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return updated, nil
}

func (s *Service) DeleteEntree(ctx context.Context, id uint) error {
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		entree, err := tx.GetEntreeByID(ctx, id)
		if err != nil {
			return err
		}
		deleted, err := tx.DeleteEntree(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrEntreeNotFound
		}
		return s.recomputeCaisses(ctx, tx, entree.CaisseID)
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate()
	return nil
}

// TotalEntrees folds fund-wide cotisations and mission payments into the
// ledger inflow total, mirroring the balance formula.
func (s *Service) TotalEntrees(ctx context.Context) (float64, error) {
	entrees, err := s.repo.SumEntrees(ctx)
	if err != nil {
		return 0, err
	}
	cotisations, err := s.repo.SumCotisations(ctx)
	if err != nil {
		return 0, err
	}
	paiements, err := s.repo.SumPaiementsMissions(ctx)
	if err != nil {
		return 0, err
	}
	return entrees + cotisations + paiements, nil
}

func (s *Service) ListSorties(ctx context.Context) ([]SoldeSortie, error) {
	return s.repo.ListSorties(ctx)
}

func (s *Service) GetSortie(ctx context.Context, id uint) (*SoldeSortie, error) {
	return s.repo.GetSortieByID(ctx, id)
}

// CreateSortie refuses any outflow the caisse cannot cover, then records
// it and recomputes the balance in the same transaction.
func (s *Service) CreateSortie(ctx context.Context, input SortieInput) (*SoldeSortie, error) {
	if err := validateMouvement(input.Motif, input.Montant, input.Date, input.CaisseID); err != nil {
		return nil, err
	}

	sortie := SoldeSortie{
		Motif:    input.Motif,
		Montant:  input.Montant,
		Date:     input.Date,
		CaisseID: input.CaisseID,
	}
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		caisse, err := tx.GetCaisseByID(ctx, input.CaisseID)
		if err != nil {
			return err
		}
		if caisse.SoldeActuel < input.Montant {
			return ErrSoldeInsuffisant
		}
		if err := tx.CreateSortie(ctx, &sortie); err != nil {
			return err
		}
		totals, err := s.recomputeSolde(ctx, tx, caisse)
		if err != nil {
			return err
		}
		if totals.SoldeActuel < 0 {
			return ErrSoldeInsuffisant
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return &sortie, nil
}

// UpdateSortie reverses the previous outflow and applies the new one by
// recomputing every affected caisse; the whole edit rolls back when it
// would leave a balance negative.
func (s *Service) UpdateSortie(ctx context.Context, input UpdateSortieInput) (*SoldeSortie, error) {
	if err := validateMouvement(input.Motif, input.Montant, input.Date, input.CaisseID); err != nil {
		return nil, err
	}

	var updated *SoldeSortie
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		sortie, err := tx.GetSortieByID(ctx, input.ID)
		if err != nil {
			return err
		}
		previousCaisseID := sortie.CaisseID

		sortie.Motif = input.Motif
		sortie.Montant = input.Montant
		sortie.Date = input.Date
		sortie.CaisseID = input.CaisseID

		if err := tx.UpdateSortie(ctx, sortie); err != nil {
			return err
		}
		if err := s.recomputeCaisses(ctx, tx, previousCaisseID, input.CaisseID); err != nil {
			return err
		}

		caisse, err := tx.GetCaisseByID(ctx, input.CaisseID)
		if err != nil {
			return err
		}
		if caisse.SoldeActuel < 0 {
			return ErrSoldeInsuffisant
		}
		updated = sortie
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate()
	return updated, nil
}

// DeleteSortie removes the outflow and gives its amount back to the
// caisse through the recomputation.
func (s *Service) DeleteSortie(ctx context.Context, id uint) error {
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		sortie, err := tx.GetSortieByID(ctx, id)
		if err != nil {
			return err
		}
		deleted, err := tx.DeleteSortie(ctx, id)
		if err != nil {
			return err
		}
		if !deleted {
			return ErrSortieNotFound
		}
		return s.recomputeCaisses(ctx, tx, sortie.CaisseID)
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate()
	return nil
}

func (s *Service) TotalSorties(ctx context.Context) (float64, error) {
	return s.repo.SumSorties(ctx)
}

// recomputeSolde is the single authoritative balance rule:
// entrees of the caisse, plus fund-wide cotisations and mission payments,
// minus sorties of the caisse. The result is persisted.
func (s *Service) recomputeSolde(ctx context.Context, tx Repository, caisse *CaisseSociale) (*CaisseWithTotals, error) {
	entrees, err := tx.SumEntreesByCaisse(ctx, caisse.ID)
	if err != nil {
		return nil, err
	}
	sorties, err := tx.SumSortiesByCaisse(ctx, caisse.ID)
	if err != nil {
		return nil, err
	}
	cotisations, err := tx.SumCotisations(ctx)
	if err != nil {
		return nil, err
	}
	paiements, err := tx.SumPaiementsMissions(ctx)
	if err != nil {
		return nil, err
	}

	caisse.SoldeActuel = entrees + cotisations + paiements - sorties
	if err := tx.UpdateCaisse(ctx, caisse); err != nil {
		return nil, err
	}

	return &CaisseWithTotals{
		CaisseSociale: *caisse,
		TotalEntrees:  entrees,
		TotalSorties:  sorties,
	}, nil
}

func (s *Service) recomputeCaisses(ctx context.Context, tx Repository, caisseIDs ...uint) error {
	seen := make(map[uint]struct{}, len(caisseIDs))
	for _, id := range caisseIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		caisse, err := tx.GetCaisseByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := s.recomputeSolde(ctx, tx, caisse); err != nil {
			return err
		}
	}
	return nil
}

func validateMouvement(motif string, montant float64, date time.Time, caisseID uint) error {
	if motif == "" {
		return fmt.Errorf("motif est requis")
	}
	if montant <= 0 {
		return fmt.Errorf("montant invalide")
	}
	if date.IsZero() {
		return fmt.Errorf("date est requise")
	}
	if caisseID == 0 {
		return fmt.Errorf("caisse_id est requis")
	}
	return nil
}
