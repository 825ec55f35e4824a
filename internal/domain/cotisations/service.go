package cotisations

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

var moisRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// TrendsInvalidator drops cached fund-wide trend aggregates. Cotisation
// totals feed the trends buckets, so every write goes through it.
type TrendsInvalidator interface {
	Invalidate()
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate() {}

type Service struct {
	repo   Repository
	trends TrendsInvalidator
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, trends: noopInvalidator{}}
}

// WithTrendsInvalidator shares the trends cache used by the caisse
// service so cotisation writes drop it too.
func (s *Service) WithTrendsInvalidator(trends TrendsInvalidator) *Service {
	s.trends = trends
	return s
}

func (s *Service) List(ctx context.Context) ([]Cotisation, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Status = DeriveStatus(items[i].Montant)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*Cotisation, error) {
	cotisation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cotisation.Status = DeriveStatus(cotisation.Montant)
	return cotisation, nil
}

func (s *Service) Create(ctx context.Context, input CreateCotisationInput) (*Cotisation, error) {
	if err := validateInput(input.MembreID, input.Montant, input.Mois, input.DatePaiement); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByMembreAndMois(ctx, input.MembreID, input.Mois, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrMoisDejaRegle
	}

	cotisation := Cotisation{
		MembreID:     input.MembreID,
		Montant:      input.Montant,
		Mois:         input.Mois,
		DatePaiement: input.DatePaiement,
		Status:       DeriveStatus(input.Montant),
	}
	if err := s.repo.Create(ctx, &cotisation); err != nil {
		return nil, err
	}

	s.trends.Invalidate()
	return &cotisation, nil
}

func (s *Service) Update(ctx context.Context, input UpdateCotisationInput) (*Cotisation, error) {
	if err := validateInput(input.MembreID, input.Montant, input.Mois, input.DatePaiement); err != nil {
		return nil, err
	}

	cotisation, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountByMembreAndMois(ctx, input.MembreID, input.Mois, cotisation.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrMoisDejaRegle
	}

	cotisation.MembreID = input.MembreID
	cotisation.Montant = input.Montant
	cotisation.Mois = input.Mois
	cotisation.DatePaiement = input.DatePaiement
	cotisation.Status = DeriveStatus(input.Montant)

	if err := s.repo.Update(ctx, cotisation); err != nil {
		return nil, err
	}

	s.trends.Invalidate()
	return cotisation, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrCotisationNotFound
	}

	s.trends.Invalidate()
	return nil
}

func (s *Service) ListByMembre(ctx context.Context, membreID uint) ([]Cotisation, error) {
	items, err := s.repo.ListByMembre(ctx, membreID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrCotisationNotFound
	}
	for i := range items {
		items[i].Status = DeriveStatus(items[i].Montant)
	}
	return items, nil
}

// CountByYear returns a 12-element array with the number of cotisations
// paid in each month of the given year, bucketed on DatePaiement.
func (s *Service) CountByYear(ctx context.Context, year int) ([12]int64, error) {
	var counts [12]int64
	if year <= 0 {
		return counts, fmt.Errorf("année invalide")
	}

	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)

	items, err := s.repo.ListByDateRange(ctx, from, to)
	if err != nil {
		return counts, err
	}
	for _, cotisation := range items {
		counts[cotisation.DatePaiement.Month()-1]++
	}
	return counts, nil
}

func validateInput(membreID uint, montant float64, mois string, datePaiement time.Time) error {
	if membreID == 0 {
		return fmt.Errorf("membre_id est requis")
	}
	if !moisRegex.MatchString(mois) {
		return ErrMoisInvalide
	}
	if datePaiement.IsZero() {
		return fmt.Errorf("date_paiement est requise")
	}
	if montant < 0 {
		return fmt.Errorf("montant invalide")
	}
	if montant > PlafondCotisation {
		return ErrMontantTropEleve
	}
	return nil
}
