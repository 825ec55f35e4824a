package missions

import (
	"context"
	"fmt"
	"time"
)

const (
	MessagePaiementComplet = "Paiement complet"
	MessagePaiementPartiel = "Paiement partiel enregistré"
)

// TrendsInvalidator drops cached fund-wide trend aggregates. Mission
// payment totals feed the trends buckets, so payment writes go through it.
type TrendsInvalidator interface {
	Invalidate()
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate() {}

type Service struct {
	repo   Repository
	trends TrendsInvalidator
	nowFn  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:   repo,
		trends: noopInvalidator{},
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

// WithTrendsInvalidator shares the trends cache used by the caisse
// service so payment writes drop it too.
func (s *Service) WithTrendsInvalidator(trends TrendsInvalidator) *Service {
	s.trends = trends
	return s
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(nowFn func() time.Time) *Service {
	s.nowFn = nowFn
	return s
}

func (s *Service) List(ctx context.Context) ([]Mission, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uint) (*Mission, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, input CreateMissionInput) (*Mission, error) {
	if err := validateMissionInput(input.MembreID, input.Montant, input.Mois); err != nil {
		return nil, err
	}

	mois := NormalizeMois(input.Mois)
	count, err := s.repo.CountByMembreAndMois(ctx, input.MembreID, mois, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrMissionDejaExistante
	}

	mission := Mission{
		MembreID: input.MembreID,
		Montant:  input.Montant,
		Mois:     mois,
	}
	if err := s.repo.Create(ctx, &mission); err != nil {
		return nil, err
	}
	return &mission, nil
}

func (s *Service) Update(ctx context.Context, input UpdateMissionInput) (*Mission, error) {
	if err := validateMissionInput(input.MembreID, input.Montant, input.Mois); err != nil {
		return nil, err
	}

	mission, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	mois := NormalizeMois(input.Mois)
	count, err := s.repo.CountByMembreAndMois(ctx, input.MembreID, mois, mission.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrMissionDejaExistante
	}

	mission.MembreID = input.MembreID
	mission.Montant = input.Montant
	mission.Mois = mois

	if err := s.repo.Update(ctx, mission); err != nil {
		return nil, err
	}
	return mission, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMissionNotFound
	}
	return nil
}

// EffectuerPaiement records one installment against a mission. A member
// can pay a given mission at most once; the installment may not exceed
// what remains due on the mission.
func (s *Service) EffectuerPaiement(ctx context.Context, input PaiementInput) (*PaiementResult, error) {
	if input.MissionID == 0 || input.MembreID == 0 {
		return nil, fmt.Errorf("mission_id et membre_id sont requis")
	}
	if input.Montant <= 0 {
		return nil, fmt.Errorf("montant invalide")
	}

	var result PaiementResult
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		mission, err := tx.GetByID(ctx, input.MissionID)
		if err != nil {
			return err
		}

		existing, err := tx.CountPaiementsByMissionAndMembre(ctx, mission.ID, input.MembreID)
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrPaiementDejaEffectue
		}

		totalDejaPaye, err := tx.SumPaiementsByMission(ctx, mission.ID)
		if err != nil {
			return err
		}

		restePayer := mission.Montant - totalDejaPaye
		if input.Montant > restePayer {
			return ErrMontantSuperieurReste
		}

		paiement := PaiementMission{
			MissionID:    mission.ID,
			MembreID:     input.MembreID,
			Montant:      input.Montant,
			DatePaiement: s.nowFn(),
			RestePayer:   restePayer - input.Montant,
		}
		if err := tx.CreatePaiement(ctx, &paiement); err != nil {
			return err
		}

		result.Paiement = paiement
		if paiement.RestePayer == 0 {
			result.Message = MessagePaiementComplet
		} else {
			result.Message = MessagePaiementPartiel
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.trends.Invalidate()
	return &result, nil
}

func (s *Service) ListPaiements(ctx context.Context) ([]PaiementMission, error) {
	return s.repo.ListPaiements(ctx)
}

func (s *Service) GetPaiement(ctx context.Context, id uint) (*PaiementMission, error) {
	return s.repo.GetPaiementByID(ctx, id)
}

// UpdatePaiement edits a single payment row. Sibling payments keep their
// recorded reste à payer; the authoritative figure is recomputed on the
// next EffectuerPaiement.
func (s *Service) UpdatePaiement(ctx context.Context, input UpdatePaiementInput) (*PaiementMission, error) {
	if input.Montant <= 0 {
		return nil, fmt.Errorf("montant invalide")
	}

	paiement, err := s.repo.GetPaiementByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	paiement.Montant = input.Montant
	if !input.DatePaiement.IsZero() {
		paiement.DatePaiement = input.DatePaiement
	}

	if err := s.repo.UpdatePaiement(ctx, paiement); err != nil {
		return nil, err
	}

	s.trends.Invalidate()
	return paiement, nil
}

func (s *Service) DeletePaiement(ctx context.Context, id uint) error {
	deleted, err := s.repo.DeletePaiement(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPaiementNotFound
	}

	s.trends.Invalidate()
	return nil
}

func validateMissionInput(membreID uint, montant float64, mois time.Time) error {
	if membreID == 0 {
		return fmt.Errorf("membre_id est requis")
	}
	if montant <= 0 {
		return fmt.Errorf("montant invalide")
	}
	if mois.IsZero() {
		return fmt.Errorf("mois est requis")
	}
	return nil
}
