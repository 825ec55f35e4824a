package membres

import (
	"context"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Membre, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uint) (*Membre, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, input CreateMembreInput) (*Membre, error) {
	nom := strings.TrimSpace(input.Nom)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if nom == "" || email == "" {
		return nil, fmt.Errorf("nom et email sont requis")
	}

	count, err := s.repo.CountByEmail(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailDejaUtilise
	}

	membre := Membre{
		Nom:   nom,
		Email: email,
		Poste: strings.TrimSpace(input.Poste),
	}
	if err := s.repo.Create(ctx, &membre); err != nil {
		return nil, err
	}
	return &membre, nil
}

func (s *Service) Update(ctx context.Context, input UpdateMembreInput) (*Membre, error) {
	nom := strings.TrimSpace(input.Nom)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if nom == "" || email == "" {
		return nil, fmt.Errorf("nom et email sont requis")
	}

	membre, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountByEmail(ctx, email, membre.ID)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailDejaUtilise
	}

	membre.Nom = nom
	membre.Email = email
	membre.Poste = strings.TrimSpace(input.Poste)

	if err := s.repo.Update(ctx, membre); err != nil {
		return nil, err
	}
	return membre, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMembreNotFound
	}
	return nil
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// SansCotisation lists members that never paid a single cotisation.
func (s *Service) SansCotisation(ctx context.Context) ([]Membre, error) {
	return s.repo.ListSansCotisation(ctx)
}
