package cotisations

import "errors"

var (
	ErrCotisationNotFound = errors.New("cotisation introuvable")
	ErrMoisDejaRegle      = errors.New("une cotisation existe déjà pour ce membre et ce mois")
	ErrMontantTropEleve   = errors.New("le montant ne doit pas dépasser 3000")
	ErrMoisInvalide       = errors.New("mois invalide, format attendu YYYY-MM")
)
