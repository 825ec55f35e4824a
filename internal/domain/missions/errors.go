package missions

import "errors"

var (
	ErrMissionNotFound       = errors.New("mission introuvable")
	ErrMissionDejaExistante  = errors.New("une mission existe déjà pour ce membre et ce mois")
	ErrPaiementNotFound      = errors.New("paiement introuvable")
	ErrPaiementDejaEffectue  = errors.New("un paiement a déjà été effectué par ce membre pour cette mission")
	ErrMontantSuperieurReste = errors.New("le montant dépasse le reste à payer")
)
