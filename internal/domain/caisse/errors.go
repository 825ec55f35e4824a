package caisse

import "errors"

var (
	ErrCaisseNotFound   = errors.New("caisse introuvable")
	ErrEntreeNotFound   = errors.New("entrée introuvable")
	ErrSortieNotFound   = errors.New("sortie introuvable")
	ErrSoldeInsuffisant = errors.New("Solde insuffisant")
)
