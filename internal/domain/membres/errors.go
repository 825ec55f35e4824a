package membres

import "errors"

var (
	ErrMembreNotFound   = errors.New("membre introuvable")
	ErrEmailDejaUtilise = errors.New("email déjà utilisé")
)
