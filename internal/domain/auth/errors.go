package auth

import "errors"

var (
	ErrUserNotFound          = errors.New("utilisateur introuvable")
	ErrEmailDejaUtilise      = errors.New("email déjà utilisé")
	ErrIdentifiantsInvalides = errors.New("email ou mot de passe invalide")
)
