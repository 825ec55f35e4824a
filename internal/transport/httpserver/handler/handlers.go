package handler

import (
	authdomain "fonds-social-go/internal/domain/auth"
	caissedomain "fonds-social-go/internal/domain/caisse"
	cotisationsdomain "fonds-social-go/internal/domain/cotisations"
	membresdomain "fonds-social-go/internal/domain/membres"
	missionsdomain "fonds-social-go/internal/domain/missions"
	rapportdomain "fonds-social-go/internal/domain/rapport"
	"fonds-social-go/pkg/logger"
)

type Handlers struct {
	Auth        *authdomain.Service
	Membres     *membresdomain.Service
	Cotisations *cotisationsdomain.Service
	Missions    *missionsdomain.Service
	Caisse      *caissedomain.Service
	Rapport     *rapportdomain.Service

	log logger.Logger
}

func New(auth *authdomain.Service, membres *membresdomain.Service, cotisations *cotisationsdomain.Service, missions *missionsdomain.Service, caisse *caissedomain.Service, rapport *rapportdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Auth:        auth,
		Membres:     membres,
		Cotisations: cotisations,
		Missions:    missions,
		Caisse:      caisse,
		Rapport:     rapport,
		log:         log,
	}
}
