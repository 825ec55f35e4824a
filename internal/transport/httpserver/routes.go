package httpserver

import (
	"net/http"
	"time"

	"fonds-social-go/internal/config"
	"fonds-social-go/internal/transport/httpserver/handler"
	authmw "fonds-social-go/internal/transport/httpserver/middleware"
	"fonds-social-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, tokens authmw.TokenVerifier, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSAllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/auth/register", handlers.Register)
		r.Post("/auth/login", handlers.Login)

		auth := authmw.NewJWTAuth(tokens, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/user", handlers.ListUsers)
			r.Get("/user/{id}", handlers.GetUser)
			r.Put("/user/{id}", handlers.UpdateUser)
			r.Delete("/user/{id}", handlers.DeleteUser)

			r.Get("/membres", handlers.ListMembres)
			r.Post("/membres", handlers.CreateMembre)
			r.Get("/membres/count", handlers.CountMembres)
			r.Get("/membres/sans-cotisation", handlers.MembresSansCotisation)
			r.Get("/membres/{id}", handlers.GetMembre)
			r.Put("/membres/{id}", handlers.UpdateMembre)
			r.Delete("/membres/{id}", handlers.DeleteMembre)

			r.Get("/cotisations", handlers.ListCotisations)
			r.Post("/cotisations", handlers.CreateCotisation)
			r.Get("/cotisations/membres/{membreId}/mois", handlers.CotisationsByMembre)
			// Doubled segment kept for client compatibility.
			r.Get("/cotisations/cotisations/year/{year}", handlers.CotisationsByYear)
			r.Get("/cotisations/{id}", handlers.GetCotisation)
			r.Put("/cotisations/{id}", handlers.UpdateCotisation)
			r.Delete("/cotisations/{id}", handlers.DeleteCotisation)

			r.Get("/missions", handlers.ListMissions)
			r.Post("/missions", handlers.CreateMission)
			r.Get("/missions/{id}", handlers.GetMission)
			r.Put("/missions/{id}", handlers.UpdateMission)
			r.Delete("/missions/{id}", handlers.DeleteMission)

			r.Get("/paiementMission", handlers.ListPaiements)
			r.Post("/paiementMission", handlers.EffectuerPaiement)
			r.Get("/paiementMission/{id}", handlers.GetPaiement)
			r.Put("/paiementMission/{id}", handlers.UpdatePaiement)
			r.Delete("/paiementMission/{id}", handlers.DeletePaiement)

			r.Get("/caisse", handlers.ListCaisses)
			r.Post("/caisse", handlers.CreateCaisse)
			r.Get("/caisse/total", handlers.TotalCaisses)
			r.Get("/caisse/trends", handlers.CaisseTrends)
			r.Get("/caisse/{id}", handlers.GetCaisse)
			r.Put("/caisse/{id}", handlers.UpdateCaisse)
			r.Delete("/caisse/{id}", handlers.DeleteCaisse)

			r.Get("/entree", handlers.ListEntrees)
			r.Post("/entree", handlers.AddEntree)
			r.Get("/entree/total", handlers.TotalEntrees)
			r.Get("/entree/{id}", handlers.GetEntree)
			r.Put("/entree/{id}", handlers.UpdateEntree)
			r.Delete("/entree/{id}", handlers.DeleteEntree)

			r.Get("/sortie", handlers.ListSorties)
			r.Post("/sortie", handlers.CreateSortie)
			r.Get("/sortie/total", handlers.TotalSorties)
			r.Get("/sortie/{id}", handlers.GetSortie)
			r.Put("/sortie/{id}", handlers.UpdateSortie)
			r.Delete("/sortie/{id}", handlers.DeleteSortie)

			r.Get("/rapport", handlers.DownloadRapport)
		})
	})

	return r
}
