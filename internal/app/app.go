package app

import (
	"net/http"

	"fonds-social-go/internal/config"
	"fonds-social-go/internal/db"
	authdomain "fonds-social-go/internal/domain/auth"
	caissedomain "fonds-social-go/internal/domain/caisse"
	cotisationsdomain "fonds-social-go/internal/domain/cotisations"
	membresdomain "fonds-social-go/internal/domain/membres"
	missionsdomain "fonds-social-go/internal/domain/missions"
	rapportdomain "fonds-social-go/internal/domain/rapport"
	"fonds-social-go/internal/repository/inmemory"
	authrepo "fonds-social-go/internal/repository/postgres/auth"
	caisserepo "fonds-social-go/internal/repository/postgres/caisse"
	cotisationsrepo "fonds-social-go/internal/repository/postgres/cotisations"
	membresrepo "fonds-social-go/internal/repository/postgres/membres"
	missionsrepo "fonds-social-go/internal/repository/postgres/missions"
	rapportrepo "fonds-social-go/internal/repository/postgres/rapport"
	"fonds-social-go/internal/transport/httpserver"
	"fonds-social-go/internal/transport/httpserver/handler"
	"fonds-social-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg := config.Load(log)

	log.Info("app: initializing database")
	dbConn, err := db.New(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	trendsCache := inmemory.NewTrendsCache()

	authService := authdomain.NewService(authrepo.NewPostgres(dbConn), cfg.JWT.Secret, cfg.JWT.TTL)
	membresService := membresdomain.NewService(membresrepo.NewPostgres(dbConn))
	cotisationsService := cotisationsdomain.NewService(cotisationsrepo.NewPostgres(dbConn)).WithTrendsInvalidator(trendsCache)
	missionsService := missionsdomain.NewService(missionsrepo.NewPostgres(dbConn)).WithTrendsInvalidator(trendsCache)
	caisseService := caissedomain.NewService(caisserepo.NewPostgres(dbConn), trendsCache, cfg.Trends.CacheTTL)
	rapportService := rapportdomain.NewService(rapportrepo.NewPostgres(dbConn))

	handlers := handler.New(authService, membresService, cotisationsService, missionsService, caisseService, rapportService, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, authService, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
